package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"prep_kitchen_backend/internal/models"
	"prep_kitchen_backend/internal/repositories"
)

var (
	ErrMenuItemNotFound = errors.New("menu item not found")
	ErrMappingNotFound  = errors.New("menu item mapping not found")
	ErrMappingExists    = errors.New("mapping for this prep item already exists")
)

// --- DTOs ---

type CreateMenuItemRequest struct {
	RestaurantID int64   `json:"restaurant_id" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	Category     *string `json:"category"`
	Price        float64 `json:"price" binding:"gte=0"`
	IsActive     *bool   `json:"is_active"`
}

type UpdateMenuItemRequest struct {
	Name     *string  `json:"name"`
	Category *string  `json:"category"`
	Price    *float64 `json:"price"`
	IsActive *bool    `json:"is_active"`
}

type CreateMappingRequest struct {
	PrepItemID      int64   `json:"prep_item_id" binding:"required"`
	QuantityPerItem float64 `json:"quantity_per_item" binding:"required,gt=0"`
}

// --- MenuService Interface ---
type MenuService interface {
	CreateMenuItem(req CreateMenuItemRequest) (*models.MenuItem, error)
	GetMenuItemByID(itemID int64) (*models.MenuItem, error)
	GetMenuItems(restaurantID *int64, activeOnly bool, page, pageSize int) ([]models.MenuItem, int, error)
	UpdateMenuItem(itemID int64, req UpdateMenuItemRequest) (*models.MenuItem, error)
	DeleteMenuItem(itemID int64) error

	CreateMapping(menuItemID int64, req CreateMappingRequest) (*models.MenuItemMapping, error)
	GetMappings(menuItemID int64) ([]models.MenuItemMapping, error)
	DeleteMapping(menuItemID, mappingID int64) error
}

type menuService struct {
	menuRepo     repositories.MenuRepository
	prepItemRepo repositories.PrepItemRepository
	db           *sql.DB
}

// NewMenuService creates a new instance of MenuService.
func NewMenuService(menuRepo repositories.MenuRepository, prepItemRepo repositories.PrepItemRepository, db *sql.DB) MenuService {
	return &menuService{menuRepo: menuRepo, prepItemRepo: prepItemRepo, db: db}
}

func (s *menuService) CreateMenuItem(req CreateMenuItemRequest) (*models.MenuItem, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: menu item name cannot be empty", ErrValidation)
	}
	item := &models.MenuItem{
		RestaurantID: req.RestaurantID,
		Name:         req.Name,
		Category:     req.Category,
		Price:        req.Price,
		IsActive:     true,
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}
	if _, err := s.menuRepo.CreateMenuItem(s.db, item); err != nil {
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}
	return s.GetMenuItemByID(item.ID)
}

func (s *menuService) GetMenuItemByID(itemID int64) (*models.MenuItem, error) {
	item, err := s.menuRepo.GetMenuItemByID(itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}
	return item, nil
}

func (s *menuService) GetMenuItems(restaurantID *int64, activeOnly bool, page, pageSize int) ([]models.MenuItem, int, error) {
	items, totalCount, err := s.menuRepo.GetMenuItems(restaurantID, activeOnly, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list menu items: %w", err)
	}
	return items, totalCount, nil
}

func (s *menuService) UpdateMenuItem(itemID int64, req UpdateMenuItemRequest) (*models.MenuItem, error) {
	item, err := s.GetMenuItemByID(itemID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: menu item name cannot be empty", ErrValidation)
		}
		item.Name = *req.Name
	}
	if req.Category != nil {
		item.Category = req.Category
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
		}
		item.Price = *req.Price
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}

	if err := s.menuRepo.UpdateMenuItem(s.db, item); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("failed to update menu item: %w", err)
	}
	return s.GetMenuItemByID(itemID)
}

func (s *menuService) DeleteMenuItem(itemID int64) error {
	if _, err := s.menuRepo.DeleteMenuItem(s.db, itemID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrMenuItemNotFound
		}
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	return nil
}

// --- Mapping Methods ---

func (s *menuService) CreateMapping(menuItemID int64, req CreateMappingRequest) (*models.MenuItemMapping, error) {
	if _, err := s.GetMenuItemByID(menuItemID); err != nil {
		return nil, err
	}
	if _, err := s.prepItemRepo.GetPrepItemByID(req.PrepItemID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPrepItemNotFound
		}
		return nil, fmt.Errorf("failed to verify prep item: %w", err)
	}

	mapping := &models.MenuItemMapping{
		MenuItemID:      menuItemID,
		PrepItemID:      req.PrepItemID,
		QuantityPerItem: req.QuantityPerItem,
	}
	if _, err := s.menuRepo.CreateMapping(s.db, mapping); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrMappingExists
		}
		return nil, fmt.Errorf("failed to create mapping: %w", err)
	}
	return mapping, nil
}

func (s *menuService) GetMappings(menuItemID int64) ([]models.MenuItemMapping, error) {
	if _, err := s.GetMenuItemByID(menuItemID); err != nil {
		return nil, err
	}
	mappings, err := s.menuRepo.GetMappingsByMenuItemID(menuItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list mappings: %w", err)
	}
	return mappings, nil
}

func (s *menuService) DeleteMapping(menuItemID, mappingID int64) error {
	if _, err := s.menuRepo.DeleteMapping(s.db, menuItemID, mappingID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrMappingNotFound
		}
		return fmt.Errorf("failed to delete mapping: %w", err)
	}
	return nil
}
