package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"prep_kitchen_backend/internal/models"
	"prep_kitchen_backend/internal/repositories"
)

var (
	ErrSaleNotFound   = errors.New("sale not found")
	ErrInvalidDate    = errors.New("invalid date, expected YYYY-MM-DD")
	ErrEmptySalesList = errors.New("sales list cannot be empty")
)

// --- DTOs ---

type CreateSaleRequest struct {
	RestaurantID int64   `json:"restaurant_id" binding:"required"`
	MenuItemID   int64   `json:"menu_item_id" binding:"required"`
	Quantity     float64 `json:"quantity" binding:"gte=0"`
	SaleDate     string  `json:"sale_date" binding:"required"` // YYYY-MM-DD
}

// BulkCreateSalesRequest saves a whole day-entry grid in one call.
type BulkCreateSalesRequest struct {
	RestaurantID int64  `json:"restaurant_id" binding:"required"`
	SaleDate     string `json:"sale_date" binding:"required"` // YYYY-MM-DD
	Entries      []struct {
		MenuItemID int64   `json:"menu_item_id" binding:"required"`
		Quantity   float64 `json:"quantity" binding:"gte=0"`
	} `json:"entries" binding:"required,dive"`
}

// --- SalesService Interface ---
type SalesService interface {
	CreateSale(req CreateSaleRequest) (*models.Sale, error)
	BulkCreateSales(req BulkCreateSalesRequest) (int, error)
	GetSales(filters models.SaleFilters) ([]models.Sale, int, error)
	DeleteSale(saleID int64) error
}

type salesService struct {
	salesRepo repositories.SalesRepository
	db        *sql.DB
}

// NewSalesService creates a new instance of SalesService.
func NewSalesService(salesRepo repositories.SalesRepository, db *sql.DB) SalesService {
	return &salesService{salesRepo: salesRepo, db: db}
}

// ValidateDate checks a YYYY-MM-DD string and returns its parsed value.
func ValidateDate(date string) (time.Time, error) {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidDate, date)
	}
	return parsed, nil
}

func (s *salesService) CreateSale(req CreateSaleRequest) (*models.Sale, error) {
	if _, err := ValidateDate(req.SaleDate); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if req.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity cannot be negative", ErrValidation)
	}

	sale := &models.Sale{
		RestaurantID: req.RestaurantID,
		MenuItemID:   req.MenuItemID,
		Quantity:     req.Quantity,
		SaleDate:     req.SaleDate,
	}
	if _, err := s.salesRepo.CreateSale(s.db, sale); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("failed to create sale: %w", err)
	}
	return sale, nil
}

// BulkCreateSales upserts a full day of entries inside one transaction so a
// partially saved grid never persists.
func (s *salesService) BulkCreateSales(req BulkCreateSalesRequest) (int, error) {
	if _, err := ValidateDate(req.SaleDate); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if len(req.Entries) == 0 {
		return 0, fmt.Errorf("%w: %v", ErrValidation, ErrEmptySalesList)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	saved := 0
	for _, entry := range req.Entries {
		if entry.Quantity < 0 {
			return 0, fmt.Errorf("%w: quantity for menu item %d cannot be negative", ErrValidation, entry.MenuItemID)
		}
		sale := &models.Sale{
			RestaurantID: req.RestaurantID,
			MenuItemID:   entry.MenuItemID,
			Quantity:     entry.Quantity,
			SaleDate:     req.SaleDate,
		}
		if _, err := s.salesRepo.CreateSale(tx, sale); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return 0, fmt.Errorf("%w: menu item %d", ErrMenuItemNotFound, entry.MenuItemID)
			}
			return 0, fmt.Errorf("failed to save sale for menu item %d: %w", entry.MenuItemID, err)
		}
		saved++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit sales transaction: %w", err)
	}
	return saved, nil
}

func (s *salesService) GetSales(filters models.SaleFilters) ([]models.Sale, int, error) {
	if filters.StartDate != nil && *filters.StartDate != "" {
		if _, err := ValidateDate(*filters.StartDate); err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}
	if filters.EndDate != nil && *filters.EndDate != "" {
		if _, err := ValidateDate(*filters.EndDate); err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}
	sales, totalCount, err := s.salesRepo.GetSales(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list sales: %w", err)
	}
	return sales, totalCount, nil
}

func (s *salesService) DeleteSale(saleID int64) error {
	if _, err := s.salesRepo.DeleteSale(s.db, saleID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrSaleNotFound
		}
		return fmt.Errorf("failed to delete sale: %w", err)
	}
	return nil
}
