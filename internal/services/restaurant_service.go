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
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrValidation         = errors.New("validation error")
)

// --- DTOs ---

type CreateRestaurantRequest struct {
	Name     string  `json:"name" binding:"required"`
	Timezone *string `json:"timezone"`
}

type UpdateRestaurantRequest struct {
	Name     *string `json:"name"`
	Timezone *string `json:"timezone"`
}

// --- RestaurantService Interface ---
type RestaurantService interface {
	CreateRestaurant(req CreateRestaurantRequest) (*models.Restaurant, error)
	GetRestaurantByID(restaurantID int64) (*models.Restaurant, error)
	GetRestaurants(page, pageSize int) ([]models.Restaurant, int, error)
	UpdateRestaurant(restaurantID int64, req UpdateRestaurantRequest) (*models.Restaurant, error)
	DeleteRestaurant(restaurantID int64) error
}

type restaurantService struct {
	restaurantRepo repositories.RestaurantRepository
	db             *sql.DB
}

// NewRestaurantService creates a new instance of RestaurantService.
func NewRestaurantService(repo repositories.RestaurantRepository, db *sql.DB) RestaurantService {
	return &restaurantService{restaurantRepo: repo, db: db}
}

func (s *restaurantService) CreateRestaurant(req CreateRestaurantRequest) (*models.Restaurant, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: restaurant name cannot be empty", ErrValidation)
	}
	restaurant := &models.Restaurant{
		Name:     req.Name,
		Timezone: req.Timezone,
	}
	if _, err := s.restaurantRepo.CreateRestaurant(s.db, restaurant); err != nil {
		return nil, fmt.Errorf("failed to create restaurant: %w", err)
	}
	return s.GetRestaurantByID(restaurant.ID)
}

func (s *restaurantService) GetRestaurantByID(restaurantID int64) (*models.Restaurant, error) {
	restaurant, err := s.restaurantRepo.GetRestaurantByID(restaurantID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("failed to get restaurant: %w", err)
	}
	return restaurant, nil
}

func (s *restaurantService) GetRestaurants(page, pageSize int) ([]models.Restaurant, int, error) {
	restaurants, totalCount, err := s.restaurantRepo.GetRestaurants(page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list restaurants: %w", err)
	}
	return restaurants, totalCount, nil
}

func (s *restaurantService) UpdateRestaurant(restaurantID int64, req UpdateRestaurantRequest) (*models.Restaurant, error) {
	restaurant, err := s.GetRestaurantByID(restaurantID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: restaurant name cannot be empty", ErrValidation)
		}
		restaurant.Name = *req.Name
	}
	if req.Timezone != nil {
		restaurant.Timezone = req.Timezone
	}

	if err := s.restaurantRepo.UpdateRestaurant(s.db, restaurant); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("failed to update restaurant: %w", err)
	}
	return s.GetRestaurantByID(restaurantID)
}

func (s *restaurantService) DeleteRestaurant(restaurantID int64) error {
	if _, err := s.restaurantRepo.DeleteRestaurant(s.db, restaurantID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrRestaurantNotFound
		}
		return fmt.Errorf("failed to delete restaurant: %w", err)
	}
	return nil
}
