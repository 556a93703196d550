package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"prep_kitchen_backend/internal/models"
)

// RestaurantRepository defines the interface for restaurant database operations.
type RestaurantRepository interface {
	CreateRestaurant(executor SQLExecutor, restaurant *models.Restaurant) (int64, error)
	GetRestaurantByID(restaurantID int64) (*models.Restaurant, error)
	GetRestaurants(page, pageSize int) ([]models.Restaurant, int, error)
	UpdateRestaurant(executor SQLExecutor, restaurant *models.Restaurant) error
	DeleteRestaurant(executor SQLExecutor, restaurantID int64) (int64, error)
}

type restaurantRepository struct {
	db *sql.DB
}

// NewRestaurantRepository creates a new instance of RestaurantRepository.
func NewRestaurantRepository(db *sql.DB) RestaurantRepository {
	return &restaurantRepository{db: db}
}

func (r *restaurantRepository) CreateRestaurant(executor SQLExecutor, restaurant *models.Restaurant) (int64, error) {
	query := `INSERT INTO restaurants (name, timezone, created_at, updated_at)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id`

	now := time.Now()
	err := executor.QueryRow(query, restaurant.Name, restaurant.Timezone, now, now).Scan(&restaurant.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating restaurant: %v", ErrDatabaseError, err)
	}
	return restaurant.ID, nil
}

func (r *restaurantRepository) GetRestaurantByID(restaurantID int64) (*models.Restaurant, error) {
	restaurant := &models.Restaurant{}
	query := `SELECT id, name, timezone, created_at, updated_at FROM restaurants WHERE id = $1`
	err := r.db.QueryRow(query, restaurantID).Scan(
		&restaurant.ID, &restaurant.Name, &restaurant.Timezone, &restaurant.CreatedAt, &restaurant.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting restaurant by ID %d: %v", ErrDatabaseError, restaurantID, err)
	}
	return restaurant, nil
}

func (r *restaurantRepository) GetRestaurants(page, pageSize int) ([]models.Restaurant, int, error) {
	restaurants := []models.Restaurant{}
	totalCount := 0

	query := `SELECT id, name, timezone, created_at, updated_at, COUNT(*) OVER() as total_count
	          FROM restaurants
	          ORDER BY name ASC
	          LIMIT $1 OFFSET $2`

	if pageSize <= 0 {
		pageSize = 50
	}
	offset := 0
	if page > 1 {
		offset = (page - 1) * pageSize
	}

	rows, err := r.db.Query(query, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: listing restaurants: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var restaurant models.Restaurant
		if err := rows.Scan(&restaurant.ID, &restaurant.Name, &restaurant.Timezone,
			&restaurant.CreatedAt, &restaurant.UpdatedAt, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning restaurant row: %v", ErrDatabaseError, err)
		}
		restaurants = append(restaurants, restaurant)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating restaurant rows: %v", ErrDatabaseError, err)
	}
	return restaurants, totalCount, nil
}

func (r *restaurantRepository) UpdateRestaurant(executor SQLExecutor, restaurant *models.Restaurant) error {
	query := `UPDATE restaurants SET name = $1, timezone = $2, updated_at = $3 WHERE id = $4`
	result, err := executor.Exec(query, restaurant.Name, restaurant.Timezone, time.Now(), restaurant.ID)
	if err != nil {
		return fmt.Errorf("%w: updating restaurant %d: %v", ErrDatabaseError, restaurant.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *restaurantRepository) DeleteRestaurant(executor SQLExecutor, restaurantID int64) (int64, error) {
	result, err := executor.Exec(`DELETE FROM restaurants WHERE id = $1`, restaurantID)
	if err != nil {
		return 0, fmt.Errorf("%w: deleting restaurant %d: %v", ErrDatabaseError, restaurantID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return 0, ErrNotFound
	}
	return rowsAffected, nil
}
