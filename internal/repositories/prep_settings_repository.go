package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"prep_kitchen_backend/internal/models"
)

// PrepSettingsRepository defines the interface for per-item buffer settings.
type PrepSettingsRepository interface {
	// Lookup returns the settings row for one (restaurant, prep item) pair,
	// or ErrNotFound when none exists; callers apply defaults.
	Lookup(restaurantID, prepItemID int64) (*models.PrepSettings, error)

	// GetForRestaurant returns all settings rows for a restaurant keyed by prep item ID.
	GetForRestaurant(restaurantID int64) (map[int64]models.PrepSettings, error)

	// ListForRestaurant returns all settings rows joined with prep item names.
	ListForRestaurant(restaurantID int64) ([]models.PrepSettings, error)

	// Upsert inserts or updates the settings row for a (restaurant, prep item) pair.
	Upsert(executor SQLExecutor, settings *models.PrepSettings) error
}

type prepSettingsRepository struct {
	db *sql.DB
}

// NewPrepSettingsRepository creates a new instance of PrepSettingsRepository.
func NewPrepSettingsRepository(db *sql.DB) PrepSettingsRepository {
	return &prepSettingsRepository{db: db}
}

func (r *prepSettingsRepository) Lookup(restaurantID, prepItemID int64) (*models.PrepSettings, error) {
	settings := &models.PrepSettings{}
	query := `SELECT id, restaurant_id, prep_item_id, buffer_percentage, minimum_quantity, created_at, updated_at
	          FROM prep_settings
	          WHERE restaurant_id = $1 AND prep_item_id = $2`
	err := r.db.QueryRow(query, restaurantID, prepItemID).Scan(
		&settings.ID, &settings.RestaurantID, &settings.PrepItemID,
		&settings.BufferPercentage, &settings.MinimumQuantity,
		&settings.CreatedAt, &settings.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: looking up prep settings (restaurant %d, item %d): %v",
			ErrDatabaseError, restaurantID, prepItemID, err)
	}
	return settings, nil
}

func (r *prepSettingsRepository) GetForRestaurant(restaurantID int64) (map[int64]models.PrepSettings, error) {
	settingsByItem := map[int64]models.PrepSettings{}
	query := `SELECT id, restaurant_id, prep_item_id, buffer_percentage, minimum_quantity, created_at, updated_at
	          FROM prep_settings
	          WHERE restaurant_id = $1`

	rows, err := r.db.Query(query, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("%w: listing prep settings for restaurant %d: %v", ErrDatabaseError, restaurantID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var s models.PrepSettings
		if err := rows.Scan(&s.ID, &s.RestaurantID, &s.PrepItemID,
			&s.BufferPercentage, &s.MinimumQuantity, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning prep settings row: %v", ErrDatabaseError, err)
		}
		settingsByItem[s.PrepItemID] = s
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating prep settings rows: %v", ErrDatabaseError, err)
	}
	return settingsByItem, nil
}

func (r *prepSettingsRepository) ListForRestaurant(restaurantID int64) ([]models.PrepSettings, error) {
	settings := []models.PrepSettings{}
	query := `SELECT ps.id, ps.restaurant_id, ps.prep_item_id, ps.buffer_percentage, ps.minimum_quantity,
	                 ps.created_at, ps.updated_at, pi.name as prep_item_name
	          FROM prep_settings ps
	          JOIN prep_items pi ON ps.prep_item_id = pi.id
	          WHERE ps.restaurant_id = $1
	          ORDER BY pi.name ASC`

	rows, err := r.db.Query(query, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("%w: listing prep settings for restaurant %d: %v", ErrDatabaseError, restaurantID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var s models.PrepSettings
		if err := rows.Scan(&s.ID, &s.RestaurantID, &s.PrepItemID, &s.BufferPercentage,
			&s.MinimumQuantity, &s.CreatedAt, &s.UpdatedAt, &s.PrepItemName); err != nil {
			return nil, fmt.Errorf("%w: scanning prep settings row: %v", ErrDatabaseError, err)
		}
		settings = append(settings, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating prep settings rows: %v", ErrDatabaseError, err)
	}
	return settings, nil
}

func (r *prepSettingsRepository) Upsert(executor SQLExecutor, settings *models.PrepSettings) error {
	query := `
	    INSERT INTO prep_settings (restaurant_id, prep_item_id, buffer_percentage, minimum_quantity, created_at, updated_at)
	    VALUES ($1, $2, $3, $4, $5, $6)
	    ON CONFLICT (restaurant_id, prep_item_id)
	    DO UPDATE SET buffer_percentage = EXCLUDED.buffer_percentage,
	                  minimum_quantity = EXCLUDED.minimum_quantity,
	                  updated_at = EXCLUDED.updated_at
	    RETURNING id, created_at, updated_at`

	now := time.Now()
	err := executor.QueryRow(query,
		settings.RestaurantID, settings.PrepItemID,
		settings.BufferPercentage, settings.MinimumQuantity, now, now,
	).Scan(&settings.ID, &settings.CreatedAt, &settings.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%w: upserting prep settings (restaurant %d, item %d): %v",
			ErrDatabaseError, settings.RestaurantID, settings.PrepItemID, err)
	}
	return nil
}
