package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"prep_kitchen_backend/internal/models"
)

// PrepItemOrderUpdate is one entry of a bulk display-order reassignment.
// An empty SheetName moves the item back to the default sheet.
type PrepItemOrderUpdate struct {
	ID           int64  `json:"id" binding:"required"`
	DisplayOrder int    `json:"display_order"`
	SheetName    string `json:"sheet_name"`
}

// PrepItemRepository defines the interface for prep item database operations.
type PrepItemRepository interface {
	CreatePrepItem(executor SQLExecutor, item *models.PrepItem) (int64, error)
	GetPrepItemByID(itemID int64) (*models.PrepItem, error)
	GetPrepItems(restaurantID int64) ([]models.PrepItem, error)
	UpdatePrepItem(executor SQLExecutor, item *models.PrepItem) error
	UpdateDisplayOrder(executor SQLExecutor, update PrepItemOrderUpdate) error
	DeletePrepItem(executor SQLExecutor, itemID int64) (int64, error)
}

type prepItemRepository struct {
	db *sql.DB
}

// NewPrepItemRepository creates a new instance of PrepItemRepository.
func NewPrepItemRepository(db *sql.DB) PrepItemRepository {
	return &prepItemRepository{db: db}
}

func (r *prepItemRepository) CreatePrepItem(executor SQLExecutor, item *models.PrepItem) (int64, error) {
	query := `INSERT INTO prep_items (restaurant_id, name, unit, sheet_name, display_order, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id`

	now := time.Now()
	err := executor.QueryRow(query,
		item.RestaurantID, item.Name, item.Unit, item.SheetName, item.DisplayOrder, now, now,
	).Scan(&item.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating prep item: %v", ErrDatabaseError, err)
	}
	return item.ID, nil
}

func (r *prepItemRepository) GetPrepItemByID(itemID int64) (*models.PrepItem, error) {
	item := &models.PrepItem{}
	query := `SELECT id, restaurant_id, name, unit, sheet_name, display_order, created_at, updated_at
	          FROM prep_items WHERE id = $1`
	err := r.db.QueryRow(query, itemID).Scan(
		&item.ID, &item.RestaurantID, &item.Name, &item.Unit, &item.SheetName,
		&item.DisplayOrder, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting prep item by ID %d: %v", ErrDatabaseError, itemID, err)
	}
	return item, nil
}

func (r *prepItemRepository) GetPrepItems(restaurantID int64) ([]models.PrepItem, error) {
	items := []models.PrepItem{}
	query := `SELECT id, restaurant_id, name, unit, sheet_name, display_order, created_at, updated_at
	          FROM prep_items
	          WHERE restaurant_id = $1
	          ORDER BY sheet_name ASC, display_order ASC, name ASC`

	rows, err := r.db.Query(query, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("%w: listing prep items for restaurant %d: %v", ErrDatabaseError, restaurantID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.PrepItem
		if err := rows.Scan(&item.ID, &item.RestaurantID, &item.Name, &item.Unit, &item.SheetName,
			&item.DisplayOrder, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning prep item row: %v", ErrDatabaseError, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating prep item rows: %v", ErrDatabaseError, err)
	}
	return items, nil
}

func (r *prepItemRepository) UpdatePrepItem(executor SQLExecutor, item *models.PrepItem) error {
	query := `UPDATE prep_items
	          SET name = $1, unit = $2, sheet_name = $3, display_order = $4, updated_at = $5
	          WHERE id = $6`
	result, err := executor.Exec(query, item.Name, item.Unit, item.SheetName, item.DisplayOrder, time.Now(), item.ID)
	if err != nil {
		return fmt.Errorf("%w: updating prep item %d: %v", ErrDatabaseError, item.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateDisplayOrder reassigns a prep item's display order and sheet membership.
// Intended to run inside a transaction covering a whole bulk reorder.
func (r *prepItemRepository) UpdateDisplayOrder(executor SQLExecutor, update PrepItemOrderUpdate) error {
	query := `UPDATE prep_items SET display_order = $1, sheet_name = $2, updated_at = $3 WHERE id = $4`
	result, err := executor.Exec(query, update.DisplayOrder, update.SheetName, time.Now(), update.ID)
	if err != nil {
		return fmt.Errorf("%w: updating display order for prep item %d: %v", ErrDatabaseError, update.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *prepItemRepository) DeletePrepItem(executor SQLExecutor, itemID int64) (int64, error) {
	result, err := executor.Exec(`DELETE FROM prep_items WHERE id = $1`, itemID)
	if err != nil {
		return 0, fmt.Errorf("%w: deleting prep item %d: %v", ErrDatabaseError, itemID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return 0, ErrNotFound
	}
	return rowsAffected, nil
}
