package models

import "time"

// PrepItem represents a kitchen-prepared ingredient tracked independently of
// finished menu items (e.g. "Wing Sauce")
type PrepItem struct {
	ID           int64     `json:"id" db:"id"`
	RestaurantID int64     `json:"restaurant_id" db:"restaurant_id" binding:"required"`
	Name         string    `json:"name" db:"name" binding:"required"`
	Unit         string    `json:"unit" db:"unit" binding:"required"` // e.g. "lbs", "quarts", "each"
	SheetName    string    `json:"sheet_name" db:"sheet_name"`        // prep sheet grouping, free-form
	DisplayOrder int       `json:"display_order" db:"display_order"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// PrepSettings holds the per-restaurant, per-item buffer policy.
// One row per (restaurant_id, prep_item_id); absent rows fall back to defaults.
type PrepSettings struct {
	ID               int64     `json:"id" db:"id"`
	RestaurantID     int64     `json:"restaurant_id" db:"restaurant_id"`
	PrepItemID       int64     `json:"prep_item_id" db:"prep_item_id"`
	BufferPercentage float64   `json:"buffer_percentage" db:"buffer_percentage"` // 0-100, default 50
	MinimumQuantity  float64   `json:"minimum_quantity" db:"minimum_quantity"`   // floor for buffered quantity, default 0
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
	PrepItemName     *string   `json:"prep_item_name,omitempty"`
}

// Prep settings defaults applied when no row exists for a prep item.
const (
	DefaultBufferPercentage = 50.0
	DefaultMinimumQuantity  = 0.0
)
