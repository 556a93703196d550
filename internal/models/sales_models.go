package models

import "time"

// Sale represents one day's sold quantity of a menu item
type Sale struct {
	ID           int64     `json:"id" db:"id"`
	RestaurantID int64     `json:"restaurant_id" db:"restaurant_id" binding:"required"`
	MenuItemID   int64     `json:"menu_item_id" db:"menu_item_id" binding:"required"`
	Quantity     float64   `json:"quantity" db:"quantity" binding:"gte=0"`
	SaleDate     string    `json:"sale_date" db:"sale_date" binding:"required"` // YYYY-MM-DD
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
	MenuItemName *string   `json:"menu_item_name,omitempty"` // For joining with menu_items
}

// SaleFilters narrows sales listing queries
type SaleFilters struct {
	RestaurantID int64
	MenuItemID   *int64
	StartDate    *string // YYYY-MM-DD
	EndDate      *string // YYYY-MM-DD
	Page         int
	PageSize     int
}

// HistoricalUsageRecord is one prep item's derived usage on one sale date,
// produced by joining sales against menu-to-prep mappings.
type HistoricalUsageRecord struct {
	PrepItemID int64     `json:"prep_item_id"`
	Date       time.Time `json:"date"`
	Quantity   float64   `json:"quantity"`
	Name       string    `json:"name"`
	Unit       string    `json:"unit"`
}

// ContributingMenuItem is a menu item whose sales contribute to a prep item's
// usage over a lookback window.
type ContributingMenuItem struct {
	MenuItemID int64   `json:"menu_item_id"`
	Name       string  `json:"name"`
	Quantity   float64 `json:"quantity"`
}
