package models

import "time"

// MenuItem represents a sellable dish
type MenuItem struct {
	ID           int64     `json:"id" db:"id"`
	RestaurantID int64     `json:"restaurant_id" db:"restaurant_id" binding:"required"`
	Name         string    `json:"name" db:"name" binding:"required"`
	Category     *string   `json:"category,omitempty" db:"category"`
	Price        float64   `json:"price" db:"price"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// MenuItemMapping links a menu item to a prep item with the quantity of prep
// consumed per unit sold
type MenuItemMapping struct {
	ID              int64     `json:"id" db:"id"`
	MenuItemID      int64     `json:"menu_item_id" db:"menu_item_id" binding:"required"`
	PrepItemID      int64     `json:"prep_item_id" db:"prep_item_id" binding:"required"`
	QuantityPerItem float64   `json:"quantity_per_item" db:"quantity_per_item" binding:"required,gt=0"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
	PrepItemName    *string   `json:"prep_item_name,omitempty"` // For joining with prep_items
	MenuItemName    *string   `json:"menu_item_name,omitempty"` // For joining with menu_items
}
