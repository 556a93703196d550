package models

import "time"

// PrepTask is the mutable daily record of completion progress against a
// computed prep requirement. One row per (restaurant, prep item, date).
type PrepTask struct {
	ID                int64      `json:"id" db:"id"`
	RestaurantID      int64      `json:"restaurant_id" db:"restaurant_id"`
	PrepItemID        int64      `json:"prep_item_id" db:"prep_item_id"`
	RequiredQuantity  float64    `json:"required_quantity" db:"required_quantity"`
	CompletedQuantity float64    `json:"completed_quantity" db:"completed_quantity"`
	Status            string     `json:"status" db:"status"` // pending, in_progress, completed
	AssignedTo        *string    `json:"assigned_to,omitempty" db:"assigned_to"`
	Notes             *string    `json:"notes,omitempty" db:"notes"`
	TaskDate          string     `json:"task_date" db:"task_date"` // YYYY-MM-DD
	CompletedAt       *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at" db:"updated_at"`
	PrepItemName      *string    `json:"prep_item_name,omitempty"` // For joining with prep_items
	Unit              *string    `json:"unit,omitempty"`
	SheetName         *string    `json:"sheet_name,omitempty"`
}
