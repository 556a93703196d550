package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"prep_kitchen_backend/internal/models"

	"github.com/lib/pq" // For pq.Error
)

// MenuRepository defines the interface for menu item and mapping database operations.
type MenuRepository interface {
	// Menu item methods
	CreateMenuItem(executor SQLExecutor, item *models.MenuItem) (int64, error)
	GetMenuItemByID(itemID int64) (*models.MenuItem, error)
	GetMenuItems(restaurantID *int64, activeOnly bool, page, pageSize int) ([]models.MenuItem, int, error)
	UpdateMenuItem(executor SQLExecutor, item *models.MenuItem) error
	DeleteMenuItem(executor SQLExecutor, itemID int64) (int64, error)

	// Mapping methods
	CreateMapping(executor SQLExecutor, mapping *models.MenuItemMapping) (int64, error)
	GetMappingsByMenuItemID(menuItemID int64) ([]models.MenuItemMapping, error)
	DeleteMapping(executor SQLExecutor, menuItemID, mappingID int64) (int64, error)
}

type menuRepository struct {
	db *sql.DB
}

// NewMenuRepository creates a new instance of MenuRepository.
func NewMenuRepository(db *sql.DB) MenuRepository {
	return &menuRepository{db: db}
}

// --- Menu Item Methods ---

func (r *menuRepository) CreateMenuItem(executor SQLExecutor, item *models.MenuItem) (int64, error) {
	query := `INSERT INTO menu_items (restaurant_id, name, category, price, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id`

	now := time.Now()
	err := executor.QueryRow(query,
		item.RestaurantID, item.Name, item.Category, item.Price, item.IsActive, now, now,
	).Scan(&item.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: %s", ErrDuplicateKey, pqErr.Message)
		}
		return 0, fmt.Errorf("%w: creating menu item: %v", ErrDatabaseError, err)
	}
	return item.ID, nil
}

func (r *menuRepository) GetMenuItemByID(itemID int64) (*models.MenuItem, error) {
	item := &models.MenuItem{}
	query := `SELECT id, restaurant_id, name, category, price, is_active, created_at, updated_at
	          FROM menu_items WHERE id = $1`
	err := r.db.QueryRow(query, itemID).Scan(
		&item.ID, &item.RestaurantID, &item.Name, &item.Category, &item.Price,
		&item.IsActive, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting menu item by ID %d: %v", ErrDatabaseError, itemID, err)
	}
	return item, nil
}

func (r *menuRepository) GetMenuItems(restaurantID *int64, activeOnly bool, page, pageSize int) ([]models.MenuItem, int, error) {
	items := []models.MenuItem{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
        SELECT id, restaurant_id, name, category, price, is_active, created_at, updated_at,
               COUNT(*) OVER() as total_count
        FROM menu_items
    `)

	var conditions []string
	var args []interface{}
	argCounter := 1

	if restaurantID != nil {
		conditions = append(conditions, fmt.Sprintf("restaurant_id = $%d", argCounter))
		args = append(args, *restaurantID)
		argCounter++
	}
	if activeOnly {
		conditions = append(conditions, "is_active = TRUE")
	}
	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY name ASC")

	if pageSize > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCounter))
		args = append(args, pageSize)
		argCounter++
		if page > 1 {
			queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCounter))
			args = append(args, (page-1)*pageSize)
		}
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: listing menu items: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.MenuItem
		if err := rows.Scan(&item.ID, &item.RestaurantID, &item.Name, &item.Category, &item.Price,
			&item.IsActive, &item.CreatedAt, &item.UpdatedAt, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning menu item row: %v", ErrDatabaseError, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating menu item rows: %v", ErrDatabaseError, err)
	}
	return items, totalCount, nil
}

func (r *menuRepository) UpdateMenuItem(executor SQLExecutor, item *models.MenuItem) error {
	query := `UPDATE menu_items
	          SET name = $1, category = $2, price = $3, is_active = $4, updated_at = $5
	          WHERE id = $6`
	result, err := executor.Exec(query, item.Name, item.Category, item.Price, item.IsActive, time.Now(), item.ID)
	if err != nil {
		return fmt.Errorf("%w: updating menu item %d: %v", ErrDatabaseError, item.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *menuRepository) DeleteMenuItem(executor SQLExecutor, itemID int64) (int64, error) {
	result, err := executor.Exec(`DELETE FROM menu_items WHERE id = $1`, itemID)
	if err != nil {
		return 0, fmt.Errorf("%w: deleting menu item %d: %v", ErrDatabaseError, itemID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return 0, ErrNotFound
	}
	return rowsAffected, nil
}

// --- Mapping Methods ---

func (r *menuRepository) CreateMapping(executor SQLExecutor, mapping *models.MenuItemMapping) (int64, error) {
	query := `INSERT INTO menu_item_mappings (menu_item_id, prep_item_id, quantity_per_item, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`

	now := time.Now()
	err := executor.QueryRow(query,
		mapping.MenuItemID, mapping.PrepItemID, mapping.QuantityPerItem, now, now,
	).Scan(&mapping.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: %s", ErrDuplicateKey, pqErr.Message)
		}
		return 0, fmt.Errorf("%w: creating menu item mapping: %v", ErrDatabaseError, err)
	}
	return mapping.ID, nil
}

func (r *menuRepository) GetMappingsByMenuItemID(menuItemID int64) ([]models.MenuItemMapping, error) {
	mappings := []models.MenuItemMapping{}
	query := `SELECT m.id, m.menu_item_id, m.prep_item_id, m.quantity_per_item, m.created_at, m.updated_at,
	                 pi.name as prep_item_name
	          FROM menu_item_mappings m
	          JOIN prep_items pi ON m.prep_item_id = pi.id
	          WHERE m.menu_item_id = $1
	          ORDER BY pi.name ASC`

	rows, err := r.db.Query(query, menuItemID)
	if err != nil {
		return nil, fmt.Errorf("%w: listing mappings for menu item %d: %v", ErrDatabaseError, menuItemID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.MenuItemMapping
		if err := rows.Scan(&m.ID, &m.MenuItemID, &m.PrepItemID, &m.QuantityPerItem,
			&m.CreatedAt, &m.UpdatedAt, &m.PrepItemName); err != nil {
			return nil, fmt.Errorf("%w: scanning mapping row: %v", ErrDatabaseError, err)
		}
		mappings = append(mappings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating mapping rows: %v", ErrDatabaseError, err)
	}
	return mappings, nil
}

func (r *menuRepository) DeleteMapping(executor SQLExecutor, menuItemID, mappingID int64) (int64, error) {
	result, err := executor.Exec(`DELETE FROM menu_item_mappings WHERE id = $1 AND menu_item_id = $2`, mappingID, menuItemID)
	if err != nil {
		return 0, fmt.Errorf("%w: deleting mapping %d: %v", ErrDatabaseError, mappingID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return 0, ErrNotFound
	}
	return rowsAffected, nil
}
