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

// SalesRepository defines the interface for sales entry and historical usage queries.
type SalesRepository interface {
	CreateSale(executor SQLExecutor, sale *models.Sale) (int64, error)
	GetSales(filters models.SaleFilters) ([]models.Sale, int, error)
	DeleteSale(executor SQLExecutor, saleID int64) (int64, error)

	// GetHistoricalUsage joins sales against menu-to-prep mappings and returns
	// per (prep item, sale date) summed usage over [startDate, endDate].
	GetHistoricalUsage(restaurantID int64, startDate, endDate string) ([]models.HistoricalUsageRecord, error)

	// GetContributingMenuItems returns, per prep item, the menu items whose
	// sales over the window contribute to its usage.
	GetContributingMenuItems(restaurantID int64, startDate, endDate string) (map[int64][]models.ContributingMenuItem, error)
}

type salesRepository struct {
	db *sql.DB
}

// NewSalesRepository creates a new instance of SalesRepository.
func NewSalesRepository(db *sql.DB) SalesRepository {
	return &salesRepository{db: db}
}

func (r *salesRepository) CreateSale(executor SQLExecutor, sale *models.Sale) (int64, error) {
	query := `INSERT INTO sales (restaurant_id, menu_item_id, quantity, sale_date, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          ON CONFLICT (restaurant_id, menu_item_id, sale_date)
	          DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at
	          RETURNING id`

	now := time.Now()
	err := executor.QueryRow(query,
		sale.RestaurantID, sale.MenuItemID, sale.Quantity, sale.SaleDate, now, now,
	).Scan(&sale.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return 0, fmt.Errorf("%w: %s", ErrNotFound, pqErr.Message)
		}
		return 0, fmt.Errorf("%w: creating sale: %v", ErrDatabaseError, err)
	}
	return sale.ID, nil
}

func (r *salesRepository) GetSales(filters models.SaleFilters) ([]models.Sale, int, error) {
	sales := []models.Sale{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
        SELECT s.id, s.restaurant_id, s.menu_item_id, s.quantity,
               to_char(s.sale_date, 'YYYY-MM-DD') as sale_date,
               s.created_at, s.updated_at,
               mi.name as menu_item_name,
               COUNT(*) OVER() as total_count
        FROM sales s
        JOIN menu_items mi ON s.menu_item_id = mi.id
    `)

	conditions := []string{"s.restaurant_id = $1"}
	args := []interface{}{filters.RestaurantID}
	argCounter := 2

	if filters.MenuItemID != nil {
		conditions = append(conditions, fmt.Sprintf("s.menu_item_id = $%d", argCounter))
		args = append(args, *filters.MenuItemID)
		argCounter++
	}
	if filters.StartDate != nil && *filters.StartDate != "" {
		conditions = append(conditions, fmt.Sprintf("s.sale_date >= $%d", argCounter))
		args = append(args, *filters.StartDate)
		argCounter++
	}
	if filters.EndDate != nil && *filters.EndDate != "" {
		conditions = append(conditions, fmt.Sprintf("s.sale_date <= $%d", argCounter))
		args = append(args, *filters.EndDate)
		argCounter++
	}

	queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	queryBuilder.WriteString(" ORDER BY s.sale_date DESC, mi.name ASC")

	if filters.PageSize > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCounter))
		args = append(args, filters.PageSize)
		argCounter++
		if filters.Page > 1 {
			queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCounter))
			args = append(args, (filters.Page-1)*filters.PageSize)
		}
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: listing sales: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var sale models.Sale
		if err := rows.Scan(&sale.ID, &sale.RestaurantID, &sale.MenuItemID, &sale.Quantity,
			&sale.SaleDate, &sale.CreatedAt, &sale.UpdatedAt, &sale.MenuItemName, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning sale row: %v", ErrDatabaseError, err)
		}
		sales = append(sales, sale)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating sale rows: %v", ErrDatabaseError, err)
	}
	return sales, totalCount, nil
}

func (r *salesRepository) DeleteSale(executor SQLExecutor, saleID int64) (int64, error) {
	result, err := executor.Exec(`DELETE FROM sales WHERE id = $1`, saleID)
	if err != nil {
		return 0, fmt.Errorf("%w: deleting sale %d: %v", ErrDatabaseError, saleID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return 0, ErrNotFound
	}
	return rowsAffected, nil
}

// GetHistoricalUsage returns the plain per-date usage feed. The today/tomorrow
// weighting deliberately does not happen in SQL; prepcalc applies it so the
// policy is testable without a database.
func (r *salesRepository) GetHistoricalUsage(restaurantID int64, startDate, endDate string) ([]models.HistoricalUsageRecord, error) {
	records := []models.HistoricalUsageRecord{}
	query := `
        SELECT pi.id, s.sale_date, SUM(s.quantity * m.quantity_per_item) as quantity, pi.name, pi.unit
        FROM sales s
        JOIN menu_item_mappings m ON s.menu_item_id = m.menu_item_id
        JOIN prep_items pi ON m.prep_item_id = pi.id
        WHERE s.restaurant_id = $1
          AND s.sale_date BETWEEN $2 AND $3
        GROUP BY pi.id, s.sale_date, pi.name, pi.unit
        ORDER BY pi.id, s.sale_date`

	rows, err := r.db.Query(query, restaurantID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("%w: querying historical usage for restaurant %d: %v", ErrDatabaseError, restaurantID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec models.HistoricalUsageRecord
		if err := rows.Scan(&rec.PrepItemID, &rec.Date, &rec.Quantity, &rec.Name, &rec.Unit); err != nil {
			return nil, fmt.Errorf("%w: scanning historical usage row: %v", ErrDatabaseError, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating historical usage rows: %v", ErrDatabaseError, err)
	}
	return records, nil
}

func (r *salesRepository) GetContributingMenuItems(restaurantID int64, startDate, endDate string) (map[int64][]models.ContributingMenuItem, error) {
	contributions := map[int64][]models.ContributingMenuItem{}
	query := `
        SELECT m.prep_item_id, mi.id, mi.name, SUM(s.quantity * m.quantity_per_item) as quantity
        FROM sales s
        JOIN menu_item_mappings m ON s.menu_item_id = m.menu_item_id
        JOIN menu_items mi ON m.menu_item_id = mi.id
        WHERE s.restaurant_id = $1
          AND s.sale_date BETWEEN $2 AND $3
        GROUP BY m.prep_item_id, mi.id, mi.name
        ORDER BY m.prep_item_id, mi.name`

	rows, err := r.db.Query(query, restaurantID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("%w: querying contributing menu items for restaurant %d: %v", ErrDatabaseError, restaurantID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var prepItemID int64
		var c models.ContributingMenuItem
		if err := rows.Scan(&prepItemID, &c.MenuItemID, &c.Name, &c.Quantity); err != nil {
			return nil, fmt.Errorf("%w: scanning contributing menu item row: %v", ErrDatabaseError, err)
		}
		contributions[prepItemID] = append(contributions[prepItemID], c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating contributing menu item rows: %v", ErrDatabaseError, err)
	}
	return contributions, nil
}
