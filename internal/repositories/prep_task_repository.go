package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"prep_kitchen_backend/internal/models"

	"github.com/lib/pq" // For pq.Error
)

// PrepTaskRepository defines the interface for prep task database operations.
type PrepTaskRepository interface {
	// CreateIfAbsent inserts a task for (restaurant, prep item, date) unless one
	// already exists. Returns true when a row was created. The uniqueness
	// constraint makes concurrent generation calls safe.
	CreateIfAbsent(executor SQLExecutor, task *models.PrepTask) (bool, error)

	GetTaskByID(taskID int64) (*models.PrepTask, error)
	GetTasks(restaurantID int64, taskDate string) ([]models.PrepTask, error)

	// UpdateTask overwrites the mutable task fields. Last write wins at the row
	// level; no concurrency token is kept.
	UpdateTask(executor SQLExecutor, task *models.PrepTask) (*models.PrepTask, error)
}

type prepTaskRepository struct {
	db *sql.DB
}

// NewPrepTaskRepository creates a new instance of PrepTaskRepository.
func NewPrepTaskRepository(db *sql.DB) PrepTaskRepository {
	return &prepTaskRepository{db: db}
}

func (r *prepTaskRepository) CreateIfAbsent(executor SQLExecutor, task *models.PrepTask) (bool, error) {
	query := `INSERT INTO prep_tasks
	            (restaurant_id, prep_item_id, required_quantity, completed_quantity, status,
	             assigned_to, notes, task_date, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          ON CONFLICT (restaurant_id, prep_item_id, task_date) DO NOTHING
	          RETURNING id`

	now := time.Now()
	err := executor.QueryRow(query,
		task.RestaurantID, task.PrepItemID, task.RequiredQuantity, task.CompletedQuantity,
		task.Status, task.AssignedTo, task.Notes, task.TaskDate, now, now,
	).Scan(&task.ID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Conflict: a task for this (restaurant, item, date) already exists.
			return false, nil
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return false, fmt.Errorf("%w: %s", ErrNotFound, pqErr.Message)
		}
		return false, fmt.Errorf("%w: creating prep task: %v", ErrDatabaseError, err)
	}
	return true, nil
}

func (r *prepTaskRepository) GetTaskByID(taskID int64) (*models.PrepTask, error) {
	task := &models.PrepTask{}
	query := `SELECT t.id, t.restaurant_id, t.prep_item_id, t.required_quantity, t.completed_quantity,
	                 t.status, t.assigned_to, t.notes, to_char(t.task_date, 'YYYY-MM-DD') as task_date,
	                 t.completed_at, t.created_at, t.updated_at,
	                 pi.name as prep_item_name, pi.unit, pi.sheet_name
	          FROM prep_tasks t
	          JOIN prep_items pi ON t.prep_item_id = pi.id
	          WHERE t.id = $1`

	err := r.db.QueryRow(query, taskID).Scan(
		&task.ID, &task.RestaurantID, &task.PrepItemID, &task.RequiredQuantity, &task.CompletedQuantity,
		&task.Status, &task.AssignedTo, &task.Notes, &task.TaskDate,
		&task.CompletedAt, &task.CreatedAt, &task.UpdatedAt,
		&task.PrepItemName, &task.Unit, &task.SheetName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting prep task by ID %d: %v", ErrDatabaseError, taskID, err)
	}
	return task, nil
}

func (r *prepTaskRepository) GetTasks(restaurantID int64, taskDate string) ([]models.PrepTask, error) {
	tasks := []models.PrepTask{}
	query := `SELECT t.id, t.restaurant_id, t.prep_item_id, t.required_quantity, t.completed_quantity,
	                 t.status, t.assigned_to, t.notes, to_char(t.task_date, 'YYYY-MM-DD') as task_date,
	                 t.completed_at, t.created_at, t.updated_at,
	                 pi.name as prep_item_name, pi.unit, pi.sheet_name
	          FROM prep_tasks t
	          JOIN prep_items pi ON t.prep_item_id = pi.id
	          WHERE t.restaurant_id = $1 AND t.task_date = $2
	          ORDER BY pi.sheet_name ASC, pi.display_order ASC, pi.name ASC`

	rows, err := r.db.Query(query, restaurantID, taskDate)
	if err != nil {
		return nil, fmt.Errorf("%w: listing prep tasks for restaurant %d on %s: %v",
			ErrDatabaseError, restaurantID, taskDate, err)
	}
	defer rows.Close()

	for rows.Next() {
		var task models.PrepTask
		if err := rows.Scan(&task.ID, &task.RestaurantID, &task.PrepItemID,
			&task.RequiredQuantity, &task.CompletedQuantity, &task.Status,
			&task.AssignedTo, &task.Notes, &task.TaskDate,
			&task.CompletedAt, &task.CreatedAt, &task.UpdatedAt,
			&task.PrepItemName, &task.Unit, &task.SheetName); err != nil {
			return nil, fmt.Errorf("%w: scanning prep task row: %v", ErrDatabaseError, err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating prep task rows: %v", ErrDatabaseError, err)
	}
	return tasks, nil
}

func (r *prepTaskRepository) UpdateTask(executor SQLExecutor, task *models.PrepTask) (*models.PrepTask, error) {
	query := `UPDATE prep_tasks
	          SET completed_quantity = $1, status = $2, notes = $3, assigned_to = $4,
	              completed_at = $5, updated_at = $6
	          WHERE id = $7
	          RETURNING id, restaurant_id, prep_item_id, required_quantity, completed_quantity,
	                    status, assigned_to, notes, to_char(task_date, 'YYYY-MM-DD'),
	                    completed_at, created_at, updated_at`

	updated := &models.PrepTask{}
	err := executor.QueryRow(query,
		task.CompletedQuantity, task.Status, task.Notes, task.AssignedTo,
		task.CompletedAt, time.Now(), task.ID,
	).Scan(
		&updated.ID, &updated.RestaurantID, &updated.PrepItemID,
		&updated.RequiredQuantity, &updated.CompletedQuantity,
		&updated.Status, &updated.AssignedTo, &updated.Notes, &updated.TaskDate,
		&updated.CompletedAt, &updated.CreatedAt, &updated.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: updating prep task %d: %v", ErrDatabaseError, task.ID, err)
	}
	return updated, nil
}
