package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"prep_kitchen_backend/internal/models"
	"prep_kitchen_backend/internal/repositories"
)

var (
	ErrTaskNotFound       = errors.New("prep task not found")
	ErrQuantityOutOfRange = errors.New("completed quantity must be between 0 and the required quantity")
	ErrInvalidTaskStatus  = errors.New("invalid prep task status")
	ErrEmptyTaskList      = errors.New("task generation list cannot be empty")
)

// PrepTask status constants
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
)

// --- DTOs ---

// TaskGenerationItem is one prep item's buffered target for a date.
type TaskGenerationItem struct {
	PrepItemID       int64   `json:"prep_item_id" binding:"required"`
	RequiredQuantity float64 `json:"required_quantity" binding:"gte=0"`
}

// GenerateTasksRequest creates the day's tasks from computed requirements.
type GenerateTasksRequest struct {
	Date  string               `json:"date" binding:"required"` // YYYY-MM-DD
	Items []TaskGenerationItem `json:"items" binding:"required,dive"`
}

// UpdatePrepTaskRequest mutates completion progress on a task.
type UpdatePrepTaskRequest struct {
	CompletedQuantity *float64 `json:"completed_quantity"`
	Status            *string  `json:"status"`
	Notes             *string  `json:"notes"`
	AssignedTo        *string  `json:"assigned_to"`
}

// --- PrepTaskService Interface ---
type PrepTaskService interface {
	// GenerateTasks creates one pending task per prep item for the date,
	// skipping items that already have one. Returns the number created.
	// Re-generation never overwrites progress.
	GenerateTasks(restaurantID int64, req GenerateTasksRequest) (int, error)

	GetTasks(restaurantID int64, taskDate string) ([]models.PrepTask, error)
	GetTaskByID(taskID int64) (*models.PrepTask, error)

	// UpdateTask applies a completion update, deriving status from the
	// completed quantity when the caller does not supply one.
	UpdateTask(taskID int64, req UpdatePrepTaskRequest) (*models.PrepTask, error)
}

type prepTaskService struct {
	taskRepo repositories.PrepTaskRepository
	db       *sql.DB
	now      func() time.Time
}

// NewPrepTaskService creates a new instance of PrepTaskService.
func NewPrepTaskService(taskRepo repositories.PrepTaskRepository, db *sql.DB) PrepTaskService {
	return &prepTaskService{
		taskRepo: taskRepo,
		db:       db,
		now:      time.Now,
	}
}

func (s *prepTaskService) GenerateTasks(restaurantID int64, req GenerateTasksRequest) (int, error) {
	if _, err := ValidateDate(req.Date); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if len(req.Items) == 0 {
		return 0, fmt.Errorf("%w: %v", ErrValidation, ErrEmptyTaskList)
	}

	created := 0
	for _, item := range req.Items {
		if item.RequiredQuantity < 0 {
			return created, fmt.Errorf("%w: required quantity for prep item %d cannot be negative",
				ErrValidation, item.PrepItemID)
		}
		task := &models.PrepTask{
			RestaurantID:     restaurantID,
			PrepItemID:       item.PrepItemID,
			RequiredQuantity: item.RequiredQuantity,
			Status:           TaskStatusPending,
			TaskDate:         req.Date,
		}
		// The unique constraint on (restaurant, item, date) makes this safe
		// under concurrent generation calls.
		wasCreated, err := s.taskRepo.CreateIfAbsent(s.db, task)
		if err != nil {
			return created, fmt.Errorf("failed to create task for prep item %d: %w", item.PrepItemID, err)
		}
		if wasCreated {
			created++
		}
	}
	return created, nil
}

func (s *prepTaskService) GetTasks(restaurantID int64, taskDate string) ([]models.PrepTask, error) {
	if _, err := ValidateDate(taskDate); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	tasks, err := s.taskRepo.GetTasks(restaurantID, taskDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list prep tasks: %w", err)
	}
	return tasks, nil
}

func (s *prepTaskService) GetTaskByID(taskID int64) (*models.PrepTask, error) {
	task, err := s.taskRepo.GetTaskByID(taskID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get prep task: %w", err)
	}
	return task, nil
}

// deriveTaskStatus maps a completed quantity onto the task state machine:
// completed at or above the target, in progress for any partial amount,
// pending at zero.
func deriveTaskStatus(completedQuantity, requiredQuantity float64) string {
	switch {
	case completedQuantity >= requiredQuantity && requiredQuantity > 0:
		return TaskStatusCompleted
	case completedQuantity > 0:
		return TaskStatusInProgress
	default:
		return TaskStatusPending
	}
}

func isValidTaskStatus(status string) bool {
	switch status {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

func (s *prepTaskService) UpdateTask(taskID int64, req UpdatePrepTaskRequest) (*models.PrepTask, error) {
	task, err := s.GetTaskByID(taskID)
	if err != nil {
		return nil, err
	}

	if req.CompletedQuantity != nil {
		if *req.CompletedQuantity < 0 || *req.CompletedQuantity > task.RequiredQuantity {
			return nil, fmt.Errorf("%w: got %v, required quantity is %v",
				ErrQuantityOutOfRange, *req.CompletedQuantity, task.RequiredQuantity)
		}
		task.CompletedQuantity = *req.CompletedQuantity
	}
	if req.Notes != nil {
		task.Notes = req.Notes
	}
	if req.AssignedTo != nil {
		task.AssignedTo = req.AssignedTo
	}

	previousStatus := task.Status
	if req.Status != nil {
		if !isValidTaskStatus(*req.Status) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidTaskStatus, *req.Status)
		}
		task.Status = *req.Status
	} else {
		task.Status = deriveTaskStatus(task.CompletedQuantity, task.RequiredQuantity)
	}

	// Completion timestamps follow the status: set on the transition into
	// completed, cleared whenever the task moves back out of it.
	if task.Status == TaskStatusCompleted {
		if previousStatus != TaskStatusCompleted || task.CompletedAt == nil {
			completedAt := s.now()
			task.CompletedAt = &completedAt
		}
	} else {
		task.CompletedAt = nil
	}

	updated, err := s.taskRepo.UpdateTask(s.db, task)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update prep task: %w", err)
	}
	return updated, nil
}
