package services

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"prep_kitchen_backend/internal/models"
	"prep_kitchen_backend/internal/repositories"
)

// fakePrepTaskRepository is an in-memory PrepTaskRepository for service tests.
type fakePrepTaskRepository struct {
	nextID int64
	tasks  map[int64]*models.PrepTask
	byKey  map[string]int64 // (restaurant, item, date) -> task ID
}

func newFakePrepTaskRepository() *fakePrepTaskRepository {
	return &fakePrepTaskRepository{
		nextID: 1,
		tasks:  map[int64]*models.PrepTask{},
		byKey:  map[string]int64{},
	}
}

func taskKey(restaurantID, prepItemID int64, taskDate string) string {
	return fmt.Sprintf("%d:%d:%s", restaurantID, prepItemID, taskDate)
}

func (f *fakePrepTaskRepository) CreateIfAbsent(_ repositories.SQLExecutor, task *models.PrepTask) (bool, error) {
	key := taskKey(task.RestaurantID, task.PrepItemID, task.TaskDate)
	if _, exists := f.byKey[key]; exists {
		return false, nil
	}
	task.ID = f.nextID
	f.nextID++
	stored := *task
	f.tasks[task.ID] = &stored
	f.byKey[key] = task.ID
	return true, nil
}

func (f *fakePrepTaskRepository) GetTaskByID(taskID int64) (*models.PrepTask, error) {
	task, ok := f.tasks[taskID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *task
	return &copied, nil
}

func (f *fakePrepTaskRepository) GetTasks(restaurantID int64, taskDate string) ([]models.PrepTask, error) {
	tasks := []models.PrepTask{}
	for _, task := range f.tasks {
		if task.RestaurantID == restaurantID && task.TaskDate == taskDate {
			tasks = append(tasks, *task)
		}
	}
	return tasks, nil
}

func (f *fakePrepTaskRepository) UpdateTask(_ repositories.SQLExecutor, task *models.PrepTask) (*models.PrepTask, error) {
	stored, ok := f.tasks[task.ID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	stored.CompletedQuantity = task.CompletedQuantity
	stored.Status = task.Status
	stored.Notes = task.Notes
	stored.AssignedTo = task.AssignedTo
	stored.CompletedAt = task.CompletedAt
	stored.UpdatedAt = time.Now()
	copied := *stored
	return &copied, nil
}

func newTaskServiceForTest(repo repositories.PrepTaskRepository, now func() time.Time) *prepTaskService {
	return &prepTaskService{taskRepo: repo, now: now}
}

func TestGenerateTasksIdempotent(t *testing.T) {
	repo := newFakePrepTaskRepository()
	svc := newTaskServiceForTest(repo, time.Now)

	req := GenerateTasksRequest{
		Date: "2024-01-22",
		Items: []TaskGenerationItem{
			{PrepItemID: 1, RequiredQuantity: 15},
			{PrepItemID: 2, RequiredQuantity: 8},
		},
	}

	created, err := svc.GenerateTasks(7, req)
	if err != nil {
		t.Fatalf("first generation failed: %v", err)
	}
	if created != 2 {
		t.Errorf("first generation created %d tasks, want 2", created)
	}

	// Progress one task, then regenerate: nothing new, progress untouched.
	qty := 5.0
	if _, err := svc.UpdateTask(1, UpdatePrepTaskRequest{CompletedQuantity: &qty}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	created, err = svc.GenerateTasks(7, req)
	if err != nil {
		t.Fatalf("second generation failed: %v", err)
	}
	if created != 0 {
		t.Errorf("second generation created %d tasks, want 0", created)
	}
	task, _ := repo.GetTaskByID(1)
	if task.CompletedQuantity != 5 || task.Status != TaskStatusInProgress {
		t.Errorf("regeneration overwrote progress: %+v", task)
	}
}

func TestGenerateTasksValidation(t *testing.T) {
	svc := newTaskServiceForTest(newFakePrepTaskRepository(), time.Now)

	if _, err := svc.GenerateTasks(7, GenerateTasksRequest{Date: "not-a-date", Items: []TaskGenerationItem{{PrepItemID: 1}}}); !errors.Is(err, ErrValidation) {
		t.Errorf("bad date: got %v, want ErrValidation", err)
	}
	if _, err := svc.GenerateTasks(7, GenerateTasksRequest{Date: "2024-01-22"}); !errors.Is(err, ErrValidation) {
		t.Errorf("empty items: got %v, want ErrValidation", err)
	}
	if _, err := svc.GenerateTasks(7, GenerateTasksRequest{
		Date:  "2024-01-22",
		Items: []TaskGenerationItem{{PrepItemID: 1, RequiredQuantity: -1}},
	}); !errors.Is(err, ErrValidation) {
		t.Errorf("negative quantity: got %v, want ErrValidation", err)
	}
}

func TestUpdateTaskStatusDerivation(t *testing.T) {
	tests := []struct {
		name       string
		required   float64
		completed  float64
		wantStatus string
	}{
		{"ZeroIsPending", 10, 0, TaskStatusPending},
		{"PartialIsInProgress", 10, 4, TaskStatusInProgress},
		{"ExactIsCompleted", 10, 10, TaskStatusCompleted},
		// A zero-required task has nothing to do, but with zero completed it
		// stays pending rather than auto-completing.
		{"ZeroRequiredStaysPending", 0, 0, TaskStatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakePrepTaskRepository()
			svc := newTaskServiceForTest(repo, time.Now)
			_, err := svc.GenerateTasks(7, GenerateTasksRequest{
				Date:  "2024-01-22",
				Items: []TaskGenerationItem{{PrepItemID: 1, RequiredQuantity: tt.required}},
			})
			if err != nil {
				t.Fatalf("generation failed: %v", err)
			}

			updated, err := svc.UpdateTask(1, UpdatePrepTaskRequest{CompletedQuantity: &tt.completed})
			if err != nil {
				t.Fatalf("update failed: %v", err)
			}
			if updated.Status != tt.wantStatus {
				t.Errorf("status = %s, want %s", updated.Status, tt.wantStatus)
			}
			if tt.wantStatus == TaskStatusCompleted && updated.CompletedAt == nil {
				t.Error("completed task has no completed_at timestamp")
			}
			if tt.wantStatus != TaskStatusCompleted && updated.CompletedAt != nil {
				t.Errorf("non-completed task has completed_at %v", updated.CompletedAt)
			}
		})
	}
}

func TestUpdateTaskCompletionRoundTrip(t *testing.T) {
	repo := newFakePrepTaskRepository()
	fixed := time.Date(2024, 1, 22, 14, 30, 0, 0, time.UTC)
	svc := newTaskServiceForTest(repo, func() time.Time { return fixed })

	if _, err := svc.GenerateTasks(7, GenerateTasksRequest{
		Date:  "2024-01-22",
		Items: []TaskGenerationItem{{PrepItemID: 1, RequiredQuantity: 12}},
	}); err != nil {
		t.Fatalf("generation failed: %v", err)
	}

	full := 12.0
	updated, err := svc.UpdateTask(1, UpdatePrepTaskRequest{CompletedQuantity: &full})
	if err != nil {
		t.Fatalf("completion update failed: %v", err)
	}
	if updated.Status != TaskStatusCompleted {
		t.Errorf("status = %s, want completed", updated.Status)
	}
	if updated.CompletedAt == nil || !updated.CompletedAt.Equal(fixed) {
		t.Errorf("completed_at = %v, want %v", updated.CompletedAt, fixed)
	}

	// Reducing the quantity below the target reopens the task.
	partial := 6.0
	updated, err = svc.UpdateTask(1, UpdatePrepTaskRequest{CompletedQuantity: &partial})
	if err != nil {
		t.Fatalf("reduction update failed: %v", err)
	}
	if updated.Status != TaskStatusInProgress {
		t.Errorf("status after reduction = %s, want in_progress", updated.Status)
	}
	if updated.CompletedAt != nil {
		t.Errorf("completed_at not cleared after reduction: %v", updated.CompletedAt)
	}
}

func TestUpdateTaskRejectsOutOfRange(t *testing.T) {
	repo := newFakePrepTaskRepository()
	svc := newTaskServiceForTest(repo, time.Now)

	if _, err := svc.GenerateTasks(7, GenerateTasksRequest{
		Date:  "2024-01-22",
		Items: []TaskGenerationItem{{PrepItemID: 1, RequiredQuantity: 10}},
	}); err != nil {
		t.Fatalf("generation failed: %v", err)
	}

	over := 11.0
	if _, err := svc.UpdateTask(1, UpdatePrepTaskRequest{CompletedQuantity: &over}); !errors.Is(err, ErrQuantityOutOfRange) {
		t.Fatalf("got %v, want ErrQuantityOutOfRange", err)
	}

	// The stored task is unchanged after the rejection.
	task, _ := repo.GetTaskByID(1)
	if task.CompletedQuantity != 0 || task.Status != TaskStatusPending {
		t.Errorf("task mutated by rejected update: %+v", task)
	}

	negative := -1.0
	if _, err := svc.UpdateTask(1, UpdatePrepTaskRequest{CompletedQuantity: &negative}); !errors.Is(err, ErrQuantityOutOfRange) {
		t.Errorf("got %v, want ErrQuantityOutOfRange", err)
	}
}

func TestUpdateTaskExplicitStatus(t *testing.T) {
	repo := newFakePrepTaskRepository()
	svc := newTaskServiceForTest(repo, time.Now)

	if _, err := svc.GenerateTasks(7, GenerateTasksRequest{
		Date:  "2024-01-22",
		Items: []TaskGenerationItem{{PrepItemID: 1, RequiredQuantity: 10}},
	}); err != nil {
		t.Fatalf("generation failed: %v", err)
	}

	// Explicit completed without quantity still stamps completed_at.
	status := TaskStatusCompleted
	updated, err := svc.UpdateTask(1, UpdatePrepTaskRequest{Status: &status})
	if err != nil {
		t.Fatalf("explicit status update failed: %v", err)
	}
	if updated.Status != TaskStatusCompleted || updated.CompletedAt == nil {
		t.Errorf("explicit completion not applied: %+v", updated)
	}

	bogus := "paused"
	if _, err := svc.UpdateTask(1, UpdatePrepTaskRequest{Status: &bogus}); !errors.Is(err, ErrInvalidTaskStatus) {
		t.Errorf("got %v, want ErrInvalidTaskStatus", err)
	}
}

func TestUpdateTaskNotFound(t *testing.T) {
	svc := newTaskServiceForTest(newFakePrepTaskRepository(), time.Now)
	if _, err := svc.UpdateTask(99, UpdatePrepTaskRequest{}); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("got %v, want ErrTaskNotFound", err)
	}
}
