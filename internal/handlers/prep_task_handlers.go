package handlers

import (
	"errors"
	"net/http"

	"prep_kitchen_backend/internal/models"
	"prep_kitchen_backend/internal/services"
	"prep_kitchen_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// PrepTaskHandler holds the prep task service.
type PrepTaskHandler struct {
	taskService services.PrepTaskService
}

// NewPrepTaskHandler creates a new PrepTaskHandler.
func NewPrepTaskHandler(ts services.PrepTaskService) *PrepTaskHandler {
	return &PrepTaskHandler{taskService: ts}
}

// GenerateTasks creates the day's task list from computed requirements.
// Items that already have a task for the date are skipped, so the endpoint
// can be called repeatedly without losing progress.
func (h *PrepTaskHandler) GenerateTasks(c *gin.Context) {
	restaurantID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid restaurant ID format.", err.Error()))
		return
	}

	var req services.GenerateTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	created, err := h.taskService.GenerateTasks(restaurantID, req)
	if err != nil {
		utils.LogError(err, "GenerateTasks: Error from taskService.GenerateTasks")
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to generate prep tasks.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"created": created, "date": req.Date})
}

// GetTasks lists a restaurant's tasks for a date.
func (h *PrepTaskHandler) GetTasks(c *gin.Context) {
	restaurantID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid restaurant ID format.", err.Error()))
		return
	}
	taskDate := c.Query("date")
	if utils.IsEmpty(taskDate) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "A date query parameter (YYYY-MM-DD) is required.", ""))
		return
	}

	tasks, err := h.taskService.GetTasks(restaurantID, taskDate)
	if err != nil {
		utils.LogError(err, "GetTasks: Error from taskService.GetTasks")
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch prep tasks.", "Internal error"))
		}
		return
	}
	if tasks == nil {
		tasks = []models.PrepTask{}
	}
	c.JSON(http.StatusOK, tasks)
}

// GetTaskByID fetches a single task.
func (h *PrepTaskHandler) GetTaskByID(c *gin.Context) {
	idStr := c.Param("id")
	taskID, err := utils.StrToInt64(idStr)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid task ID format.", err.Error()))
		return
	}

	task, err := h.taskService.GetTaskByID(taskID)
	if err != nil {
		utils.LogError(err, "GetTaskByID: Error from taskService.GetTaskByID for ID "+idStr)
		if errors.Is(err, services.ErrTaskNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Prep task not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch prep task.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, task)
}

// UpdateTask applies a completion update to a task.
func (h *PrepTaskHandler) UpdateTask(c *gin.Context) {
	idStr := c.Param("id")
	taskID, err := utils.StrToInt64(idStr)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid task ID format.", err.Error()))
		return
	}

	var req services.UpdatePrepTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	task, err := h.taskService.UpdateTask(taskID, req)
	if err != nil {
		utils.LogError(err, "UpdateTask: Error from taskService.UpdateTask for ID "+idStr)
		if errors.Is(err, services.ErrTaskNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Prep task not found.", err.Error()))
		} else if errors.Is(err, services.ErrQuantityOutOfRange) || errors.Is(err, services.ErrInvalidTaskStatus) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update prep task.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, task)
}
