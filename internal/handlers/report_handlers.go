package handlers

import (
	"errors"
	"net/http"

	"prep_kitchen_backend/internal/models"
	"prep_kitchen_backend/internal/services"
	"prep_kitchen_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ReportHandler exposes usage reporting endpoints.
type ReportHandler struct {
	prepService services.PrepService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(ps services.PrepService) *ReportHandler {
	return &ReportHandler{prepService: ps}
}

// GetUsageTrends returns the per-item daily usage series over a date range,
// optionally narrowed to one prep item.
func (h *ReportHandler) GetUsageTrends(c *gin.Context) {
	var params models.ReportRequestParams
	if err := c.ShouldBindQuery(&params); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid query parameters: "+err.Error(), err.Error()))
		return
	}
	if params.RestaurantID <= 0 {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "A valid restaurant_id query parameter is required.", ""))
		return
	}
	if utils.IsEmpty(params.StartDate) || utils.IsEmpty(params.EndDate) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "start_date and end_date query parameters (YYYY-MM-DD) are required.", ""))
		return
	}

	trends, err := h.prepService.GetUsageTrends(params.RestaurantID, params.PrepItemID, params.StartDate, params.EndDate)
	if err != nil {
		utils.LogError(err, "GetUsageTrends: Error from prepService.GetUsageTrends")
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to build usage trends.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"trends": trends})
}

// GetWeekdayBreakdown charts the per-weekday averages behind the calculation
// for a reference date.
func (h *ReportHandler) GetWeekdayBreakdown(c *gin.Context) {
	var params models.ReportRequestParams
	if err := c.ShouldBindQuery(&params); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid query parameters: "+err.Error(), err.Error()))
		return
	}
	if params.RestaurantID <= 0 {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "A valid restaurant_id query parameter is required.", ""))
		return
	}
	if params.Date == nil || utils.IsEmpty(*params.Date) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "A date query parameter (YYYY-MM-DD) is required.", ""))
		return
	}

	breakdown, err := h.prepService.GetWeekdayBreakdown(params.RestaurantID, *params.Date)
	if err != nil {
		utils.LogError(err, "GetWeekdayBreakdown: Error from prepService.GetWeekdayBreakdown")
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to build weekday breakdown.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": *params.Date, "breakdown": breakdown})
}
