package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"prep_kitchen_backend/internal/services"
	"prep_kitchen_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// PrepCalculationHandler exposes the requirement calculation pipeline.
type PrepCalculationHandler struct {
	prepService services.PrepService
}

// NewPrepCalculationHandler creates a new PrepCalculationHandler.
func NewPrepCalculationHandler(ps services.PrepService) *PrepCalculationHandler {
	return &PrepCalculationHandler{prepService: ps}
}

// parseCalculationQuery reads the shared query parameters for calculation and
// sheet endpoints. A nil return means an error response was already written.
func parseCalculationQuery(c *gin.Context) *services.CalculationQuery {
	restaurantID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid restaurant ID format.", err.Error()))
		return nil
	}

	query := services.CalculationQuery{
		RestaurantID: restaurantID,
		Date:         c.Query("date"),
	}
	if utils.IsEmpty(query.Date) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "A date query parameter (YYYY-MM-DD) is required.", ""))
		return nil
	}

	if bufferStr := c.Query("buffer_percentage"); bufferStr != "" {
		buffer, err := strconv.ParseFloat(bufferStr, 64)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid buffer_percentage format.", err.Error()))
			return nil
		}
		query.BufferPercentage = &buffer
	}
	if sheet := c.Query("sheet"); sheet != "" {
		query.SheetName = &sheet
	}
	return &query
}

// GetCalculations returns the per-item weekday breakdown and total requirement
// for a restaurant on a date.
func (h *PrepCalculationHandler) GetCalculations(c *gin.Context) {
	query := parseCalculationQuery(c)
	if query == nil {
		return
	}

	calculations, err := h.prepService.GetCalculations(*query)
	if err != nil {
		utils.LogError(err, "GetCalculations: Error from prepService.GetCalculations")
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to calculate prep requirements.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": query.Date, "calculations": calculations})
}

// GetPrepSheets returns the buffered requirements grouped into named sheets.
func (h *PrepCalculationHandler) GetPrepSheets(c *gin.Context) {
	query := parseCalculationQuery(c)
	if query == nil {
		return
	}

	sheets, err := h.prepService.GetPrepSheets(*query)
	if err != nil {
		utils.LogError(err, "GetPrepSheets: Error from prepService.GetPrepSheets")
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to build prep sheets.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": query.Date, "sheets": sheets})
}
