package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"prep_kitchen_backend/internal/models"
	"prep_kitchen_backend/internal/services"
	"prep_kitchen_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SalesHandler holds the sales service.
type SalesHandler struct {
	salesService services.SalesService
}

// NewSalesHandler creates a new SalesHandler.
func NewSalesHandler(ss services.SalesService) *SalesHandler {
	return &SalesHandler{salesService: ss}
}

// CreateSale records one menu item's sold quantity for a date. Saving the same
// (restaurant, menu item, date) again overwrites the quantity.
func (h *SalesHandler) CreateSale(c *gin.Context) {
	var req services.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	sale, err := h.salesService.CreateSale(req)
	if err != nil {
		utils.LogError(err, "CreateSale: Error from salesService.CreateSale")
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else if errors.Is(err, services.ErrMenuItemNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Menu item not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to save sale.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, sale)
}

// BulkCreateSales saves a full day-entry grid in one transaction.
func (h *SalesHandler) BulkCreateSales(c *gin.Context) {
	var req services.BulkCreateSalesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	saved, err := h.salesService.BulkCreateSales(req)
	if err != nil {
		utils.LogError(err, "BulkCreateSales: Error from salesService.BulkCreateSales")
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else if errors.Is(err, services.ErrMenuItemNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Menu item not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to save sales.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"saved": saved})
}

// GetSales lists sales with optional menu item and date range filters.
func (h *SalesHandler) GetSales(c *gin.Context) {
	restaurantID, err := strconv.ParseInt(c.Query("restaurant_id"), 10, 64)
	if err != nil || restaurantID <= 0 {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "A valid restaurant_id query parameter is required.", ""))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 50
	}

	filters := models.SaleFilters{
		RestaurantID: restaurantID,
		Page:         page,
		PageSize:     pageSize,
	}
	if idStr := c.Query("menu_item_id"); idStr != "" {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid menu_item_id format.", err.Error()))
			return
		}
		filters.MenuItemID = &id
	}
	if start := c.Query("start_date"); start != "" {
		filters.StartDate = &start
	}
	if end := c.Query("end_date"); end != "" {
		filters.EndDate = &end
	}

	sales, totalCount, err := h.salesService.GetSales(filters)
	if err != nil {
		utils.LogError(err, "GetSales: Error from salesService.GetSales")
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch sales.", "Internal error"))
		}
		return
	}
	if sales == nil {
		sales = []models.Sale{}
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      sales,
		"total":     totalCount,
		"page":      page,
		"page_size": pageSize,
	})
}

// DeleteSale removes one sales record.
func (h *SalesHandler) DeleteSale(c *gin.Context) {
	idStr := c.Param("id")
	saleID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid sale ID format.", err.Error()))
		return
	}

	if err := h.salesService.DeleteSale(saleID); err != nil {
		utils.LogError(err, "DeleteSale: Error from salesService.DeleteSale for ID "+idStr)
		if errors.Is(err, services.ErrSaleNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Sale not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete sale.", "Internal error"))
		}
		return
	}
	c.Status(http.StatusNoContent)
}
