package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"prep_kitchen_backend/internal/models"
	"prep_kitchen_backend/internal/repositories"
	"prep_kitchen_backend/internal/services"
	"prep_kitchen_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// PrepItemHandler holds the prep service for item and settings endpoints.
type PrepItemHandler struct {
	prepService services.PrepService
}

// NewPrepItemHandler creates a new PrepItemHandler.
func NewPrepItemHandler(ps services.PrepService) *PrepItemHandler {
	return &PrepItemHandler{prepService: ps}
}

// CreatePrepItem handles the creation of a new prep item.
func (h *PrepItemHandler) CreatePrepItem(c *gin.Context) {
	var req services.CreatePrepItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	item, err := h.prepService.CreatePrepItem(req)
	if err != nil {
		utils.LogError(err, "CreatePrepItem: Error from prepService.CreatePrepItem")
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create prep item.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, item)
}

// GetPrepItems handles fetching all prep items for a restaurant.
func (h *PrepItemHandler) GetPrepItems(c *gin.Context) {
	restaurantID, err := strconv.ParseInt(c.Query("restaurant_id"), 10, 64)
	if err != nil || restaurantID <= 0 {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "A valid restaurant_id query parameter is required.", ""))
		return
	}

	items, err := h.prepService.GetPrepItems(restaurantID)
	if err != nil {
		utils.LogError(err, "GetPrepItems: Error from prepService.GetPrepItems")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch prep items.", "Internal error"))
		return
	}
	if items == nil {
		items = []models.PrepItem{}
	}
	c.JSON(http.StatusOK, items)
}

// GetPrepItemByID handles fetching a single prep item by ID.
func (h *PrepItemHandler) GetPrepItemByID(c *gin.Context) {
	idStr := c.Param("id")
	itemID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid prep item ID format.", err.Error()))
		return
	}

	item, err := h.prepService.GetPrepItemByID(itemID)
	if err != nil {
		utils.LogError(err, "GetPrepItemByID: Error from prepService.GetPrepItemByID for ID "+idStr)
		if errors.Is(err, services.ErrPrepItemNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Prep item not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch prep item.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, item)
}

// UpdatePrepItem handles updating a prep item.
func (h *PrepItemHandler) UpdatePrepItem(c *gin.Context) {
	idStr := c.Param("id")
	itemID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid prep item ID format.", err.Error()))
		return
	}

	var req services.UpdatePrepItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	item, err := h.prepService.UpdatePrepItem(itemID, req)
	if err != nil {
		utils.LogError(err, "UpdatePrepItem: Error from prepService.UpdatePrepItem for ID "+idStr)
		if errors.Is(err, services.ErrPrepItemNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Prep item not found.", err.Error()))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update prep item.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, item)
}

// UpdateItemOrder bulk-reassigns display order and sheet membership.
func (h *PrepItemHandler) UpdateItemOrder(c *gin.Context) {
	var req struct {
		Updates []repositories.PrepItemOrderUpdate `json:"updates" binding:"required,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	if err := h.prepService.UpdateItemOrder(req.Updates); err != nil {
		utils.LogError(err, "UpdateItemOrder: Error from prepService.UpdateItemOrder")
		if errors.Is(err, services.ErrPrepItemNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Prep item not found.", err.Error()))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update item order.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": len(req.Updates)})
}

// DeletePrepItem handles deleting a prep item.
func (h *PrepItemHandler) DeletePrepItem(c *gin.Context) {
	idStr := c.Param("id")
	itemID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid prep item ID format.", err.Error()))
		return
	}

	if err := h.prepService.DeletePrepItem(itemID); err != nil {
		utils.LogError(err, "DeletePrepItem: Error from prepService.DeletePrepItem for ID "+idStr)
		if errors.Is(err, services.ErrPrepItemNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Prep item not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete prep item.", "Internal error"))
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Settings handlers ---

// GetPrepSettings lists the per-item buffer settings of a restaurant.
func (h *PrepItemHandler) GetPrepSettings(c *gin.Context) {
	restaurantID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid restaurant ID format.", err.Error()))
		return
	}

	settings, err := h.prepService.GetPrepSettings(restaurantID)
	if err != nil {
		utils.LogError(err, "GetPrepSettings: Error from prepService.GetPrepSettings")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch prep settings.", "Internal error"))
		return
	}
	if settings == nil {
		settings = []models.PrepSettings{}
	}
	c.JSON(http.StatusOK, settings)
}

// UpsertPrepSettings creates or updates the buffer settings for one prep item.
func (h *PrepItemHandler) UpsertPrepSettings(c *gin.Context) {
	restaurantID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid restaurant ID format.", err.Error()))
		return
	}
	prepItemID, err := strconv.ParseInt(c.Param("prepItemId"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid prep item ID format.", err.Error()))
		return
	}

	var req services.UpsertPrepSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	settings, err := h.prepService.UpsertPrepSettings(restaurantID, prepItemID, req)
	if err != nil {
		utils.LogError(err, "UpsertPrepSettings: Error from prepService.UpsertPrepSettings")
		if errors.Is(err, services.ErrPrepItemNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Prep item not found.", err.Error()))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to save prep settings.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, settings)
}
