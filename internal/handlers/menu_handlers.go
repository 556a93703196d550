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

// MenuHandler holds the menu service.
type MenuHandler struct {
	menuService services.MenuService
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(ms services.MenuService) *MenuHandler {
	return &MenuHandler{menuService: ms}
}

// CreateMenuItem handles the creation of a new menu item.
func (h *MenuHandler) CreateMenuItem(c *gin.Context) {
	var req services.CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	item, err := h.menuService.CreateMenuItem(req)
	if err != nil {
		utils.LogError(err, "CreateMenuItem: Error from menuService.CreateMenuItem")
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create menu item.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, item)
}

// GetMenuItems handles fetching menu items with optional filters and pagination.
func (h *MenuHandler) GetMenuItems(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 50
	}

	var restaurantID *int64
	if idStr := c.Query("restaurant_id"); idStr != "" {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid restaurant_id format.", err.Error()))
			return
		}
		restaurantID = &id
	}
	activeOnly := c.DefaultQuery("active_only", "false") == "true"

	items, totalCount, err := h.menuService.GetMenuItems(restaurantID, activeOnly, page, pageSize)
	if err != nil {
		utils.LogError(err, "GetMenuItems: Error from menuService.GetMenuItems")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch menu items.", "Internal error"))
		return
	}
	if items == nil {
		items = []models.MenuItem{}
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      items,
		"total":     totalCount,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetMenuItemByID handles fetching a single menu item by ID.
func (h *MenuHandler) GetMenuItemByID(c *gin.Context) {
	idStr := c.Param("id")
	itemID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid menu item ID format.", err.Error()))
		return
	}

	item, err := h.menuService.GetMenuItemByID(itemID)
	if err != nil {
		utils.LogError(err, "GetMenuItemByID: Error from menuService.GetMenuItemByID for ID "+idStr)
		if errors.Is(err, services.ErrMenuItemNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Menu item not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch menu item.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, item)
}

// UpdateMenuItem handles updating a menu item.
func (h *MenuHandler) UpdateMenuItem(c *gin.Context) {
	idStr := c.Param("id")
	itemID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid menu item ID format.", err.Error()))
		return
	}

	var req services.UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	item, err := h.menuService.UpdateMenuItem(itemID, req)
	if err != nil {
		utils.LogError(err, "UpdateMenuItem: Error from menuService.UpdateMenuItem for ID "+idStr)
		if errors.Is(err, services.ErrMenuItemNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Menu item not found.", err.Error()))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update menu item.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteMenuItem handles deleting a menu item.
func (h *MenuHandler) DeleteMenuItem(c *gin.Context) {
	idStr := c.Param("id")
	itemID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid menu item ID format.", err.Error()))
		return
	}

	if err := h.menuService.DeleteMenuItem(itemID); err != nil {
		utils.LogError(err, "DeleteMenuItem: Error from menuService.DeleteMenuItem for ID "+idStr)
		if errors.Is(err, services.ErrMenuItemNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Menu item not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete menu item.", "Internal error"))
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Mapping handlers ---

// CreateMapping links a prep item to a menu item with a per-unit quantity.
func (h *MenuHandler) CreateMapping(c *gin.Context) {
	idStr := c.Param("id")
	menuItemID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid menu item ID format.", err.Error()))
		return
	}

	var req services.CreateMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	mapping, err := h.menuService.CreateMapping(menuItemID, req)
	if err != nil {
		utils.LogError(err, "CreateMapping: Error from menuService.CreateMapping for menu item "+idStr)
		if errors.Is(err, services.ErrMenuItemNotFound) || errors.Is(err, services.ErrPrepItemNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Menu item or prep item not found.", err.Error()))
		} else if errors.Is(err, services.ErrMappingExists) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Mapping already exists for this prep item.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create mapping.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, mapping)
}

// GetMappings lists a menu item's prep item mappings.
func (h *MenuHandler) GetMappings(c *gin.Context) {
	idStr := c.Param("id")
	menuItemID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid menu item ID format.", err.Error()))
		return
	}

	mappings, err := h.menuService.GetMappings(menuItemID)
	if err != nil {
		utils.LogError(err, "GetMappings: Error from menuService.GetMappings for menu item "+idStr)
		if errors.Is(err, services.ErrMenuItemNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Menu item not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch mappings.", "Internal error"))
		}
		return
	}
	if mappings == nil {
		mappings = []models.MenuItemMapping{}
	}
	c.JSON(http.StatusOK, mappings)
}

// DeleteMapping removes one mapping from a menu item.
func (h *MenuHandler) DeleteMapping(c *gin.Context) {
	menuItemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid menu item ID format.", err.Error()))
		return
	}
	mappingID, err := strconv.ParseInt(c.Param("mappingId"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid mapping ID format.", err.Error()))
		return
	}

	if err := h.menuService.DeleteMapping(menuItemID, mappingID); err != nil {
		utils.LogError(err, "DeleteMapping: Error from menuService.DeleteMapping for menu item "+utils.Int64ToStr(menuItemID))
		if errors.Is(err, services.ErrMappingNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Mapping not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete mapping.", "Internal error"))
		}
		return
	}
	c.Status(http.StatusNoContent)
}
