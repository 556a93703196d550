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

// RestaurantHandler holds the restaurant service.
type RestaurantHandler struct {
	restaurantService services.RestaurantService
}

// NewRestaurantHandler creates a new RestaurantHandler.
func NewRestaurantHandler(rs services.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{restaurantService: rs}
}

// CreateRestaurant handles the creation of a new restaurant.
func (h *RestaurantHandler) CreateRestaurant(c *gin.Context) {
	var req services.CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	restaurant, err := h.restaurantService.CreateRestaurant(req)
	if err != nil {
		utils.LogError(err, "CreateRestaurant: Error from restaurantService.CreateRestaurant")
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create restaurant.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, restaurant)
}

// GetRestaurants handles fetching all restaurants with pagination.
func (h *RestaurantHandler) GetRestaurants(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}

	restaurants, totalCount, err := h.restaurantService.GetRestaurants(page, pageSize)
	if err != nil {
		utils.LogError(err, "GetRestaurants: Error from restaurantService.GetRestaurants")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch restaurants.", "Internal error"))
		return
	}
	if restaurants == nil {
		restaurants = []models.Restaurant{}
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      restaurants,
		"total":     totalCount,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetRestaurantByID handles fetching a single restaurant by ID.
func (h *RestaurantHandler) GetRestaurantByID(c *gin.Context) {
	idStr := c.Param("id")
	restaurantID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid restaurant ID format.", err.Error()))
		return
	}

	restaurant, err := h.restaurantService.GetRestaurantByID(restaurantID)
	if err != nil {
		utils.LogError(err, "GetRestaurantByID: Error from restaurantService.GetRestaurantByID for ID "+idStr)
		if errors.Is(err, services.ErrRestaurantNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Restaurant not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch restaurant.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, restaurant)
}

// UpdateRestaurant handles updating a restaurant.
func (h *RestaurantHandler) UpdateRestaurant(c *gin.Context) {
	idStr := c.Param("id")
	restaurantID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid restaurant ID format.", err.Error()))
		return
	}

	var req services.UpdateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	restaurant, err := h.restaurantService.UpdateRestaurant(restaurantID, req)
	if err != nil {
		utils.LogError(err, "UpdateRestaurant: Error from restaurantService.UpdateRestaurant for ID "+idStr)
		if errors.Is(err, services.ErrRestaurantNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Restaurant not found.", err.Error()))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update restaurant.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, restaurant)
}

// DeleteRestaurant handles deleting a restaurant.
func (h *RestaurantHandler) DeleteRestaurant(c *gin.Context) {
	idStr := c.Param("id")
	restaurantID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid restaurant ID format.", err.Error()))
		return
	}

	if err := h.restaurantService.DeleteRestaurant(restaurantID); err != nil {
		utils.LogError(err, "DeleteRestaurant: Error from restaurantService.DeleteRestaurant for ID "+idStr)
		if errors.Is(err, services.ErrRestaurantNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Restaurant not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete restaurant.", "Internal error"))
		}
		return
	}
	c.Status(http.StatusNoContent)
}
