package router

import (
	"prep_kitchen_backend/internal/handlers"
	"prep_kitchen_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up the authentication routes.
func SetupAuthRoutes(apiGroup *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	authRoutes := apiGroup.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/refresh-token", authHandler.RefreshToken)

		authRequiredRoutes := authRoutes.Group("")
		authRequiredRoutes.Use(middleware.AuthMiddleware())
		{
			authRequiredRoutes.POST("/logout", authHandler.Logout)
			authRequiredRoutes.GET("/me", authHandler.GetProfile)
		}
	}
}

// SetupRestaurantRoutes sets up the restaurant routes.
func SetupRestaurantRoutes(authenticatedGroup *gin.RouterGroup, restaurantHandler *handlers.RestaurantHandler) {
	restaurantRoutes := authenticatedGroup.Group("/restaurants")
	restaurantRoutes.Use(middleware.RoleAuthMiddleware("Admin"))
	{
		restaurantRoutes.POST("", restaurantHandler.CreateRestaurant)
		restaurantRoutes.GET("", restaurantHandler.GetRestaurants)
		restaurantRoutes.GET("/:id", restaurantHandler.GetRestaurantByID)
		restaurantRoutes.PUT("/:id", restaurantHandler.UpdateRestaurant)
		restaurantRoutes.DELETE("/:id", restaurantHandler.DeleteRestaurant)
	}
}

// SetupMenuRoutes sets up the menu item and mapping routes.
func SetupMenuRoutes(authenticatedGroup *gin.RouterGroup, menuHandler *handlers.MenuHandler) {
	menuRoutes := authenticatedGroup.Group("/menu-items")
	menuRoutes.Use(middleware.RoleAuthMiddleware("Admin", "Staff"))
	{
		menuRoutes.POST("", menuHandler.CreateMenuItem)
		menuRoutes.GET("", menuHandler.GetMenuItems)
		menuRoutes.GET("/:id", menuHandler.GetMenuItemByID)
		menuRoutes.PUT("/:id", menuHandler.UpdateMenuItem)
		menuRoutes.DELETE("/:id", menuHandler.DeleteMenuItem)

		menuRoutes.POST("/:id/mappings", menuHandler.CreateMapping)
		menuRoutes.GET("/:id/mappings", menuHandler.GetMappings)
		menuRoutes.DELETE("/:id/mappings/:mappingId", menuHandler.DeleteMapping)
	}
}

// SetupPrepItemRoutes sets up the prep item routes.
func SetupPrepItemRoutes(authenticatedGroup *gin.RouterGroup, prepItemHandler *handlers.PrepItemHandler) {
	prepItemRoutes := authenticatedGroup.Group("/prep-items")
	prepItemRoutes.Use(middleware.RoleAuthMiddleware("Admin", "Staff"))
	{
		prepItemRoutes.POST("", prepItemHandler.CreatePrepItem)
		prepItemRoutes.GET("", prepItemHandler.GetPrepItems)
		prepItemRoutes.PUT("/order", prepItemHandler.UpdateItemOrder)
		prepItemRoutes.GET("/:id", prepItemHandler.GetPrepItemByID)
		prepItemRoutes.PUT("/:id", prepItemHandler.UpdatePrepItem)
		prepItemRoutes.DELETE("/:id", prepItemHandler.DeletePrepItem)
	}
}

// SetupPrepSettingsRoutes sets up the per-restaurant buffer settings routes.
func SetupPrepSettingsRoutes(authenticatedGroup *gin.RouterGroup, prepItemHandler *handlers.PrepItemHandler) {
	settingsRoutes := authenticatedGroup.Group("/restaurants/:id/prep-settings")
	settingsRoutes.Use(middleware.RoleAuthMiddleware("Admin", "Staff"))
	{
		settingsRoutes.GET("", prepItemHandler.GetPrepSettings)
		settingsRoutes.PUT("/:prepItemId", prepItemHandler.UpsertPrepSettings)
	}
}

// SetupSalesRoutes sets up the sales entry routes.
func SetupSalesRoutes(authenticatedGroup *gin.RouterGroup, salesHandler *handlers.SalesHandler) {
	salesRoutes := authenticatedGroup.Group("/sales")
	salesRoutes.Use(middleware.RoleAuthMiddleware("Admin", "Staff"))
	{
		salesRoutes.POST("", salesHandler.CreateSale)
		salesRoutes.POST("/bulk", salesHandler.BulkCreateSales)
		salesRoutes.GET("", salesHandler.GetSales)
		salesRoutes.DELETE("/:id", salesHandler.DeleteSale)
	}
}

// SetupPrepCalculationRoutes sets up the requirement calculation routes.
func SetupPrepCalculationRoutes(authenticatedGroup *gin.RouterGroup, calculationHandler *handlers.PrepCalculationHandler) {
	calcRoutes := authenticatedGroup.Group("/restaurants/:id")
	calcRoutes.Use(middleware.RoleAuthMiddleware("Admin", "Staff"))
	{
		calcRoutes.GET("/prep-calculations", calculationHandler.GetCalculations)
		calcRoutes.GET("/prep-sheets", calculationHandler.GetPrepSheets)
	}
}

// SetupPrepTaskRoutes sets up the prep task routes.
func SetupPrepTaskRoutes(authenticatedGroup *gin.RouterGroup, taskHandler *handlers.PrepTaskHandler) {
	restaurantTaskRoutes := authenticatedGroup.Group("/restaurants/:id/prep-tasks")
	restaurantTaskRoutes.Use(middleware.RoleAuthMiddleware("Admin", "Staff"))
	{
		restaurantTaskRoutes.POST("/generate", taskHandler.GenerateTasks)
		restaurantTaskRoutes.GET("", taskHandler.GetTasks)
	}

	taskRoutes := authenticatedGroup.Group("/prep-tasks")
	taskRoutes.Use(middleware.RoleAuthMiddleware("Admin", "Staff"))
	{
		taskRoutes.GET("/:id", taskHandler.GetTaskByID)
		taskRoutes.PATCH("/:id", taskHandler.UpdateTask)
	}
}

// SetupReportRoutes sets up the reporting routes.
func SetupReportRoutes(authenticatedGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	reportRoutes := authenticatedGroup.Group("/reports")
	reportRoutes.Use(middleware.RoleAuthMiddleware("Admin", "Staff"))
	{
		reportRoutes.GET("/usage-trends", reportHandler.GetUsageTrends)
		reportRoutes.GET("/weekday-breakdown", reportHandler.GetWeekdayBreakdown)
	}
}
