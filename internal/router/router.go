package router

import (
	"database/sql"

	"prep_kitchen_backend/internal/handlers"
	"prep_kitchen_backend/internal/middleware"
	"prep_kitchen_backend/internal/repositories"
	"prep_kitchen_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB) {
	// Initialize Repositories
	authRepo := repositories.NewAuthRepository(db)
	restaurantRepo := repositories.NewRestaurantRepository(db)
	menuRepo := repositories.NewMenuRepository(db)
	prepItemRepo := repositories.NewPrepItemRepository(db)
	settingsRepo := repositories.NewPrepSettingsRepository(db)
	salesRepo := repositories.NewSalesRepository(db)
	taskRepo := repositories.NewPrepTaskRepository(db)

	// Initialize Services
	authService := services.NewAuthService(authRepo, db)
	restaurantService := services.NewRestaurantService(restaurantRepo, db)
	menuService := services.NewMenuService(menuRepo, prepItemRepo, db)
	salesService := services.NewSalesService(salesRepo, db)
	prepService := services.NewPrepService(prepItemRepo, settingsRepo, salesRepo, db)
	taskService := services.NewPrepTaskService(taskRepo, db)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	restaurantHandler := handlers.NewRestaurantHandler(restaurantService)
	menuHandler := handlers.NewMenuHandler(menuService)
	prepItemHandler := handlers.NewPrepItemHandler(prepService)
	salesHandler := handlers.NewSalesHandler(salesService)
	calculationHandler := handlers.NewPrepCalculationHandler(prepService)
	taskHandler := handlers.NewPrepTaskHandler(taskService)
	reportHandler := handlers.NewReportHandler(prepService)

	apiV1 := engine.Group("/api/v1")

	// Public authentication routes; /auth/me stays behind the middleware.
	SetupAuthRoutes(apiV1, authHandler)

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupRestaurantRoutes(authenticated, restaurantHandler)
		SetupMenuRoutes(authenticated, menuHandler)
		SetupPrepItemRoutes(authenticated, prepItemHandler)
		SetupPrepSettingsRoutes(authenticated, prepItemHandler)
		SetupSalesRoutes(authenticated, salesHandler)
		SetupPrepCalculationRoutes(authenticated, calculationHandler)
		SetupPrepTaskRoutes(authenticated, taskHandler)
		SetupReportRoutes(authenticated, reportHandler)
	}
}
