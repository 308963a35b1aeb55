package routes

import (
	"MediBook/cache"
	"MediBook/config"
	"MediBook/controllers"
	"MediBook/handlers"
	"MediBook/middlewares"
	"MediBook/repositories"
	"MediBook/services"
	"MediBook/utils"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes initializes the routes and middleware for the server
func SetupRoutes(cache *cache.Cache, config *config.AppConfig, db *gorm.DB) http.Handler {
	// Set Gin to release mode
	gin.SetMode(gin.ReleaseMode)

	// Create a Gin router
	router := gin.Default()

	// Apply Bearer token validation to all routes
	router.Use(middlewares.ValidateBearerToken(config.GetBearerToken()))

	// Create and apply CORS middleware configuration
	corsConfig := &middlewares.CorsConfig{
		AllowedOrigins:   config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	router.Use(middlewares.CorsMiddleware(corsConfig))

	// Apply rate limiter middleware
	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: 15,
		Burst:             30,
	}))

	// Apply logging middleware
	router.Use(middlewares.LoggingMiddleware())

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	profileRepo := repositories.NewProfileRepository(cache)
	departmentRepo := repositories.NewDepartmentRepository(cache)
	scheduleRepo := repositories.NewScheduleRepository(cache)
	appointmentRepo := repositories.NewAppointmentRepository(cache)
	medicalRecordRepo := repositories.NewMedicalRecordRepository()

	// Initialize services
	userService := services.NewUserService(userRepo)
	profileService := services.NewProfileService(profileRepo)
	departmentService := services.NewDepartmentService(departmentRepo)
	scheduleService := services.NewScheduleService(scheduleRepo)
	appointmentService := services.NewAppointmentService(appointmentRepo, scheduleRepo, profileRepo, userRepo, utils.NewMailer())
	medicalRecordService := services.NewMedicalRecordService(medicalRecordRepo, appointmentRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, profileService)
	profileHandler := handlers.NewProfileHandler(profileService)
	departmentHandler := handlers.NewDepartmentHandler(departmentService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService)
	medicalRecordHandler := handlers.NewMedicalRecordHandler(medicalRecordService)

	// Register routes
	controllers.SetupAPIRoutes(
		router,
		departmentHandler,
		profileHandler,
		scheduleHandler,
		appointmentHandler,
		medicalRecordHandler,
	)

	authController := controllers.NewAuthController(authHandler)
	authController.RegisterRoutes(router)

	controllers.SetupRootRoute(router)

	return router
}
