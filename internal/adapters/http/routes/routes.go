package routes

import (
	"syntra/internal/adapters/http/handlers"
	"syntra/internal/adapters/http/middleware"
	"syntra/internal/adapters/persistence/repositories"
	"syntra/internal/adapters/storage"
	"syntra/internal/config"
	"syntra/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	otpRepo := repositories.NewOtpRepository(db)
	verificationRepo := repositories.NewVerificationRepository(db)
	productRepo := repositories.NewProductRepository(db)
	businessRepo := repositories.NewBusinessRepository(db)

	// External collaborators
	uploader := storage.NewCloudinaryUploader(cfg.Cloudinary)
	emailService := services.NewEmailService(cfg.SMTP)

	// Initialize services
	authService := services.NewAuthService(userRepo, otpRepo, emailService, cfg)
	googleService := services.NewGoogleService(cfg.Google)
	verificationService := services.NewVerificationService(verificationRepo, userRepo, uploader, emailService, cfg)
	userService := services.NewUserService(userRepo, uploader, cfg)
	productService := services.NewProductService(productRepo)
	businessService := services.NewBusinessService(businessRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, googleService, cfg)
	verificationHandler := handlers.NewVerificationHandler(verificationService)
	adminHandler := handlers.NewAdminHandler(verificationService)
	profileHandler := handlers.NewProfileHandler(userService)
	productHandler := handlers.NewProductHandler(productService)
	businessHandler := handlers.NewBusinessHandler(businessService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Auth routes
	authRoutes := apiV1.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// Verification routes (authenticated users)
	verificationRoutes := apiV1.Group("/verification")
	verificationRoutes.Use(middleware.AuthRequired(cfg))
	setupVerificationRoutes(verificationRoutes, verificationHandler)

	// Admin review queue (Admin only)
	adminRoutes := apiV1.Group("/admin")
	adminRoutes.Use(middleware.AuthRequired(cfg))
	adminRoutes.Use(middleware.AdminOnly())
	setupAdminRoutes(adminRoutes, adminHandler)

	// Profile routes (authenticated users)
	profileRoutes := apiV1.Group("/profile")
	profileRoutes.Use(middleware.AuthRequired(cfg))
	setupProfileRoutes(profileRoutes, profileHandler)

	// Marketplace routes
	productRoutes := apiV1.Group("/products")
	setupProductRoutes(productRoutes, productHandler, cfg)

	// Brand directory routes
	businessRoutes := apiV1.Group("/businesses")
	setupBusinessRoutes(businessRoutes, businessHandler, cfg)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes (rate-limited against brute force)
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/verify-otp", middleware.StrictRateLimiter(), handler.VerifyOTP)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/logout", handler.Logout)

	// Google OAuth
	router.Get("/google", handler.GoogleLogin)
	router.Get("/google/callback", handler.GoogleCallback)

	// Protected routes
	router.Get("/me", middleware.AuthRequired(cfg), handler.Me)
	router.Post("/session/refresh", middleware.AuthRequired(cfg), handler.RefreshSession)
}

// setupVerificationRoutes configures the user-facing verification routes
func setupVerificationRoutes(router fiber.Router, handler *handlers.VerificationHandler) {
	// Submit is strict-limited: uploads are expensive
	router.Post("/submit", middleware.StrictRateLimiter(), handler.Submit)
	router.Get("/status", handler.Status)
}

// setupAdminRoutes configures the admin review queue routes
func setupAdminRoutes(router fiber.Router, handler *handlers.AdminHandler) {
	router.Get("/verifications", handler.ListPending)
	router.Post("/verifications/:id/approve", handler.Approve)
	router.Post("/verifications/:id/reject", handler.Reject)
}

// setupProfileRoutes configures profile routes
func setupProfileRoutes(router fiber.Router, handler *handlers.ProfileHandler) {
	router.Patch("/details", handler.UpdateDetails)
	router.Patch("/photo", handler.UpdatePhoto)
}

// setupProductRoutes configures marketplace routes
func setupProductRoutes(router fiber.Router, handler *handlers.ProductHandler, cfg *config.Config) {
	// Browsing is public
	router.Get("/", handler.List)
	router.Get("/:id", handler.GetByID)

	// Selling requires a verified identity
	router.Post("/", middleware.AuthRequired(cfg), middleware.VerifiedOnly(), handler.Create)
	router.Patch("/:id/sold", middleware.AuthRequired(cfg), handler.SetSold)
	router.Delete("/:id", middleware.AuthRequired(cfg), handler.Delete)
}

// setupBusinessRoutes configures brand directory routes
func setupBusinessRoutes(router fiber.Router, handler *handlers.BusinessHandler, cfg *config.Config) {
	// Browsing is public
	router.Get("/", handler.List)
	router.Get("/:id", handler.GetByID)

	// Creating a brand page requires a verified identity
	router.Post("/", middleware.AuthRequired(cfg), middleware.VerifiedOnly(), handler.Create)
}
