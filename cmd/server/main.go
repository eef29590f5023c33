package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"pomoweb/internal/config"
	"pomoweb/internal/constants"
	"pomoweb/internal/database"
	"pomoweb/internal/handlers"
	"pomoweb/internal/mailer"
	"pomoweb/internal/middleware"
	"pomoweb/internal/repository"
	"pomoweb/internal/services"
	"pomoweb/internal/token"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Cookie-backed sessions signed with the server secret
	store := cookie.NewStore([]byte(cfg.SecretKey))
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Outbound mail for reset links
	smtpMailer, err := mailer.NewSMTPMailer(cfg)
	if err != nil {
		log.Fatalf("Failed to configure mailer: %v", err)
	}

	// Repositories and services
	userRepo := repository.NewUserRepository(database.GetDB())
	taskRepo := repository.NewTaskRepository(database.GetDB())
	tokens := token.NewManager(cfg.SecretKey, constants.ResetTokenValidity)

	authService := services.NewAuthService(userRepo)
	taskService := services.NewTaskService(taskRepo)
	adminService := services.NewAdminService(userRepo, taskRepo)
	resetService := services.NewPasswordResetService(userRepo, tokens, smtpMailer, cfg.BaseURL)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService)
	adminHandler := handlers.NewAdminHandler(adminService)
	resetHandler := handlers.NewResetHandler(resetService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Pomoweb API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", middleware.RequireAuth(), authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)

			// Password reset (token-authenticated, no session)
			auth.POST("/forgot", resetHandler.Forgot)
			auth.GET("/reset/:token", resetHandler.VerifyToken)
			auth.POST("/reset/:token", resetHandler.CompleteReset)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.POST("/:id/toggle", taskHandler.ToggleTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}

		// Admin routes (protected, admin-only)
		admin := api.Group("/admin")
		admin.Use(middleware.RequireAuth(), middleware.RequireAdmin())
		{
			admin.GET("/overview", adminHandler.Overview)
			admin.POST("/tasks", adminHandler.AssignTask)
		}
	}

	// Start server
	addr := ":" + cfg.Port
	log.Printf("Server starting on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
