package main

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/bug-tracking-api/internal/config"
	"github.com/yukikurage/bug-tracking-api/internal/constants"
	"github.com/yukikurage/bug-tracking-api/internal/database"
	"github.com/yukikurage/bug-tracking-api/internal/handlers"
	"github.com/yukikurage/bug-tracking-api/internal/middleware"
	"github.com/yukikurage/bug-tracking-api/internal/repository"
	"github.com/yukikurage/bug-tracking-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Configure logging
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories and services
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	bugRepo := repository.NewBugRepository(db)

	userService := services.NewUserService(userRepo)
	bugService := services.NewBugService(bugRepo, userRepo)
	authService := services.NewAuthService(userRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	bugHandler := handlers.NewBugHandler(bugService)
	userHandler := handlers.NewUserHandler(userService)

	// Initialize Gin router
	r := gin.Default()

	// CORS policy for the browser client
	r.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.AllowedOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	}))

	// Cookie-backed login session
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.GinMode == "release",
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Bug Tracking API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		bugs := api.Group("/bugs")
		{
			bugs.GET("", bugHandler.ListBugs)
			bugs.POST("", bugHandler.CreateBug)
			bugs.GET("/user-bugs/:userId", bugHandler.ListUserBugs)
			bugs.GET("/:id", bugHandler.GetBug)
			bugs.PUT("/:id", bugHandler.UpdateBug)
			bugs.PUT("/:id/resolve", bugHandler.ResolveBug)
			bugs.PUT("/:id/assign-user/:userId", bugHandler.AssignUserToBug)
		}

		users := api.Group("/users")
		{
			users.GET("", userHandler.ListUsers)
			users.POST("", userHandler.CreateUser)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}
	}

	// Start server
	logrus.Infof("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}
