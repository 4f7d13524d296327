package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/xener/energy-api/config"
	"github.com/xener/energy-api/handlers"
	"github.com/xener/energy-api/middleware"
	"github.com/xener/energy-api/models"
	"github.com/xener/energy-api/routes"
	"github.com/xener/energy-api/services"
	"github.com/xener/energy-api/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	store, err := buildStorage()
	if err != nil {
		log.Fatal("Failed to initialize storage:", err)
	}

	demoUserID := 0
	if os.Getenv("AUTH_MODE") != "jwt" {
		demoUserID = seedDemoUser(store)
		middleware.ConfigureDemoAuth(demoUserID)
		log.Printf("👤 Demo mode enabled (user id %d)", demoUserID)
	}

	wsHandler := handlers.NewWSHandler()
	tipGenerator := services.NewTipGenerator()

	router := gin.Default()

	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:5173"
	}

	allowedOrigins := []string{frontendURL, "http://localhost:3000"}

	log.Printf("🌍 CORS: Allowing origins:")
	for _, origin := range allowedOrigins {
		log.Printf("   - %s", origin)
	}

	corsConfig := cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           86400,
	}
	router.Use(cors.New(corsConfig))

	router.Use(func(c *gin.Context) {
		start := time.Now()
		log.Printf("📨 %s %s from %s", c.Request.Method, c.Request.URL.Path, c.ClientIP())
		c.Next()
		duration := time.Since(start)
		log.Printf("✅ %s %s - %d (%v)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), duration)
	})

	router.Use(middleware.RateLimiter())

	v1 := router.Group("/api/v1")
	{
		routes.SetupAuthRoutes(v1, store, demoUserID)

		protected := v1.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/ws", wsHandler.Handle)
			routes.SetupUserRoutes(protected, store)
			routes.SetupApplianceRoutes(protected, store, wsHandler)
			routes.SetupBillRoutes(protected, store, wsHandler)
			routes.SetupTipRoutes(protected, store, tipGenerator, wsHandler)
			routes.SetupUsageRoutes(protected, store, wsHandler)
			routes.SetupDashboardRoutes(protected, store)
			routes.SetupExportRoutes(protected, store)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("🚀 Server starting on port %s...", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

// buildStorage picks the persistence driver. The in-memory store is the
// default; Postgres is opt-in via STORAGE_DRIVER=postgres.
func buildStorage() (storage.Storage, error) {
	if os.Getenv("STORAGE_DRIVER") != "postgres" {
		log.Println("💾 Using in-memory storage")
		return storage.NewMemStorage(), nil
	}

	db, err := config.InitDB()
	if err != nil {
		return nil, err
	}
	log.Println("✅ Database connected successfully")

	if err := config.RunMigrations(db); err != nil {
		return nil, err
	}

	return storage.NewPostgresStorage(db), nil
}

// seedDemoUser makes sure the demo account exists and returns its id.
func seedDemoUser(store storage.Storage) int {
	const demoEmail = "demo@xenerhome.app"

	if user, err := store.GetUserByEmail(demoEmail); err == nil {
		return user.ID
	}

	user, err := store.CreateUser(models.User{
		FirebaseUID: "demo-user",
		Email:       demoEmail,
		Name:        "Demo User",
		EnergyScore: 50,
	})
	if err != nil {
		log.Fatal("Failed to seed demo user:", err)
	}
	return user.ID
}
