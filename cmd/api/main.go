package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"real-estate-backend/internal/auth"
	"real-estate-backend/internal/cleanup"
	"real-estate-backend/internal/commands"
	"real-estate-backend/internal/config"
	"real-estate-backend/internal/database"
	"real-estate-backend/internal/handlers"
	"real-estate-backend/internal/repository"
	"real-estate-backend/internal/scheduler"
	"real-estate-backend/internal/search"
	"real-estate-backend/internal/storage"
)

func main() {
	configPath := getEnv("CONFIG_PATH", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Printf("Warning: failed to load config from %s: %v. Using defaults.", configPath, err)
		cfg = config.DefaultConfig()
	} else {
		log.Printf("Loaded configuration from %s", configPath)
	}

	// Catalogue database
	var db *database.GormDB
	if cfg.Database.Type == "mysql" {
		log.Println("Using MySQL")
		db, err = database.NewMySQL(
			cfg.Database.MySQL.Host,
			cfg.Database.MySQL.Port,
			cfg.Database.MySQL.User,
			cfg.Database.MySQL.Password,
			cfg.Database.MySQL.Database,
		)
	} else {
		log.Println("Using SQLite")
		db, err = database.NewSQLite(cfg.Database.SQLite.Path)
	}
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.InitSchema(); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	// Identity store (separate database, separate schema)
	users, err := repository.NewUserRepository(cfg.Identity.Driver, cfg.Identity.DSN)
	if err != nil {
		log.Fatalf("Failed to connect to identity store: %v", err)
	}
	defer users.Close()

	if cfg.Identity.Driver == "sqlite3" {
		if err := users.InitSchema(); err != nil {
			log.Fatalf("Failed to initialize identity schema: %v", err)
		}
	}

	// Search (optional)
	var searchClient *search.SearchClient
	var indexer commands.PropertyIndexer
	if cfg.Search.Enabled {
		searchClient = search.NewSearchClient(cfg.Search.Host, cfg.Search.APIKey)
		if err := searchClient.InitIndex(); err != nil {
			log.Printf("Warning: failed to initialize search index: %v", err)
		}
		indexer = searchClient
	}

	// Contract storage
	files, err := storage.NewDiskStore(cfg.Storage.Root)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// Retention cleanup + daily schedule
	cleanupService := cleanup.NewService(db.DB())
	sched := scheduler.NewScheduler(cleanupService, cfg)
	if err := sched.Start(); err != nil {
		log.Printf("Warning: failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	tokens := auth.NewTokenIssuer(cfg.Auth.Secret, cfg.Auth.TTLMinutes)

	authHandler := handlers.NewAuthHandler(users, tokens)
	propertyHandler := handlers.NewPropertyHandler(db, indexer, searchClient)
	customerHandler := handlers.NewCustomerHandler(db)
	categoryHandler := handlers.NewCategoryHandler(db)
	transactionHandler := handlers.NewTransactionHandler(db, files)
	engagementHandler := handlers.NewEngagementHandler(db)
	adminHandler := handlers.NewAdminHandler(db.DB(), users, cleanupService, searchClient)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/health", healthCheck)

	api := r.Group("/api")
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		api.GET("/properties", propertyHandler.List)
		api.GET("/properties/:id", propertyHandler.Get)
		api.GET("/search", propertyHandler.Search)
		api.GET("/categories", categoryHandler.List)
	}

	authed := r.Group("/api", auth.RequireAuth(tokens))
	{
		authed.GET("/auth/me", authHandler.Me)

		authed.POST("/properties", propertyHandler.Create)
		authed.PUT("/properties/:id", propertyHandler.Update)
		authed.POST("/properties/:id/status", propertyHandler.ChangeStatus)
		authed.DELETE("/properties/:id", propertyHandler.Delete)

		authed.POST("/properties/:id/ratings", engagementHandler.Rate)
		authed.POST("/properties/:id/favorite", engagementHandler.ToggleFavorite)
		authed.POST("/properties/:id/comments", engagementHandler.Comment)
		authed.POST("/testimonials", engagementHandler.Testimonial)

		authed.POST("/categories", categoryHandler.Create)

		authed.POST("/customers", customerHandler.Create)
		authed.GET("/customers", customerHandler.List)
		authed.GET("/customers/:id", customerHandler.Get)
		authed.PUT("/customers/:id", customerHandler.Update)
		authed.DELETE("/customers/:id", customerHandler.Delete)

		authed.POST("/sales", transactionHandler.CreateSale)
		authed.GET("/sales", transactionHandler.ListSales)
		authed.GET("/sales/:id", transactionHandler.GetSale)

		authed.POST("/rentals", transactionHandler.CreateRental)
		authed.GET("/rentals", transactionHandler.ListRentals)
		authed.GET("/rentals/:id", transactionHandler.GetRental)

		admin := authed.Group("/admin")
		{
			admin.GET("/stats", adminHandler.GetStats)
			admin.POST("/cleanup/run", adminHandler.TriggerCleanup)
			admin.GET("/cleanup/logs", adminHandler.GetDeleteLogs)
			admin.POST("/search/reindex", adminHandler.Reindex)
		}
	}

	port := cfg.Server.Port
	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now(),
	})
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
