package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	httpapi "rental-dashboard/internal/api/http"
	"rental-dashboard/internal/config"
	"rental-dashboard/internal/logger"
	"rental-dashboard/internal/repository/postgres"
	"rental-dashboard/internal/security"
	"rental-dashboard/internal/service"
	"rental-dashboard/internal/storage"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Rental Dashboard Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Ensure schema exists
	if err := postgres.EnsureSchema(db); err != nil {
		logger.Error("Failed to ensure database schema", "error", err)
		log.Fatalf("Failed to ensure database schema: %v", err)
	}

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize Storage Service
	storageService, err := storage.NewLocalStorageService(cfg.Storage.UploadDir)
	if err != nil {
		logger.Error("Failed to initialize file storage", "error", err)
		log.Fatalf("Failed to initialize file storage: %v", err)
	}
	logger.Info("File storage initialized", "upload_dir", cfg.Storage.UploadDir)

	// Initialize Services
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	rentalSvc := service.NewRentalService(store.RentalRepository, storageService, cfg.Scheduler.WarningWindowDays)

	// Initialize HTTP handlers
	authHandler := httpapi.NewAuthHandler(authSvc, rentalSvc)
	uploadHandler := httpapi.NewUploadHandler(rentalSvc)
	fileHandler := httpapi.NewFileHandler(storageService)
	authMiddleware := httpapi.NewAuthMiddleware(tokenManager)

	router := httpapi.NewRouter(authHandler, uploadHandler, fileHandler, authMiddleware)

	addr := cfg.GetServerAddress()
	logger.Info("HTTP server listening", "address", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		logger.Error("HTTP server stopped", "error", err)
		log.Fatalf("HTTP server stopped: %v", err)
	}
}
