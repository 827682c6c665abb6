package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	httpapi "schoollib-backend/internal/api/http"
	"schoollib-backend/internal/config"
	"schoollib-backend/internal/logger"
	"schoollib-backend/internal/repository/postgres"
	"schoollib-backend/internal/security"
	"schoollib-backend/internal/service"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Local overrides from .env, if present
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting school library backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Identity boundary
	tokenManager := security.NewTokenManager(cfg.JWT.Secret)

	// Notification boundary: disabled unless an API key is configured
	var emailSvc service.EmailService
	if cfg.Email.SendGridAPIKey != "" {
		emailSvc = service.NewEmailService(cfg.Email.SendGridAPIKey, cfg.Email.FromEmail, cfg.Email.FromName)
		logger.Info("Email notifications enabled", "from", cfg.Email.FromEmail)
	} else {
		logger.Info("Email notifications disabled")
	}

	// Initialize Services
	catalogSvc := service.NewCatalogService(store.BookRepository)
	policySvc := service.NewPolicyService(store.PolicyRepository)
	circSvc := service.NewCirculationService(
		store.BookRepository,
		store.IssueRepository,
		store.CirculationRepository,
		store.PolicyRepository,
		emailSvc,
	)

	// Set up HTTP server
	router := httpapi.NewRouter(tokenManager, catalogSvc, circSvc, policySvc)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
