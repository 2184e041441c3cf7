package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	httpapi "scaffoldrent-backend/internal/api/http"
	"scaffoldrent-backend/internal/config"
	"scaffoldrent-backend/internal/logger"
	"scaffoldrent-backend/internal/repository"
	"scaffoldrent-backend/internal/repository/firestore"
	"scaffoldrent-backend/internal/repository/postgres"
	"scaffoldrent-backend/internal/security"
	"scaffoldrent-backend/internal/service"
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
	logger.Info("Starting ScaffoldRent Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "type", cfg.Database.Type)

	// Initialize Repositories
	store, cleanup := openStore(cfg)
	defer cleanup()

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	// Initialize Services
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	inventorySvc := service.NewInventoryService(store.InventoryRepository, store.RentalRepository)
	customerSvc := service.NewCustomerService(store.CustomerRepository, store.RentalRepository)
	rentalSvc := service.NewRentalService(
		store.RentalRepository,
		store.InventoryRepository,
		store.CustomerRepository,
		cfg.Billing.LateFeeMultiplier,
	)
	purchaseSvc := service.NewPurchaseService(store.PurchaseRepository, store.InventoryRepository)
	dashboardSvc := service.NewDashboardService(
		store.InventoryRepository,
		store.CustomerRepository,
		store.RentalRepository,
		store.PurchaseRepository,
	)
	insightSvc := service.NewInsightService(
		cfg.Insights.Endpoint,
		cfg.Insights.APIKey,
		time.Duration(cfg.Insights.TimeoutSeconds)*time.Second,
		store.InventoryRepository,
		store.RentalRepository,
	)

	// Set up HTTP server
	router := httpapi.NewRouter(httpapi.Services{
		Auth:      authSvc,
		Inventory: inventorySvc,
		Customers: customerSvc,
		Rentals:   rentalSvc,
		Purchases: purchaseSvc,
		Dashboard: dashboardSvc,
		Insights:  insightSvc,
	}, tokenManager)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}

// openStore connects the configured persistence backend and returns its
// repository bundle plus a close function.
func openStore(cfg *config.Config) (*repository.Store, func()) {
	switch cfg.Database.Type {
	case "firestore":
		ctx := context.Background()
		client, err := firestore.NewClient(ctx, cfg.Database.Firestore.ProjectID, cfg.Database.Firestore.CredentialsFile)
		if err != nil {
			logger.Error("Failed to connect to Firestore", "error", err)
			log.Fatalf("Failed to connect to Firestore: %v", err)
		}
		logger.Info("Firestore connection established", "project_id", cfg.Database.Firestore.ProjectID)
		return firestore.NewStore(client), func() { client.Close() }
	default:
		db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
		if err != nil {
			logger.Error("Failed to connect to database", "error", err)
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := db.Ping(); err != nil {
			logger.Error("Failed to ping database", "error", err)
			log.Fatalf("Failed to ping database: %v", err)
		}
		logger.Info("Database connection established")
		return postgres.NewStore(db), func() { db.Close() }
	}
}
