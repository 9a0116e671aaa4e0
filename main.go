package main

import (
	"context"
	"log"
	"net/http"

	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/bayanihan-labs/esg-engine/pkg/config"
	"github.com/bayanihan-labs/esg-engine/pkg/database"
	"github.com/bayanihan-labs/esg-engine/pkg/handlers"
	"github.com/bayanihan-labs/esg-engine/pkg/logging"
	"github.com/bayanihan-labs/esg-engine/pkg/middleware"
	"github.com/bayanihan-labs/esg-engine/pkg/repositories"
	"github.com/bayanihan-labs/esg-engine/pkg/scoring"
	"github.com/bayanihan-labs/esg-engine/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("database", logging.SanitizeConnectionString(cfg.Database.ConnectionString())),
		zap.String("watchlist_source", cfg.Watchlist.Source))

	ctx := context.Background()

	db, err := database.NewConnection(ctx, &database.Config{
		URL:            cfg.Database.ConnectionString(),
		MaxConnections: cfg.Database.MaxConnections,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.String("error", logging.SanitizeError(err)))
	}
	defer db.Close()

	// Migrations run through database/sql on top of the same pool.
	sqlDB := stdlib.OpenDBFromPool(db.Pool)
	if err := database.RunMigrations(sqlDB, cfg.MigrationsPath, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.String("error", logging.SanitizeError(err)))
	}

	// Repositories
	smeRepo := repositories.NewSMERepository(db)
	supplierRepo := repositories.NewSupplierRepository(db)
	referenceRepo := repositories.NewReferenceRepository(db)
	auditRepo := repositories.NewAuditRepository(db)
	watchlistRepo := repositories.NewWatchlistRepository(db)
	intakeRepo := repositories.NewIntakeRepository(db)

	// Watchlist matcher
	var source scoring.WatchlistSource
	switch cfg.Watchlist.Source {
	case "file":
		source = services.NewFileWatchlistSource(cfg.Watchlist.FilePath)
	default:
		source = services.NewTableWatchlistSource(watchlistRepo)
	}
	matcher := scoring.NewMatcher(source, cfg.Scoring.MatchThreshold)

	weights := scoring.Weights{
		Financial:     cfg.Scoring.FinancialWeight,
		Environmental: cfg.Scoring.EnvironmentalWeight,
		Social:        cfg.Scoring.SocialWeight,
		Governance:    cfg.Scoring.GovernanceWeight,
	}

	// Services
	smeService := services.NewSMEService(smeRepo, supplierRepo, referenceRepo, logger)
	supplierService := services.NewSupplierService(supplierRepo, smeRepo, referenceRepo, logger)
	scoringService := services.NewScoringService(db, smeRepo, supplierRepo, referenceRepo, auditRepo, matcher, weights, logger)
	intakeService := services.NewIntakeService(intakeRepo, smeService, logger)
	watchlistService := services.NewWatchlistService(watchlistRepo, logger)

	// Handlers
	mux := http.NewServeMux()
	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewSMEHandler(smeService, logger).RegisterRoutes(mux)
	handlers.NewSupplierHandler(supplierService, logger).RegisterRoutes(mux)
	handlers.NewScoringHandler(scoringService, logger).RegisterRoutes(mux)
	handlers.NewIntakeHandler(intakeService, logger).RegisterRoutes(mux)
	handlers.NewReferenceHandler(referenceRepo, logger).RegisterRoutes(mux)
	handlers.NewWatchlistHandler(watchlistService, logger).RegisterRoutes(mux)

	handler := middleware.RequestLogger(logger)(mux)

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("Starting esg-engine",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "local" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
