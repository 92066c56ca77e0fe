package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/roomate/household_ledger/internal/adapters/membership"
	portsrepo "github.com/roomate/household_ledger/internal/core/ports/repositories"
	portssvc "github.com/roomate/household_ledger/internal/core/ports/services"
	"github.com/roomate/household_ledger/internal/core/services"
	"github.com/roomate/household_ledger/internal/handlers"
	"github.com/roomate/household_ledger/internal/middleware"
	"github.com/roomate/household_ledger/internal/platform/config"
	"github.com/roomate/household_ledger/internal/repositories/database/pgsql"
	"github.com/roomate/household_ledger/internal/repositories/database/sqlite"
	"github.com/roomate/household_ledger/internal/repositories/memory"
	"github.com/roomate/household_ledger/internal/utils"
	"github.com/roomate/household_ledger/pkg/database"
)

// @title Household Ledger API
// @version 1.0
// @description Shared expense ledger for a household room: entries, splits, payments and balances.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()
	repos, oracle, cleanup, err := setupStorage(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("driver", cfg.StorageDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	cachedOracle := membership.NewCachedOracle(oracle, cfg.MembershipCacheSize, cfg.MembershipCacheTTL)
	serviceContainer := services.NewServiceContainer(cfg, repos, cachedOracle)

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogClient.Close()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer, posthogClient); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage_driver", cfg.StorageDriver))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// setupStorage opens and migrates the configured store and picks the membership source
// that goes with it. The returned cleanup releases the database handle.
func setupStorage(ctx context.Context, cfg *config.Config) (portsrepo.RepositoryProvider, portssvc.MembershipOracle, func(), error) {
	noop := func() {}

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, noop, err
		}
		if err := database.RunPostgresMigrations(cfg.DatabaseURL); err != nil {
			database.ClosePgxPool(dbPool)
			return portsrepo.RepositoryProvider{}, nil, noop, err
		}
		repos := pgsql.NewRepositoryProvider(dbPool)
		return repos, membership.NewRepositoryOracle(repos.MemberRepo), func() { database.ClosePgxPool(dbPool) }, nil

	case config.StorageSQLite:
		oracle, err := membership.LoadStaticOracle(cfg.MembershipRosterFile)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, noop, err
		}
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, noop, err
		}
		closeDB := func() {
			if cerr := db.Close(); cerr != nil {
				slog.Error("Error closing SQLite database", slog.String("error", cerr.Error()))
			}
		}
		if err := database.RunSQLiteMigrations(db); err != nil {
			closeDB()
			return portsrepo.RepositoryProvider{}, nil, noop, err
		}
		return sqlite.NewRepositoryProvider(db), oracle, closeDB, nil

	case config.StorageMemory:
		oracle, err := membership.LoadStaticOracle(cfg.MembershipRosterFile)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, noop, err
		}
		return portsrepo.RepositoryProvider{LedgerRepo: memory.NewLedgerRepository()}, oracle, noop, nil
	}

	return portsrepo.RepositoryProvider{}, nil, noop, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}
