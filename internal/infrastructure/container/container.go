// Package container provides dependency injection using Uber FX
// This implements the Dependency Inversion Principle from SOLID
package container

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	groceryapp "github.com/kitchensage/v2/internal/application/grocery"
	"github.com/kitchensage/v2/internal/application/planner"
	"github.com/kitchensage/v2/internal/infrastructure/ai/openai"
	"github.com/kitchensage/v2/internal/infrastructure/config"
	"github.com/kitchensage/v2/internal/infrastructure/http/server"
	"github.com/kitchensage/v2/internal/infrastructure/monitoring"
	gormRepo "github.com/kitchensage/v2/internal/infrastructure/persistence/gorm"
	redisRepo "github.com/kitchensage/v2/internal/infrastructure/persistence/redis"
	"github.com/kitchensage/v2/internal/infrastructure/persistence/sqlite"
	"github.com/kitchensage/v2/internal/ports/outbound"
	"github.com/kitchensage/v2/pkg/logger"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	MonitoringModule,
	DatabaseModule,
	RepositoryModule,
	EnrichmentModule,
	PlannerModule,
	GroceryModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// MonitoringModule provides Prometheus metrics
var MonitoringModule = fx.Provide(
	monitoring.NewMetrics,
)

// DatabaseModule provides the database connection
var DatabaseModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		db, err := sqlite.SetupDatabase(cfg)
		if err != nil {
			return nil, err
		}

		if cfg.Database.SeedSampleData {
			if err := sqlite.SeedDatabase(db); err != nil {
				log.Warn("Failed to seed database", zap.Error(err))
			}
		}

		log.Info("Connected to database",
			zap.String("driver", cfg.Database.Driver),
			zap.String("database", cfg.Database.Database),
		)
		return db, nil
	},
)

// RepositoryModule provides repository implementations. The recipe
// catalog is wrapped with the Redis snapshot cache when Redis is
// enabled and reachable.
var RepositoryModule = fx.Provide(
	func(db *gorm.DB, cfg *config.Config, metrics *monitoring.Metrics, log *zap.Logger) outbound.RecipeCatalog {
		catalog := gormRepo.NewRecipeCatalog(db)

		if !cfg.Redis.Enabled {
			return catalog
		}
		client, err := redisRepo.NewClient(cfg.Redis)
		if err != nil {
			log.Warn("Redis unavailable, catalog cache disabled", zap.Error(err))
			return catalog
		}
		cache := redisRepo.NewCacheRepository(client, log)
		log.Info("Catalog snapshot cache enabled",
			zap.Duration("snapshot_ttl", cfg.Redis.SnapshotTTL),
		)
		return redisRepo.NewCachedRecipeCatalog(catalog, cache, metrics, cfg.Redis.SnapshotTTL, log)
	},
	gormRepo.NewMealPlanStore,
	gormRepo.NewGroceryStore,
)

// EnrichmentModule provides the grocery enrichment service. A nil
// service means enrichment is disabled; the consolidation engine then
// always takes the deterministic path.
var EnrichmentModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) outbound.EnrichmentService {
		if !cfg.Enrichment.Enabled {
			log.Info("Grocery enrichment disabled, using deterministic consolidation only")
			return nil
		}
		log.Info("Grocery enrichment enabled",
			zap.String("model", cfg.Enrichment.Model),
		)
		return openai.NewClient(cfg.Enrichment, log)
	},
)

// PlannerModule provides the planning pipeline components and service
var PlannerModule = fx.Provide(
	func(cfg *config.Config) *planner.Categorizer {
		return planner.NewCategorizer(planner.TimeBands{
			BreakfastMaxTotal: time.Duration(cfg.Planner.BreakfastMaxTotalMinutes) * time.Minute,
			LunchMinTotal:     time.Duration(cfg.Planner.LunchMinTotalMinutes) * time.Minute,
			LunchMaxTotal:     time.Duration(cfg.Planner.LunchMaxTotalMinutes) * time.Minute,
			DinnerMinTotal:    time.Duration(cfg.Planner.DinnerMinTotalMinutes) * time.Minute,
		})
	},
	func(cfg *config.Config, categorizer *planner.Categorizer, log *zap.Logger) *planner.Assigner {
		weights := planner.ScoringWeights{
			UnusedBonus:   cfg.Planner.UnusedBonus,
			PrepFitBonus:  cfg.Planner.PrepFitBonus,
			ServingsBonus: cfg.Planner.ServingsBonus,
		}
		bands := planner.PrepBands{
			BreakfastMaxPrep: time.Duration(cfg.Planner.BreakfastMaxPrepMinutes) * time.Minute,
			LunchMinPrep:     time.Duration(cfg.Planner.LunchMinPrepMinutes) * time.Minute,
			LunchMaxPrep:     time.Duration(cfg.Planner.LunchMaxPrepMinutes) * time.Minute,
			DinnerMinPrep:    time.Duration(cfg.Planner.DinnerMinPrepMinutes) * time.Minute,
		}
		return planner.NewAssigner(categorizer, weights, bands, log)
	},
	planner.NewTitleSynthesizer,
	func(cfg *config.Config, metrics *monitoring.Metrics, log *zap.Logger) *planner.StreamBridge {
		return planner.NewStreamBridge(cfg.Planner.StreamBuffer, metrics, log)
	},
	planner.NewPlannerService,
)

// GroceryModule provides the consolidation engine and grocery service
var GroceryModule = fx.Provide(
	groceryapp.NewConsolidationEngine,
	groceryapp.NewGroceryService,
)

// HTTPModule provides the HTTP server
var HTTPModule = fx.Provide(
	server.NewServer,
)

// LifecycleModule registers lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	srv *server.Server,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting KitchenSage",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("Failed to start HTTP server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down KitchenSage")

			if err := srv.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			sqlDB, err := db.DB()
			if err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Error("Failed to close database connection", zap.Error(err))
				}
			}

			_ = log.Sync()
			return nil
		},
	})
}
