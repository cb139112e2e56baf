// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	cartapp "github.com/marcusha429/my-ecommerce-project/internal/application/cart"
	"github.com/marcusha429/my-ecommerce-project/internal/application/suggestion"
	"github.com/marcusha429/my-ecommerce-project/internal/infrastructure/ai/gemini"
	"github.com/marcusha429/my-ecommerce-project/internal/infrastructure/config"
	"github.com/marcusha429/my-ecommerce-project/internal/infrastructure/http/server"
	gormRepo "github.com/marcusha429/my-ecommerce-project/internal/infrastructure/persistence/gorm"
	"github.com/marcusha429/my-ecommerce-project/internal/infrastructure/persistence/memory"
	redisRepo "github.com/marcusha429/my-ecommerce-project/internal/infrastructure/persistence/redis"
	"github.com/marcusha429/my-ecommerce-project/internal/infrastructure/persistence/sqlite"
	"github.com/marcusha429/my-ecommerce-project/internal/ports/inbound"
	"github.com/marcusha429/my-ecommerce-project/internal/ports/outbound"
	"github.com/marcusha429/my-ecommerce-project/pkg/logger"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	CacheModule,
	RepositoryModule,
	ServiceModule,
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

// DatabaseModule provides the SQLite database via GORM
var DatabaseModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		logLevel := gormLogger.Silent
		if cfg.App.Debug {
			logLevel = gormLogger.Info
		}

		db, err := sqlite.SetupDatabase(cfg.Database.Path, logLevel)
		if err != nil {
			return nil, fmt.Errorf("failed to setup SQLite database: %w", err)
		}

		if cfg.Database.Seed {
			if err := sqlite.SeedDatabase(db); err != nil {
				log.Warn("Failed to seed database", zap.Error(err))
			}
		}

		log.Info("Connected to SQLite database",
			zap.String("path", cfg.Database.Path),
			zap.Bool("in_memory", cfg.Database.Path == ""),
		)

		return db, nil
	},
)

// CacheModule provides caching, Redis when enabled and in-memory otherwise
var CacheModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (outbound.CacheRepository, error) {
		if cfg.Redis.Enabled {
			client, err := redisRepo.NewClient(cfg.RedisAddr(), cfg.Redis.Password, cfg.Redis.Database)
			if err != nil {
				return nil, fmt.Errorf("failed to connect to redis: %w", err)
			}
			log.Info("Connected to Redis cache", zap.String("addr", cfg.RedisAddr()))
			return redisRepo.NewCacheRepository(client, log), nil
		}

		log.Info("Using in-memory cache")
		return memory.NewCacheRepository(), nil
	},
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	gormRepo.NewCartRepository,
	gormRepo.NewProductRepository,
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	// AI service
	func(cfg *config.Config, log *zap.Logger) outbound.AIService {
		return gemini.NewClient(cfg.AI.GeminiKey, cfg.AI.GeminiModel, cfg.AI.Timeout, log)
	},

	// Suggestion cache
	func(store outbound.CacheRepository, cfg *config.Config, log *zap.Logger) *suggestion.Cache {
		return suggestion.NewCache(store, cfg.AI.SuggestionTTL, log)
	},

	// Suggestion service
	func(
		cartRepo outbound.CartRepository,
		catalogClient outbound.CatalogClient,
		ai outbound.AIService,
		cache *suggestion.Cache,
		cfg *config.Config,
		log *zap.Logger,
	) inbound.SuggestionService {
		return suggestion.NewService(cartRepo, catalogClient, ai, cache, cfg.AI.Timeout, cfg.AI.MaxSuggestions, log)
	},

	// Cart service
	func(
		cartRepo outbound.CartRepository,
		catalogClient outbound.CatalogClient,
		cache *suggestion.Cache,
		cfg *config.Config,
		log *zap.Logger,
	) inbound.CartService {
		return cartapp.NewService(cartRepo, catalogClient, cache, cfg.Cart.TaxRate, log)
	},
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
			log.Info("Starting application",
				zap.String("name", cfg.App.Name),
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
			log.Info("Shutting down application")

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
