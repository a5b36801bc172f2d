package main

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/phrazzld/wordsmith-api/internal/cache"
	"github.com/phrazzld/wordsmith-api/internal/config"
	"github.com/phrazzld/wordsmith-api/internal/events"
	"github.com/phrazzld/wordsmith-api/internal/platform/metrics"
	"github.com/phrazzld/wordsmith-api/internal/platform/postgres"
	"github.com/phrazzld/wordsmith-api/internal/service"
	"github.com/phrazzld/wordsmith-api/internal/service/auth"
	"github.com/phrazzld/wordsmith-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *gorm.DB

	userStore store.UserStore

	tokenCodec      auth.TokenCodec
	authService     auth.Service
	userService     service.UserService
	postService     service.PostService
	categoryService service.CategoryService
	commentService  service.CommentService

	metrics *metrics.HTTPMetrics

	// Optional infrastructure, nil when disabled by configuration.
	redisCache     *cache.RedisCache
	kafkaPublisher *events.KafkaPublisher
}

// newApplication creates a new application instance with all dependencies initialized.
// The database must already be open and migrated.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *gorm.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.tokenCodec, err = auth.NewTokenCodec(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token codec: %w", err)
	}
	logger.Info("token authentication initialized",
		"token_expiry_ms", cfg.Auth.TokenExpiryMs)

	var entityCache cache.Cache = cache.NoopCache{}
	if cfg.Cache.RedisURL != "" {
		app.redisCache, err = cache.NewRedisCache(ctx, cfg.Cache, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis cache: %w", err)
		}
		entityCache = app.redisCache
		logger.Info("redis cache enabled", "ttl_seconds", cfg.Cache.TTLSeconds)
	}

	emitter := events.NewInMemoryEventEmitter(logger)
	if len(cfg.Events.KafkaBrokers) > 0 {
		app.kafkaPublisher = events.NewKafkaPublisher(cfg.Events, logger)
		emitter.RegisterHandler(app.kafkaPublisher)
		logger.Info("kafka event publishing enabled",
			"topic", cfg.Events.KafkaTopic,
			"brokers", len(cfg.Events.KafkaBrokers))
	}

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	postStore := postgres.NewPostgresPostStore(db, logger)
	categoryStore := postgres.NewPostgresCategoryStore(db, logger)
	commentStore := postgres.NewPostgresCommentStore(db, logger)

	app.authService = auth.NewService(
		db,
		app.userStore,
		auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		auth.NewBcryptVerifier(),
		app.tokenCodec,
		cfg.Auth.TokenExpiryMs,
		logger,
	)

	app.userService, err = service.NewUserService(service.UserServiceDeps{
		Users: app.userStore,
		Posts: postStore,
		Cache: entityCache,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	app.postService, err = service.NewPostService(service.PostServiceDeps{
		DB:         db,
		Posts:      postStore,
		Comments:   commentStore,
		Users:      app.userStore,
		Categories: categoryStore,
		Cache:      entityCache,
		Emitter:    emitter,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create post service: %w", err)
	}

	app.categoryService, err = service.NewCategoryService(categoryStore, entityCache, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create category service: %w", err)
	}

	app.commentService, err = service.NewCommentService(commentStore, postStore, emitter, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment service: %w", err)
	}

	app.metrics = metrics.New(true)
	if sqlDB, err := db.DB(); err == nil {
		if err := app.metrics.RegisterDB(sqlDB, "wordsmith"); err != nil {
			logger.Warn("failed to register database metrics", "error", err)
		}
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.kafkaPublisher != nil {
		if err := app.kafkaPublisher.Close(); err != nil {
			app.logger.Error("error closing kafka publisher", "error", err)
		}
	}

	if app.redisCache != nil {
		if err := app.redisCache.Close(); err != nil {
			app.logger.Error("error closing redis client", "error", err)
		}
	}

	if app.db != nil {
		if err := postgres.Close(app.db); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
