// Package main implements the entry point for the Wordsmith API server,
// a REST backend for users, posts, categories and comments.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/wordsmith-api/internal/config"
	"github.com/phrazzld/wordsmith-api/internal/platform/logger"
	"github.com/phrazzld/wordsmith-api/internal/platform/postgres"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

// run loads configuration, prepares the database and serves until the
// process receives SIGINT or SIGTERM.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	log.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"cache_enabled", cfg.Cache.RedisURL != "",
		"kafka_enabled", len(cfg.Events.KafkaBrokers) > 0)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.Database, log)
	if err != nil {
		return err
	}

	if err := runMigrations(ctx, db, log); err != nil {
		_ = postgres.Close(db)
		return err
	}

	app, err := newApplication(ctx, cfg, log, db)
	if err != nil {
		_ = postgres.Close(db)
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return app.Run(ctx)
}
