// Package testdb provides database fixtures for tests. Open returns an
// isolated in-memory SQLite database with the application schema; OpenPostgres
// connects to a real PostgreSQL instance and applies the embedded migrations
// when WORDSMITH_TEST_DB_URL is set.
package testdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	pg "github.com/phrazzld/wordsmith-api/internal/platform/postgres"
	"github.com/phrazzld/wordsmith-api/internal/platform/postgres/migrations"
)

// TestTimeout defines a default timeout for test database operations.
const TestTimeout = 5 * time.Second

// DatabaseURLEnv names the variable that enables PostgreSQL integration tests.
const DatabaseURLEnv = "WORDSMITH_TEST_DB_URL"

// MigrationTableName is the goose version table used by tests and the server.
const MigrationTableName = "schema_migrations"

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Open returns a fresh in-memory SQLite database with every application table.
// The pool is limited to one connection because each SQLite in-memory
// connection is a separate database. Inside a transaction, only use stores
// bound to that transaction or the single connection deadlocks.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), gormConfig())
	require.NoError(t, err, "Failed to open sqlite database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(pg.Models()...), "Failed to create schema")

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

// IsIntegrationTestEnvironment reports whether a PostgreSQL test database is configured.
func IsIntegrationTestEnvironment() bool {
	return os.Getenv(DatabaseURLEnv) != ""
}

// OpenPostgres connects to the database named by WORDSMITH_TEST_DB_URL and
// applies the embedded migrations. The test is skipped when the variable is unset.
func OpenPostgres(t *testing.T) *gorm.DB {
	t.Helper()

	if !IsIntegrationTestEnvironment() {
		t.Skipf("%s not set, skipping PostgreSQL integration test", DatabaseURLEnv)
	}

	db, err := gorm.Open(postgres.Open(os.Getenv(DatabaseURLEnv)), gormConfig())
	require.NoError(t, err, "Failed to open PostgreSQL database")

	sqlDB, err := db.DB()
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()
	require.NoError(t, sqlDB.PingContext(ctx), "Failed to ping PostgreSQL database")
	require.NoError(t, ApplyMigrations(ctx, sqlDB), "Failed to run migrations")

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

// ApplyMigrations runs every embedded migration against db.
func ApplyMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	goose.SetTableName(MigrationTableName)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// WithTx executes a test function within a transaction, automatically rolling back
// after the test completes. This ensures test isolation and prevents side effects.
func WithTx(t *testing.T, db *gorm.DB, fn func(t *testing.T, tx *gorm.DB)) {
	t.Helper()

	tx := db.Begin()
	require.NoError(t, tx.Error, "Failed to begin transaction")

	defer func() {
		err := tx.Rollback().Error
		if err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("Warning: failed to rollback transaction: %v", err)
		}
	}()

	fn(t, tx)
}
