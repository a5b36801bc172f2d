package main

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/wordsmith-api/internal/testdb"
)

func TestRunMigrations(t *testing.T) {
	db := testdb.OpenPostgres(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx, cancel := context.WithTimeout(context.Background(), testdb.TestTimeout)
	defer cancel()

	// Re-running is a no-op once every migration has been applied.
	require.NoError(t, runMigrations(ctx, db, log))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	version, err := goose.GetDBVersionContext(ctx, sqlDB)
	require.NoError(t, err)
	assert.EqualValues(t, 4, version)

	for _, table := range []string{"users", "categories", "posts", "comments"} {
		assert.True(t, db.Migrator().HasTable(table), "table %s", table)
	}
}
