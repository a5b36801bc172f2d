package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/wordsmith-api/internal/config"
	"github.com/phrazzld/wordsmith-api/internal/platform/logger"
)

// restoreDefault keeps tests from leaking their logger into other tests.
func restoreDefault(t *testing.T) {
	t.Helper()
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })
}

func TestSetupWithWriterLevels(t *testing.T) {
	tests := []struct {
		name       string
		level      string
		wantDebug  bool
		wantInfo   bool
		wantErrors bool
	}{
		{name: "debug", level: "debug", wantDebug: true, wantInfo: true, wantErrors: true},
		{name: "info", level: "info", wantDebug: false, wantInfo: true, wantErrors: true},
		{name: "error", level: "ERROR", wantDebug: false, wantInfo: false, wantErrors: true},
		{name: "invalid falls back to info", level: "chatty", wantDebug: false, wantInfo: true, wantErrors: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			restoreDefault(t)
			var buf bytes.Buffer

			l, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: tc.level}, &buf)
			require.NoError(t, err)
			require.NotNil(t, l)

			l.Debug("debug message")
			l.Info("info message")
			l.Error("error message")

			out := buf.String()
			assert.Equal(t, tc.wantDebug, strings.Contains(out, "debug message"))
			assert.Equal(t, tc.wantInfo, strings.Contains(out, "info message"))
			assert.Equal(t, tc.wantErrors, strings.Contains(out, "error message"))
		})
	}
}

func TestSetupWritesJSONAndSetsDefault(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer

	_, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: "info"}, &buf)
	require.NoError(t, err)

	slog.Info("through default", "component", "test")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "through default", entry["msg"])
	assert.Equal(t, "test", entry["component"])
	assert.Equal(t, "INFO", entry["level"])
}

func TestContextLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	custom := slog.New(slog.NewJSONHandler(&buf, nil)).With("trace_id", "abc")
	fallback := slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))

	t.Run("returns stored logger", func(t *testing.T) {
		ctx := logger.WithLogger(context.Background(), custom)
		assert.Same(t, custom, logger.FromContext(ctx))
		assert.Same(t, custom, logger.FromContextOrDefault(ctx, fallback))
	})

	t.Run("falls back when absent", func(t *testing.T) {
		assert.Same(t, fallback, logger.FromContextOrDefault(context.Background(), fallback))
		assert.NotNil(t, logger.FromContext(context.Background()))
	})

	t.Run("nil context", func(t *testing.T) {
		//nolint:staticcheck // nil context is handled explicitly
		assert.Same(t, fallback, logger.FromContextOrDefault(nil, fallback))
	})
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	level, ok := logger.ParseLevel("WARN")
	assert.True(t, ok)
	assert.Equal(t, slog.LevelWarn, level)

	level, ok = logger.ParseLevel("")
	assert.False(t, ok)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestTestLogBuffer(t *testing.T) {
	t.Parallel()

	buf, log := logger.NewTestLogger(slog.LevelInfo)
	log.Debug("hidden")
	log.Info("first", "n", 1)
	log.Warn("second")

	entries, err := buf.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "first", entries[0]["msg"])
	assert.EqualValues(t, 1, entries[0]["n"])
	assert.Equal(t, "WARN", entries[1]["level"])

	one, single := logger.NewTestLogger(slog.LevelDebug)
	single.Debug("only")
	assert.Equal(t, "only", logger.SingleEntry(t, one)["msg"])
}
