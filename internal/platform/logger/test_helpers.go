package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// TestLogBuffer is a thread-safe buffer for capturing log output in tests.
type TestLogBuffer struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

// Write implements io.Writer for TestLogBuffer.
func (b *TestLogBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// String returns the buffer contents as a string.
func (b *TestLogBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Entries parses the buffer contents as JSON log entries, one per line.
func (b *TestLogBuffer) Entries() ([]map[string]any, error) {
	lines := strings.Split(b.String(), "\n")
	entries := make([]map[string]any, 0, len(lines))

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// NewTestLogger returns a JSON logger writing to a fresh buffer at level.
// The slog default is left untouched so tests can run in parallel.
func NewTestLogger(level slog.Level) (*TestLogBuffer, *slog.Logger) {
	buf := &TestLogBuffer{}
	return buf, slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: level}))
}

// SingleEntry parses buf and fails the test unless exactly one entry was logged.
func SingleEntry(t *testing.T, buf *TestLogBuffer) map[string]any {
	t.Helper()

	entries, err := buf.Entries()
	if err != nil {
		t.Fatalf("failed to parse log output %q: %v", buf.String(), err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly one log entry, got %d: %s", len(entries), buf.String())
	}
	return entries[0]
}
