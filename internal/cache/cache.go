package cache

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/wordsmith-api/internal/platform/logger"
	"github.com/phrazzld/wordsmith-api/internal/redact"
)

// Cache stores JSON-serializable values by key.
type Cache interface {
	// Get decodes the value stored under key into dest and reports whether it was found.
	Get(ctx context.Context, key string, dest any) (bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value any) error

	// Delete evicts key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// PostKey is the cache key of a single post.
func PostKey(id int64) string {
	return fmt.Sprintf("post:%d", id)
}

// CategoryKey is the cache key of a single category.
func CategoryKey(id int) string {
	return fmt.Sprintf("category:%d", id)
}

// GetOrCompute returns the cached value for key, or calls compute and caches
// its result on a miss. Errors from compute are returned as-is and nothing is
// cached. Cache errors are logged and treated as a miss.
func GetOrCompute[T any](
	ctx context.Context,
	c Cache,
	key string,
	compute func(ctx context.Context) (T, error),
) (T, error) {
	log := logger.FromContext(ctx)

	var cached T
	found, err := c.Get(ctx, key, &cached)
	if err != nil {
		log.Warn("cache read failed",
			slog.String("key", key),
			slog.String("error", redact.Error(err)))
	} else if found {
		log.Debug("cache hit", slog.String("key", key))
		return cached, nil
	}

	value, err := compute(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	Put(ctx, c, key, value)
	return value, nil
}

// Put stores value under key, logging instead of returning failures.
func Put(ctx context.Context, c Cache, key string, value any) {
	if err := c.Set(ctx, key, value); err != nil {
		logger.FromContext(ctx).Warn("cache write failed",
			slog.String("key", key),
			slog.String("error", redact.Error(err)))
	}
}

// Evict removes key, logging instead of returning failures.
func Evict(ctx context.Context, c Cache, key string) {
	if err := c.Delete(ctx, key); err != nil {
		logger.FromContext(ctx).Warn("cache eviction failed",
			slog.String("key", key),
			slog.String("error", redact.Error(err)))
	}
}

// NoopCache never stores anything.
type NoopCache struct{}

var _ Cache = NoopCache{}

// Get always reports a miss.
func (NoopCache) Get(context.Context, string, any) (bool, error) { return false, nil }

// Set discards the value.
func (NoopCache) Set(context.Context, string, any) error { return nil }

// Delete does nothing.
func (NoopCache) Delete(context.Context, string) error { return nil }
