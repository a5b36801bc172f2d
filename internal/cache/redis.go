package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/phrazzld/wordsmith-api/internal/config"
)

// DefaultKeyPrefix is used when the configuration leaves the prefix empty.
const DefaultKeyPrefix = "wordsmith:"

// RedisCache is a Cache backed by a Redis server. Values are JSON encoded and
// expire after the configured TTL; a zero TTL keeps them until evicted.
type RedisCache struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

var _ Cache = (*RedisCache)(nil)

// NewRedisCache connects to the Redis server at cfg.RedisURL
// (for example redis://:pass@host:6379/0) and pings it before returning.
func NewRedisCache(ctx context.Context, cfg config.CacheConfig, logger *slog.Logger) (*RedisCache, error) {
	if logger == nil {
		logger = slog.Default()
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	rdb := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}

	return &RedisCache{
		rdb:    rdb,
		prefix: prefix,
		ttl:    time.Duration(cfg.TTLSeconds) * time.Second,
		logger: logger.With(slog.String("component", "redis_cache")),
	}, nil
}

func (c *RedisCache) key(k string) string { return c.prefix + k }

// Get implements Cache.Get
func (c *RedisCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := c.rdb.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		// A value we cannot decode is as good as missing; drop it.
		c.logger.Warn("discarding undecodable cache entry", slog.String("key", key))
		_ = c.rdb.Del(ctx, c.key(key)).Err()
		return false, nil
	}
	return true, nil
}

// Set implements Cache.Set
func (c *RedisCache) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache value: %w", err)
	}
	return c.rdb.Set(ctx, c.key(key), raw, c.ttl).Err()
}

// Delete implements Cache.Delete
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, c.key(key)).Err()
}

// Close closes the Redis client.
func (c *RedisCache) Close() error { return c.rdb.Close() }
