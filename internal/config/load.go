package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "WORDSMITH"

// Default values applied before any file or environment source.
const (
	DefaultPort            = 8080
	DefaultLogLevel        = "info"
	DefaultShutdownTimeout = 10
	DefaultTokenExpiryMs   = 900000
	DefaultBcryptCost      = 10
	DefaultAPIVersion      = "v1"
	DefaultAPIDescription  = "Wordsmith blogging platform API"
	DefaultCacheTTLSeconds = 600
	DefaultCacheKeyPrefix  = "wordsmith:"
	DefaultKafkaTopic      = "wordsmith.events"
)

// keys lists every configuration key so each one can be bound to its
// environment variable explicitly. AutomaticEnv alone does not make
// Unmarshal see keys that have no default and no file value.
var keys = []string{
	"server.port",
	"server.log_level",
	"server.shutdown_timeout_seconds",
	"database.url",
	"database.max_open_conns",
	"database.max_idle_conns",
	"database.conn_max_lifetime_minutes",
	"auth.jwt_secret",
	"auth.token_expiry_ms",
	"auth.bcrypt_cost",
	"api.version",
	"api.description",
	"cache.redis_url",
	"cache.ttl_seconds",
	"cache.key_prefix",
	"events.kafka_brokers",
	"events.kafka_topic",
}

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// A .env file in the working directory, when present, is loaded into the
// process environment first without overriding variables that are already set.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("error binding env for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.log_level", DefaultLogLevel)
	v.SetDefault("server.shutdown_timeout_seconds", DefaultShutdownTimeout)
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime_minutes", 5)
	v.SetDefault("auth.token_expiry_ms", DefaultTokenExpiryMs)
	v.SetDefault("auth.bcrypt_cost", DefaultBcryptCost)
	v.SetDefault("api.version", DefaultAPIVersion)
	v.SetDefault("api.description", DefaultAPIDescription)
	v.SetDefault("cache.ttl_seconds", DefaultCacheTTLSeconds)
	v.SetDefault("cache.key_prefix", DefaultCacheKeyPrefix)
	v.SetDefault("events.kafka_topic", DefaultKafkaTopic)
}
