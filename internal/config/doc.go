// Package config loads and validates the process-wide configuration for the
// Wordsmith API from environment variables, an optional .env file and an
// optional config.yaml.
package config
