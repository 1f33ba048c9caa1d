// Package config loads process-wide configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all server settings. It is built once at startup and
// passed by value into constructors; nothing mutates it afterwards.
type Config struct {
	// Server settings
	Addr            string        // listen address, e.g. ":3000"
	ShutdownTimeout time.Duration // grace period for in-flight requests on shutdown

	// Storage settings
	DatabasePath string // path to the SQLite database file

	// Auth settings
	JWTSecret      string        // HMAC signing secret, required
	AccessTokenTTL time.Duration // token lifetime

	// Rate limiting
	RateLimitRequests int           // max requests per window per client IP
	RateLimitWindow   time.Duration // rate limit window

	// Logging
	LogLevel slog.Level
}

// Load reads configuration from environment variables.
// A .env file in the working directory is loaded first if present.
func Load() (Config, error) {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	cfg := Config{
		Addr:              getEnv("ADDR", ":3000"),
		ShutdownTimeout:   getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		DatabasePath:      getEnv("DATABASE_PATH", "gotasker.db"),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		AccessTokenTTL:    getEnvAsDuration("ACCESS_TOKEN_TTL", 24*time.Hour),
		RateLimitRequests: getEnvAsInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   getEnvAsDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
		LogLevel:          parseLogLevel(getEnv("LOG_LEVEL", "info")),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks that required settings are present and sane.
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Addr == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	if c.AccessTokenTTL <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_TTL must be positive")
	}
	if c.RateLimitRequests <= 0 || c.RateLimitWindow <= 0 {
		return fmt.Errorf("rate limit settings must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
