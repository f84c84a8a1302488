package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for challenge-engine
type Config struct {
	App       AppConfig
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Ollama    OllamaConfig
	Catalog   CatalogConfig
	RateLimit RateLimitConfig
	Cleanup   CleanupConfig
}

// AppConfig holds service identity and debug settings
type AppConfig struct {
	Name     string
	Version  string
	Debug    bool
	LogLevel slog.Level
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host           string
	Port           int
	RequestTimeout time.Duration
}

// DatabaseConfig holds PostgreSQL configuration.
// An empty DSN selects the in-memory repository.
type DatabaseConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// OllamaConfig holds the chat model endpoint configuration
type OllamaConfig struct {
	URL     string
	Model   string
	Timeout time.Duration
}

// CatalogConfig holds the optional category override file
type CatalogConfig struct {
	File string
}

// RateLimitConfig holds challenge generation limits
type RateLimitConfig struct {
	PerMinute int
}

// CleanupConfig holds retention worker configuration
type CleanupConfig struct {
	Interval  time.Duration
	Retention time.Duration
}

// Load loads configuration from environment variables, reading a .env file first if present
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	debug := getEnvAsBool("DEBUG", false)

	cfg := &Config{
		App: AppConfig{
			Name:     getEnv("APP_NAME", "RealWorldCase API"),
			Version:  getEnv("APP_VERSION", "0.0.1"),
			Debug:    debug,
			LogLevel: getEnvAsLevel("LOG_LEVEL", defaultLevel(debug)),
		},
		Server: ServerConfig{
			Host:           getEnv("HOST", "0.0.0.0"),
			Port:           getEnvAsInt("PORT", 8000),
			RequestTimeout: getEnvAsDuration("REQUEST_TIMEOUT", 120*time.Second),
		},
		Database: DatabaseConfig{
			DSN:          getEnv("DATABASE_DSN", ""),
			MaxOpenConns: getEnvAsInt("DATABASE_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getEnvAsInt("DATABASE_MAX_IDLE_CONNS", 2),
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDRESS", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Ollama: OllamaConfig{
			URL:     getEnv("OLLAMA_URL", "http://localhost:11434"),
			Model:   getEnv("OLLAMA_MODEL", "gemma3:4b"),
			Timeout: getEnvAsDuration("OLLAMA_TIMEOUT", 90*time.Second),
		},
		Catalog: CatalogConfig{
			File: getEnv("CATALOG_FILE", ""),
		},
		RateLimit: RateLimitConfig{
			PerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 10),
		},
		Cleanup: CleanupConfig{
			Interval:  getEnvAsDuration("CLEANUP_INTERVAL", time.Hour),
			Retention: getEnvAsDuration("RETENTION_PERIOD", 30*24*time.Hour),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Ollama.URL == "" {
		return fmt.Errorf("ollama URL is required")
	}

	if c.Ollama.Model == "" {
		return fmt.Errorf("ollama model is required")
	}

	if c.Cleanup.Retention < 0 {
		return fmt.Errorf("retention period must not be negative: %s", c.Cleanup.Retention)
	}

	return nil
}

// Helper functions

func defaultLevel(debug bool) slog.Level {
	if debug {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsLevel(key string, defaultValue slog.Level) slog.Level {
	if value, exists := os.LookupEnv(key); exists {
		var level slog.Level
		if err := level.UnmarshalText([]byte(strings.TrimSpace(value))); err == nil {
			return level
		}
	}
	return defaultValue
}
