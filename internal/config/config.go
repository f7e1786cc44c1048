package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	// Server
	Port     string
	Env      string
	LogLevel string

	// Database
	DatabaseDriver string
	DatabaseURL    string
	SQLitePath     string
	MigrationsDir  string

	// Redis (optional, enables pub/sub fan-out of new messages)
	RedisURL string

	// Chat
	AskRateLimitPerMin int
	SeedLimit          int

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:               getEnvOrDefault("PORT", "8080"),
		Env:                getEnvOrDefault("ENV", "development"),
		LogLevel:           getEnvOrDefault("LOG_LEVEL", "info"),
		DatabaseDriver:     getEnvOrDefault("DATABASE_DRIVER", DriverPostgres),
		SQLitePath:         getEnvOrDefault("SQLITE_PATH", "./data/chat.db"),
		MigrationsDir:      getEnvOrDefault("MIGRATIONS_DIR", "migrations"),
		RedisURL:           getEnvOrDefault("REDIS_URL", ""),
		AskRateLimitPerMin: getEnvAsIntOrDefault("ASK_RATE_LIMIT_PER_MINUTE", 30),
		SeedLimit:          getEnvAsIntOrDefault("SEED_LIMIT", 20),
		FrontendURL:        getEnvOrDefault("FRONTEND_URL", "http://localhost:5173"),
	}

	switch cfg.DatabaseDriver {
	case DriverPostgres:
		cfg.DatabaseURL = mustGetEnv("DATABASE_URL")
	case DriverSQLite:
	default:
		panic(fmt.Sprintf("unsupported DATABASE_DRIVER %q (want %q or %q)", cfg.DatabaseDriver, DriverPostgres, DriverSQLite))
	}

	// The seed goes through the same limit check as getRecentMessages.
	if cfg.SeedLimit < 1 || cfg.SeedLimit > maxSeedLimit {
		panic(fmt.Sprintf("SEED_LIMIT must be between 1 and %d, got %d", maxSeedLimit, cfg.SeedLimit))
	}
	if cfg.AskRateLimitPerMin < 1 {
		panic(fmt.Sprintf("ASK_RATE_LIMIT_PER_MINUTE must be positive, got %d", cfg.AskRateLimitPerMin))
	}

	return cfg
}

const maxSeedLimit = 100

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
