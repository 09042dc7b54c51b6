package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// maxEngineBatchSize is the ceiling for a single batched write against the store.
const maxEngineBatchSize = 500

// Config holds all application configuration
type Config struct {
	// Server
	Port        string
	Environment string

	// Database
	DatabaseURL string

	// JWT (tokens are issued by the auth service, we only validate them)
	JWTSecret string

	// Background Workers
	WorkerCount int

	// CORS
	AllowedOrigins []string

	// Email (Resend)
	ResendAPIKey             string
	FromEmail                string
	EnableEmailNotifications bool

	// Sentry
	SentryDSN string

	// Loan lifecycle engine
	EngineInterval      time.Duration
	CollectionsInterval time.Duration
	EngineBatchSize     int
	EngineConcurrency   int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:                     getEnv("PORT", "8080"),
		Environment:              getEnv("ENVIRONMENT", "development"),
		DatabaseURL:              getEnv("DATABASE_URL", ""),
		JWTSecret:                getEnv("JWT_SECRET", ""),
		WorkerCount:              getEnvAsInt("WORKER_COUNT", 5),
		AllowedOrigins:           getEnvAsSlice("ALLOWED_ORIGINS", []string{"*"}),
		ResendAPIKey:             getEnv("RESEND_API_KEY", ""),
		FromEmail:                getEnv("FROM_EMAIL", "noreply@fintera.app"),
		EnableEmailNotifications: getEnvAsBool("ENABLE_EMAIL_NOTIFICATIONS", false),
		SentryDSN:                getEnv("SENTRY_DSN", ""),
		EngineInterval:           time.Duration(getEnvAsInt("ENGINE_INTERVAL_MINUTES", 60)) * time.Minute,
		CollectionsInterval:      time.Duration(getEnvAsInt("COLLECTIONS_INTERVAL_MINUTES", 360)) * time.Minute,
		EngineBatchSize:          getEnvAsInt("ENGINE_BATCH_SIZE", 400),
		EngineConcurrency:        getEnvAsInt("ENGINE_CONCURRENCY", 8),
	}

	// Validate required configuration
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.JWTSecret == "" && cfg.Environment == "production" {
		return nil, fmt.Errorf("JWT_SECRET is required in production")
	}

	// Set default JWT secret for development
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-secret-change-in-production"
	}

	cfg.normalizeEngine()

	return cfg, nil
}

// normalizeEngine clamps engine settings to values the store can handle
func (c *Config) normalizeEngine() {
	if c.EngineBatchSize <= 0 {
		c.EngineBatchSize = 400
	}
	if c.EngineBatchSize > maxEngineBatchSize {
		c.EngineBatchSize = maxEngineBatchSize
	}
	if c.EngineConcurrency <= 0 {
		c.EngineConcurrency = 1
	}
	if c.EngineInterval <= 0 {
		c.EngineInterval = time.Hour
	}
	if c.CollectionsInterval <= 0 {
		c.CollectionsInterval = 6 * time.Hour
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt reads an environment variable as integer
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool reads an environment variable as boolean
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsSlice reads an environment variable as comma-separated slice
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
