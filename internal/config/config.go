package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Storage backend names
const (
	StorageBackendMemory   = "memory"
	StorageBackendLocal    = "local"
	StorageBackendPostgres = "postgres"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	Environment string
	ServiceName string
	Version     string

	// StorageBackend selects the persistence gateway: memory, local or postgres
	StorageBackend string
	// LocalAppName is the app name for the local (on-device) data store
	LocalAppName string
	DBUser       string
	DBPassword   string
	DBHost       string
	DBPort       string
	DBName       string

	Tuning Tuning
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
		Environment:    getEnv("ENVIRONMENT", "dev"),
		ServiceName:    getEnv("SERVICE_NAME", "gardencore"),
		Version:        getEnv("VERSION", "dev"),
		StorageBackend: getEnv("STORAGE_BACKEND", StorageBackendLocal),
		LocalAppName:   getEnv("LOCAL_APP_NAME", "gardencore"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", "postgres"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBName:         getEnv("DB_NAME", "gardencore"),
		Tuning:         DefaultTuning(),
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	switch cfg.StorageBackend {
	case StorageBackendMemory, StorageBackendLocal, StorageBackendPostgres:
	default:
		return nil, fmt.Errorf("invalid STORAGE_BACKEND value: %s", cfg.StorageBackend)
	}

	if err := cfg.Tuning.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tuning: %w", err)
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
