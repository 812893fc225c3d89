package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries everything the service reads from the environment. Values are
// loaded once in main and passed down explicitly; nothing in the engine reads
// ambient state.
type Config struct {
	Port           string
	SyncKey        string
	AllowedOrigins []string
	StoreDriver    string // "postgres" or "memory"
	SchemaVersion  int
	LogLevel       string
	Database       DatabaseConfig
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// LoadConfig reads configuration from the environment, with optional .env
// support for local development.
func LoadConfig() *Config {
	// .env file is optional; environment variables win when both are set.
	_ = godotenv.Load()

	schemaVersion, err := strconv.Atoi(getEnv("SCHEMA_VERSION", "1"))
	if err != nil || schemaVersion < 1 {
		schemaVersion = 1
	}

	return &Config{
		Port:           getEnv("PORT", "8080"),
		SyncKey:        getEnv("SYNC_KEY", ""),
		AllowedOrigins: splitOrigins(getEnv("ALLOWED_ORIGINS", "*")),
		StoreDriver:    getEnv("STORE_DRIVER", "postgres"),
		SchemaVersion:  schemaVersion,
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "password"),
			DBName:   getEnv("DB_NAME", "hutangledger"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
