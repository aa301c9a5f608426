package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	ServerPort     int
	StorageDriver  string // "sqlite" or "memory"
	DatabasePath   string
	JWTSecret      string
	TokenTTL       time.Duration
	AllowedOrigins []string
	LogLevel       string
	AdminEmail     string // optional bootstrap admin account
	AdminPassword  string
}

// Load loads configuration from environment variables or sets defaults.
// JWT_SECRET has no default; the server refuses to start without one.
func Load() (*Config, error) {
	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	ttlHours, err := strconv.Atoi(getEnv("TOKEN_TTL_HOURS", "24"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL_HOURS: %w", err)
	}

	driver := getEnv("STORAGE_DRIVER", "sqlite")
	if driver != "sqlite" && driver != "memory" {
		return nil, fmt.Errorf("invalid STORAGE_DRIVER %q: want sqlite or memory", driver)
	}

	return &Config{
		ServerPort:     port,
		StorageDriver:  driver,
		DatabasePath:   getEnv("DATABASE_PATH", "./stayfinder.db"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		TokenTTL:       time.Duration(ttlHours) * time.Hour,
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ","),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AdminEmail:     getEnv("ADMIN_EMAIL", ""),
		AdminPassword:  getEnv("ADMIN_PASSWORD", ""),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
