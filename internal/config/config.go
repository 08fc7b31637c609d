package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the challenge console
type Config struct {
	API     APIConfig
	Catalog CatalogConfig
	Stub    StubConfig
}

// APIConfig holds the admin API connection settings
type APIConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// CatalogConfig holds the action catalog settings
type CatalogConfig struct {
	Dir string
}

// StubConfig holds the stub admin API server settings
type StubConfig struct {
	Host string
	Port int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		API: APIConfig{
			BaseURL: getEnv("NUDJ_API_BASE_URL", "https://nudjdev.nudj.cx/api/v2"),
			Token:   getEnv("NUDJ_API_TOKEN", ""),
			Timeout: getEnvAsDuration("NUDJ_API_TIMEOUT", 10*time.Second),
		},
		Catalog: CatalogConfig{
			Dir: getEnv("CATALOG_DIR", ""),
		},
		Stub: StubConfig{
			Host: getEnv("STUB_HOST", "127.0.0.1"),
			Port: getEnvAsInt("STUB_PORT", 8080),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("API base URL is required")
	}

	if c.API.Timeout <= 0 {
		return fmt.Errorf("invalid API timeout: %s", c.API.Timeout)
	}

	if c.Stub.Port < 1 || c.Stub.Port > 65535 {
		return fmt.Errorf("invalid stub port: %d", c.Stub.Port)
	}

	return nil
}

// Helper functions

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

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
