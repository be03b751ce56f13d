package config

import (
	"fmt"
	"os"
	"sync"

	"raffler/database"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	DatabaseURL  string
	DatabaseName string

	// NATS configuration. Empty disables event publishing.
	NATSServers string

	// Environment: "development" or "production"
	Environment string
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	// If instance is already set (e.g., by tests), return it
	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// SetForTesting replaces the global configuration instance
func SetForTesting(c *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = c
}

// GetDatabaseURL resolves the full connection URL for the raffle database
func (c *Config) GetDatabaseURL() string {
	return database.BuildDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// load loads configuration from the environment, with a local .env as
// optional overrides for development.
func load() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),
		NATSServers:  os.Getenv("NATS_SERVERS"),
		Environment:  getEnvWithDefault("ENVIRONMENT", "development"),
	}

	if config.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return config, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
