package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// ServerConfig holds the serve-mode configuration, read from the
// environment. Profile files stay on the CLI side; the server only needs
// runtime knobs.
type ServerConfig struct {
	Port         int
	DatabasePath string
	LogLevel     string
	DevMode      bool
}

// LoadServer reads server configuration from environment variables,
// loading a .env file first if one exists.
func LoadServer() (*ServerConfig, error) {
	_ = godotenv.Load()

	cfg := &ServerConfig{
		Port:         getEnvAsInt("FINSIM_PORT", 8080),
		DatabasePath: getEnv("FINSIM_DATABASE_PATH", "./data/simulations.db"),
		LogLevel:     getEnv("FINSIM_LOG_LEVEL", "info"),
		DevMode:      getEnvAsBool("FINSIM_DEV_MODE", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks if required configuration is present.
func (c *ServerConfig) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("FINSIM_DATABASE_PATH is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("FINSIM_PORT %d is out of range", c.Port)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
