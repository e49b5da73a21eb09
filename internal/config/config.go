package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all client configuration.
type Config struct {
	Backend  BackendConfig
	Identity IdentityConfig
	Session  SessionConfig
	Logger   LoggerConfig
}

// BackendConfig holds settings for the realtime-database backend.
type BackendConfig struct {
	BaseURL string
	Timeout int // seconds
}

// IdentityConfig holds settings for the identity provider.
type IdentityConfig struct {
	BaseURL string
	APIKey  string
	Timeout int // seconds
}

// SessionConfig holds settings for the persisted session blob.
type SessionConfig struct {
	FilePath string
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Backend: BackendConfig{
			BaseURL: getEnv("BACKEND_URL", ""),
			Timeout: getEnvAsInt("BACKEND_TIMEOUT", 15),
		},
		Identity: IdentityConfig{
			BaseURL: getEnv("IDENTITY_URL", "https://identitytoolkit.googleapis.com"),
			APIKey:  getEnv("IDENTITY_API_KEY", ""),
			Timeout: getEnvAsInt("IDENTITY_TIMEOUT", 15),
		},
		Session: SessionConfig{
			FilePath: getEnv("SESSION_FILE", defaultSessionFile()),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend URL is required")
	}

	if !strings.HasPrefix(c.Backend.BaseURL, "http://") && !strings.HasPrefix(c.Backend.BaseURL, "https://") {
		return fmt.Errorf("invalid backend URL: %s", c.Backend.BaseURL)
	}

	if c.Backend.Timeout < 1 {
		return fmt.Errorf("backend timeout must be at least 1 second")
	}

	if c.Identity.BaseURL == "" {
		return fmt.Errorf("identity URL is required")
	}

	if c.Identity.APIKey == "" {
		return fmt.Errorf("identity API key is required")
	}

	if c.Identity.Timeout < 1 {
		return fmt.Errorf("identity timeout must be at least 1 second")
	}

	if c.Session.FilePath == "" {
		return fmt.Errorf("session file path is required")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	return nil
}

// defaultSessionFile returns the default location of the session blob.
func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".kartshop-session.json"
	}
	return home + "/.kartshop-session.json"
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
