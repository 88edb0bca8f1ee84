// Package common provides shared utilities for WealthFlow
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for WealthFlow
type Config struct {
	Environment string        `toml:"environment"`
	Server      ServerConfig  `toml:"server"`
	Storage     StorageConfig `toml:"storage"`
	Sync        SyncConfig    `toml:"sync"`
	Advisor     AdvisorConfig `toml:"advisor"`
	Auth        AuthConfig    `toml:"auth"`
	Logging     LoggingConfig `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig holds SurrealDB connection configuration.
type StorageConfig struct {
	Address   string `toml:"address"`
	Namespace string `toml:"namespace"`
	Database  string `toml:"database"`
	Username  string `toml:"username"`
	Password  string `toml:"password"`
}

// SyncConfig holds persistence synchronizer tuning.
type SyncConfig struct {
	// Debounce is the quiet period after the last mutation before the
	// aggregate is flushed to the store. Bursts of mutations inside the
	// window collapse into a single merge write.
	Debounce string `toml:"debounce"`
}

// GetDebounce parses and returns the debounce window duration.
func (c *SyncConfig) GetDebounce() time.Duration {
	d, err := time.ParseDuration(c.Debounce)
	if err != nil || d <= 0 {
		return time.Second
	}
	return d
}

// AdvisorConfig holds Gemini advisory client configuration
type AdvisorConfig struct {
	APIKey    string `toml:"api_key"`
	Model     string `toml:"model"`
	Timeout   string `toml:"timeout"`
	RateLimit int    `toml:"rate_limit"` // requests per minute
}

// GetTimeout parses and returns the advisory call timeout
func (c *AdvisorConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// AuthConfig holds JWT authentication configuration.
type AuthConfig struct {
	JWTSecret   string `toml:"jwt_secret"`
	TokenExpiry string `toml:"token_expiry"` // duration string, default "24h"
}

// GetTokenExpiry parses and returns the token expiry duration.
func (c *AuthConfig) GetTokenExpiry() time.Duration {
	d, err := time.ParseDuration(c.TokenExpiry)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: StorageConfig{
			Address:   "ws://localhost:8000/rpc",
			Namespace: "wealthflow",
			Database:  "wealthflow",
			Username:  "root",
			Password:  "root",
		},
		Sync: SyncConfig{
			Debounce: "1s",
		},
		Advisor: AdvisorConfig{
			Model:     "gemini-2.5-flash",
			Timeout:   "30s",
			RateLimit: 10,
		},
		Auth: AuthConfig{
			JWTSecret:   "dev-jwt-secret-change-in-production",
			TokenExpiry: "24h",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("WEALTHFLOW_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("WEALTHFLOW_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("WEALTHFLOW_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("WEALTHFLOW_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if addr := os.Getenv("WEALTHFLOW_STORAGE_ADDRESS"); addr != "" {
		config.Storage.Address = addr
	}
	if ns := os.Getenv("WEALTHFLOW_STORAGE_NAMESPACE"); ns != "" {
		config.Storage.Namespace = ns
	}
	if db := os.Getenv("WEALTHFLOW_STORAGE_DATABASE"); db != "" {
		config.Storage.Database = db
	}
	if user := os.Getenv("WEALTHFLOW_STORAGE_USERNAME"); user != "" {
		config.Storage.Username = user
	}
	if pass := os.Getenv("WEALTHFLOW_STORAGE_PASSWORD"); pass != "" {
		config.Storage.Password = pass
	}

	if d := os.Getenv("WEALTHFLOW_SYNC_DEBOUNCE"); d != "" {
		config.Sync.Debounce = d
	}

	// Advisor overrides. GEMINI_API_KEY is the conventional env name
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		config.Advisor.APIKey = key
	}
	if key := os.Getenv("WEALTHFLOW_GEMINI_API_KEY"); key != "" {
		config.Advisor.APIKey = key
	}
	if model := os.Getenv("WEALTHFLOW_GEMINI_MODEL"); model != "" {
		config.Advisor.Model = model
	}

	if v := os.Getenv("WEALTHFLOW_AUTH_JWT_SECRET"); v != "" {
		config.Auth.JWTSecret = v
	}
	if v := os.Getenv("WEALTHFLOW_AUTH_TOKEN_EXPIRY"); v != "" {
		config.Auth.TokenExpiry = v
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
