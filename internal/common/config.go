// Package common provides shared utilities for Verdex
package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Verdex
type Config struct {
	Environment string        `toml:"environment"`
	Server      ServerConfig  `toml:"server"`
	Storage     StorageConfig `toml:"storage"`
	Clients     ClientsConfig `toml:"clients"`
	Logging     LoggingConfig `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig holds path configuration for the two storage areas.
type StorageConfig struct {
	Reports AreaConfig `toml:"reports"` // Generated PDF reports (filesystem)
	Cache   AreaConfig `toml:"cache"`   // Market snapshot cache (BadgerHold)
}

// AreaConfig holds path configuration for a storage area.
type AreaConfig struct {
	Path string `toml:"path"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	Yahoo YahooConfig `toml:"yahoo"`
	FX    FXConfig    `toml:"fx"`
}

// YahooConfig holds Yahoo Finance API configuration
type YahooConfig struct {
	BaseURL    string `toml:"base_url"`
	RateLimit  int    `toml:"rate_limit"`
	Timeout    string `toml:"timeout"`
	RetryCount int    `toml:"retry_count"`
	CacheTTL   string `toml:"cache_ttl"`
}

// GetTimeout parses and returns the timeout duration
func (c *YahooConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// GetCacheTTL parses and returns the snapshot cache TTL
func (c *YahooConfig) GetCacheTTL() time.Duration {
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return 15 * time.Minute
	}
	return d
}

// FXConfig holds exchange rate API configuration
type FXConfig struct {
	PrimaryURL   string  `toml:"primary_url"`
	SecondaryURL string  `toml:"secondary_url"`
	FallbackRate float64 `toml:"fallback_rate"`
	Timeout      string  `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *FXConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 10 * time.Second
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
			Reports: AreaConfig{Path: "data/reports"},
			Cache:   AreaConfig{Path: "data/cache"},
		},
		Clients: ClientsConfig{
			Yahoo: YahooConfig{
				BaseURL:    "https://query1.finance.yahoo.com",
				RateLimit:  5,
				Timeout:    "30s",
				RetryCount: 3,
				CacheTTL:   "15m",
			},
			FX: FXConfig{
				PrimaryURL:   "https://api.exchangerate-api.com/v4/latest/USD",
				SecondaryURL: "https://api.exchangerate.host/latest?base=USD&symbols=INR",
				FallbackRate: 87.80,
				Timeout:      "10s",
			},
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
	if env := os.Getenv("VERDEX_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("VERDEX_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("VERDEX_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("VERDEX_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if path := os.Getenv("VERDEX_DATA_PATH"); path != "" {
		config.Storage.Reports.Path = filepath.Join(path, "reports")
		config.Storage.Cache.Path = filepath.Join(path, "cache")
	}

	if url := os.Getenv("VERDEX_YAHOO_BASE_URL"); url != "" {
		config.Clients.Yahoo.BaseURL = url
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
