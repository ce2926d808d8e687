// Package config loads the application configuration for the flightboard
// executables. Configuration lives in a JSON file; sensitive values can
// be overridden through environment variables.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mtilvans/flightboard/pkg/card"
)

// Config is the complete application configuration.
type Config struct {
	Card     card.Options   `json:"card"`
	Zone     ZoneConfig     `json:"zone"`
	Feed     FeedConfig     `json:"feed"`
	Database DatabaseConfig `json:"database"`

	// UpdateIntervalSeconds is how often the feed is polled
	UpdateIntervalSeconds int `json:"update_interval_seconds"`
}

// ZoneConfig is the reference point the card measures distances from.
// It is published into host state under the card's zone entity ID.
type ZoneConfig struct {
	// Name is a friendly identifier for the location
	Name string `json:"name"`

	// Latitude in decimal degrees (-90 to +90)
	Latitude float64 `json:"latitude"`

	// Longitude in decimal degrees (-180 to +180)
	Longitude float64 `json:"longitude"`
}

// FeedConfig is the live aircraft data source.
type FeedConfig struct {
	// BaseURL is the API base URL
	BaseURL string `json:"base_url"`

	// RequestsPerSecond caps the API call rate
	// airplanes.live allows 1 request per second
	RequestsPerSecond float64 `json:"requests_per_second"`

	// RadiusNM is the point-query radius in nautical miles (max 250)
	RadiusNM float64 `json:"radius_nm"`
}

// DatabaseConfig contains the optional enrichment database settings.
// When disabled, the popup shows un-enriched aircraft data.
type DatabaseConfig struct {
	// Enabled determines whether the enrichment database is used
	Enabled bool `json:"enabled"`

	// Host is the database server hostname
	Host string `json:"host"`

	// Port is the database server port
	Port int `json:"port"`

	// Database is the database name
	Database string `json:"database"`

	// Username for database authentication
	Username string `json:"username"`

	// Password for database authentication (prefer the environment)
	Password string `json:"password"`

	// SSLMode for PostgreSQL connections (disable, require, verify-ca, verify-full)
	SSLMode string `json:"ssl_mode"`

	// MaxOpenConns is the maximum number of open connections
	MaxOpenConns int `json:"max_open_conns"`

	// MaxIdleConns is the maximum number of idle connections
	MaxIdleConns int `json:"max_idle_conns"`
}

// Load reads configuration from a JSON file.
// If the file doesn't exist, returns the default configuration.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()
	return cfg, nil
}

// Save writes the configuration to a JSON file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Card: card.Options{
			Entity: "sensor.planes",
			Zone:   "zone.home",
		},
		Zone: ZoneConfig{
			Name: "Home",
		},
		Feed: FeedConfig{
			BaseURL:           "https://api.airplanes.live/v2",
			RequestsPerSecond: 1.0,
			RadiusNM:          50.0,
		},
		Database: DatabaseConfig{
			Enabled:      false,
			Host:         "localhost",
			Port:         5432,
			Database:     "flightboard",
			Username:     "flightboard",
			SSLMode:      "disable",
			MaxOpenConns: 25,
			MaxIdleConns: 5,
		},
		UpdateIntervalSeconds: 5,
	}
}

// applyEnvironmentOverrides applies environment variable overrides.
// This keeps sensitive data like passwords out of config files.
func (c *Config) applyEnvironmentOverrides() {
	if dbPassword := os.Getenv("FLIGHTBOARD_DB_PASSWORD"); dbPassword != "" {
		c.Database.Password = dbPassword
	}
	if feedURL := os.Getenv("FLIGHTBOARD_FEED_URL"); feedURL != "" {
		c.Feed.BaseURL = feedURL
	}
	if entity := os.Getenv("FLIGHTBOARD_ENTITY"); entity != "" {
		c.Card.Entity = entity
	}
}
