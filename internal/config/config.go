// Package config provides configuration loading and validation for the job
// board server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jonathan/contract-board/internal/search"
)

// Defaults applied by MergeWithDefaults and LoadFromEnv
const (
	DefaultPort           = 8080
	DefaultSearchTimezone = search.DefaultTimezone
	DefaultCORSOrigin     = "*"
)

// Config represents the server configuration. It can be loaded from a JSON
// file, from the environment, or both; file values act as defaults for
// anything the environment leaves unset.
type Config struct {
	DatabaseURL    string `json:"database_url,omitempty"`    // PostgreSQL connection URL
	Port           int    `json:"port,omitempty"`            // HTTP listen port
	SearchTimezone string `json:"search_timezone,omitempty"` // IANA zone whose day "today" refers to
	CORSOrigin     string `json:"cors_origin,omitempty"`     // Access-Control-Allow-Origin value

	ReadTimeoutSeconds  int `json:"read_timeout_seconds,omitempty"`
	WriteTimeoutSeconds int `json:"write_timeout_seconds,omitempty"`

	Verbose bool `json:"verbose,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// LoadFromEnv reads DATABASE_URL, PORT, SEARCH_TIMEZONE, CORS_ORIGIN,
// HTTP_READ_TIMEOUT_SECONDS and HTTP_WRITE_TIMEOUT_SECONDS. Unset variables
// leave their fields zero.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		SearchTimezone: os.Getenv("SEARCH_TIMEZONE"),
		CORSOrigin:     os.Getenv("CORS_ORIGIN"),
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"PORT", &cfg.Port},
		{"HTTP_READ_TIMEOUT_SECONDS", &cfg.ReadTimeoutSeconds},
		{"HTTP_WRITE_TIMEOUT_SECONDS", &cfg.WriteTimeoutSeconds},
	}
	for _, v := range ints {
		raw := os.Getenv(v.key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %v", v.key, err)
		}
		*v.dst = n
	}

	return cfg, nil
}

// Validate checks that the configuration has valid values.
// DatabaseURL is not required here; commands that need it check it.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535, got %d", c.Port)
	}
	if c.ReadTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'read_timeout_seconds' must be non-negative")
	}
	if c.WriteTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'write_timeout_seconds' must be non-negative")
	}
	if c.SearchTimezone != "" {
		if _, err := time.LoadLocation(c.SearchTimezone); err != nil {
			return fmt.Errorf("config error: unknown search_timezone %q: %v", c.SearchTimezone, err)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero fields filled from
// defaults, then from the package defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.SearchTimezone == "" {
		result.SearchTimezone = defaults.SearchTimezone
	}
	if result.CORSOrigin == "" {
		result.CORSOrigin = defaults.CORSOrigin
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.ReadTimeoutSeconds == 0 {
		result.ReadTimeoutSeconds = defaults.ReadTimeoutSeconds
	}
	if result.WriteTimeoutSeconds == 0 {
		result.WriteTimeoutSeconds = defaults.WriteTimeoutSeconds
	}

	// Bools cannot distinguish unset from false, so either side enables
	result.Verbose = result.Verbose || defaults.Verbose

	if result.Port == 0 {
		result.Port = DefaultPort
	}
	if result.SearchTimezone == "" {
		result.SearchTimezone = DefaultSearchTimezone
	}
	if result.CORSOrigin == "" {
		result.CORSOrigin = DefaultCORSOrigin
	}
	if result.ReadTimeoutSeconds == 0 {
		result.ReadTimeoutSeconds = 15
	}
	if result.WriteTimeoutSeconds == 0 {
		result.WriteTimeoutSeconds = 30
	}

	return result
}

// Location resolves SearchTimezone, falling back to UTC when it is empty
func (c *Config) Location() (*time.Location, error) {
	if c.SearchTimezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.SearchTimezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load time zone %q: %w", c.SearchTimezone, err)
	}
	return loc, nil
}
