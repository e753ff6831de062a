// Package config provides configuration loading and validation for the CLI,
// plus the JWT and password settings the admin surface reads from the
// environment.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/parkerjr2/seogen/internal/rules"
)

// Config is the optional JSON config file. All fields are optional; missing
// values use defaults or come from environment variables and CLI flags.
type Config struct {
	// Validation thresholds applied to every generated page. Zero fields
	// fall back to the documented defaults.
	Thresholds rules.Thresholds `json:"thresholds,omitempty"`

	// Worker tuning. Zero fields fall back to the worker's built-in
	// defaults.
	Worker WorkerConfig `json:"worker,omitempty"`

	// Connections and behavior
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	APIKey      string `json:"api_key,omitempty"`      // LLM API key
	Model       string `json:"model,omitempty"`        // LLM model override
	Port        int    `json:"port,omitempty"`         // HTTP listen port
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
}

// WorkerConfig tunes the bulk queue worker.
type WorkerConfig struct {
	BatchLimit        int `json:"batch_limit,omitempty"`         // Items pulled per poll
	Concurrency       int `json:"concurrency,omitempty"`         // In-flight generations per worker
	RetryLimit        int `json:"retry_limit,omitempty"`         // Attempts before an item fails
	MaxAttempts       int `json:"max_attempts,omitempty"`        // Hard pre-claim attempt ceiling
	StaleAfterMinutes int `json:"stale_after_minutes,omitempty"` // Running item age before reclaim
}

// DefaultConfig returns the documented default configuration. Worker fields
// stay zero because the worker fills its own defaults.
func DefaultConfig() Config {
	return Config{
		Thresholds: rules.DefaultThresholds(),
		Port:       8080,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
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

// Validate checks that the configuration has valid values. Required fields
// are not checked here; those are enforced by the commands after merging.
func (c *Config) Validate() error {
	// Thresholds are checked in their effective form, since zero fields
	// will be filled from the defaults before use.
	effective := c.Thresholds.MergeWithDefaults(rules.DefaultThresholds())
	if err := effective.Validate(); err != nil {
		return err
	}

	if c.Worker.BatchLimit < 0 {
		return fmt.Errorf("config error: 'worker.batch_limit' must be non-negative")
	}
	if c.Worker.Concurrency < 0 {
		return fmt.Errorf("config error: 'worker.concurrency' must be non-negative")
	}
	if c.Worker.RetryLimit < 0 {
		return fmt.Errorf("config error: 'worker.retry_limit' must be non-negative")
	}
	if c.Worker.MaxAttempts < 0 {
		return fmt.Errorf("config error: 'worker.max_attempts' must be non-negative")
	}
	if c.Worker.StaleAfterMinutes < 0 {
		return fmt.Errorf("config error: 'worker.stale_after_minutes' must be non-negative")
	}
	if c.Worker.MaxAttempts > 0 && c.Worker.RetryLimit > c.Worker.MaxAttempts {
		return fmt.Errorf("config error: 'worker.retry_limit' (%d) exceeds 'worker.max_attempts' (%d)",
			c.Worker.RetryLimit, c.Worker.MaxAttempts)
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' out of range: %d", c.Port)
	}

	return nil
}

// MergeWithDefaults returns a new Config with zero fields filled from
// defaults. Environment variables and CLI flags are applied on top of the
// merged result by the commands.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	result.Thresholds = result.Thresholds.MergeWithDefaults(defaults.Thresholds)

	if result.Worker.BatchLimit == 0 {
		result.Worker.BatchLimit = defaults.Worker.BatchLimit
	}
	if result.Worker.Concurrency == 0 {
		result.Worker.Concurrency = defaults.Worker.Concurrency
	}
	if result.Worker.RetryLimit == 0 {
		result.Worker.RetryLimit = defaults.Worker.RetryLimit
	}
	if result.Worker.MaxAttempts == 0 {
		result.Worker.MaxAttempts = defaults.Worker.MaxAttempts
	}
	if result.Worker.StaleAfterMinutes == 0 {
		result.Worker.StaleAfterMinutes = defaults.Worker.StaleAfterMinutes
	}

	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
