// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the service configuration that can be loaded from a
// JSON file. All fields are optional; missing values use defaults or must
// be provided via CLI flags or environment variables.
type Config struct {
	// Server
	Port int `json:"port,omitempty"` // HTTP listen port

	// External services
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL (optional archive)

	// Outbound call pacing. The provider enforces a tokens-per-minute
	// ceiling; these settings derive the spacing between advisor calls.
	TokensPerMinute  float64 `json:"tokens_per_minute,omitempty"`  // Provider token budget per minute
	TokensPerCall    float64 `json:"tokens_per_call,omitempty"`    // Estimated tokens per advisor call
	SafetyMargin     float64 `json:"safety_margin,omitempty"`      // Fraction of the budget actually used (0-1]
	MaxRetryAttempts int     `json:"max_retry_attempts,omitempty"` // Attempt budget for rate-limited panels

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// Defaults returns the baseline configuration matching the provider's
// free-tier limits.
func Defaults() Config {
	return Config{
		Port:             8002,
		TokensPerMinute:  8000,
		TokensPerCall:    2150,
		SafetyMargin:     0.8,
		MaxRetryAttempts: 5,
	}
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

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be in [0, 65535]")
	}
	if c.TokensPerMinute < 0 {
		return fmt.Errorf("config error: 'tokens_per_minute' must be non-negative")
	}
	if c.TokensPerCall < 0 {
		return fmt.Errorf("config error: 'tokens_per_call' must be non-negative")
	}
	if c.SafetyMargin < 0 || c.SafetyMargin > 1 {
		return fmt.Errorf("config error: 'safety_margin' must be in [0, 1]")
	}
	if c.MaxRetryAttempts < 0 {
		return fmt.Errorf("config error: 'max_retry_attempts' must be non-negative")
	}
	return nil
}

// MergeWithDefaults fills unset fields from defaults and the environment.
// GEMINI_API_KEY and DATABASE_URL are consulted when the corresponding
// fields are empty.
func (c Config) MergeWithDefaults(defaults Config) Config {
	if c.Port == 0 {
		c.Port = defaults.Port
	}
	if c.TokensPerMinute == 0 {
		c.TokensPerMinute = defaults.TokensPerMinute
	}
	if c.TokensPerCall == 0 {
		c.TokensPerCall = defaults.TokensPerCall
	}
	if c.SafetyMargin == 0 {
		c.SafetyMargin = defaults.SafetyMargin
	}
	if c.MaxRetryAttempts == 0 {
		c.MaxRetryAttempts = defaults.MaxRetryAttempts
	}
	if c.APIKey == "" {
		c.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	return c
}
