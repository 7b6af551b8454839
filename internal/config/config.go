// Package config loads and validates taxseva configuration from YAML, with
// environment variable overrides for the common knobs.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all taxseva configuration.
type Config struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Record collection source
	Data DataConfig `yaml:"data"`

	// Payee identity on generated UPI URIs
	Merchant MerchantConfig `yaml:"merchant"`

	// Simulated payment behavior
	Payment PaymentConfig `yaml:"payment"`

	// TUI settings
	UI UIConfig `yaml:"ui"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// DataConfig locates the building records file.
type DataConfig struct {
	Path string `yaml:"path"`
}

// MerchantConfig identifies the municipal payee.
type MerchantConfig struct {
	VPA  string `yaml:"vpa"`
	Name string `yaml:"name"`
}

// PaymentConfig configures the payment simulator.
type PaymentConfig struct {
	LatencyMS int `yaml:"latency_ms"`
}

// Latency returns the simulated network delay as a duration.
func (p PaymentConfig) Latency() time.Duration {
	return time.Duration(p.LatencyMS) * time.Millisecond
}

// UIConfig configures the terminal interface.
type UIConfig struct {
	Theme string `yaml:"theme"` // light, dark, or auto
}

// LoggingConfig configures the categorized file logger.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Level      string          `yaml:"level"`
	Categories map[string]bool `yaml:"categories"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Name:    "taxseva",
		Version: "1.0.0",
		Data: DataConfig{
			Path: "data/buildings.json",
		},
		Merchant: MerchantConfig{
			VPA:  "taxseva@upi",
			Name: "TAXSEVA",
		},
		Payment: PaymentConfig{
			LatencyMS: 2500,
		},
		UI: UIConfig{
			Theme: "auto",
		},
		Logging: LoggingConfig{
			DebugMode: false,
			Level:     "info",
		},
	}
}

// Load reads config from path, falling back to defaults when the file does
// not exist. Environment overrides are applied last.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the config to path, creating parent directories as needed.
func (c Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

// applyEnvOverrides layers TAXSEVA_* environment variables over the config.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("TAXSEVA_DATA"); v != "" {
		c.Data.Path = v
	}
	if v := os.Getenv("TAXSEVA_MERCHANT_VPA"); v != "" {
		c.Merchant.VPA = v
	}
	if v := os.Getenv("TAXSEVA_MERCHANT_NAME"); v != "" {
		c.Merchant.Name = v
	}
	if v := os.Getenv("TAXSEVA_THEME"); v != "" {
		c.UI.Theme = v
	}
	if os.Getenv("TAXSEVA_DEBUG") == "1" {
		c.Logging.DebugMode = true
	}
}

// Validate checks the config for values the wizard cannot run with.
func (c Config) Validate() error {
	if c.Data.Path == "" {
		return fmt.Errorf("data.path is required")
	}
	if c.Merchant.VPA == "" {
		return fmt.Errorf("merchant.vpa is required")
	}
	if c.Payment.LatencyMS < 0 {
		return fmt.Errorf("payment.latency_ms must not be negative")
	}
	switch c.UI.Theme {
	case "", "auto", "light", "dark":
	default:
		return fmt.Errorf("ui.theme must be auto, light, or dark (got %q)", c.UI.Theme)
	}
	return nil
}
