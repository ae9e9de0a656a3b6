// Package config loads storefront configuration from
// .storefront/config.yaml with environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds all storefront configuration.
type Config struct {
	// APIURL is the backend base URL; /api is appended by the client.
	APIURL string `yaml:"api_url" envconfig:"API_URL"`

	// RequestTimeout bounds every backend call. Stored as a duration string
	// ("15s") so both the YAML file and env overrides accept the same form.
	RequestTimeout string `yaml:"request_timeout" envconfig:"REQUEST_TIMEOUT"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig controls the zap logger. Debug off means no log output at
// all, keeping the terminal free for the TUI.
type LoggingConfig struct {
	Debug bool   `yaml:"debug" envconfig:"LOG_DEBUG"`
	Level string `yaml:"level" envconfig:"LOG_LEVEL"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		APIURL:         "http://localhost:5000",
		RequestTimeout: "15s",
		Logging: LoggingConfig{
			Debug: false,
			Level: "info",
		},
	}
}

// Timeout parses the configured request timeout, falling back to the default
// when the value is unset or unparseable.
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.RequestTimeout)
	if err != nil || d <= 0 {
		return 15 * time.Second
	}
	return d
}

// Load reads .storefront/config.yaml under the workspace, falling back to
// defaults when the file is absent, then applies STOREFRONT_* environment
// overrides. A .env file in the workspace is loaded first when present.
func Load(workspace string) (*Config, error) {
	_ = godotenv.Load(filepath.Join(workspace, ".env"))

	cfg := DefaultConfig()

	path := filepath.Join(workspace, ".storefront", "config.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := envconfig.Process("storefront", cfg); err != nil {
		return nil, fmt.Errorf("failed to apply env overrides: %w", err)
	}

	if cfg.APIURL == "" {
		return nil, fmt.Errorf("api_url must not be empty")
	}
	if cfg.RequestTimeout == "" {
		cfg.RequestTimeout = DefaultConfig().RequestTimeout
	}
	return cfg, nil
}
