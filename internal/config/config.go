// Package config loads runtime settings from an optional YAML file and
// HATCHCTL_-prefixed environment variables, env taking precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is everything the client needs to talk to one farm backend.
type Config struct {
	// APIBaseURL is the REST root, e.g. https://farm.example/api.
	APIBaseURL string `yaml:"api_base_url" env:"HATCHCTL_API_URL" env-default:"http://localhost:3000/api"`
	// EventsURL is the websocket event feed. Empty disables live updates.
	EventsURL string `yaml:"events_url" env:"HATCHCTL_EVENTS_URL" env-default:""`
	// User identifies the operator; it scopes saved form drafts.
	User string `yaml:"user" env:"HATCHCTL_USER" env-default:""`
	// DBPath is the local sqlite file for drafts. Empty means
	// ~/.hatchctl/hatchctl.db.
	DBPath string `yaml:"db_path" env:"HATCHCTL_DB_PATH" env-default:""`
	// PageSize is rows per list page.
	PageSize int `yaml:"page_size" env:"HATCHCTL_PAGE_SIZE" env-default:"8"`
	// RequestTimeout bounds each REST call.
	RequestTimeout time.Duration `yaml:"request_timeout" env:"HATCHCTL_REQUEST_TIMEOUT" env-default:"15s"`
	// Debug enables verbose logging.
	Debug bool `yaml:"debug" env:"HATCHCTL_DEBUG" env-default:"false"`
}

// Load reads config from path if it exists, then from the environment.
// An explicit path that does not exist is an error; the default path
// silently falls back to env-only.
func Load(path string) (*Config, error) {
	var cfg Config
	explicitPath := path != ""
	if !explicitPath {
		path = defaultConfigPath()
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("config: api base URL is required")
	}
	if c.PageSize < 1 {
		return fmt.Errorf("config: page size must be at least 1, got %d", c.PageSize)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("config: request timeout must be positive, got %s", c.RequestTimeout)
	}
	return nil
}

// ResolveDBPath returns the configured drafts database path, defaulting
// to ~/.hatchctl/hatchctl.db.
func (c *Config) ResolveDBPath() string {
	if c.DBPath != "" {
		return c.DBPath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "hatchctl.db"
	}
	return filepath.Join(home, ".hatchctl", "hatchctl.db")
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "hatchctl.yaml"
	}
	return filepath.Join(home, ".hatchctl", "config.yaml")
}
