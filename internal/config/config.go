package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config represents client configuration loaded from YAML/env.
type Config struct {
	API struct {
		BaseURL string        `yaml:"baseURL" env:"PAYDASH_BASE_URL"`
		Timeout time.Duration `yaml:"timeout" env:"PAYDASH_HTTP_TIMEOUT"`
	} `yaml:"api"`
	Store struct {
		Path   string `yaml:"path" env:"PAYDASH_STORE_PATH"`
		Secret string `yaml:"secret" env:"PAYDASH_STORE_SECRET"`
	} `yaml:"store"`
}

// Load reads configuration using the shared loader and applies defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.API.Timeout = 5 * time.Second

	if err := load(cfg); err != nil {
		return nil, err
	}

	if cfg.API.BaseURL == "" {
		return nil, errors.New("config: API base URL is required")
	}
	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")

	if cfg.API.Timeout <= 0 {
		cfg.API.Timeout = 5 * time.Second
	}

	if cfg.Store.Path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.New("config: store path is required when home directory is unavailable")
		}
		cfg.Store.Path = filepath.Join(home, ".paydash", "session")
	}

	return cfg, nil
}
