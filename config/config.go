// Package config loads runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	// DBPath is the sqlite database file. Defaults to ~/.bunken/bunken.db.
	DBPath string `env:"BUNKEN_DB"`

	// Listen is the HTTP server address.
	Listen string `env:"BUNKEN_LISTEN" envDefault:":8080"`

	// CiNiiAppID is sent with article searches when set.
	CiNiiAppID string `env:"CINII_APP_ID"`

	// LookupTimeout bounds each outbound lookup request.
	LookupTimeout time.Duration `env:"BUNKEN_LOOKUP_TIMEOUT" envDefault:"15s"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".bunken", "bunken.db")
	}
	return cfg, nil
}
