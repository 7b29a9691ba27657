// Package config loads engine configuration from environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config contains storage configuration parameters. When DatabaseURL is set
// the Postgres backend is used; otherwise the local SQLite file at DBPath.
type Config struct {
	DBPath      string `env:"BMITRACK_DB" envDefault:"bmitrack.db"`
	DatabaseURL string `env:"DATABASE_URL"`
}

// New loads configuration from environment variables.
func New() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
