package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is loaded from environment variables. Empty DBPath falls back to
// the default location under the user's home directory.
type Config struct {
	DBPath        string        `env:"FROSTPAW_DB"`
	DecayInterval time.Duration `env:"FROSTPAW_DECAY_INTERVAL" envDefault:"60s"`
}

func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if c.DecayInterval <= 0 {
		c.DecayInterval = time.Minute
	}
	return c, nil
}
