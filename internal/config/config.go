// Package config loads runtime settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds every knob the server reads at startup. DataDir locates the
// directory holding the persisted document file.
type Config struct {
	Addr     string `env:"ADDR" envDefault:":4000"`
	DataDir  string `env:"DATA_DIR" envDefault:"./data"`
	WebDir   string `env:"WEB_DIR" envDefault:"web"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
