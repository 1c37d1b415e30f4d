package main

import (
	"fmt"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Version is overwritten at build time via -ldflags "-X main.Version=...".
var Version = "dev"

// agentConfig is read from the environment; every field has a usable default.
type agentConfig struct {
	LibDir   string `env:"MAAEND_LIB_DIR"`
	LogDir   string `env:"MAAEND_LOG_DIR" envDefault:"debug"`
	LogLevel string `env:"MAAEND_LOG_LEVEL" envDefault:"debug"`
}

func loadConfig() (agentConfig, error) {
	var cfg agentConfig
	if err := env.Parse(&cfg); err != nil {
		return agentConfig{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.LibDir == "" {
		cfg.LibDir = filepath.Join(getCwd(), "maafw")
	}
	return cfg, nil
}
