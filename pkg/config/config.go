// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

const appDir = "tetristerm"

type Config struct {
	ScoresPath         string        `env:"TETRISTERM_SCORES_PATH"`
	LogPath            string        `env:"TETRISTERM_LOG_PATH" envDefault:"./log"`
	Theme              string        `env:"TETRISTERM_THEME" envDefault:"basic"`
	EscalationInterval time.Duration `env:"TETRISTERM_ESCALATION_INTERVAL" envDefault:"30s"`

	SSHAddress     string        `env:"TETRISTERM_SSH_ADDRESS" envDefault:":2222"`
	SSHHostKey     string        `env:"TETRISTERM_SSH_HOST_KEY"`
	SSHIdleTimeout time.Duration `env:"TETRISTERM_SSH_IDLE_TIMEOUT" envDefault:"5m"`

	// Binary is the game executable served over SSH.
	Binary string `env:"TETRISTERM_BINARY"`
}

// Load reads the process environment.
func Load() (Config, error) {
	return load(env.Options{})
}

func load(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.ScoresPath == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			dir = "."
		}
		cfg.ScoresPath = filepath.Join(dir, appDir, "scores.db")
	}

	if cfg.SSHHostKey == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.SSHHostKey = filepath.Join(home, ".ssh", "id_rsa")
		}
	}

	if cfg.EscalationInterval <= 0 {
		return Config{}, fmt.Errorf("escalation interval must be positive, got %s", cfg.EscalationInterval)
	}

	return cfg, nil
}
