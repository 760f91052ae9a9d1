package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(env.Options{Environment: map[string]string{}})
	require.NoError(t, err)

	assert.Equal(t, "./log", cfg.LogPath)
	assert.Equal(t, "basic", cfg.Theme)
	assert.Equal(t, 30*time.Second, cfg.EscalationInterval)
	assert.Equal(t, ":2222", cfg.SSHAddress)
	assert.Equal(t, 5*time.Minute, cfg.SSHIdleTimeout)
	assert.Equal(t, filepath.Join(appDir, "scores.db"), filepath.Join(filepath.Base(filepath.Dir(cfg.ScoresPath)), filepath.Base(cfg.ScoresPath)))
	assert.Empty(t, cfg.Binary)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := load(env.Options{Environment: map[string]string{
		"TETRISTERM_SCORES_PATH":         "/tmp/scores.db",
		"TETRISTERM_THEME":               "mono",
		"TETRISTERM_ESCALATION_INTERVAL": "10s",
		"TETRISTERM_SSH_HOST_KEY":        "/etc/ssh/key",
		"TETRISTERM_BINARY":              "/usr/bin/tetristerm",
	}})
	require.NoError(t, err)

	assert.Equal(t, "/tmp/scores.db", cfg.ScoresPath)
	assert.Equal(t, "mono", cfg.Theme)
	assert.Equal(t, 10*time.Second, cfg.EscalationInterval)
	assert.Equal(t, "/etc/ssh/key", cfg.SSHHostKey)
	assert.Equal(t, "/usr/bin/tetristerm", cfg.Binary)
}

func TestLoadInvalid(t *testing.T) {
	_, err := load(env.Options{Environment: map[string]string{
		"TETRISTERM_ESCALATION_INTERVAL": "soon",
	}})
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "parse env:"))

	_, err = load(env.Options{Environment: map[string]string{
		"TETRISTERM_ESCALATION_INTERVAL": "0s",
	}})
	assert.Error(t, err)
}

func TestLoadProcessEnv(t *testing.T) {
	t.Setenv("TETRISTERM_LOG_PATH", "/var/log/tetristerm.log")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/var/log/tetristerm.log", cfg.LogPath)
}
