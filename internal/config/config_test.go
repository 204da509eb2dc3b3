package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cardchomp.hcl")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "localhost", cfg.Server.Address)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "You", cfg.Game.PlayerName)
	assert.Equal(t, []string{"East", "North", "West"}, cfg.Game.BotNames)
	assert.Equal(t, 1000, cfg.Game.ThinkDelayMs)
	assert.NoError(t, cfg.validate())
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlaysFileOntoDefaults(t *testing.T) {
	path := writeConfig(t, `
server {
  port      = 9000
  log_level = "debug"
}

game {
  player_name    = "Dana"
  think_delay_ms = 250
  seed           = 42
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "localhost", cfg.Server.Address, "omitted field keeps default")
	assert.Equal(t, "Dana", cfg.Game.PlayerName)
	assert.Equal(t, 250, cfg.Game.ThinkDelayMs)
	assert.Equal(t, int64(42), cfg.Game.Seed)
	assert.Equal(t, []string{"East", "North", "West"}, cfg.Game.BotNames)
}

func TestLoadPartialBlocks(t *testing.T) {
	path := writeConfig(t, `
game {
  bot_names = ["Mai", "Linh", "Tuan"]
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Mai", "Linh", "Tuan"}, cfg.Game.BotNames)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadRejectsMalformedHCL(t *testing.T) {
	path := writeConfig(t, `server { port = `)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"port out of range", `server { port = 70000 }`},
		{"wrong bot count", `game { bot_names = ["Mai"] }`},
		{"negative delay", `game { think_delay_ms = -5 }`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.contents))
			assert.Error(t, err)
		})
	}
}
