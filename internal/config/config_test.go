package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/lotto/internal/game"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lotto.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, time.Duration(0), cfg.DrawDelay())
	assert.True(t, cfg.HasHumans())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
game {
  seed       = 42
  draw_delay = "250ms"
  log_level  = "debug"
  prompt     = "tui"
}

player "Alice" {}

player "Bob" {
  automated = true
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, int64(42), cfg.Game.Seed)
	assert.Equal(t, 250*time.Millisecond, cfg.DrawDelay())
	assert.Equal(t, "debug", cfg.Game.LogLevel)
	assert.Equal(t, PromptTUI, cfg.Game.Prompt)
	assert.Equal(t, []game.PlayerConfig{
		{Name: "Alice"},
		{Name: "Bob", Automated: true},
	}, cfg.PlayerConfigs())
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
game {
  seed = 7
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "warn", cfg.Game.LogLevel)
	assert.Equal(t, PromptLine, cfg.Game.Prompt)
	assert.Len(t, cfg.Players, NumPlayers)
}

func TestLoadWithoutGameBlock(t *testing.T) {
	path := writeConfig(t, `
player "Alice" {}
player "Bob" {
  automated = true
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, Default().Game, cfg.Game)
	assert.Equal(t, []game.PlayerConfig{
		{Name: "Alice"},
		{Name: "Bob", Automated: true},
	}, cfg.PlayerConfigs())
}

func TestLoadInvalidHCL(t *testing.T) {
	path := writeConfig(t, `game {`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:    "one player",
			mutate:  func(c *Config) { c.Players = c.Players[:1] },
			wantErr: "exactly 2 players",
		},
		{
			name:    "empty name",
			mutate:  func(c *Config) { c.Players[0].Name = "" },
			wantErr: "no name",
		},
		{
			name:    "duplicate names",
			mutate:  func(c *Config) { c.Players[1].Name = c.Players[0].Name },
			wantErr: "duplicate",
		},
		{
			name: "same display name after suffix",
			mutate: func(c *Config) {
				c.Players[0] = PlayerSettings{Name: "Bob_AI"}
				c.Players[1] = PlayerSettings{Name: "Bob", Automated: true}
			},
			wantErr: `duplicate player name "Bob_AI"`,
		},
		{
			name:    "bad delay",
			mutate:  func(c *Config) { c.Game.DrawDelay = "soon" },
			wantErr: "draw_delay",
		},
		{
			name:    "negative delay",
			mutate:  func(c *Config) { c.Game.DrawDelay = "-1s" },
			wantErr: "negative",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Game.LogLevel = "loud" },
			wantErr: "log level",
		},
		{
			name:    "bad prompt",
			mutate:  func(c *Config) { c.Game.Prompt = "gui" },
			wantErr: "prompt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
