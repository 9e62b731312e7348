// Package config loads lotto game settings from an HCL file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/lotto/internal/game"
)

// Config represents the complete game configuration
type Config struct {
	Game    GameSettings
	Players []PlayerSettings
}

// file is the HCL shape of Config. Every block is optional.
type file struct {
	Game    *GameSettings    `hcl:"game,block"`
	Players []PlayerSettings `hcl:"player,block"`
}

// GameSettings contains settings that apply to the whole run
type GameSettings struct {
	Seed      int64  `hcl:"seed,optional"`
	DrawDelay string `hcl:"draw_delay,optional"`
	LogLevel  string `hcl:"log_level,optional"`
	Prompt    string `hcl:"prompt,optional"`
}

// PlayerSettings describes one seat
type PlayerSettings struct {
	Name      string `hcl:"name,label"`
	Automated bool   `hcl:"automated,optional"`
}

// DisplayName is the name the seat plays under.
func (p PlayerSettings) DisplayName() string {
	if p.Automated {
		return p.Name + game.AutomatedSuffix
	}
	return p.Name
}

const (
	PromptLine = "line"
	PromptTUI  = "tui"

	// NumPlayers is the number of seats in a game.
	NumPlayers = 2
)

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Game: GameSettings{
			Seed:      0,
			DrawDelay: "0s",
			LogLevel:  "warn",
			Prompt:    PromptLine,
		},
		Players: []PlayerSettings{
			{Name: "Player 1"},
			{Name: "Player 2"},
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw file
	diags = gohcl.DecodeBody(hclFile.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	defaults := Default()
	cfg := Config{Game: defaults.Game, Players: raw.Players}
	if raw.Game != nil {
		cfg.Game = *raw.Game
	}
	if cfg.Game.DrawDelay == "" {
		cfg.Game.DrawDelay = defaults.Game.DrawDelay
	}
	if cfg.Game.LogLevel == "" {
		cfg.Game.LogLevel = defaults.Game.LogLevel
	}
	if cfg.Game.Prompt == "" {
		cfg.Game.Prompt = defaults.Game.Prompt
	}
	if len(cfg.Players) == 0 {
		cfg.Players = defaults.Players
	}

	return &cfg, nil
}

// Validate checks the configuration
func (c *Config) Validate() error {
	if len(c.Players) != NumPlayers {
		return fmt.Errorf("need exactly %d players, got %d", NumPlayers, len(c.Players))
	}
	seen := make(map[string]bool)
	for i, p := range c.Players {
		if p.Name == "" {
			return fmt.Errorf("player %d has no name", i+1)
		}
		name := p.DisplayName()
		if seen[name] {
			return fmt.Errorf("duplicate player name %q", name)
		}
		seen[name] = true
	}

	d, err := time.ParseDuration(c.Game.DrawDelay)
	if err != nil {
		return fmt.Errorf("invalid draw_delay: %w", err)
	}
	if d < 0 {
		return fmt.Errorf("draw_delay cannot be negative")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.Game.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.Game.LogLevel)
	}

	if c.Game.Prompt != PromptLine && c.Game.Prompt != PromptTUI {
		return fmt.Errorf("invalid prompt: %s", c.Game.Prompt)
	}

	return nil
}

// DrawDelay returns the parsed delay between draws. Call Validate first.
func (c *Config) DrawDelay() time.Duration {
	d, _ := time.ParseDuration(c.Game.DrawDelay)
	return d
}

// PlayerConfigs converts the seats for game.NewGame.
func (c *Config) PlayerConfigs() []game.PlayerConfig {
	out := make([]game.PlayerConfig, len(c.Players))
	for i, p := range c.Players {
		out[i] = game.PlayerConfig{Name: p.Name, Automated: p.Automated}
	}
	return out
}

// HasHumans reports whether any seat needs a prompt.
func (c *Config) HasHumans() bool {
	for _, p := range c.Players {
		if !p.Automated {
			return true
		}
	}
	return false
}
