package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/lotto/internal/config"
	"github.com/lox/lotto/internal/game"
)

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestResolveConfigDefaults(t *testing.T) {
	cmd := &PlayCmd{}
	cfg, err := cmd.resolveConfig()
	require.NoError(t, err)

	assert.Equal(t, config.Default(), cfg)
}

func TestResolveConfigFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lotto.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
game {
  seed       = 5
  draw_delay = "1s"
}

player "Alice" {}
player "Bob" {}
`), 0o600))

	cmd := &PlayCmd{
		Config:    path,
		Player2:   "Carol",
		Player2AI: true,
		Seed:      99,
		Delay:     250 * time.Millisecond,
		TUI:       true,
	}
	cfg, err := cmd.resolveConfig()
	require.NoError(t, err)

	assert.Equal(t, int64(99), cfg.Game.Seed)
	assert.Equal(t, 250*time.Millisecond, cfg.DrawDelay())
	assert.Equal(t, config.PromptTUI, cfg.Game.Prompt)
	assert.Equal(t, []game.PlayerConfig{
		{Name: "Alice"},
		{Name: "Carol", Automated: true},
	}, cfg.PlayerConfigs())
}

func TestResolveConfigRejectsDuplicateNames(t *testing.T) {
	cmd := &PlayCmd{Player1: "Same", Player2: "Same"}
	_, err := cmd.resolveConfig()
	assert.ErrorContains(t, err, "duplicate")
}

func TestPlayAutomatedGame(t *testing.T) {
	cmd := &PlayCmd{Player1AI: true, Player2AI: true, Seed: 42, NoColor: true}
	cfg, err := cmd.resolveConfig()
	require.NoError(t, err)

	var out bytes.Buffer
	res, err := cmd.play(context.Background(), cfg, strings.NewReader(""), &out, discardLogger(), quartz.NewMock(t))
	require.NoError(t, err)

	require.True(t, res.Outcome.Terminal())
	assert.NotEqual(t, game.Lost, res.Outcome, "automated players never lose")
	assert.Contains(t, out.String(), "Player 1_AI vs Player 2_AI")
	assert.Contains(t, out.String(), "New token: ")
	if res.Outcome == game.Won {
		assert.Contains(t, out.String(), "Player "+res.Player.Name+" wins. Congratulations!")
	}
}

func TestPlayHumanInputEnds(t *testing.T) {
	cmd := &PlayCmd{Player2AI: true, Seed: 42, NoColor: true}
	cfg, err := cmd.resolveConfig()
	require.NoError(t, err)

	var out bytes.Buffer
	_, err = cmd.play(context.Background(), cfg, strings.NewReader(""), &out, discardLogger(), quartz.NewMock(t))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Contains(t, out.String(), "Strike out ")
}

func TestSimulate(t *testing.T) {
	cmd := &SimulateCmd{Games: 10, Workers: 2, Seed: 7}

	var out bytes.Buffer
	require.NoError(t, cmd.simulate(context.Background(), &out, discardLogger(), quartz.NewMock(t)))

	assert.Contains(t, out.String(), "Seed:       7\n")
	assert.Contains(t, out.String(), "Games:      10\n")
	assert.Contains(t, out.String(), "Wins Player 1_AI:")
}

func TestSimulateWritesReport(t *testing.T) {
	report := filepath.Join(t.TempDir(), "sim.txt")
	cmd := &SimulateCmd{Games: 4, Workers: 1, Seed: 3, Report: report}

	var out bytes.Buffer
	require.NoError(t, cmd.simulate(context.Background(), &out, discardLogger(), quartz.NewMock(t)))

	data, err := os.ReadFile(report)
	require.NoError(t, err)
	assert.Equal(t, out.String(), string(data))
}

func TestPlayQuiet(t *testing.T) {
	_, err := (&PlayCmd{Quiet: true}).resolveConfig()
	assert.ErrorContains(t, err, "--quiet")

	cmd := &PlayCmd{Player1AI: true, Player2AI: true, Seed: 42, NoColor: true, Quiet: true}
	cfg, err := cmd.resolveConfig()
	require.NoError(t, err)

	var out bytes.Buffer
	_, err = cmd.play(context.Background(), cfg, strings.NewReader(""), &out, discardLogger(), quartz.NewMock(t))
	require.NoError(t, err)
	assert.NotContains(t, out.String(), "New token")
	assert.Equal(t, 1, strings.Count(out.String(), "\n"))
}
