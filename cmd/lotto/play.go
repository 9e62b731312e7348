package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/muesli/termenv"

	"github.com/lox/lotto/cmd/lotto/shared"
	"github.com/lox/lotto/internal/config"
	"github.com/lox/lotto/internal/display"
	"github.com/lox/lotto/internal/game"
	"github.com/lox/lotto/internal/prompt"
	"github.com/lox/lotto/internal/randutil"
	"github.com/lox/lotto/internal/tui"
)

type PlayCmd struct {
	Player1   string        `kong:"name='player1',help='Name of the first player'"`
	Player2   string        `kong:"name='player2',help='Name of the second player'"`
	Player1AI bool          `kong:"name='player1-ai',help='Let the computer play the first card'"`
	Player2AI bool          `kong:"name='player2-ai',help='Let the computer play the second card'"`
	Verbose   bool          `kong:"short='v',help='Enable debug logging'"`
	Seed      int64         `kong:"help='Seed for deterministic games (0 for random)'"`
	Config    string        `kong:"help='Path to an HCL game configuration file'"`
	TUI       bool          `kong:"name='tui',help='Ask questions with the interactive terminal prompt'"`
	Delay     time.Duration `kong:"help='Pause between draws, e.g. 500ms'"`
	NoColor   bool          `kong:"help='Disable coloured output'"`
	Quiet     bool          `kong:"help='Only print the result (both players must be automated)'"`
}

func (c *PlayCmd) Run() error {
	cfg, err := c.resolveConfig()
	if err != nil {
		return err
	}

	logger := shared.SetupLogger(cfg.Game.LogLevel, c.Verbose)
	ctx, stop := shared.SetupSignalHandler(logger)
	defer stop()

	_, err = c.play(ctx, cfg, os.Stdin, os.Stdout, logger, quartz.NewReal())
	return err
}

// resolveConfig loads the config file, if any, and layers flags on top.
func (c *PlayCmd) resolveConfig() (*config.Config, error) {
	cfg := config.Default()
	if c.Config != "" {
		loaded, err := config.Load(c.Config)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	overrides := []struct {
		name      string
		automated bool
	}{
		{c.Player1, c.Player1AI},
		{c.Player2, c.Player2AI},
	}
	for i, o := range overrides {
		if i >= len(cfg.Players) {
			break
		}
		if o.name != "" {
			cfg.Players[i].Name = o.name
		}
		if o.automated {
			cfg.Players[i].Automated = true
		}
	}
	if c.Seed != 0 {
		cfg.Game.Seed = c.Seed
	}
	if c.Delay > 0 {
		cfg.Game.DrawDelay = c.Delay.String()
	}
	if c.TUI {
		cfg.Game.Prompt = config.PromptTUI
	}
	if c.Verbose {
		cfg.Game.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Quiet && cfg.HasHumans() {
		return nil, errors.New("--quiet needs both players automated")
	}
	return cfg, nil
}

// play runs a single game to its end. Win, loss and exhaustion are all
// normal endings; only broken invariants or prompt failures return an error.
func (c *PlayCmd) play(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer, logger *log.Logger, clock quartz.Clock) (game.Result, error) {
	seed := randutil.ResolveSeed(clock, cfg.Game.Seed)
	logger.Debug("Starting game", "seed", seed, "prompt", cfg.Game.Prompt, "drawDelay", cfg.DrawDelay())

	opts := []game.Option{
		game.WithSeed(seed),
		game.WithLogger(logger),
		game.WithClock(clock),
		game.WithDrawDelay(cfg.DrawDelay()),
	}
	if cfg.HasHumans() {
		opts = append(opts, game.WithConfirmer(newConfirmer(cfg.Game.Prompt, in, out, logger)))
	}

	g, err := game.NewGame(cfg.PlayerConfigs(), opts...)
	if err != nil {
		return game.Result{}, fmt.Errorf("creating game: %w", err)
	}

	var displayOpts []display.Option
	if c.NoColor {
		displayOpts = append(displayOpts, display.WithProfile(termenv.Ascii))
	}
	if c.Quiet {
		displayOpts = append(displayOpts, display.WithQuiet(true))
	}
	g.EventBus().Subscribe(display.NewConsole(out, displayOpts...))

	res, err := g.Run(ctx)
	if err != nil {
		return res, fmt.Errorf("game %s (seed %d): %w", g.ID(), seed, err)
	}
	return res, nil
}

func newConfirmer(kind string, in io.Reader, out io.Writer, logger *log.Logger) game.Confirmer {
	if kind == config.PromptTUI {
		return tui.NewConfirmer(in, out, prompt.NoDefault, logger)
	}
	return prompt.New(in, out, prompt.WithLogger(logger))
}
