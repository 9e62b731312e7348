package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/lotto/cmd/lotto/shared"
	"github.com/lox/lotto/internal/fileutil"
	"github.com/lox/lotto/internal/randutil"
	"github.com/lox/lotto/internal/simulator"
)

type SimulateCmd struct {
	Games   int    `kong:"default='1000',help='Number of games to play'"`
	Workers int    `kong:"default='0',help='Parallel workers (0 = GOMAXPROCS)'"`
	Seed    int64  `kong:"help='Base seed (0 for random)'"`
	Verbose bool   `kong:"short='v',help='Enable debug logging'"`
	Report  string `kong:"help='Also write the summary to this file'"`
}

func (c *SimulateCmd) Run() error {
	logger := shared.SetupLogger("warn", c.Verbose)
	ctx, stop := shared.SetupSignalHandler(logger)
	defer stop()

	return c.simulate(ctx, os.Stdout, logger, quartz.NewReal())
}

func (c *SimulateCmd) simulate(ctx context.Context, out io.Writer, logger *log.Logger, clock quartz.Clock) error {
	seed := randutil.ResolveSeed(clock, c.Seed)
	sim := simulator.New(simulator.Config{
		Games:   c.Games,
		Workers: c.Workers,
		Seed:    seed,
		Logger:  logger,
	})

	stats, err := sim.Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation (seed %d): %w", seed, err)
	}
	summary := fmt.Sprintf("Seed:       %d\n%s", seed, stats.Summary(sim.SeatNames()))
	fmt.Fprint(out, summary)

	if c.Report != "" {
		if err := fileutil.WriteFileAtomic(c.Report, []byte(summary), 0o644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		logger.Info("Report written", "path", c.Report)
	}
	return nil
}
