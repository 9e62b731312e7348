package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/lotto/internal/game"
	"github.com/lox/lotto/internal/randutil"
	"github.com/lox/lotto/internal/statistics"
)

// Config holds configuration for running simulations
type Config struct {
	Games   int
	Workers int // 0 means GOMAXPROCS
	Seed    int64
	Players []game.PlayerConfig // defaults to two automated players
	Logger  *log.Logger
}

// Simulator plays many automated games
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	if len(config.Players) == 0 {
		config.Players = []game.PlayerConfig{
			{Name: "Player 1", Automated: true},
			{Name: "Player 2", Automated: true},
		}
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	return &Simulator{config: config}
}

// SeatNames returns the display names players get in every game.
func (s *Simulator) SeatNames() []string {
	names := make([]string, len(s.config.Players))
	for i, p := range s.config.Players {
		names[i] = p.Name
		if p.Automated {
			names[i] += game.AutomatedSuffix
		}
	}
	return names
}

// Run plays every game and returns the aggregated statistics. Game i uses a
// seed derived from Seed and i, so results do not depend on Workers.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	if s.config.Games <= 0 {
		return nil, errors.New("games must be positive")
	}
	for _, p := range s.config.Players {
		if !p.Automated {
			return nil, fmt.Errorf("player %q is not automated", p.Name)
		}
	}

	logger := s.config.Logger.WithPrefix("simulator")
	logger.Info("Starting simulation", "games", s.config.Games, "workers", s.config.Workers, "seed", s.config.Seed)

	results := make([]statistics.GameResult, s.config.Games)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	for i := range s.config.Games {
		g.Go(func() error {
			seed := randutil.Derive(s.config.Seed, i)
			res, err := s.playGame(ctx, i, seed)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i+1, seed, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, r := range results {
		stats.Add(r)
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	logger.Info("Simulation complete", "games", stats.Games, "meanDraws", stats.Mean())
	return stats, nil
}

// playGame runs one game to completion
func (s *Simulator) playGame(ctx context.Context, n int, seed int64) (statistics.GameResult, error) {
	g, err := game.NewGame(s.config.Players,
		game.WithSeed(seed),
		game.WithGameID(fmt.Sprintf("sim-%d", n+1)),
		game.WithLogger(s.config.Logger),
	)
	if err != nil {
		return statistics.GameResult{}, err
	}

	res, err := g.Run(ctx)
	if err != nil {
		return statistics.GameResult{}, err
	}

	seat := -1
	for i, p := range g.Players() {
		if p == res.Player {
			seat = i
		}
	}
	return statistics.GameResult{
		Seed:    seed,
		Outcome: res.Outcome,
		Seat:    seat,
		Draws:   res.Draws,
	}, nil
}
