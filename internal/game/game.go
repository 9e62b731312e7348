package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/lotto/internal/bag"
	"github.com/lox/lotto/internal/gameid"
	"github.com/lox/lotto/internal/randutil"
)

// Outcome is the state of a game after a draw round.
type Outcome int

const (
	Continuing Outcome = iota
	Won
	Lost
	Exhausted
)

func (o Outcome) String() string {
	switch o {
	case Continuing:
		return "continuing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	case Exhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Terminal reports whether no further draws will happen.
func (o Outcome) Terminal() bool {
	return o != Continuing
}

// Result is returned by Step and Run. Player is set for Won and Lost.
type Result struct {
	GameID  string
	Outcome Outcome
	Player  *Player
	Draws   int
	Token   bag.Token // last token drawn
}

// TokenSource is what the draw loop pulls tokens from. *bag.Bag implements it.
type TokenSource interface {
	IsEmpty() bool
	Remaining() int
	Draw() (bag.Token, error)
}

// Game runs the draw loop for a fixed set of players.
type Game struct {
	id        string
	players   []*Player
	source    TokenSource
	newSource func(rng *rand.Rand) TokenSource
	rng       *rand.Rand
	logger    *log.Logger
	confirmer Confirmer
	eventBus  EventBus
	clock     quartz.Clock
	drawDelay time.Duration

	started bool
	draws   int
	result  Result
	err     error // set when a round fails part way
}

// Option configures a Game.
type Option func(*Game)

// WithRNG sets the random source used for cards and draws.
func WithRNG(rng *rand.Rand) Option {
	return func(g *Game) { g.rng = rng }
}

// WithSeed is WithRNG(randutil.New(seed)).
func WithSeed(seed int64) Option {
	return func(g *Game) { g.rng = randutil.New(seed) }
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(g *Game) { g.logger = logger }
}

// WithConfirmer sets how human players are asked about drawn tokens.
func WithConfirmer(confirmer Confirmer) Option {
	return func(g *Game) { g.confirmer = confirmer }
}

// WithEventBus replaces the game's event bus.
func WithEventBus(bus EventBus) Option {
	return func(g *Game) { g.eventBus = bus }
}

// WithClock sets the clock used for event timestamps and the draw delay.
func WithClock(clock quartz.Clock) Option {
	return func(g *Game) { g.clock = clock }
}

// WithDrawDelay pauses Run between draw rounds.
func WithDrawDelay(d time.Duration) Option {
	return func(g *Game) { g.drawDelay = d }
}

// WithGameID overrides the generated game ID.
func WithGameID(id string) Option {
	return func(g *Game) { g.id = id }
}

// WithTokenSource replaces the playable bag created by Start. Setup still
// draws cards from a real bag.
func WithTokenSource(newSource func(rng *rand.Rand) TokenSource) Option {
	return func(g *Game) { g.newSource = newSource }
}

// NewGame sets up a game: one bag is created and every player draws a card
// from it, in order.
func NewGame(configs []PlayerConfig, opts ...Option) (*Game, error) {
	g := &Game{
		newSource: func(rng *rand.Rand) TokenSource { return bag.New(rng) },
		eventBus:  NewEventBus(),
		clock:     quartz.NewReal(),
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}
	if len(configs) == 0 {
		return nil, errors.New("game needs at least one player")
	}
	if g.rng == nil {
		g.rng = randutil.New(randutil.ResolveSeed(g.clock, 0))
	}
	if g.id == "" {
		id, err := gameid.FromRand(g.rng)
		if err != nil {
			return nil, err
		}
		g.id = id
	}
	g.logger = g.logger.WithPrefix("game").With("game", g.id)

	setup := bag.New(g.rng)
	for _, cfg := range configs {
		if !cfg.Automated && g.confirmer == nil {
			return nil, fmt.Errorf("player %q: %w", cfg.Name, ErrNoConfirmer)
		}
		p, err := NewPlayer(setup, g.rng, cfg.Name, cfg.Automated)
		if err != nil {
			return nil, err
		}
		g.logger.Debug("Player seated", "player", p.Name, "automated", p.Automated, "card", p.Card.Values())
		g.players = append(g.players, p)
	}
	g.logger.Debug("Setup complete", "players", len(g.players), "setupBagLeft", setup.Remaining())
	return g, nil
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.id
}

// Players returns the players in turn order.
func (g *Game) Players() []*Player {
	return g.players
}

// EventBus returns the bus events are published on.
func (g *Game) EventBus() EventBus {
	return g.eventBus
}

// Remaining returns the number of tokens left in the playable bag, or zero
// before Start.
func (g *Game) Remaining() int {
	if g.source == nil {
		return 0
	}
	return g.source.Remaining()
}

// Result returns the latest result.
func (g *Game) Result() Result {
	return g.result
}

// Start discards the setup bag and fills a new one for play. Cards drawn at
// setup do not count against the playable pool. Calling Start twice is a
// no-op.
func (g *Game) Start() {
	if g.started {
		return
	}
	g.started = true
	g.source = g.newSource(g.rng)
	g.result = Result{GameID: g.id, Outcome: Continuing}
	g.logger.Debug("Game started", "tokens", g.source.Remaining())
	g.eventBus.Publish(NewGameStartEvent(g.id, g.players, g.clock.Now()))
}

// Step plays one draw round. After a terminal result it keeps returning that
// result without drawing. Once a round has failed every later call returns
// the same error.
func (g *Game) Step(ctx context.Context) (Result, error) {
	g.Start()
	if g.err != nil {
		return g.result, g.err
	}
	if g.result.Outcome.Terminal() {
		return g.result, nil
	}
	if g.source.IsEmpty() {
		return g.finish(Exhausted, nil), nil
	}

	token, err := g.source.Draw()
	if err != nil {
		return g.fail(fmt.Errorf("draw %d: %w", g.draws+1, err))
	}
	g.draws++
	g.result.Draws = g.draws
	g.result.Token = token
	g.logger.Debug("Token drawn", "token", int(token), "remaining", g.source.Remaining())
	g.eventBus.Publish(NewTokenDrawnEvent(token, g.source.Remaining(), g.draws, g.clock.Now()))

	for _, p := range g.players {
		g.eventBus.Publish(NewTurnEvent(p, token, g.clock.Now()))

		had := p.Card.Contains(token)
		if err := p.MakeMove(ctx, token, g.confirmer); err != nil {
			return g.fail(fmt.Errorf("%s on %d: %w", p.Name, int(token), err))
		}
		marked := had && !p.Card.Contains(token)
		g.eventBus.Publish(NewMoveEvent(p, token, marked, g.clock.Now()))

		if p.Lost() {
			return g.finish(Lost, p), nil
		}
		if p.Won() {
			return g.finish(Won, p), nil
		}
	}

	if g.source.IsEmpty() {
		return g.finish(Exhausted, nil), nil
	}
	return g.result, nil
}

// Run starts the game and draws until a terminal result. It stops early with
// the context's error when ctx is cancelled.
func (g *Game) Run(ctx context.Context) (Result, error) {
	g.Start()
	for {
		if err := ctx.Err(); err != nil {
			return g.result, err
		}
		res, err := g.Step(ctx)
		if err != nil || res.Outcome.Terminal() {
			return res, err
		}
		if err := g.wait(ctx); err != nil {
			return g.result, err
		}
	}
}

func (g *Game) wait(ctx context.Context) error {
	if g.drawDelay <= 0 {
		return nil
	}
	timer := g.clock.NewTimer(g.drawDelay, "game", "drawDelay")
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Err returns the error that stopped the game part way through a round, if any.
func (g *Game) Err() error {
	return g.err
}

func (g *Game) fail(err error) (Result, error) {
	g.err = err
	g.logger.Error("Round failed", "draw", g.draws, "error", err)
	return g.result, err
}

func (g *Game) finish(outcome Outcome, p *Player) Result {
	g.result.Outcome = outcome
	g.result.Player = p
	if p != nil {
		g.logger.Info("Game over", "outcome", outcome, "player", p.Name, "draws", g.draws)
	} else {
		g.logger.Info("Game over", "outcome", outcome, "draws", g.draws)
	}
	g.eventBus.Publish(NewGameEndEvent(g.result, g.clock.Now()))
	return g.result
}
