// Package display renders game events on a terminal.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/lotto/internal/game"
)

// Styles used by the console.
type Styles struct {
	Header lipgloss.Style
	Token  lipgloss.Style
	Player lipgloss.Style
	Winner lipgloss.Style
	Loser  lipgloss.Style
	Info   lipgloss.Style
}

// NewStyles builds the console styles on r.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Header: r.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true),
		Token: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Player: r.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true),
		Winner: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Loser: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		Info: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
	}
}

// Console is an event subscriber that prints the game as it happens.
type Console struct {
	out    io.Writer
	styles Styles
	quiet  bool
}

// Option configures a Console.
type Option func(*consoleConfig)

type consoleConfig struct {
	profile *termenv.Profile
	quiet   bool
}

// WithProfile forces a colour profile, e.g. termenv.Ascii for plain output.
func WithProfile(p termenv.Profile) Option {
	return func(c *consoleConfig) { c.profile = &p }
}

// WithQuiet prints only the final result.
func WithQuiet(quiet bool) Option {
	return func(c *consoleConfig) { c.quiet = quiet }
}

// NewConsole creates a console writing to w.
func NewConsole(w io.Writer, opts ...Option) *Console {
	var cfg consoleConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	r := lipgloss.NewRenderer(w)
	if cfg.profile != nil {
		r.SetColorProfile(*cfg.profile)
	}
	return &Console{
		out:    w,
		styles: NewStyles(r),
		quiet:  cfg.quiet,
	}
}

// OnEvent implements game.EventSubscriber.
func (c *Console) OnEvent(event game.GameEvent) {
	switch e := event.(type) {
	case game.GameStartEvent:
		if !c.quiet {
			c.printStart(e)
		}
	case game.TokenDrawnEvent:
		if !c.quiet {
			fmt.Fprintf(c.out, "New token: %s %s\n",
				c.styles.Token.Render(fmt.Sprint(int(e.Token))),
				c.styles.Info.Render(fmt.Sprintf("(%d left)", e.Remaining)))
		}
	case game.TurnEvent:
		if !c.quiet {
			fmt.Fprintf(c.out, "Card of player %s\n", c.styles.Player.Render(e.Player.Name))
			fmt.Fprint(c.out, e.Card.String())
		}
	case game.GameEndEvent:
		fmt.Fprintln(c.out, c.FormatResult(e.Result))
	}
}

func (c *Console) printStart(e game.GameStartEvent) {
	names := make([]string, len(e.Players))
	for i, p := range e.Players {
		names[i] = p.Name
	}
	fmt.Fprintln(c.out, c.styles.Header.Render(" Lotto "))
	fmt.Fprintln(c.out, c.styles.Info.Render(fmt.Sprintf("Game %s: %s", e.GameID, strings.Join(names, " vs "))))
}

// FormatResult returns the end-of-game announcement.
func (c *Console) FormatResult(res game.Result) string {
	switch res.Outcome {
	case game.Won:
		return c.styles.Winner.Render(fmt.Sprintf("Player %s wins. Congratulations!", res.Player.Name))
	case game.Lost:
		return c.styles.Loser.Render(fmt.Sprintf("Player %s loses. Game over", res.Player.Name))
	case game.Exhausted:
		return c.styles.Info.Render("Bag exhausted. No winner.")
	default:
		return c.styles.Info.Render(fmt.Sprintf("Game in progress after %d draws.", res.Draws))
	}
}
