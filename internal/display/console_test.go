package display

import (
	"bytes"
	"context"
	"io"
	rand "math/rand/v2"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/lotto/internal/bag"
	"github.com/lox/lotto/internal/game"
)

func newPlainConsole(quiet bool) (*Console, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewConsole(&buf, WithProfile(termenv.Ascii), WithQuiet(quiet)), &buf
}

func playScripted(t *testing.T, console *Console, tokens ...bag.Token) game.Result {
	t.Helper()
	g, err := game.NewGame([]game.PlayerConfig{
		{Name: "Alice", Automated: true},
		{Name: "Bob", Automated: true},
	},
		game.WithSeed(1),
		game.WithGameID("g1"),
		game.WithLogger(log.New(io.Discard)),
		game.WithTokenSource(func(*rand.Rand) game.TokenSource {
			return game.NewSequenceSource(tokens...)
		}),
	)
	require.NoError(t, err)
	g.EventBus().Subscribe(console)

	res, err := g.Run(context.Background())
	require.NoError(t, err)
	return res
}

func TestConsoleRendersDraws(t *testing.T) {
	console, buf := newPlainConsole(false)
	// tokens past Capacity never match a card
	playScripted(t, console, 91, 92)

	out := buf.String()
	assert.Contains(t, out, "Game g1: Alice_AI vs Bob_AI")
	assert.Contains(t, out, "New token: 91 (1 left)\n")
	assert.Contains(t, out, "New token: 92 (0 left)\n")
	assert.Equal(t, 2, strings.Count(out, "Card of player Alice_AI\n"))
	assert.Equal(t, 2, strings.Count(out, "Card of player Bob_AI\n"))
	assert.Contains(t, out, strings.Repeat("-", 26)+"\n")
	assert.True(t, strings.HasSuffix(out, "Bag exhausted. No winner.\n"))
}

func TestConsoleQuiet(t *testing.T) {
	console, buf := newPlainConsole(true)
	playScripted(t, console, 91)

	assert.Equal(t, "Bag exhausted. No winner.\n", buf.String())
}

func TestFormatResult(t *testing.T) {
	console, _ := newPlainConsole(false)
	alice := &game.Player{Name: "Alice"}

	assert.Equal(t, "Player Alice wins. Congratulations!",
		console.FormatResult(game.Result{Outcome: game.Won, Player: alice}))
	assert.Equal(t, "Player Alice loses. Game over",
		console.FormatResult(game.Result{Outcome: game.Lost, Player: alice}))
	assert.Equal(t, "Bag exhausted. No winner.",
		console.FormatResult(game.Result{Outcome: game.Exhausted}))
	assert.Equal(t, "Game in progress after 3 draws.",
		console.FormatResult(game.Result{Outcome: game.Continuing, Draws: 3}))
}
