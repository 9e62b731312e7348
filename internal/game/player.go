package game

import (
	"context"
	"errors"
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/lotto/internal/bag"
	"github.com/lox/lotto/internal/card"
)

// AutomatedSuffix is appended to the display name of automated players.
const AutomatedSuffix = "_AI"

// ErrNoConfirmer is returned when a human player has to answer but nobody
// can ask them.
var ErrNoConfirmer = errors.New("no confirmer for human player")

// Confirmer asks a yes/no question and blocks until it is answered.
type Confirmer interface {
	Confirm(ctx context.Context, question string) (bool, error)
}

// PlayerConfig describes one seat at setup time.
type PlayerConfig struct {
	Name      string
	Automated bool
}

// Player owns a card and the two terminal flags. Once lost or won is set it
// stays set.
type Player struct {
	Name      string
	Automated bool
	Card      *card.Card

	lost bool
	won  bool
}

// NewPlayer builds a player whose card is drawn from b.
func NewPlayer(b *bag.Bag, rng *rand.Rand, name string, automated bool) (*Player, error) {
	c, err := card.New(b, rng)
	if err != nil {
		return nil, fmt.Errorf("card for %s: %w", name, err)
	}
	if automated {
		name += AutomatedSuffix
	}
	return &Player{
		Name:      name,
		Automated: automated,
		Card:      c,
	}, nil
}

// Question is what a human player is asked for each drawn token.
func Question(token bag.Token) string {
	return fmt.Sprintf("Strike out %d?", int(token))
}

// MakeMove applies the player's policy to a drawn token and then checks for a
// completed row.
func (p *Player) MakeMove(ctx context.Context, token bag.Token, confirmer Confirmer) error {
	var err error
	if p.Automated {
		err = p.automatedMove(token)
	} else {
		err = p.interactiveMove(ctx, token, confirmer)
	}
	if err != nil {
		return err
	}
	p.evaluateWin()
	return nil
}

func (p *Player) automatedMove(token bag.Token) error {
	if !p.Card.Contains(token) {
		return nil
	}
	return p.Card.Mark(token)
}

func (p *Player) interactiveMove(ctx context.Context, token bag.Token, confirmer Confirmer) error {
	if confirmer == nil {
		return ErrNoConfirmer
	}
	yes, err := confirmer.Confirm(ctx, Question(token))
	if err != nil {
		return fmt.Errorf("asking %s about %d: %w", p.Name, int(token), err)
	}

	contains := p.Card.Contains(token)
	switch {
	case yes && contains:
		return p.Card.Mark(token)
	case yes != contains:
		// claimed a token that isn't there, or missed one that is
		p.lost = true
	}
	return nil
}

func (p *Player) evaluateWin() {
	if p.Card.HasCompletedRow() {
		p.won = true
	}
}

// Lost reports whether the player has lost.
func (p *Player) Lost() bool {
	return p.lost
}

// Won reports whether the player has completed a row.
func (p *Player) Won() bool {
	return p.won
}

func (p *Player) String() string {
	return "Player " + p.Name
}
