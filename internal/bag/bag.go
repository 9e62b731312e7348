// Package bag holds the pool of numbered tokens drawn during a lotto game.
package bag

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"slices"
	"strings"
)

// Capacity is the number of tokens in a full bag.
const Capacity = 90

// ErrEmptyBag is returned when drawing from a bag with no tokens left.
var ErrEmptyBag = errors.New("bag is empty")

// Token is a numbered barrel, 1 through Capacity.
type Token int

// String formats the token the way cards print it.
func (t Token) String() string {
	return fmt.Sprintf("%02d", int(t))
}

// Bag is the set of tokens that have not been drawn yet.
type Bag struct {
	tokens []Token
	rng    *rand.Rand
}

// New creates a full bag that draws with the given random source.
func New(rng *rand.Rand) *Bag {
	tokens := make([]Token, 0, Capacity)
	for i := 1; i <= Capacity; i++ {
		tokens = append(tokens, Token(i))
	}
	return &Bag{tokens: tokens, rng: rng}
}

// IsEmpty reports whether every token has been drawn.
func (b *Bag) IsEmpty() bool {
	return len(b.tokens) == 0
}

// Remaining returns the number of tokens left.
func (b *Bag) Remaining() int {
	return len(b.tokens)
}

// Draw removes a uniformly random token from the bag and returns it.
func (b *Bag) Draw() (Token, error) {
	if b.IsEmpty() {
		return 0, ErrEmptyBag
	}
	i := b.rng.IntN(len(b.tokens))
	t := b.tokens[i]
	b.tokens = slices.Delete(b.tokens, i, i+1)
	return t, nil
}

// DrawN draws n tokens in order. On error the tokens drawn so far are lost.
func (b *Bag) DrawN(n int) ([]Token, error) {
	out := make([]Token, 0, n)
	for range n {
		t, err := b.Draw()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Contains reports whether t is still in the bag.
func (b *Bag) Contains(t Token) bool {
	return slices.Contains(b.tokens, t)
}

// Tokens returns a copy of the remaining tokens.
func (b *Bag) Tokens() []Token {
	return slices.Clone(b.tokens)
}

func (b *Bag) String() string {
	parts := make([]string, len(b.tokens))
	for i, t := range b.tokens {
		parts[i] = fmt.Sprint(int(t))
	}
	return fmt.Sprintf("Bag has %d tokens left. [%s]", len(b.tokens), strings.Join(parts, " "))
}
