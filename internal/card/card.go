// Package card implements a player's lotto card: three rows of nine columns
// with five numbers per row, ascending from left to right.
package card

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"slices"
	"strings"

	"github.com/lox/lotto/internal/bag"
)

const (
	Rows         = 3
	Columns      = 9
	NumbersInRow = 5
	Cells        = Rows * Columns
)

// ErrTokenNotFound is returned when marking a token the card does not hold
// unmarked.
var ErrTokenNotFound = errors.New("token not on card")

// ErrInvalidLayout is returned by FromRows for layouts that break card rules.
var ErrInvalidLayout = errors.New("invalid card layout")

// Cell is one position on the card. A zero Value is an empty cell.
type Cell struct {
	Value  bag.Token
	Marked bool
}

// IsEmpty reports whether the cell never held a number.
func (c Cell) IsEmpty() bool {
	return c.Value == 0
}

// IsAssigned reports whether the cell holds a number that has not been marked.
func (c Cell) IsAssigned() bool {
	return c.Value != 0 && !c.Marked
}

func (c Cell) String() string {
	switch {
	case c.IsEmpty():
		return "   "
	case c.Marked:
		return "-- "
	default:
		return fmt.Sprintf("%02d ", int(c.Value))
	}
}

// Card is a grid of Rows x Columns cells stored row-major.
type Card struct {
	cells [Cells]Cell
}

// New draws Rows*NumbersInRow tokens from b and lays them out on a new card.
func New(b *bag.Bag, rng *rand.Rand) (*Card, error) {
	c := &Card{}
	for row := range Rows {
		values, err := b.DrawN(NumbersInRow)
		if err != nil {
			return nil, fmt.Errorf("drawing row %d: %w", row, err)
		}
		slices.Sort(values)

		columns := rng.Perm(Columns)[:NumbersInRow]
		slices.Sort(columns)

		c.placeRow(row, values, columns)
	}
	return c, nil
}

// placeRow merges two ascending sequences: the i-th smallest value goes into the
// i-th smallest column, so larger numbers always sit further right.
func (c *Card) placeRow(row int, values []bag.Token, columns []int) {
	for i, col := range columns {
		c.cells[row*Columns+col] = Cell{Value: values[i]}
	}
}

// FromRows builds a card from a fixed layout where 0 marks an empty cell.
func FromRows(rows [Rows][Columns]bag.Token) (*Card, error) {
	c := &Card{}
	seen := make(map[bag.Token]bool, Rows*NumbersInRow)
	for r, row := range rows {
		count := 0
		var last bag.Token
		for col, v := range row {
			if v == 0 {
				continue
			}
			if v < 1 || v > bag.Capacity {
				return nil, fmt.Errorf("%w: row %d column %d: token %d out of range", ErrInvalidLayout, r, col, v)
			}
			if seen[v] {
				return nil, fmt.Errorf("%w: token %d appears twice", ErrInvalidLayout, v)
			}
			if v <= last {
				return nil, fmt.Errorf("%w: row %d is not ascending at column %d", ErrInvalidLayout, r, col)
			}
			seen[v] = true
			last = v
			count++
			c.cells[r*Columns+col] = Cell{Value: v}
		}
		if count != NumbersInRow {
			return nil, fmt.Errorf("%w: row %d has %d numbers, want %d", ErrInvalidLayout, r, count, NumbersInRow)
		}
	}
	return c, nil
}

// Contains reports whether the card holds t unmarked.
func (c *Card) Contains(t bag.Token) bool {
	return c.index(t) >= 0
}

// Mark strikes t out. It fails with ErrTokenNotFound when t is absent or
// already marked.
func (c *Card) Mark(t bag.Token) error {
	i := c.index(t)
	if i < 0 {
		return fmt.Errorf("marking %d: %w", int(t), ErrTokenNotFound)
	}
	c.cells[i].Marked = true
	return nil
}

func (c *Card) index(t bag.Token) int {
	if t == 0 {
		return -1
	}
	for i, cell := range c.cells {
		if cell.Value == t && !cell.Marked {
			return i
		}
	}
	return -1
}

// CompletedRow returns the first row whose numbers are all marked.
func (c *Card) CompletedRow() (int, bool) {
	for row := range Rows {
		marked := 0
		for _, cell := range c.Row(row) {
			if cell.Marked {
				marked++
			}
		}
		if marked == NumbersInRow {
			return row, true
		}
	}
	return -1, false
}

// HasCompletedRow reports whether any row is fully marked.
func (c *Card) HasCompletedRow() bool {
	_, ok := c.CompletedRow()
	return ok
}

// Cell returns the cell at row, col.
func (c *Card) Cell(row, col int) Cell {
	return c.cells[row*Columns+col]
}

// Row returns a copy of one row.
func (c *Card) Row(row int) []Cell {
	return slices.Clone(c.cells[row*Columns : (row+1)*Columns])
}

// MarkedCount returns how many cells have been struck out.
func (c *Card) MarkedCount() int {
	n := 0
	for _, cell := range c.cells {
		if cell.Marked {
			n++
		}
	}
	return n
}

// Values returns every number on the card, marked or not, in grid order.
func (c *Card) Values() []bag.Token {
	out := make([]bag.Token, 0, Rows*NumbersInRow)
	for _, cell := range c.cells {
		if !cell.IsEmpty() {
			out = append(out, cell.Value)
		}
	}
	return out
}

// Clone returns an independent copy, used for event snapshots.
func (c *Card) Clone() *Card {
	cp := *c
	return &cp
}

// String renders the card between two dashed borders.
func (c *Card) String() string {
	border := strings.Repeat("-", Columns*3-1)

	var sb strings.Builder
	sb.WriteString(border)
	sb.WriteByte('\n')
	for i, cell := range c.cells {
		sb.WriteString(cell.String())
		if (i+1)%Columns == 0 {
			sb.WriteByte('\n')
		}
	}
	sb.WriteString(border)
	sb.WriteByte('\n')
	return sb.String()
}
