package statistics

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/lox/lotto/internal/game"
)

// GameResult represents the outcome of a single simulated game
type GameResult struct {
	Seed    int64        // RNG seed for this game (for replay)
	Outcome game.Outcome // Won, Lost or Exhausted
	Seat    int          // 0-based seat of the winner or loser, -1 when exhausted
	Draws   int          // tokens drawn before the game ended
}

// Statistics aggregates simulated games
type Statistics struct {
	Games     int
	SeatWins  []int // wins per seat
	Losses    int
	Exhausted int

	SumDraws  float64
	SumDraws2 float64   // Sum of squares for variance calculation
	Values    []float64 // draws per game, for median/percentile
	MinDraws  int
	MaxDraws  int
}

// Add incorporates a new game result into the statistics
func (s *Statistics) Add(result GameResult) {
	d := float64(result.Draws)
	if s.Games == 0 || result.Draws < s.MinDraws {
		s.MinDraws = result.Draws
	}
	if result.Draws > s.MaxDraws {
		s.MaxDraws = result.Draws
	}
	s.Games++
	s.SumDraws += d
	s.SumDraws2 += d * d
	s.Values = append(s.Values, d)

	switch result.Outcome {
	case game.Won:
		for len(s.SeatWins) <= result.Seat {
			s.SeatWins = append(s.SeatWins, 0)
		}
		s.SeatWins[result.Seat]++
	case game.Lost:
		s.Losses++
	case game.Exhausted:
		s.Exhausted++
	}
}

// Wins returns the total number of games won by any seat.
func (s *Statistics) Wins() int {
	total := 0
	for _, w := range s.SeatWins {
		total += w
	}
	return total
}

// WinRate returns the share of games won by seat.
func (s *Statistics) WinRate(seat int) float64 {
	if s.Games == 0 || seat < 0 || seat >= len(s.SeatWins) {
		return 0
	}
	return float64(s.SeatWins[seat]) / float64(s.Games)
}

// Mean returns the average number of draws per game
func (s *Statistics) Mean() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.SumDraws / float64(s.Games)
}

// Variance returns the sample variance of draws per game
func (s *Statistics) Variance() float64 {
	if s.Games < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumDraws2 - float64(s.Games)*mean*mean) / float64(s.Games-1)
}

// StdDev returns the sample standard deviation
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Games))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median number of draws
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Validate checks that every game is accounted for exactly once
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}
	if len(s.Values) != s.Games {
		return fmt.Errorf("values array length (%d) does not match games count (%d)",
			len(s.Values), s.Games)
	}
	if total := s.Wins() + s.Losses + s.Exhausted; total != s.Games {
		return fmt.Errorf("outcomes total (%d) does not match games count (%d)", total, s.Games)
	}
	if s.MinDraws > s.MaxDraws {
		return fmt.Errorf("min draws (%d) above max draws (%d)", s.MinDraws, s.MaxDraws)
	}
	return nil
}

// Summary formats the statistics for the terminal.
func (s *Statistics) Summary(seatNames []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Games:      %d\n", s.Games)
	for seat := range max(len(s.SeatWins), len(seatNames)) {
		name := fmt.Sprintf("seat %d", seat+1)
		if seat < len(seatNames) {
			name = seatNames[seat]
		}
		wins := 0
		if seat < len(s.SeatWins) {
			wins = s.SeatWins[seat]
		}
		fmt.Fprintf(&sb, "Wins %-10s %d (%.1f%%)\n", name+":", wins, 100*s.WinRate(seat))
	}
	fmt.Fprintf(&sb, "Losses:     %d\n", s.Losses)
	fmt.Fprintf(&sb, "Exhausted:  %d\n", s.Exhausted)
	lo, hi := s.ConfidenceInterval95()
	fmt.Fprintf(&sb, "Draws:      mean %.2f (95%% CI %.2f-%.2f), median %.1f, min %d, max %d\n",
		s.Mean(), lo, hi, s.Median(), s.MinDraws, s.MaxDraws)
	return sb.String()
}
