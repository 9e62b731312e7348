package randutil

import (
	rand "math/rand/v2"

	"github.com/coder/quartz"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// Bags, cards and the simulator all draw from sources built here so that a
// seed reproduces a whole game.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// ResolveSeed returns seed unchanged unless it is zero, in which case a seed is
// derived from the clock. Zero means "pick one for me" on the command line.
func ResolveSeed(clock quartz.Clock, seed int64) int64 {
	if seed != 0 {
		return seed
	}
	s := clock.Now().UnixNano()
	if s == 0 {
		s = 1
	}
	return s
}

// Derive returns the seed for the n-th game of a batch started from base.
func Derive(base int64, n int) int64 {
	return int64(mix(uint64(base) + uint64(n)*goldenRatio64))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
