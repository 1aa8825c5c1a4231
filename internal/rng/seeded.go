package rng

import "math/rand"

// Seeded is a deterministic generator for tests and replayable shuffles
type Seeded struct {
	rand *rand.Rand
}

// NewSeeded returns a generator seeded with the provided value
func NewSeeded(seed int64) *Seeded {
	return &Seeded{
		rand: rand.New(rand.NewSource(seed)), // nolint:gosec
	}
}

// Intn returns a random number from 0 < n
func (s *Seeded) Intn(n int) int {
	return s.rand.Intn(n)
}
