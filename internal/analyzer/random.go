package analyzer

import (
	"math/rand/v2"
	"sync"
)

// RandomSource supplies the uniform choices used by the placeholder
// analyses (fallback shape, jawline, cheekbones, compatibility scores).
// Implementations must be safe for concurrent use.
type RandomSource interface {
	// IntN returns a uniform integer in [0, n). n must be positive.
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int {
	return rand.IntN(n)
}

// NewRandomSource returns the production source backed by the runtime's
// auto-seeded generator.
func NewRandomSource() RandomSource {
	return globalSource{}
}

type seededSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededSource returns a reproducible source. Two sources created with the
// same seed yield the same sequence.
func NewSeededSource(seed uint64) RandomSource {
	return &seededSource{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (s *seededSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

// pick returns a uniformly chosen element of items
func pick[T any](rng RandomSource, items []T) T {
	return items[rng.IntN(len(items))]
}
