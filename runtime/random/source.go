package random

import (
	"math/rand"
	"sync"
)

// Source answers probabilistic questions
type Source interface {
	// Chance returns true with the given probability
	Chance(probability float64) bool
}

// Rand extends Source with bounded integer draws
type Rand interface {
	Source
	// IntRange returns an integer in the closed range [min, max]
	IntRange(min, max int) int
}

// Generator is a seeded Rand backed by math/rand
type Generator struct {
	mu   sync.Mutex
	rand *rand.Rand
	seed int64
}

// Chance returns true with the given probability
func (g *Generator) Chance(probability float64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rand.Float64() < probability
}

// IntRange returns an integer in [min, max]
func (g *Generator) IntRange(min, max int) int {
	if max <= min {
		return min
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return min + g.rand.Intn(max-min+1)
}

// Seed returns the generator seed
func (g *Generator) Seed() int64 {
	return g.seed
}

// New creates a generator for the supplied seed
func New(seed int64) *Generator {
	return &Generator{rand: rand.New(rand.NewSource(seed)), seed: seed}
}

var _ Rand = (*Generator)(nil)
