package random

import "sync"

// Fixed is a Source that always returns the same answer
type Fixed bool

// Chance ignores the probability
func (f Fixed) Chance(float64) bool {
	return bool(f)
}

// IntRange always returns min
func (f Fixed) IntRange(min, _ int) int {
	return min
}

// Sequence replays answers in order; once exhausted it keeps returning the
// fallback value.
type Sequence struct {
	mu       sync.Mutex
	answers  []bool
	fallback bool
	draws    int
}

// Chance returns the next recorded answer
func (s *Sequence) Chance(float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draws++
	if len(s.answers) == 0 {
		return s.fallback
	}
	ret := s.answers[0]
	s.answers = s.answers[1:]
	return ret
}

// Draws returns how many answers were consumed
func (s *Sequence) Draws() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draws
}

// NewSequence creates a sequence source
func NewSequence(fallback bool, answers ...bool) *Sequence {
	return &Sequence{answers: append([]bool(nil), answers...), fallback: fallback}
}

var (
	_ Rand   = Fixed(false)
	_ Source = (*Sequence)(nil)
)
