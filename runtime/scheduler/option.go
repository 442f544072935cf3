package scheduler

import "github.com/viant/procsim/runtime/random"

// Option configures a Scheduler
type Option func(s *Scheduler)

// WithConfig sets the scheduler configuration
func WithConfig(config Config) Option {
	return func(s *Scheduler) {
		s.config = config
	}
}

// WithQuantum overrides the configured quantum
func WithQuantum(quantum int) Option {
	return func(s *Scheduler) {
		s.config.Quantum = quantum
	}
}

// WithRandom sets the source used for I/O draws
func WithRandom(source random.Source) Option {
	return func(s *Scheduler) {
		s.random = source
	}
}

// WithObserver registers a callback invoked synchronously for every state
// transition, in the order transitions happen.
func WithObserver(observer Observer) Option {
	return func(s *Scheduler) {
		s.observers = append(s.observers, observer)
	}
}
