package simulator

import (
	"log/slog"

	"github.com/viant/procsim/policy"
	"github.com/viant/procsim/runtime/random"
	"github.com/viant/procsim/runtime/scheduler"
	"github.com/viant/procsim/service/event"
	"github.com/viant/procsim/service/generator"
)

// Option configures the simulator
type Option func(s *Service)

// WithConfig sets the loop configuration
func WithConfig(config Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithSchedulerConfig sets the scheduler configuration
func WithSchedulerConfig(config scheduler.Config) Option {
	return func(s *Service) {
		s.schedulerConfig = config
	}
}

// WithGeneratorConfig sets workload ranges
func WithGeneratorConfig(config generator.Config) Option {
	return func(s *Service) {
		s.generatorConfig = config
	}
}

// WithSwap sets the swap policy
func WithSwap(swap policy.Swap) Option {
	return func(s *Service) {
		s.swap = swap
	}
}

// WithRandom overrides the seeded random source
func WithRandom(source random.Rand) Option {
	return func(s *Service) {
		s.random = source
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithRunID overrides the generated run id
func WithRunID(runID string) Option {
	return func(s *Service) {
		s.runID = runID
	}
}

// WithTransitionHandler receives every state transition on a listener
// goroutine.  The handler must not call back into the simulator.
func WithTransitionHandler(handler func(*event.Event[scheduler.Transition])) Option {
	return func(s *Service) {
		s.handlers = append(s.handlers, handler)
	}
}

// WithCycleListener is called synchronously after every cycle with the
// cycle record and a detached snapshot.
func WithCycleListener(listener CycleListener) Option {
	return func(s *Service) {
		s.cycleListeners = append(s.cycleListeners, listener)
	}
}
