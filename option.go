package procsim

import (
	"io"

	"github.com/viant/procsim/runtime/random"
	"github.com/viant/procsim/runtime/scheduler"
	"github.com/viant/procsim/service/event"
	"github.com/viant/procsim/service/report"
	"github.com/viant/procsim/service/simulator"
)

// Option configures the service
type Option func(s *Service)

// WithConfig sets the configuration
func WithConfig(config *Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithLogWriter sets where logs go, stderr by default
func WithLogWriter(w io.Writer) Option {
	return func(s *Service) {
		s.logWriter = w
	}
}

// WithRandom overrides the seeded random source
func WithRandom(source random.Rand) Option {
	return func(s *Service) {
		s.simulatorOptions = append(s.simulatorOptions, simulator.WithRandom(source))
	}
}

// WithRunID sets the run identifier
func WithRunID(runID string) Option {
	return func(s *Service) {
		s.simulatorOptions = append(s.simulatorOptions, simulator.WithRunID(runID))
	}
}

// WithReportService sets the report writer
func WithReportService(service *report.Service) Option {
	return func(s *Service) {
		s.reportService = service
	}
}

// WithTransitionHandler registers a transition event handler
func WithTransitionHandler(handler func(*event.Event[scheduler.Transition])) Option {
	return func(s *Service) {
		s.simulatorOptions = append(s.simulatorOptions, simulator.WithTransitionHandler(handler))
	}
}

// WithCycleListener registers a per cycle callback
func WithCycleListener(listener simulator.CycleListener) Option {
	return func(s *Service) {
		s.simulatorOptions = append(s.simulatorOptions, simulator.WithCycleListener(listener))
	}
}
