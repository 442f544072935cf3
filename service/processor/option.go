package processor

import (
	"log/slog"

	"github.com/viant/procsim/service/dao"
	"github.com/viant/procsim/service/messaging"
)

// Option configures the processor
type Option func(*Service)

// WithJobDAO sets the job store implementation
func WithJobDAO(jobDAO dao.Service[string, Job]) Option {
	return func(s *Service) {
		s.jobDAO = jobDAO
	}
}

// WithMessageQueue sets the message queue implementation
func WithMessageQueue(queue messaging.Queue[Job]) Option {
	return func(s *Service) {
		s.queue = queue
	}
}

// WithFactory sets the simulator factory
func WithFactory(factory Factory) Option {
	return func(s *Service) {
		s.factory = factory
	}
}

// WithWorkers sets the number of worker goroutines
func WithWorkers(count int) Option {
	return func(s *Service) {
		s.config.WorkerCount = count
	}
}

// WithMaxAttempts sets how many times a job is tried before it fails
func WithMaxAttempts(attempts int) Option {
	return func(s *Service) {
		s.config.MaxAttempts = attempts
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}
