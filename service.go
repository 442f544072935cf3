package procsim

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/viant/procsim/internal/logging"
	"github.com/viant/procsim/service/report"
	"github.com/viant/procsim/service/simulator"
	"github.com/viant/procsim/tracing"
)

// Service wires configuration, logging, tracing and the simulator
type Service struct {
	config           *Config
	logWriter        io.Writer
	logger           *slog.Logger
	reportService    *report.Service
	simulatorOptions []simulator.Option
	runtime          *Runtime
}

// Config returns the effective configuration
func (s *Service) Config() *Config {
	return s.config
}

// Logger returns the service logger
func (s *Service) Logger() *slog.Logger {
	return s.logger
}

// Runtime returns the simulation runtime
func (s *Service) Runtime() *Runtime {
	return s.runtime
}

func (s *Service) init(options []Option) error {
	for _, option := range options {
		option(s)
	}
	s.ensureBaseSetup()
	if err := s.config.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	logger, err := logging.New(s.logWriter, s.config.Log)
	if err != nil {
		return err
	}
	s.logger = logger
	if s.config.Tracing.Enabled {
		if err = tracing.Init(s.config.Tracing.ServiceName, s.config.Tracing.ServiceVersion, s.config.Tracing.Output); err != nil {
			return fmt.Errorf("failed to init tracing: %w", err)
		}
	}

	simOptions := append([]simulator.Option{
		simulator.WithConfig(s.config.Simulation),
		simulator.WithSchedulerConfig(s.config.Scheduler),
		simulator.WithGeneratorConfig(s.config.Generator),
		simulator.WithSwap(s.config.Swap),
		simulator.WithLogger(logger),
	}, s.simulatorOptions...)
	sim, err := simulator.New(simOptions...)
	if err != nil {
		return fmt.Errorf("failed to create simulator: %w", err)
	}
	s.runtime = &Runtime{
		simulator:     sim,
		reportService: s.reportService,
		report:        s.config.Report,
		logger:        logger,
		config:        s.config,
	}
	if s.config.Report.Webhook != "" {
		s.runtime.notifier = report.NewNotifier(s.config.Report.Webhook, 0)
	}
	return nil
}

func (s *Service) ensureBaseSetup() {
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if s.logWriter == nil {
		s.logWriter = os.Stderr
	}
	if s.reportService == nil {
		s.reportService = report.New(nil)
	}
}

// New creates a service; options are applied before validation
func New(options ...Option) (*Service, error) {
	ret := &Service{}
	if err := ret.init(options); err != nil {
		return nil, err
	}
	return ret, nil
}
