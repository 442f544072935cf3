package simulator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/viant/procsim/internal/clock"
	"github.com/viant/procsim/internal/idgen"
	"github.com/viant/procsim/internal/logging"
	"github.com/viant/procsim/model/process"
	"github.com/viant/procsim/policy"
	"github.com/viant/procsim/progress"
	"github.com/viant/procsim/runtime/random"
	"github.com/viant/procsim/runtime/scheduler"
	"github.com/viant/procsim/service/dao"
	registry "github.com/viant/procsim/service/dao/process/memory"
	"github.com/viant/procsim/service/dao/store"
	"github.com/viant/procsim/service/event"
	"github.com/viant/procsim/service/generator"
	"github.com/viant/procsim/service/messaging/memory"
	"github.com/viant/procsim/tracing"
)

// CycleListener observes completed cycles
type CycleListener func(record *Record, snapshot *scheduler.Snapshot)

// Service drives the scheduler: it admits generated processes, advances the
// clock, records history and applies swap decisions.  All scheduler access is
// serialised by the service mutex.
type Service struct {
	config          Config
	schedulerConfig scheduler.Config
	generatorConfig generator.Config
	swap            policy.Swap
	admission       policy.Admission
	random          random.Rand
	logger          *slog.Logger
	runID           string

	mux       sync.Mutex
	scheduler *scheduler.Scheduler
	registry  *registry.Service
	history   *store.MemoryStore[int, Record]
	pending   []*process.Process
	cycle     int
	ctx       context.Context

	handlers       []func(*event.Event[scheduler.Transition])
	cycleListeners []CycleListener
	publisher      *event.Publisher[scheduler.Transition]
	listeners      []*event.Listener[scheduler.Transition]
}

// RunID returns the run identifier
func (s *Service) RunID() string {
	return s.runID
}

// Config returns the loop configuration
func (s *Service) Config() Config {
	return s.config
}

// Cycle returns the number of cycles executed so far
func (s *Service) Cycle() int {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.cycle
}

// Unadmitted returns the number of generated processes not yet admitted
func (s *Service) Unadmitted() int {
	s.mux.Lock()
	defer s.mux.Unlock()
	return len(s.pending)
}

// Run executes the configured number of cycles.  Cancelling ctx stops the run
// between cycles; the partial result is returned along with ctx's error.
func (s *Service) Run(ctx context.Context) (result *Result, err error) {
	ctx, span := tracing.StartSpan(ctx, "simulator.Run", map[string]string{"run.id": s.runID})
	span.WithInt("cycles", s.config.Cycles)
	defer func() { tracing.EndSpan(span, err) }()
	if _, ok := progress.FromContext(ctx); !ok {
		ctx, _ = progress.WithNewTracker(ctx, s.runID, s.config.Cycles, nil)
	}

	s.logger.Info("simulation started", "runId", s.runID, "cycles", s.config.Cycles, "processes", s.config.Processes)
	delay := time.Duration(s.config.DelayMs) * time.Millisecond
	for i := 0; i < s.config.Cycles; i++ {
		if _, err = s.Step(ctx); err != nil {
			break
		}
		if delay > 0 {
			if err = clock.Pause(ctx, delay); err != nil {
				break
			}
		}
	}
	result, resultErr := s.Result(ctx)
	if resultErr != nil {
		return nil, resultErr
	}
	if err != nil {
		s.logger.Warn("simulation interrupted", "runId", s.runID, "cycle", result.Cycles, logging.ErrAttr(err))
		return result, err
	}
	s.logger.Info("simulation finished", "runId", s.runID, "completed", result.Statistics.Completed,
		"avgWait", result.Statistics.AverageWaitTime, "avgResponse", result.Statistics.AverageResponseTime,
		"throughput", result.Statistics.Throughput)
	return result, nil
}

// Step runs a single cycle: admission, Advance, history, swap.
func (s *Service) Step(ctx context.Context) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mux.Lock()
	record, err := s.step(ctx)
	var snapshot *scheduler.Snapshot
	if err == nil && len(s.cycleListeners) > 0 {
		snapshot = s.scheduler.Snapshot()
	}
	s.mux.Unlock()
	if err != nil {
		return nil, err
	}
	for _, listener := range s.cycleListeners {
		listener(record, snapshot)
	}
	return record, nil
}

func (s *Service) step(ctx context.Context) (record *Record, err error) {
	s.cycle++
	ctx, span := tracing.StartSpan(ctx, "simulator.Cycle")
	span.WithInt("cycle", s.cycle)
	defer func() { tracing.EndSpan(span, err) }()
	s.ctx = ctx

	admitted := 0
	if s.admission.Admit(len(s.pending), s.random) {
		candidate := s.pending[0]
		s.pending = s.pending[1:]
		s.scheduler.Admit(candidate)
		if err = s.registry.Save(ctx, candidate); err != nil {
			return nil, fmt.Errorf("failed to register process %d: %w", candidate.ID, err)
		}
		admitted++
		s.logger.Debug("process admitted", "cycle", s.cycle, "processId", candidate.ID, "execTime", candidate.TotalExecTime)
	}

	completedBefore := s.scheduler.Statistics().Completed
	stats := s.scheduler.Advance()
	snapshot := s.scheduler.Snapshot()
	record = &Record{
		Cycle:      s.cycle,
		Time:       stats.Time,
		Admitted:   admitted,
		Counts:     snapshot.Counts(),
		Statistics: stats,
	}
	if snapshot.Running != nil {
		record.Running = snapshot.Running.ID
	}

	directives := s.swap.Decide(snapshot, s.random)
	record.Directives = s.apply(directives)
	if err = s.history.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record cycle %d: %w", s.cycle, err)
	}

	delta := progress.Delta{Cycles: 1, Admitted: admitted, Completed: stats.Completed - completedBefore}
	for _, directive := range record.Directives {
		switch directive.Action {
		case policy.ActionSuspend:
			delta.Suspended++
		case policy.ActionResume:
			delta.Resumed++
		}
	}
	progress.UpdateCtx(ctx, delta)
	return record, nil
}

// apply executes directives in order and returns those that took effect.
func (s *Service) apply(directives []policy.Directive) []policy.Directive {
	var applied []policy.Directive
	for _, directive := range directives {
		var err error
		switch directive.Action {
		case policy.ActionSuspend:
			err = s.scheduler.Suspend(directive.ProcessID)
		case policy.ActionResume:
			err = s.scheduler.Resume(directive.ProcessID)
		default:
			err = fmt.Errorf("unsupported action: %s", directive.Action)
		}
		if err != nil {
			s.logger.Debug("directive rejected", "cycle", s.cycle, "directive", directive.String(), logging.ErrAttr(err))
			continue
		}
		s.logger.Debug("directive applied", "cycle", s.cycle, "directive", directive.String())
		applied = append(applied, directive)
	}
	return applied
}

// Suspend swaps out a READY or WAITING process outside the regular policy.
func (s *Service) Suspend(ctx context.Context, id int) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.ctx = ctx
	return s.scheduler.Suspend(id)
}

// Resume swaps a suspended process back in outside the regular policy.
func (s *Service) Resume(ctx context.Context, id int) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.ctx = ctx
	return s.scheduler.Resume(id)
}

// Snapshot returns a detached copy of every queue
func (s *Service) Snapshot() *scheduler.Snapshot {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.scheduler.Snapshot()
}

// Statistics returns the current statistics
func (s *Service) Statistics() scheduler.Statistics {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.scheduler.Statistics()
}

// Process returns a copy of an admitted process
func (s *Service) Process(ctx context.Context, id int) (*process.Process, error) {
	s.mux.Lock()
	defer s.mux.Unlock()
	p, err := s.registry.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return p.Clone(), nil
}

// Processes returns copies of admitted processes ordered by id, filtered by
// dao.StateParameter values.
func (s *Service) Processes(ctx context.Context, parameters ...*dao.Parameter) ([]*process.Process, error) {
	s.mux.Lock()
	defer s.mux.Unlock()
	items, err := s.registry.List(ctx, parameters...)
	if err != nil {
		return nil, err
	}
	ret := make([]*process.Process, 0, len(items))
	for _, item := range items {
		ret = append(ret, item.Clone())
	}
	return ret, nil
}

// History returns per cycle records ordered by cycle
func (s *Service) History(ctx context.Context) ([]*Record, error) {
	return s.history.List(ctx)
}

// Result summarises the run so far
func (s *Service) Result(ctx context.Context) (*Result, error) {
	history, err := s.History(ctx)
	if err != nil {
		return nil, err
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	snapshot := s.scheduler.Snapshot()
	return &Result{
		RunID:      s.runID,
		Cycles:     s.cycle,
		Statistics: s.scheduler.Statistics(),
		Terminated: len(snapshot.Terminated),
		Pending:    snapshot.Pending(),
		Unadmitted: len(s.pending),
		History:    history,
	}, nil
}

// Close stops transition listeners
func (s *Service) Close() {
	for _, listener := range s.listeners {
		listener.Stop()
	}
}

func (s *Service) onTransition(transition scheduler.Transition) {
	if s.publisher == nil {
		return
	}
	ctx := s.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	evt := event.NewEvent(&event.Context{
		RunID:     s.runID,
		EventType: event.TypeTransition,
		Cycle:     s.cycle,
		ProcessID: transition.ProcessID,
	}, transition)
	if err := s.publisher.Publish(ctx, evt); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Warn("failed to publish transition", "processId", transition.ProcessID, logging.ErrAttr(err))
	}
}

// New creates a simulator and generates its workload
func New(options ...Option) (*Service, error) {
	s := &Service{
		config:          DefaultConfig(),
		schedulerConfig: scheduler.DefaultConfig(),
		generatorConfig: generator.DefaultConfig(),
		swap:            policy.DefaultSwap(),
	}
	for _, opt := range options {
		opt(s)
	}
	if err := errors.Join(s.config.Validate(), s.swap.Validate()); err != nil {
		return nil, err
	}
	s.admission = policy.Admission{Probability: s.config.AdmissionProbability}
	if s.logger == nil {
		s.logger = logging.Discard()
	}
	if s.runID == "" {
		s.runID = idgen.NewRunID()
	}
	if s.random == nil {
		seed := s.config.Seed
		if seed == 0 {
			seed = clock.Now().UnixNano()
		}
		s.random = random.New(seed)
		s.logger.Debug("random source seeded", "runID", s.runID, "seed", seed)
	}
	var err error
	if s.scheduler, err = scheduler.New(
		scheduler.WithConfig(s.schedulerConfig),
		scheduler.WithRandom(s.random),
		scheduler.WithObserver(s.onTransition),
	); err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	workload, err := generator.New(s.random, s.generatorConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create generator: %w", err)
	}
	if s.pending, err = workload.Generate(s.config.Processes); err != nil {
		return nil, fmt.Errorf("failed to generate processes: %w", err)
	}
	s.registry = registry.New()
	s.history = store.NewMemoryStore[int, Record](func(r *Record) int { return r.Cycle }).
		WithOrder(func(a, b *Record) bool { return a.Cycle < b.Cycle })

	if len(s.handlers) > 0 {
		s.publisher = event.NewPublisher[scheduler.Transition](memory.NewQueue[event.Event[scheduler.Transition]](memory.DefaultConfig()))
		listener := event.NewListener(s.publisher, func(evt *event.Event[scheduler.Transition]) {
			for _, handler := range s.handlers {
				handler(evt)
			}
		})
		listener.Start(context.Background())
		s.listeners = append(s.listeners, listener)
	}
	return s, nil
}
