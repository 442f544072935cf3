package processor

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
	"github.com/viant/procsim/service/dao"
	"github.com/viant/procsim/service/dao/store"
	"github.com/viant/procsim/service/messaging"
	"github.com/viant/procsim/service/messaging/memory"
	"github.com/viant/procsim/tracing"
)

// Config represents processor configuration
type Config struct {
	// WorkerCount is the number of workers running jobs
	WorkerCount int
	// MaxAttempts is how many times a job is tried before it is marked failed
	MaxAttempts int
	// PollInterval is how often Wait checks job state
	PollInterval time.Duration
}

// DefaultConfig returns the default processor configuration
func DefaultConfig() Config {
	return Config{
		WorkerCount:  4,
		MaxAttempts:  2,
		PollInterval: 10 * time.Millisecond,
	}
}

// Service runs simulation jobs on a pool of workers
type Service struct {
	config  Config
	jobDAO  dao.Service[string, Job]
	queue   messaging.Queue[Job]
	factory Factory
	logger  *slog.Logger

	workers  []*worker
	workerWg sync.WaitGroup
	once     sync.Once
}

type worker struct {
	id       int
	service  *Service
	ctx      context.Context
	cancelFn context.CancelFunc
}

// New creates a processor
func New(options ...Option) (*Service, error) {
	s := &Service{config: DefaultConfig()}
	for _, opt := range options {
		opt(s)
	}
	if s.factory == nil {
		return nil, fmt.Errorf("simulator factory is required")
	}
	if s.config.WorkerCount <= 0 {
		return nil, fmt.Errorf("worker count must be > 0")
	}
	if s.config.MaxAttempts <= 0 {
		s.config.MaxAttempts = 1
	}
	if s.queue == nil {
		// redelivery is driven by Nack, one retry per remaining attempt
		s.queue = memory.NewQueue[Job](memory.Config{MaxRetries: s.config.MaxAttempts - 1})
	}
	if s.jobDAO == nil {
		s.jobDAO = store.NewMemoryStore[string, Job](func(j *Job) string { return j.ID })
	}
	if s.logger == nil {
		s.logger = logging.Discard()
	}
	return s, nil
}

// Start begins consuming jobs
func (s *Service) Start(ctx context.Context) {
	for i := 0; i < s.config.WorkerCount; i++ {
		workerCtx, cancel := context.WithCancel(ctx)
		w := &worker{id: i, service: s, ctx: workerCtx, cancelFn: cancel}
		s.workers = append(s.workers, w)
		s.workerWg.Add(1)
		go w.run()
	}
}

func (w *worker) run() {
	defer w.service.workerWg.Done()
	for {
		msg, err := w.service.queue.Consume(w.ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return
			}
			time.Sleep(10 * time.Millisecond)
			continue
		}
		if msg == nil {
			continue
		}
		if pErr := w.service.processMessage(w.ctx, msg); pErr != nil {
			w.service.logger.Warn("failed to process job", "worker", w.id, logging.ErrAttr(pErr))
		}
	}
}

// Submit stores a pending job and queues it
func (s *Service) Submit(ctx context.Context, quantum int, seed int64) (*Job, error) {
	job := Job{ID: idgen.New(), Quantum: quantum, Seed: seed, State: JobStatePending}
	if err := s.save(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to save job: %w", err)
	}
	if err := s.queue.Publish(ctx, &job); err != nil {
		return nil, fmt.Errorf("failed to queue job: %w", err)
	}
	return &job, nil
}

// Job returns a job by id
func (s *Service) Job(ctx context.Context, id string) (*Job, error) {
	return s.jobDAO.Load(ctx, id)
}

// Wait blocks until every job is terminal or ctx is done
func (s *Service) Wait(ctx context.Context, ids ...string) ([]*Job, error) {
	for {
		ret := make([]*Job, 0, len(ids))
		done := true
		for _, id := range ids {
			job, err := s.jobDAO.Load(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("failed to load job %s: %w", id, err)
			}
			done = done && job.State.IsTerminal()
			ret = append(ret, job)
		}
		if done {
			return ret, nil
		}
		if err := clock.Pause(ctx, s.config.PollInterval); err != nil {
			return ret, err
		}
	}
}

func (s *Service) processMessage(ctx context.Context, message messaging.Message[Job]) (err error) {
	stored, err := s.jobDAO.Load(ctx, message.T().ID)
	if err != nil {
		return message.Nack(err)
	}
	job := *stored
	ctx, span := tracing.StartSpan(ctx, "processor.Job", map[string]string{"job.id": job.ID})
	defer func() { tracing.EndSpan(span, err) }()

	job.Attempts++
	job.State = JobStateRunning
	if err = s.save(ctx, job); err != nil {
		return message.Nack(err)
	}

	sim, runErr := s.factory(&job)
	if runErr == nil {
		job.Result, runErr = sim.Run(ctx)
		sim.Close()
	}
	if runErr != nil {
		if errors.Is(runErr, context.Canceled) {
			return message.Nack(runErr)
		}
		job.Error = runErr.Error()
		if job.Attempts < s.config.MaxAttempts {
			job.State = JobStatePending
			job.Result = nil
			if err = s.save(ctx, job); err != nil {
				return message.Nack(err)
			}
			return message.Nack(runErr)
		}
		job.State = JobStateFailed
		if err = s.save(ctx, job); err != nil {
			return message.Nack(err)
		}
		return message.Ack()
	}

	job.Result.History = nil
	job.State = JobStateCompleted
	job.Error = ""
	if err = s.save(ctx, job); err != nil {
		return message.Nack(err)
	}
	s.logger.Debug("job completed", "jobId", job.ID, "quantum", job.Quantum, "seed", job.Seed)
	return message.Ack()
}

// save stores a copy so readers never observe in-flight mutation
func (s *Service) save(ctx context.Context, job Job) error {
	return s.jobDAO.Save(ctx, &job)
}

// Shutdown stops the workers
func (s *Service) Shutdown() {
	s.once.Do(func() {
		for _, w := range s.workers {
			w.cancelFn()
		}
		s.workerWg.Wait()
	})
}
