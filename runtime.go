package procsim

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/viant/procsim/internal/logging"
	"github.com/viant/procsim/service/api"
	"github.com/viant/procsim/service/dao/store"
	"github.com/viant/procsim/service/processor"
	"github.com/viant/procsim/service/report"
	"github.com/viant/procsim/service/simulator"
	"github.com/viant/procsim/tracing"
)

// Runtime runs a simulation and publishes its outcome
type Runtime struct {
	simulator     *simulator.Service
	reportService *report.Service
	notifier      *report.Notifier
	report        ReportConfig
	logger        *slog.Logger
	config        *Config
}

// Simulator returns the underlying simulator
func (r *Runtime) Simulator() *simulator.Service {
	return r.simulator
}

// Run executes the configured cycles and exports the result.  A cancelled
// run still returns and exports its partial result.
func (r *Runtime) Run(ctx context.Context) (*simulator.Result, error) {
	result, err := r.simulator.Run(ctx)
	if result == nil {
		return nil, err
	}
	// export must outlive a cancelled run context
	exportCtx := context.WithoutCancel(ctx)
	return result, errors.Join(err, r.Export(exportCtx, result))
}

// Export writes the result to the configured report URL and webhook
func (r *Runtime) Export(ctx context.Context, result *simulator.Result) error {
	var errs []error
	if r.report.URL != "" {
		URL, err := r.reportService.Write(ctx, r.report.URL, result)
		if err != nil {
			errs = append(errs, err)
		} else {
			r.logger.Info("report written", "url", URL)
		}
	}
	if r.notifier != nil {
		if err := r.notifier.Notify(ctx, result); err != nil {
			errs = append(errs, err)
		} else {
			r.logger.Info("report posted", "webhook", r.notifier.URL)
		}
	}
	return errors.Join(errs...)
}

// Sweep runs one simulation per quantum and seed on a worker pool.  Every run
// shares the service configuration apart from quantum and seed.
func (r *Runtime) Sweep(ctx context.Context, quanta []int, seeds []int64, workers int) ([]*processor.Job, error) {
	options := []processor.Option{
		processor.WithFactory(r.newJobSimulator),
		processor.WithWorkers(workers),
		processor.WithLogger(r.logger),
	}
	if r.report.JobsURL != "" {
		jobDAO, err := store.NewFSStore[string, processor.Job](ctx, r.report.JobsURL, func(job *processor.Job) string { return job.ID })
		if err != nil {
			return nil, err
		}
		options = append(options, processor.WithJobDAO(jobDAO))
	}
	jobs, err := processor.New(options...)
	if err != nil {
		return nil, err
	}
	jobs.Start(ctx)
	defer jobs.Shutdown()

	var ids []string
	for _, quantum := range quanta {
		for _, seed := range seeds {
			job, err := jobs.Submit(ctx, quantum, seed)
			if err != nil {
				return nil, err
			}
			ids = append(ids, job.ID)
		}
	}
	r.logger.Info("sweep started", "jobs", len(ids), "workers", workers)
	return jobs.Wait(ctx, ids...)
}

func (r *Runtime) newJobSimulator(job *processor.Job) (*simulator.Service, error) {
	simulation := r.config.Simulation
	simulation.Seed = job.Seed
	simulation.DelayMs = 0
	schedulerConfig := r.config.Scheduler
	schedulerConfig.Quantum = job.Quantum
	return simulator.New(
		simulator.WithConfig(simulation),
		simulator.WithSchedulerConfig(schedulerConfig),
		simulator.WithGeneratorConfig(r.config.Generator),
		simulator.WithSwap(r.config.Swap),
		simulator.WithRunID("sweep-"+job.ID),
	)
}

// Handler returns the HTTP surface for the simulation
func (r *Runtime) Handler() http.Handler {
	return api.NewRouter(r.simulator, r.logger)
}

// Serve listens on addr until ctx is done
func (r *Runtime) Serve(ctx context.Context, addr string) error {
	server := &http.Server{Addr: addr, Handler: r.Handler(), ReadHeaderTimeout: 5 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		r.logger.Info("http listening", "addr", addr)
		errCh <- server.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			r.logger.Warn("http shutdown", logging.ErrAttr(err))
			return err
		}
		return nil
	}
}

// Shutdown stops listeners and flushes traces
func (r *Runtime) Shutdown(ctx context.Context) error {
	r.simulator.Close()
	return tracing.Shutdown(ctx)
}
