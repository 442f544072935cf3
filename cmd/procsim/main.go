// Command procsim runs the process lifecycle simulator and prints every cycle.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/viant/procsim"
	"github.com/viant/procsim/progress"
	"github.com/viant/procsim/runtime/scheduler"
	"github.com/viant/procsim/service/printer"
	"github.com/viant/procsim/service/simulator"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("procsim: %v", err)
	}
}

func run(args []string, stdout io.Writer) error {
	flags := flag.NewFlagSet("procsim", flag.ContinueOnError)
	configURL := flags.String("config", "", "config location (yaml or json, any afs URL)")
	quantum := flags.Int("quantum", 0, "scheduler quantum")
	cycles := flags.Int("cycles", 0, "number of cycles")
	processes := flags.Int("processes", 0, "number of generated processes")
	seed := flags.Int64("seed", 0, "random seed, 0 seeds from the clock")
	delay := flags.Int("delay", 0, "pause between cycles in milliseconds")
	reportURL := flags.String("report", "", "write the final result to this location")
	listen := flags.String("listen", "", "serve the HTTP API on this address, e.g. :8080")
	traceOutput := flags.String("trace", "", "write OpenTelemetry spans to this file")
	verbose := flags.Bool("verbose", false, "debug logging")
	quiet := flags.Bool("quiet", false, "print a progress line per cycle instead of the cycle tables")
	sweep := flags.String("sweep", "", "comma separated quanta to compare, e.g. 1,2,4")
	runs := flags.Int("runs", 3, "seeds per quantum when sweeping")
	workers := flags.Int("workers", 4, "concurrent simulations when sweeping")
	jobsURL := flags.String("jobs", "", "persist sweep jobs under this location")
	if err := flags.Parse(args); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config := procsim.DefaultConfig()
	if *configURL != "" {
		var err error
		if config, err = procsim.LoadConfig(ctx, *configURL); err != nil {
			return err
		}
	}
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "quantum":
			config.Scheduler.Quantum = *quantum
		case "cycles":
			config.Simulation.Cycles = *cycles
		case "processes":
			config.Simulation.Processes = *processes
		case "seed":
			config.Simulation.Seed = *seed
		case "delay":
			config.Simulation.DelayMs = *delay
		case "report":
			config.Report.URL = *reportURL
		case "jobs":
			config.Report.JobsURL = *jobsURL
		case "trace":
			config.Tracing.Enabled = true
			config.Tracing.Output = *traceOutput
		case "verbose":
			if *verbose {
				config.Log.Level = "debug"
			}
		}
	})

	out := printer.New(stdout)
	if *sweep != "" {
		return runSweep(ctx, config, stdout, *sweep, *runs, *workers)
	}
	options := []procsim.Option{procsim.WithConfig(config)}
	if !*quiet {
		options = append(options, procsim.WithCycleListener(func(record *simulator.Record, snapshot *scheduler.Snapshot) {
			if err := out.Cycle(record, snapshot); err != nil {
				log.Printf("procsim: %v", err)
			}
		}))
	}
	srv, err := procsim.New(options...)
	if err != nil {
		return err
	}
	runtime := srv.Runtime()
	defer func() {
		if err := runtime.Shutdown(context.Background()); err != nil {
			log.Printf("procsim: shutdown: %v", err)
		}
	}()

	serveErr := make(chan error, 1)
	if *listen != "" {
		go func() { serveErr <- runtime.Serve(ctx, *listen) }()
	}

	if *quiet {
		ctx, _ = progress.WithNewTracker(ctx, runtime.Simulator().RunID(), config.Simulation.Cycles, func(p progress.Progress) {
			if err := out.Progress(p); err != nil {
				log.Printf("procsim: %v", err)
			}
		})
	}
	result, err := runtime.Run(ctx)
	if result != nil {
		if printErr := out.Result(result); printErr != nil {
			return printErr
		}
	}
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(stdout, "\nSimulation interrupted")
		err = withoutCancel(err)
	}
	if err != nil {
		return err
	}
	if *listen == "" {
		return nil
	}
	fmt.Fprintf(stdout, "\nServing %s, press Ctrl+C to exit\n", *listen)
	return <-serveErr
}

func runSweep(ctx context.Context, config *procsim.Config, stdout io.Writer, sweep string, runs, workers int) error {
	out := printer.New(stdout)
	quanta, err := parseInts(sweep)
	if err != nil {
		return err
	}
	if runs <= 0 {
		return fmt.Errorf("runs must be > 0")
	}
	base := config.Simulation.Seed
	if base == 0 {
		base = 1
	}
	seeds := make([]int64, 0, runs)
	for i := 0; i < runs; i++ {
		seeds = append(seeds, base+int64(i))
	}
	srv, err := procsim.New(procsim.WithConfig(config))
	if err != nil {
		return err
	}
	defer srv.Runtime().Shutdown(context.Background())
	jobs, err := srv.Runtime().Sweep(ctx, quanta, seeds, workers)
	if len(jobs) > 0 {
		if printErr := out.Jobs(jobs); printErr != nil {
			return printErr
		}
	}
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(stdout, "\nSweep interrupted")
		return nil
	}
	return err
}

func parseInts(text string) ([]int, error) {
	var ret []int
	for _, item := range strings.Split(text, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		value, err := strconv.Atoi(item)
		if err != nil {
			return nil, fmt.Errorf("invalid quantum %q: %w", item, err)
		}
		ret = append(ret, value)
	}
	if len(ret) == 0 {
		return nil, fmt.Errorf("no quanta in %q", text)
	}
	return ret, nil
}

// withoutCancel drops context.Canceled from a joined error
func withoutCancel(err error) error {
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
	var rest []error
	for _, item := range joined.Unwrap() {
		if !errors.Is(item, context.Canceled) {
			rest = append(rest, item)
		}
	}
	return errors.Join(rest...)
}
