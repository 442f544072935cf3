// Package printer renders snapshots, statistics and results as text tables.
package printer

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/viant/procsim/model/process"
	"github.com/viant/procsim/progress"
	"github.com/viant/procsim/runtime/scheduler"
	"github.com/viant/procsim/service/processor"
	"github.com/viant/procsim/service/simulator"
)

// Service writes tables to the underlying writer
type Service struct {
	w io.Writer
}

// New creates a printer
func New(w io.Writer) *Service {
	return &Service{w: w}
}

// Cycle prints the state table followed by the running statistics
func (s *Service) Cycle(record *simulator.Record, snapshot *scheduler.Snapshot) error {
	if _, err := fmt.Fprintf(s.w, "\nCycle %d (time %d)\n", record.Cycle, record.Time); err != nil {
		return err
	}
	if err := s.Snapshot(snapshot); err != nil {
		return err
	}
	for _, directive := range record.Directives {
		if _, err := fmt.Fprintf(s.w, "  %s\n", directive.String()); err != nil {
			return err
		}
	}
	return s.Statistics(record.Statistics)
}

// Snapshot prints one row per state with its process ids
func (s *Service) Snapshot(snapshot *scheduler.Snapshot) error {
	tw := tabwriter.NewWriter(s.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STATE\tCOUNT\tPROCESSES")
	for _, state := range process.States {
		queue := snapshot.Queue(state)
		fmt.Fprintf(tw, "%s\t%d\t%s\n", state, len(queue), processList(queue))
	}
	return tw.Flush()
}

// Statistics prints the aggregate metrics
func (s *Service) Statistics(stats scheduler.Statistics) error {
	tw := tabwriter.NewWriter(s.w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Average wait time\t%.2f\n", stats.AverageWaitTime)
	fmt.Fprintf(tw, "Average response time\t%.2f\n", stats.AverageResponseTime)
	fmt.Fprintf(tw, "Throughput\t%.2f\n", stats.Throughput)
	return tw.Flush()
}

// Result prints the final metrics of a run
func (s *Service) Result(result *simulator.Result) error {
	if _, err := fmt.Fprintf(s.w, "\nFinal results (%s)\n", result.RunID); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(s.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "METRIC\tVALUE")
	fmt.Fprintf(tw, "Cycles executed\t%d\n", result.Cycles)
	fmt.Fprintf(tw, "Terminated processes\t%d\n", result.Terminated)
	fmt.Fprintf(tw, "Pending processes\t%d\n", result.Pending)
	fmt.Fprintf(tw, "Not admitted\t%d\n", result.Unadmitted)
	fmt.Fprintf(tw, "Average wait time\t%.2f\n", result.Statistics.AverageWaitTime)
	fmt.Fprintf(tw, "Average response time\t%.2f\n", result.Statistics.AverageResponseTime)
	fmt.Fprintf(tw, "Throughput\t%.2f\n", result.Statistics.Throughput)
	return tw.Flush()
}

// Jobs prints one row per sweep job
func (s *Service) Jobs(jobs []*processor.Job) error {
	tw := tabwriter.NewWriter(s.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "QUANTUM\tSEED\tSTATE\tCOMPLETED\tAVG WAIT\tAVG RESPONSE\tTHROUGHPUT")
	for _, job := range jobs {
		if job.Result == nil {
			fmt.Fprintf(tw, "%d\t%d\t%s\t-\t-\t-\t-\n", job.Quantum, job.Seed, job.State)
			continue
		}
		stats := job.Result.Statistics
		fmt.Fprintf(tw, "%d\t%d\t%s\t%d\t%.2f\t%.2f\t%.3f\n", job.Quantum, job.Seed, job.State,
			stats.Completed, stats.AverageWaitTime, stats.AverageResponseTime, stats.Throughput)
	}
	return tw.Flush()
}

// Progress prints a one line progress indicator
func (s *Service) Progress(p progress.Progress) error {
	_, err := fmt.Fprintf(s.w, "[%3.0f%%] cycle %d/%d admitted %d completed %d suspended %d resumed %d\n",
		p.Percent(), p.Cycles, p.TotalCycles, p.Admitted, p.Completed, p.Suspended, p.Resumed)
	return err
}

func processList(items []*process.Process) string {
	if len(items) == 0 {
		return "-"
	}
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, fmt.Sprintf("P%d", item.ID))
	}
	return strings.Join(ids, ", ")
}
