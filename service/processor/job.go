package processor

import (
	"github.com/viant/procsim/service/simulator"
)

// JobState is the lifecycle of a sweep job
type JobState string

const (
	JobStatePending   JobState = "pending"
	JobStateRunning   JobState = "running"
	JobStateCompleted JobState = "completed"
	JobStateFailed    JobState = "failed"
)

// IsTerminal returns true for completed and failed jobs
func (s JobState) IsTerminal() bool {
	return s == JobStateCompleted || s == JobStateFailed
}

// Job is one simulation run of a sweep
type Job struct {
	ID       string            `json:"id" yaml:"id"`
	Quantum  int               `json:"quantum" yaml:"quantum"`
	Seed     int64             `json:"seed" yaml:"seed"`
	State    JobState          `json:"state" yaml:"state"`
	Attempts int               `json:"attempts" yaml:"attempts"`
	Error    string            `json:"error,omitempty" yaml:"error,omitempty"`
	Result   *simulator.Result `json:"result,omitempty" yaml:"result,omitempty"`
}

// Factory builds the simulator a job runs on
type Factory func(job *Job) (*simulator.Service, error)
