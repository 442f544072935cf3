package process

import (
	"errors"
	"fmt"
)

// ErrInvalidExecTime is returned when a process is created without CPU demand.
var ErrInvalidExecTime = errors.New("process: total exec time must be > 0")

// Process represents a simulated operating-system process.
//
// Identity fields (ID, Name, TotalExecTime, Priority) never change after New.
// Everything else is owned by the scheduler; callers must treat a process they
// handed to the scheduler as read-only.
type Process struct {
	ID            int    `json:"id" yaml:"id"`
	Name          string `json:"name" yaml:"name"`
	TotalExecTime int    `json:"totalExecTime" yaml:"totalExecTime"`
	// Priority is recorded but not consulted by dispatch.
	Priority      int   `json:"priority" yaml:"priority"`
	RemainingTime int   `json:"remainingTime" yaml:"remainingTime"`
	State         State `json:"state" yaml:"state"`
	CreationTime  int   `json:"creationTime" yaml:"creationTime"`
	WaitTime      int   `json:"waitTime" yaml:"waitTime"`
	ResponseTime  *int  `json:"responseTime,omitempty" yaml:"responseTime,omitempty"`
	FinishTime    *int  `json:"finishTime,omitempty" yaml:"finishTime,omitempty"`
}

// New creates a process in NEW state with its full CPU demand outstanding
func New(id int, name string, totalExecTime, priority int) (*Process, error) {
	if totalExecTime <= 0 {
		return nil, fmt.Errorf("%w: process %d has %d", ErrInvalidExecTime, id, totalExecTime)
	}
	return &Process{
		ID:            id,
		Name:          name,
		TotalExecTime: totalExecTime,
		Priority:      priority,
		RemainingTime: totalExecTime,
		State:         StateNew,
	}, nil
}

// Execute consumes up to quantum units of CPU and returns the time actually used.
func (p *Process) Execute(quantum int) int {
	used := quantum
	if p.RemainingTime < used {
		used = p.RemainingTime
	}
	if used < 0 {
		used = 0
	}
	p.RemainingTime -= used
	return used
}

// Completed returns true once no CPU demand is left
func (p *Process) Completed() bool {
	return p.RemainingTime <= 0
}

// IncrementWait accounts one cycle spent in the READY queue
func (p *Process) IncrementWait() {
	p.WaitTime++
}

// RecordResponse sets the response time at first dispatch; later calls are ignored.
func (p *Process) RecordResponse(now int) {
	if p.ResponseTime != nil {
		return
	}
	value := now - p.CreationTime
	p.ResponseTime = &value
}

// RecordFinish sets the finish time at termination; later calls are ignored.
func (p *Process) RecordFinish(now int) {
	if p.FinishTime != nil {
		return
	}
	value := now
	p.FinishTime = &value
}

// Clone returns a deep copy; optional times are copied by value so that the
// clone never aliases the original.
func (p *Process) Clone() *Process {
	if p == nil {
		return nil
	}
	out := *p
	if p.ResponseTime != nil {
		value := *p.ResponseTime
		out.ResponseTime = &value
	}
	if p.FinishTime != nil {
		value := *p.FinishTime
		out.FinishTime = &value
	}
	return &out
}

// String returns a short human readable description
func (p *Process) String() string {
	return fmt.Sprintf("Process %d (%s) - State: %s - Remaining: %d", p.ID, p.Name, p.State, p.RemainingTime)
}
