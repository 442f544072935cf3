package policy

import (
	"fmt"

	"github.com/viant/procsim/model/process"
	"github.com/viant/procsim/runtime/random"
	"github.com/viant/procsim/runtime/scheduler"
)

// Action recognised by the driver.
type Action string

const (
	ActionSuspend Action = "suspend"
	ActionResume  Action = "resume"
)

// Directive asks the driver to apply an action to a process
type Directive struct {
	ProcessID int           `json:"processId"`
	Action    Action        `json:"action"`
	From      process.State `json:"from"`
}

// String returns a readable directive
func (d Directive) String() string {
	return fmt.Sprintf("%s process %d from %s", d.Action, d.ProcessID, d.From)
}

// Admission decides when the head of the pending list is admitted
type Admission struct {
	Probability float64 `json:"probability" yaml:"probability"`
}

// Admit returns true when a pending process should be admitted this cycle.
// No draw is taken when nothing is pending.
func (a Admission) Admit(pending int, source random.Source) bool {
	if pending == 0 {
		return false
	}
	return source.Chance(a.Probability)
}

// Swap decides swapping between main and secondary memory.
//
//   - Probability gates the whole swap phase of a cycle.
//   - Suspend is the chance to swap out the head of READY and of WAITING.
//   - Resume is the chance to swap in the head of each suspended queue.
type Swap struct {
	Probability float64 `json:"probability" yaml:"probability"`
	Suspend     float64 `json:"suspendProbability" yaml:"suspendProbability"`
	Resume      float64 `json:"resumeProbability" yaml:"resumeProbability"`
}

// DefaultSwap returns the default swap policy
func DefaultSwap() Swap {
	return Swap{Probability: 0.4, Suspend: 0.4, Resume: 0.3}
}

// Validate checks probability bounds
func (s Swap) Validate() error {
	for name, value := range map[string]float64{
		"probability":        s.Probability,
		"suspendProbability": s.Suspend,
		"resumeProbability":  s.Resume,
	} {
		if value < 0 || value > 1 {
			return fmt.Errorf("swap.%s must be within [0,1]", name)
		}
	}
	return nil
}

// Decide returns the directives for the supplied snapshot.  Draws for a queue
// are only taken when the queue is non-empty.
func (s Swap) Decide(snapshot *scheduler.Snapshot, source random.Source) []Directive {
	if snapshot == nil || !source.Chance(s.Probability) {
		return nil
	}
	var ret []Directive
	consider := func(candidates []*process.Process, probability float64, action Action) {
		if len(candidates) == 0 || !source.Chance(probability) {
			return
		}
		head := candidates[0]
		ret = append(ret, Directive{ProcessID: head.ID, Action: action, From: head.State})
	}
	consider(snapshot.Ready, s.Suspend, ActionSuspend)
	consider(snapshot.ReadySuspended, s.Resume, ActionResume)
	consider(snapshot.Waiting, s.Suspend, ActionSuspend)
	consider(snapshot.WaitingSuspended, s.Resume, ActionResume)
	return ret
}
