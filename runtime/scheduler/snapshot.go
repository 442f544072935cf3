package scheduler

import "github.com/viant/procsim/model/process"

// Snapshot is a detached copy of every queue; mutating it never affects the
// scheduler.
type Snapshot struct {
	Time             int                `json:"time" yaml:"time"`
	New              []*process.Process `json:"new" yaml:"new"`
	Ready            []*process.Process `json:"ready" yaml:"ready"`
	Running          *process.Process   `json:"running,omitempty" yaml:"running,omitempty"`
	Waiting          []*process.Process `json:"waiting" yaml:"waiting"`
	Terminated       []*process.Process `json:"terminated" yaml:"terminated"`
	ReadySuspended   []*process.Process `json:"readySuspended" yaml:"readySuspended"`
	WaitingSuspended []*process.Process `json:"waitingSuspended" yaml:"waitingSuspended"`
}

// Queue returns the processes held in the given state
func (s *Snapshot) Queue(state process.State) []*process.Process {
	switch state {
	case process.StateNew:
		return s.New
	case process.StateReady:
		return s.Ready
	case process.StateRunning:
		if s.Running == nil {
			return nil
		}
		return []*process.Process{s.Running}
	case process.StateWaiting:
		return s.Waiting
	case process.StateTerminated:
		return s.Terminated
	case process.StateReadySuspended:
		return s.ReadySuspended
	case process.StateWaitingSuspended:
		return s.WaitingSuspended
	}
	return nil
}

// Counts returns the number of processes per state
func (s *Snapshot) Counts() map[process.State]int {
	ret := make(map[process.State]int, len(process.States))
	for _, state := range process.States {
		ret[state] = len(s.Queue(state))
	}
	return ret
}

// Total returns the number of processes known to the scheduler
func (s *Snapshot) Total() int {
	total := 0
	for _, count := range s.Counts() {
		total += count
	}
	return total
}

// Pending returns the number of admitted processes still competing or
// swapped out (READY, WAITING and both suspended states).
func (s *Snapshot) Pending() int {
	return len(s.Ready) + len(s.Waiting) + len(s.ReadySuspended) + len(s.WaitingSuspended)
}

func cloneAll(items []*process.Process) []*process.Process {
	ret := make([]*process.Process, 0, len(items))
	for _, item := range items {
		ret = append(ret, item.Clone())
	}
	return ret
}
