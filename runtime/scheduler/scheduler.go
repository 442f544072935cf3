package scheduler

import (
	"fmt"

	"github.com/viant/procsim/model/process"
	"github.com/viant/procsim/runtime/random"
)

// Config represents scheduler configuration
type Config struct {
	// Quantum is the maximum CPU time granted per dispatch
	Quantum int `json:"quantum" yaml:"quantum"`

	// AdmissionDelay is the number of time units a process stays NEW
	AdmissionDelay int `json:"admissionDelay" yaml:"admissionDelay"`

	// IOCompletionProbability is the per cycle chance a WAITING process completes its I/O
	IOCompletionProbability float64 `json:"ioCompletionProbability" yaml:"ioCompletionProbability"`

	// IONeedProbability is the chance a process requests I/O after an execution slice
	IONeedProbability float64 `json:"ioNeedProbability" yaml:"ioNeedProbability"`
}

// DefaultConfig returns the default scheduler configuration
func DefaultConfig() Config {
	return Config{
		Quantum:                 2,
		AdmissionDelay:          3,
		IOCompletionProbability: 0.3,
		IONeedProbability:       0.2,
	}
}

// Validate checks configuration bounds
func (c Config) Validate() error {
	if c.Quantum <= 0 {
		return fmt.Errorf("scheduler.quantum must be > 0")
	}
	if c.AdmissionDelay < 0 {
		return fmt.Errorf("scheduler.admissionDelay must be >= 0")
	}
	if c.IOCompletionProbability < 0 || c.IOCompletionProbability > 1 {
		return fmt.Errorf("scheduler.ioCompletionProbability must be within [0,1]")
	}
	if c.IONeedProbability < 0 || c.IONeedProbability > 1 {
		return fmt.Errorf("scheduler.ioNeedProbability must be within [0,1]")
	}
	return nil
}

// Transition describes a single state change
type Transition struct {
	ProcessID int           `json:"processId"`
	Name      string        `json:"name"`
	From      process.State `json:"from,omitempty"`
	To        process.State `json:"to"`
	Time      int           `json:"time"`
}

// Observer receives transitions as they happen
type Observer func(transition Transition)

// Scheduler moves processes through the seven-state model
type Scheduler struct {
	config    Config
	random    random.Source
	observers []Observer

	time    int
	running *process.Process

	newQueue         queue[*process.Process]
	ready            queue[*process.Process]
	waiting          queue[*process.Process]
	readySuspended   queue[*process.Process]
	waitingSuspended queue[*process.Process]
	terminated       []*process.Process

	counters counters
}

// New creates a scheduler
func New(options ...Option) (*Scheduler, error) {
	s := &Scheduler{config: DefaultConfig()}
	for _, opt := range options {
		opt(s)
	}
	if s.random == nil {
		return nil, fmt.Errorf("random source is required")
	}
	if err := s.config.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Config returns the scheduler configuration
func (s *Scheduler) Config() Config {
	return s.config
}

// Time returns the current simulated time
func (s *Scheduler) Time() int {
	return s.time
}

// Admit registers a new process at the tail of the NEW queue.  Admitting the
// same process twice is not guarded against.
func (s *Scheduler) Admit(p *process.Process) {
	p.CreationTime = s.time
	p.State = process.StateNew
	s.newQueue.Push(p)
	s.notify(p, "")
}

// Suspend swaps a READY or WAITING process out to its suspended queue.
func (s *Scheduler) Suspend(id int) error {
	match := byID(id)
	if p, ok := s.ready.Remove(match); ok {
		s.moveTo(p, process.StateReadySuspended, &s.readySuspended)
		return nil
	}
	if p, ok := s.waiting.Remove(match); ok {
		s.moveTo(p, process.StateWaitingSuspended, &s.waitingSuspended)
		return nil
	}
	return s.rejection(id, "suspend")
}

// Resume brings a suspended process back to its active queue.
func (s *Scheduler) Resume(id int) error {
	match := byID(id)
	if p, ok := s.readySuspended.Remove(match); ok {
		s.moveTo(p, process.StateReady, &s.ready)
		return nil
	}
	if p, ok := s.waitingSuspended.Remove(match); ok {
		s.moveTo(p, process.StateWaiting, &s.waiting)
		return nil
	}
	return s.rejection(id, "resume")
}

// Advance executes one scheduling cycle and returns the updated statistics.
func (s *Scheduler) Advance() Statistics {
	s.time++
	s.promoteNew()
	s.resolveIO()
	s.dispatch()
	s.execute()
	s.ready.Each(func(p *process.Process) { p.IncrementWait() })
	return s.Statistics()
}

// Statistics returns aggregate metrics for the current time
func (s *Scheduler) Statistics() Statistics {
	return s.counters.statistics(s.time)
}

// Snapshot returns a deep copy of all queues
func (s *Scheduler) Snapshot() *Snapshot {
	ret := &Snapshot{
		Time:             s.time,
		New:              cloneAll(s.newQueue.items),
		Ready:            cloneAll(s.ready.items),
		Waiting:          cloneAll(s.waiting.items),
		Terminated:       cloneAll(s.terminated),
		ReadySuspended:   cloneAll(s.readySuspended.items),
		WaitingSuspended: cloneAll(s.waitingSuspended.items),
	}
	if s.running != nil {
		ret.Running = s.running.Clone()
	}
	return ret
}

// promoteNew moves processes that aged past the admission delay to READY,
// keeping the relative order of both groups.
func (s *Scheduler) promoteNew() {
	for _, p := range s.newQueue.Drain() {
		if s.time-p.CreationTime >= s.config.AdmissionDelay {
			s.moveTo(p, process.StateReady, &s.ready)
			continue
		}
		s.newQueue.Push(p)
	}
}

// resolveIO draws I/O completion once per WAITING process.
func (s *Scheduler) resolveIO() {
	for _, p := range s.waiting.Drain() {
		if s.random.Chance(s.config.IOCompletionProbability) {
			s.moveTo(p, process.StateReady, &s.ready)
			continue
		}
		s.waiting.Push(p)
	}
}

func (s *Scheduler) dispatch() {
	if s.running != nil && s.running.State == process.StateRunning {
		return
	}
	s.running = nil
	p, ok := s.ready.Pop()
	if !ok {
		return
	}
	from := p.State
	p.State = process.StateRunning
	p.RecordResponse(s.time)
	s.running = p
	s.notify(p, from)
}

func (s *Scheduler) execute() {
	p := s.running
	if p == nil {
		return
	}
	executed := p.Execute(s.config.Quantum)
	s.time += executed

	switch {
	case s.random.Chance(s.config.IONeedProbability):
		s.running = nil
		s.moveTo(p, process.StateWaiting, &s.waiting)
	case p.Completed():
		s.running = nil
		s.terminate(p)
	case executed == s.config.Quantum:
		s.running = nil
		s.moveTo(p, process.StateReady, &s.ready)
	}
}

func (s *Scheduler) terminate(p *process.Process) {
	from := p.State
	p.State = process.StateTerminated
	p.RecordFinish(s.time)
	s.terminated = append(s.terminated, p)
	s.counters.completed++
	s.counters.totalWaitTime += p.WaitTime
	if p.ResponseTime != nil {
		s.counters.totalResponseTime += *p.ResponseTime
	}
	s.notify(p, from)
}

func (s *Scheduler) moveTo(p *process.Process, state process.State, target *queue[*process.Process]) {
	from := p.State
	p.State = state
	target.Push(p)
	s.notify(p, from)
}

func (s *Scheduler) rejection(id int, operation string) error {
	if p := s.lookup(id); p != nil {
		return fmt.Errorf("%w: cannot %s process %d in %s state", ErrInvalidTransition, operation, id, p.State)
	}
	return fmt.Errorf("%w: %d", ErrUnknownProcess, id)
}

// lookup finds a process in any queue or slot
func (s *Scheduler) lookup(id int) *process.Process {
	if s.running != nil && s.running.ID == id {
		return s.running
	}
	match := byID(id)
	for _, q := range []*queue[*process.Process]{&s.newQueue, &s.ready, &s.waiting, &s.readySuspended, &s.waitingSuspended} {
		if p, ok := q.Find(match); ok {
			return p
		}
	}
	for _, p := range s.terminated {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (s *Scheduler) notify(p *process.Process, from process.State) {
	if len(s.observers) == 0 {
		return
	}
	transition := Transition{ProcessID: p.ID, Name: p.Name, From: from, To: p.State, Time: s.time}
	for _, observer := range s.observers {
		observer(transition)
	}
}

func byID(id int) func(*process.Process) bool {
	return func(p *process.Process) bool { return p.ID == id }
}
