package process

// State represents the current lifecycle State of a process
type State string

const (
	StateNew              State = "NEW"
	StateReady            State = "READY"
	StateRunning          State = "RUNNING"
	StateWaiting          State = "WAITING"
	StateTerminated       State = "TERMINATED"
	StateReadySuspended   State = "READY_SUSPENDED"
	StateWaitingSuspended State = "WAITING_SUSPENDED"
)

// States lists all states in display order.
var States = []State{
	StateNew,
	StateReady,
	StateRunning,
	StateWaiting,
	StateTerminated,
	StateReadySuspended,
	StateWaitingSuspended,
}

// IsSuspended returns true for swapped out states
func (s State) IsSuspended() bool {
	return s == StateReadySuspended || s == StateWaitingSuspended
}

// IsTerminal returns true when no further transition is possible
func (s State) IsTerminal() bool {
	return s == StateTerminated
}

// Suspended returns the suspended counterpart of an active state, ok is false
// when the state cannot be swapped out.
func (s State) Suspended() (State, bool) {
	switch s {
	case StateReady:
		return StateReadySuspended, true
	case StateWaiting:
		return StateWaitingSuspended, true
	}
	return s, false
}

// Resumed returns the active counterpart of a suspended state.
func (s State) Resumed() (State, bool) {
	switch s {
	case StateReadySuspended:
		return StateReady, true
	case StateWaitingSuspended:
		return StateWaiting, true
	}
	return s, false
}

// ParseState converts text into a State, ok is false for unknown values.
func ParseState(text string) (State, bool) {
	for _, candidate := range States {
		if string(candidate) == text {
			return candidate, true
		}
	}
	return "", false
}
