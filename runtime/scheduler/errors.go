package scheduler

import "errors"

var (
	// ErrInvalidTransition is returned by Suspend/Resume when the process is
	// not in a state the operation applies to.  No queue is modified.
	ErrInvalidTransition = errors.New("scheduler: invalid transition")

	// ErrUnknownProcess is returned when the process id was never admitted.
	ErrUnknownProcess = errors.New("scheduler: unknown process")
)
