// Package scheduler implements the seven-state process scheduler.
//
// The scheduler owns one FIFO queue per state (RUNNING is a single slot) and
// moves processes between them.  Simulated time is internal: every Advance
// call adds one unit at the start of the cycle and then the CPU time executed
// by the running process, so a single cycle may advance time by 1+quantum.
//
// A Scheduler performs no locking.  Callers sharing one between goroutines
// must serialize all calls, for example behind a single mutex.
package scheduler
