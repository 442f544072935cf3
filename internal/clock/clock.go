// Package clock wraps wall-clock access used for event timestamps and run
// pacing.  Simulated time is never read from here; it belongs to the scheduler.
package clock

import (
	"context"
	"time"
)

// NowFunc returns current time. Override in tests for determinism.
var NowFunc = time.Now

// Now is a thin wrapper around NowFunc.
func Now() time.Time { return NowFunc() }

// Pause blocks for delay or until ctx is done, whichever comes first.
func Pause(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
