package progress

import (
	"context"
	"sync"
	"time"

	"github.com/viant/procsim/internal/clock"
)

// Delta represents an incremental counter change emitted by the simulator.
type Delta struct {
	Cycles    int
	Admitted  int
	Completed int
	Suspended int
	Resumed   int
}

// Progress keeps aggregated run counters.  It is safe for concurrent use.
type Progress struct {
	RunID       string
	TotalCycles int
	StartedAt   time.Time

	Cycles    int
	Admitted  int
	Completed int
	Suspended int
	Resumed   int

	sync.Mutex
	onChange func(Progress)
}

// Update applies the supplied delta.  The onChange callback, if any, receives
// a copy outside the critical section.
func (p *Progress) Update(d Delta) {
	if p == nil {
		return
	}
	p.Lock()
	p.Cycles += d.Cycles
	p.Admitted += d.Admitted
	p.Completed += d.Completed
	p.Suspended += d.Suspended
	p.Resumed += d.Resumed
	snapshot := p.copy()
	cb := p.onChange
	p.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

// Percent returns completed cycles as a percentage of the total
func (p *Progress) Percent() float64 {
	if p == nil || p.TotalCycles == 0 {
		return 0
	}
	return 100 * float64(p.Cycles) / float64(p.TotalCycles)
}

// Snapshot returns a copy of the tracker suitable for read-only inspection.
func (p *Progress) Snapshot() Progress {
	if p == nil {
		return Progress{}
	}
	p.Lock()
	defer p.Unlock()
	return p.copy()
}

// OnChange registers a callback invoked after every Update.
func (p *Progress) OnChange(cb func(Progress)) {
	if p == nil {
		return
	}
	p.Lock()
	p.onChange = cb
	p.Unlock()
}

// copy must be called with the lock held
func (p *Progress) copy() Progress {
	return Progress{
		RunID:       p.RunID,
		TotalCycles: p.TotalCycles,
		StartedAt:   p.StartedAt,
		Cycles:      p.Cycles,
		Admitted:    p.Admitted,
		Completed:   p.Completed,
		Suspended:   p.Suspended,
		Resumed:     p.Resumed,
	}
}

type trackerKeyT struct{}

var trackerKey trackerKeyT

// WithNewTracker creates a tracker, embeds it in a derived context and
// returns both.
func WithNewTracker(ctx context.Context, runID string, totalCycles int, onChange func(Progress)) (context.Context, *Progress) {
	if ctx == nil {
		ctx = context.Background()
	}
	tr := &Progress{
		RunID:       runID,
		TotalCycles: totalCycles,
		StartedAt:   clock.Now(),
		onChange:    onChange,
	}
	return context.WithValue(ctx, trackerKey, tr), tr
}

// FromContext extracts the tracker from ctx.
func FromContext(ctx context.Context) (*Progress, bool) {
	if ctx == nil {
		return nil, false
	}
	tr, ok := ctx.Value(trackerKey).(*Progress)
	return tr, ok
}

// UpdateCtx applies the delta to the tracker carried by ctx, if any.
func UpdateCtx(ctx context.Context, d Delta) {
	if tr, ok := FromContext(ctx); ok {
		tr.Update(d)
	}
}
