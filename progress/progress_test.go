package progress

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker(t *testing.T) {
	var changes []Progress
	ctx, tracker := WithNewTracker(context.Background(), "run-1", 4, func(p Progress) {
		changes = append(changes, p)
	})

	UpdateCtx(ctx, Delta{Cycles: 1, Admitted: 1})
	UpdateCtx(ctx, Delta{Cycles: 1, Completed: 1, Suspended: 2, Resumed: 1})

	snapshot := tracker.Snapshot()
	assert.Equal(t, "run-1", snapshot.RunID)
	assert.Equal(t, 2, snapshot.Cycles)
	assert.Equal(t, 1, snapshot.Admitted)
	assert.Equal(t, 1, snapshot.Completed)
	assert.Equal(t, 2, snapshot.Suspended)
	assert.Equal(t, 1, snapshot.Resumed)
	assert.Equal(t, 50.0, tracker.Percent())

	require.Len(t, changes, 2)
	assert.Equal(t, 1, changes[0].Cycles)
	assert.Equal(t, 2, changes[1].Cycles)

	found, ok := FromContext(ctx)
	assert.True(t, ok)
	assert.Same(t, tracker, found)

	_, ok = FromContext(context.Background())
	assert.False(t, ok)
	UpdateCtx(context.Background(), Delta{Cycles: 1})
}

func TestTracker_Concurrent(t *testing.T) {
	tracker := &Progress{TotalCycles: 100}
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				tracker.Update(Delta{Cycles: 1})
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 100, tracker.Snapshot().Cycles)
	assert.Equal(t, 100.0, tracker.Percent())

	var nilTracker *Progress
	nilTracker.Update(Delta{Cycles: 1})
	assert.Equal(t, Progress{}, nilTracker.Snapshot())
}
