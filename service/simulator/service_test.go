package simulator

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/procsim/model/process"
	"github.com/viant/procsim/progress"
	"github.com/viant/procsim/runtime/random"
	"github.com/viant/procsim/runtime/scheduler"
	"github.com/viant/procsim/service/dao"
	"github.com/viant/procsim/service/event"
)

func newSeeded(t *testing.T, seed int64, options ...Option) *Service {
	config := DefaultConfig()
	config.Seed = seed
	srv, err := New(append([]Option{WithConfig(config), WithRunID("run-test")}, options...)...)
	require.NoError(t, err)
	return srv
}

func TestService_Reproducible(t *testing.T) {
	for _, seed := range []int64{1, 7, 42} {
		first, err := newSeeded(t, seed).Run(context.Background())
		require.NoError(t, err)
		second, err := newSeeded(t, seed).Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, first, second, "seed %d", seed)
		assert.Equal(t, 100, first.Cycles)
		assert.Len(t, first.History, 100)
	}
}

func TestService_Conservation(t *testing.T) {
	srv := newSeeded(t, 2024)
	ctx := context.Background()
	for i := 0; i < 60; i++ {
		record, err := srv.Step(ctx)
		require.NoError(t, err)
		total := 0
		for _, count := range record.Counts {
			total += count
		}
		assert.Equal(t, 15, total+srv.Unadmitted(), "cycle %d", record.Cycle)
		assert.LessOrEqual(t, record.Counts[process.StateRunning], 1)
	}
	snapshot := srv.Snapshot()
	assert.Equal(t, 15, snapshot.Total()+srv.Unadmitted())

	result, err := srv.Result(ctx)
	require.NoError(t, err)
	assert.Equal(t, 60, result.Cycles)
	assert.Equal(t, len(snapshot.Terminated), result.Terminated)
	assert.Equal(t, snapshot.Pending(), result.Pending)
	assert.Equal(t, result.Statistics, srv.Statistics())
}

func TestService_Processes(t *testing.T) {
	srv := newSeeded(t, 42)
	ctx := context.Background()
	result, err := srv.Run(ctx)
	require.NoError(t, err)

	all, err := srv.Processes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 15-result.Unadmitted, len(all))
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].ID, all[i].ID)
	}

	terminated, err := srv.Processes(ctx, dao.NewParameter(dao.StateParameter, string(process.StateTerminated)))
	require.NoError(t, err)
	assert.Len(t, terminated, result.Terminated)
	for _, p := range terminated {
		assert.Equal(t, process.StateTerminated, p.State)
		require.NotNil(t, p.FinishTime)
		p.RemainingTime = 99
	}
	if len(terminated) > 0 {
		actual, err := srv.Process(ctx, terminated[0].ID)
		require.NoError(t, err)
		assert.Equal(t, 0, actual.RemainingTime)
	}
	_, err = srv.Process(ctx, 1000)
	assert.True(t, errors.Is(err, dao.ErrNotFound))
}

func TestService_FirstStep(t *testing.T) {
	config := DefaultConfig()
	config.Processes = 2
	srv, err := New(WithConfig(config), WithRandom(random.Fixed(true)))
	require.NoError(t, err)

	record, err := srv.Step(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, record.Cycle)
	assert.Equal(t, 1, record.Time)
	assert.Equal(t, 1, record.Admitted)
	assert.Equal(t, 1, record.Counts[process.StateNew])
	assert.Empty(t, record.Directives)
	assert.Equal(t, 1, srv.Unadmitted())

	processes, err := srv.Processes(context.Background())
	require.NoError(t, err)
	require.Len(t, processes, 1)
	assert.Equal(t, 5, processes[0].TotalExecTime)
	assert.Equal(t, "process_1", processes[0].Name)
}

func TestService_SuspendResume(t *testing.T) {
	srv := newSeeded(t, 3)
	ctx := context.Background()
	err := srv.Suspend(ctx, 77)
	assert.True(t, errors.Is(err, scheduler.ErrUnknownProcess))
	err = srv.Resume(ctx, 77)
	assert.True(t, errors.Is(err, scheduler.ErrUnknownProcess))

	for i := 0; i < 100; i++ {
		_, err := srv.Step(ctx)
		require.NoError(t, err)
		snapshot := srv.Snapshot()
		if len(snapshot.Ready) == 0 {
			continue
		}
		id := snapshot.Ready[0].ID
		require.NoError(t, srv.Suspend(ctx, id))
		assert.True(t, errors.Is(srv.Suspend(ctx, id), scheduler.ErrInvalidTransition))
		require.NoError(t, srv.Resume(ctx, id))
		p, err := srv.Process(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, process.StateReady, p.State)
		return
	}
	t.Skip("no READY process observed")
}

func TestService_Cancel(t *testing.T) {
	srv := newSeeded(t, 5)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result, err := srv.Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
	require.NotNil(t, result)
	assert.Equal(t, 0, result.Cycles)
	assert.Equal(t, 15, result.Unadmitted)
}

func TestService_CancelBetweenCycles(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	srv := newSeeded(t, 5, WithCycleListener(func(record *Record, _ *scheduler.Snapshot) {
		if record.Cycle == 10 {
			cancel()
		}
	}))
	result, err := srv.Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 10, result.Cycles)
	assert.Len(t, result.History, 10)
}

func TestService_Listeners(t *testing.T) {
	var mu sync.Mutex
	var transitions []scheduler.Transition
	var cycles []int
	srv := newSeeded(t, 11,
		WithTransitionHandler(func(evt *event.Event[scheduler.Transition]) {
			mu.Lock()
			transitions = append(transitions, evt.Data)
			mu.Unlock()
			assert.Equal(t, "run-test", evt.Context.RunID)
			assert.Equal(t, event.TypeTransition, evt.Context.EventType)
		}),
		WithCycleListener(func(record *Record, snapshot *scheduler.Snapshot) {
			require.NotNil(t, snapshot)
			cycles = append(cycles, record.Cycle)
		}),
	)
	defer srv.Close()

	ctx, tracker := progress.WithNewTracker(context.Background(), srv.RunID(), 20, nil)
	for i := 0; i < 20; i++ {
		_, err := srv.Step(ctx)
		require.NoError(t, err)
	}
	assert.Len(t, cycles, 20)
	snapshot := tracker.Snapshot()
	assert.Equal(t, 20, snapshot.Cycles)
	assert.Equal(t, 15-srv.Unadmitted(), snapshot.Admitted)

	admitted := 15 - srv.Unadmitted()
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		count := 0
		for _, transition := range transitions {
			if transition.From == "" && transition.To == process.StateNew {
				count++
			}
		}
		return count == admitted
	}, time.Second, 5*time.Millisecond)
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		description string
		config      Config
		expectErr   bool
	}{
		{description: "default", config: DefaultConfig()},
		{description: "negative cycles", config: Config{Cycles: -1}, expectErr: true},
		{description: "probability above one", config: Config{AdmissionProbability: 1.5}, expectErr: true},
		{description: "negative delay", config: Config{DelayMs: -5}, expectErr: true},
	}
	for _, tc := range testCases {
		err := tc.config.Validate()
		if tc.expectErr {
			assert.Error(t, err, tc.description)
			continue
		}
		assert.NoError(t, err, tc.description)
	}
	_, err := New(WithConfig(Config{Cycles: -1}))
	assert.Error(t, err)
}
