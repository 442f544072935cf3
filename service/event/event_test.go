package event

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/procsim/service/messaging/memory"
)

type payload struct {
	Name string
}

func TestPublisher(t *testing.T) {
	publisher := NewPublisher[payload](memory.NewQueue[Event[payload]](memory.DefaultConfig()))
	ctx := context.Background()
	require.NoError(t, publisher.Publish(ctx, NewEvent(&Context{RunID: "r1", EventType: TypeTransition, Cycle: 2}, payload{Name: "p"})))

	event, err := publisher.Consume(ctx)
	require.NoError(t, err)
	assert.Equal(t, "r1", event.Context.RunID)
	assert.Equal(t, 2, event.Context.Cycle)
	assert.Equal(t, "p", event.Data.Name)
	assert.False(t, event.CreatedAt.IsZero())
}

func TestListener(t *testing.T) {
	publisher := NewPublisher[payload](memory.NewQueue[Event[payload]](memory.DefaultConfig()))
	var mu sync.Mutex
	var received []string
	listener := NewListener(publisher, func(event *Event[payload]) {
		mu.Lock()
		received = append(received, event.Data.Name)
		mu.Unlock()
	})
	listener.Start(context.Background())

	ctx := context.Background()
	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, publisher.Publish(ctx, NewEvent(&Context{EventType: TypeTransition}, payload{Name: name})))
	}
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(received) == 3
	}, time.Second, 5*time.Millisecond)
	listener.Stop()
	listener.Stop()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"a", "b", "c"}, received)
}

func TestListener_StopWithoutStart(t *testing.T) {
	publisher := NewPublisher[payload](memory.NewQueue[Event[payload]](memory.DefaultConfig()))
	listener := NewListener(publisher, func(*Event[payload]) {})
	listener.Stop()
}
