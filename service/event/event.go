package event

import (
	"time"

	"github.com/viant/procsim/internal/clock"
)

// TypeTransition marks scheduler state transition events
const TypeTransition = "transition"

// Context identifies where an event originated
type Context struct {
	RunID     string `json:"runId"`
	EventType string `json:"eventType"`
	Cycle     int    `json:"cycle"`
	ProcessID int    `json:"processId,omitempty"`
}

// Event wraps a payload with its origin
type Event[T any] struct {
	Context   *Context               `json:"context"`
	CreatedAt time.Time              `json:"createdAt"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Data      T                      `json:"data"`
}

// NewEvent creates an event
func NewEvent[T any](context *Context, data T) *Event[T] {
	return &Event[T]{
		Context:   context,
		CreatedAt: clock.Now(),
		Data:      data,
	}
}
