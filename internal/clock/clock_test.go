package clock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPause(t *testing.T) {
	assert.NoError(t, Pause(context.Background(), 0))
	assert.NoError(t, Pause(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, Pause(ctx, time.Hour), context.Canceled)
}

func TestNow(t *testing.T) {
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	NowFunc = func() time.Time { return fixed }
	defer func() { NowFunc = time.Now }()
	assert.Equal(t, fixed, Now())
}
