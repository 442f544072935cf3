package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueue(t *testing.T) {
	q := &queue[int]{}
	_, ok := q.Pop()
	assert.False(t, ok)

	q.Push(1, 2, 3, 4)
	assert.Equal(t, 4, q.Len())

	head, ok := q.Pop()
	assert.True(t, ok)
	assert.Equal(t, 1, head)

	removed, ok := q.Remove(func(v int) bool { return v == 3 })
	assert.True(t, ok)
	assert.Equal(t, 3, removed)
	assert.Equal(t, []int{2, 4}, q.Items())

	_, ok = q.Remove(func(v int) bool { return v == 9 })
	assert.False(t, ok)

	found, ok := q.Find(func(v int) bool { return v == 4 })
	assert.True(t, ok)
	assert.Equal(t, 4, found)

	items := q.Items()
	items[0] = 100
	assert.Equal(t, []int{2, 4}, q.Items())

	assert.Equal(t, []int{2, 4}, q.Drain())
	assert.Equal(t, 0, q.Len())
}

func TestQueue_RemoveLast(t *testing.T) {
	q := &queue[string]{}
	q.Push("a", "b", "c")
	_, ok := q.Remove(func(v string) bool { return v == "c" })
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, q.Items())
	_, ok = q.Remove(func(v string) bool { return v == "a" })
	assert.True(t, ok)
	assert.Equal(t, []string{"b"}, q.Items())
}
