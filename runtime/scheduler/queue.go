package scheduler

// queue is an owned FIFO of items; it is not safe for concurrent use.
type queue[T any] struct {
	items []T
}

// Push appends items at the tail
func (q *queue[T]) Push(items ...T) {
	q.items = append(q.items, items...)
}

// Pop removes the head, ok is false when the queue is empty
func (q *queue[T]) Pop() (T, bool) {
	var zero T
	if len(q.items) == 0 {
		return zero, false
	}
	head := q.items[0]
	q.items[0] = zero
	q.items = q.items[1:]
	return head, true
}

// Len returns the number of queued items
func (q *queue[T]) Len() int {
	return len(q.items)
}

// Drain empties the queue and returns its former content in order
func (q *queue[T]) Drain() []T {
	ret := q.items
	q.items = nil
	return ret
}

// Remove extracts the first item matching predicate, preserving the order of
// the remaining items.
func (q *queue[T]) Remove(match func(T) bool) (T, bool) {
	var zero T
	for i, item := range q.items {
		if !match(item) {
			continue
		}
		copy(q.items[i:], q.items[i+1:])
		q.items[len(q.items)-1] = zero
		q.items = q.items[:len(q.items)-1]
		return item, true
	}
	return zero, false
}

// Find returns the first item matching predicate
func (q *queue[T]) Find(match func(T) bool) (T, bool) {
	for _, item := range q.items {
		if match(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Each calls fn for every item, head first
func (q *queue[T]) Each(fn func(T)) {
	for _, item := range q.items {
		fn(item)
	}
}

// Items returns a copy of the queued items
func (q *queue[T]) Items() []T {
	return append([]T(nil), q.items...)
}
