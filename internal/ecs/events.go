package ecs

// Events is a per-frame message queue. Producers Send during the frame,
// the designated handler Drains it once.
type Events[T any] struct {
	queue []T
}

// Send appends an event
func (e *Events[T]) Send(ev T) {
	e.queue = append(e.queue, ev)
}

// Drain returns every queued event and empties the queue
func (e *Events[T]) Drain() []T {
	out := e.queue
	e.queue = nil
	return out
}

// Len returns the number of queued events
func (e *Events[T]) Len() int {
	return len(e.queue)
}

// Clear drops all queued events
func (e *Events[T]) Clear() {
	e.queue = nil
}
