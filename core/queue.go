package core

// QueueCapacity is the number of frames the firmware can hold while the
// transmitter is busy.
const QueueCapacity = 512

// Queue is a fixed capacity ring buffer. Storage is allocated once by
// NewQueue; Enqueue on a full queue drops the item.
type Queue[T any] struct {
	items []T
	head  int // next read position
	tail  int // next insert position
	count int
}

// NewQueue creates an empty queue holding at most capacity items.
func NewQueue[T any](capacity int) *Queue[T] {
	if capacity <= 0 {
		panic("queue capacity must be positive")
	}
	return &Queue[T]{items: make([]T, capacity)}
}

// Enqueue appends v. It returns false and leaves the queue unchanged when
// the queue is full.
func (q *Queue[T]) Enqueue(v T) bool {
	if q.count == len(q.items) {
		return false
	}
	q.items[q.tail] = v
	q.tail = (q.tail + 1) % len(q.items)
	q.count++
	return true
}

// Dequeue removes and returns the oldest item. Callers must check Empty
// first.
func (q *Queue[T]) Dequeue() T {
	if q.count == 0 {
		panic("dequeue from empty queue")
	}
	v := q.items[q.head]
	var zero T
	q.items[q.head] = zero
	q.head = (q.head + 1) % len(q.items)
	q.count--
	return v
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int {
	return q.count
}

// Cap returns the fixed capacity.
func (q *Queue[T]) Cap() int {
	return len(q.items)
}

// Empty reports whether there is nothing to dequeue.
func (q *Queue[T]) Empty() bool {
	return q.count == 0
}

// Full reports whether Enqueue would drop.
func (q *Queue[T]) Full() bool {
	return q.count == len(q.items)
}

// Reset discards all items.
func (q *Queue[T]) Reset() {
	var zero T
	for i := range q.items {
		q.items[i] = zero
	}
	q.head = 0
	q.tail = 0
	q.count = 0
}
