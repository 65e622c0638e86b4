package fabric

// A Queue is a bounded FIFO with show-ahead semantics: the head element
// stays readable through Peek until it is explicitly removed with
// TryPop. Push and pop never block; a push against a full queue is
// rejected and the queue is left untouched.
//
// Cursors are kept in the extended range [0, 2C) rather than [0, C).
// The extra bit disambiguates full from empty when both cursors reduce
// to the same slot index: the queue is empty when the cursors are
// equal, and full when they differ by exactly C in the extended range.
//
// A Queue is not safe for concurrent use. The fabric owns one per
// input port and touches it from a single goroutine per cycle.
//
type Queue[T any] struct {
	slots []T
	rd    int // read cursor in [0, 2C)
	wr    int // write cursor in [0, 2C)
}

// NewQueue returns an empty queue holding at most capacity elements.
// It panics if capacity is not positive.
//
func NewQueue[T any](capacity int) *Queue[T] {
	if capacity <= 0 {
		panic("fabric: queue capacity must be > 0")
	}
	return &Queue[T]{slots: make([]T, capacity)}
}

// TryPush appends v to the tail of the queue. It reports whether the
// element was accepted; a full queue rejects the push without mutation.
//
func (q *Queue[T]) TryPush(v T) bool {
	if q.Full() {
		return false
	}
	c := len(q.slots)
	q.slots[q.wr%c] = v
	q.wr = (q.wr + 1) % (2 * c)
	return true
}

// Peek returns the head element without removing it. The second return
// value is false if the queue is empty.
//
func (q *Queue[T]) Peek() (T, bool) {
	if q.Empty() {
		var zero T
		return zero, false
	}
	return q.slots[q.rd%len(q.slots)], true
}

// TryPop removes the head element. It reports whether an element was
// removed; popping an empty queue is a no-op returning false. TryPop
// does not return the element: callers Peek first, pop to commit.
//
func (q *Queue[T]) TryPop() bool {
	if q.Empty() {
		return false
	}
	q.rd = (q.rd + 1) % (2 * len(q.slots))
	return true
}

// Empty reports whether the queue holds no elements.
//
func (q *Queue[T]) Empty() bool {
	return q.rd == q.wr
}

// Full reports whether the queue is at capacity.
//
func (q *Queue[T]) Full() bool {
	c := len(q.slots)
	return q.wr == (q.rd+c)%(2*c)
}

// Len returns the number of elements currently queued.
//
func (q *Queue[T]) Len() int {
	d := q.wr - q.rd
	if d < 0 {
		d += 2 * len(q.slots)
	}
	return d
}

// Cap returns the queue capacity.
//
func (q *Queue[T]) Cap() int {
	return len(q.slots)
}

// Reset empties the queue by zeroing both cursors. Slot contents are
// left in place; they are unreachable until overwritten.
//
func (q *Queue[T]) Reset() {
	q.rd, q.wr = 0, 0
}
