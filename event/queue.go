package event

import (
	"sync/atomic"
)

// DefaultQueueCapacity bounds one frame's event intake unless the
// application configures its own
const DefaultQueueCapacity = 256

// Queue is a lock-free MPSC ring buffer for UI events
// Thread-Safety:
//   - Push: Lock-free CAS, multiple producers OK (shell pump + frame code)
//   - Drain: Single consumer (update loop)
//   - Published flags prevent reading partial writes
//
// Overflow: a push against a full ring drops the new event and counts
// it; the update loop reports the count once per frame so overload is
// never silent
type Queue struct {
	events    []Event
	published []atomic.Bool // True = slot fully written
	capacity  uint64
	head      atomic.Uint64 // Read index
	tail      atomic.Uint64 // Write index
	dropped   atomic.Uint64 // Pushes rejected since the last report
}

// NewQueue creates a queue holding at most capacity pending events
func NewQueue(capacity int) *Queue {
	if capacity < 1 {
		capacity = 1
	}
	return &Queue{
		events:    make([]Event, capacity),
		published: make([]atomic.Bool, capacity),
		capacity:  uint64(capacity),
	}
}

// Push adds an event using lock-free CAS with published flags
// Returns false when the ring is full; the event is dropped and
// counted, never blocked on
func (q *Queue) Push(ev Event) bool {
	for {
		currentTail := q.tail.Load()
		currentHead := q.head.Load()

		if currentTail-currentHead >= q.capacity {
			q.dropped.Add(1)
			return false
		}

		if q.tail.CompareAndSwap(currentTail, currentTail+1) {
			idx := currentTail % q.capacity
			q.events[idx] = ev
			q.published[idx].Store(true) // MUST be after the write
			return true
		}
	}
}

// Drain returns all pending events in FIFO order and advances head
// Single-consumer design. Checks published flags for safety
func (q *Queue) Drain() []Event {
	for {
		currentHead := q.head.Load()
		currentTail := q.tail.Load()

		if currentTail == currentHead {
			return nil
		}

		available := currentTail - currentHead
		result := make([]Event, 0, available)
		for i := uint64(0); i < available; i++ {
			idx := (currentHead + i) % q.capacity

			if !q.published[idx].Load() {
				break // Writer incomplete
			}

			result = append(result, q.events[idx])
			q.published[idx].Store(false)
		}

		newHead := currentHead + uint64(len(result))
		if q.head.CompareAndSwap(currentHead, newHead) {
			if len(result) == 0 {
				return nil
			}
			return result
		}
	}
}

// Len returns the approximate pending event count
// Lock-free; used for diagnostics
func (q *Queue) Len() int {
	head := q.head.Load()
	tail := q.tail.Load()
	if tail <= head {
		return 0
	}
	diff := tail - head
	if diff > q.capacity {
		diff = q.capacity
	}
	return int(diff)
}

// Capacity returns the configured ring size
func (q *Queue) Capacity() int {
	return int(q.capacity)
}

// TakeDropped returns the number of pushes rejected since the last
// call and resets the counter. The update loop turns a non-zero count
// into one overflow diagnostic per frame
func (q *Queue) TakeDropped() uint64 {
	return q.dropped.Swap(0)
}
