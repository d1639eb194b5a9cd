package event

import (
	"sync/atomic"

	"github.com/lixenwraith/orbitals/parameter"
)

// Queue is a lock-free MPSC ring buffer for engine events
// Thread-Safety:
//   - Push: Lock-free CAS, multiple producers OK (input poller, timers)
//   - Consume: Single consumer (frame scheduler)
//   - Published flags prevent reading partial writes
//
// Overflow: Oldest events overwritten when full
type Queue struct {
	events    [parameter.EventQueueSize]Event
	published [parameter.EventQueueSize]atomic.Bool // True = slot fully written
	head      atomic.Uint64                         // Read index
	tail      atomic.Uint64                         // Write index
}

func NewQueue() *Queue {
	return &Queue{}
}

// Push adds event using lock-free CAS with published flags pattern
// Safe for concurrent producers. O(1) amortized
func (q *Queue) Push(ev Event) {
	for {
		currentTail := q.tail.Load()
		nextTail := currentTail + 1

		if q.tail.CompareAndSwap(currentTail, nextTail) {
			idx := currentTail & parameter.EventBufferMask

			q.events[idx] = ev
			q.published[idx].Store(true) // MUST be after write

			// Advance head if overwriting unread events
			currentHead := q.head.Load()
			if nextTail-currentHead > parameter.EventQueueSize {
				q.head.CompareAndSwap(currentHead, nextTail-parameter.EventQueueSize)
			}
			return
		}
	}
}

// ConsumeInto appends all pending events in FIFO order to dst[:0] and advances head
// Reusing dst keeps the per-frame drain allocation-free once capacity is reached
func (q *Queue) ConsumeInto(dst []Event) []Event {
	dst = dst[:0]
	for {
		currentHead := q.head.Load()
		currentTail := q.tail.Load()

		if currentTail == currentHead {
			return dst
		}

		maxAvailable := currentTail - currentHead
		if maxAvailable > parameter.EventQueueSize {
			maxAvailable = parameter.EventQueueSize
			currentHead = currentTail - parameter.EventQueueSize
		}

		n := 0
		for i := uint64(0); i < maxAvailable; i++ {
			idx := (currentHead + i) & parameter.EventBufferMask

			if !q.published[idx].Load() {
				break // Writer incomplete
			}

			dst = append(dst, q.events[idx])
			q.events[idx] = Event{}
			q.published[idx].Store(false)
			n++
		}

		if q.head.CompareAndSwap(currentHead, currentHead+uint64(n)) {
			return dst
		}
		dst = dst[:len(dst)-n]
	}
}

// Len returns approximate pending event count
func (q *Queue) Len() int {
	head := q.head.Load()
	tail := q.tail.Load()
	if tail <= head {
		return 0
	}
	diff := int(tail - head)
	if diff > parameter.EventQueueSize {
		return parameter.EventQueueSize
	}
	return diff
}
