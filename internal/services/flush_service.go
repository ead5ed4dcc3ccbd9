package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultFlushQuietPeriod coalesces rapid successive edits into a
// single trailing write.
const DefaultFlushQuietPeriod = 500 * time.Millisecond

// FlushQueue is a debounced work queue keyed by study id. Schedule
// restarts the quiet-period timer for the id; the flush func runs once
// per burst after the timer expires. ForceFlush and Close drain pending
// work immediately so edits are never silently lost.
type FlushQueue struct {
	mu     sync.Mutex
	quiet  time.Duration
	flush  func(uuid.UUID)
	timers map[uuid.UUID]*time.Timer
	closed bool
}

func NewFlushQueue(quiet time.Duration, flush func(uuid.UUID)) *FlushQueue {
	if quiet <= 0 {
		quiet = DefaultFlushQuietPeriod
	}
	return &FlushQueue{
		quiet:  quiet,
		flush:  flush,
		timers: make(map[uuid.UUID]*time.Timer),
	}
}

// Schedule (re)arms the trailing flush for id.
func (q *FlushQueue) Schedule(id uuid.UUID) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	if t, ok := q.timers[id]; ok {
		t.Stop()
	}
	q.timers[id] = time.AfterFunc(q.quiet, func() { q.fire(id) })
}

func (q *FlushQueue) fire(id uuid.UUID) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	delete(q.timers, id)
	q.mu.Unlock()
	q.flush(id)
}

// Pending reports whether a flush is scheduled for id.
func (q *FlushQueue) Pending(id uuid.UUID) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	_, ok := q.timers[id]
	return ok
}

// ForceFlush runs the pending flush for id now, if there is one.
func (q *FlushQueue) ForceFlush(id uuid.UUID) {
	q.mu.Lock()
	t, ok := q.timers[id]
	if ok {
		t.Stop()
		delete(q.timers, id)
	}
	q.mu.Unlock()
	if ok {
		q.flush(id)
	}
}

// FlushAll drains every pending flush.
func (q *FlushQueue) FlushAll() {
	q.mu.Lock()
	ids := make([]uuid.UUID, 0, len(q.timers))
	for id, t := range q.timers {
		t.Stop()
		ids = append(ids, id)
	}
	q.timers = make(map[uuid.UUID]*time.Timer)
	q.mu.Unlock()
	for _, id := range ids {
		q.flush(id)
	}
}

// Close drains pending work and refuses further scheduling.
func (q *FlushQueue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	ids := make([]uuid.UUID, 0, len(q.timers))
	for id, t := range q.timers {
		t.Stop()
		ids = append(ids, id)
	}
	q.timers = make(map[uuid.UUID]*time.Timer)
	q.mu.Unlock()
	for _, id := range ids {
		q.flush(id)
	}
}
