package services

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type flushRecorder struct {
	mu    sync.Mutex
	calls []uuid.UUID
}

func (r *flushRecorder) flush(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, id)
}

func (r *flushRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func TestFlushDebouncesBursts(t *testing.T) {
	rec := &flushRecorder{}
	q := NewFlushQueue(30*time.Millisecond, rec.flush)
	defer q.Close()

	id := uuid.New()
	q.Schedule(id)
	q.Schedule(id)
	q.Schedule(id)

	require.Eventually(t, func() bool { return rec.count() == 1 }, time.Second, 5*time.Millisecond)

	// no extra flushes after the quiet period
	time.Sleep(60 * time.Millisecond)
	require.Equal(t, 1, rec.count())
}

func TestFlushKeyedPerStudy(t *testing.T) {
	rec := &flushRecorder{}
	q := NewFlushQueue(20*time.Millisecond, rec.flush)
	defer q.Close()

	a, b := uuid.New(), uuid.New()
	q.Schedule(a)
	q.Schedule(b)

	require.Eventually(t, func() bool { return rec.count() == 2 }, time.Second, 5*time.Millisecond)
}

func TestForceFlushRunsImmediately(t *testing.T) {
	rec := &flushRecorder{}
	q := NewFlushQueue(time.Hour, rec.flush)
	defer q.Close()

	id := uuid.New()
	q.Schedule(id)
	require.True(t, q.Pending(id))

	q.ForceFlush(id)
	require.Equal(t, 1, rec.count())
	require.False(t, q.Pending(id))

	// nothing pending, nothing to do
	q.ForceFlush(id)
	require.Equal(t, 1, rec.count())
}

func TestCloseDrainsPendingWork(t *testing.T) {
	rec := &flushRecorder{}
	q := NewFlushQueue(time.Hour, rec.flush)

	a, b := uuid.New(), uuid.New()
	q.Schedule(a)
	q.Schedule(b)

	q.Close()
	require.Equal(t, 2, rec.count())

	// scheduling after close is ignored
	q.Schedule(uuid.New())
	time.Sleep(10 * time.Millisecond)
	require.Equal(t, 2, rec.count())
}
