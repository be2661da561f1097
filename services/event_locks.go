package services

import (
	"sync"
	"time"
)

// eventLockTable serializes claim mutations per event. Each event gets a
// one-slot semaphore; acquire waits up to the given bound and reports
// failure instead of deadlocking, so callers can answer Busy.
type eventLockTable struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
}

func newEventLockTable() *eventLockTable {
	return &eventLockTable{slots: make(map[string]chan struct{})}
}

func (t *eventLockTable) slot(eventID string) chan struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.slots[eventID]
	if !ok {
		s = make(chan struct{}, 1)
		t.slots[eventID] = s
	}
	return s
}

// acquire returns a release func that must be called exactly once, or
// ok=false if the slot could not be taken within wait.
func (t *eventLockTable) acquire(eventID string, wait time.Duration) (release func(), ok bool) {
	s := t.slot(eventID)
	select {
	case s <- struct{}{}:
	default:
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case s <- struct{}{}:
		case <-timer.C:
			return nil, false
		}
	}
	return func() { <-s }, true
}
