package services

import (
	"testing"
	"time"
)

func TestEventLockTable(t *testing.T) {
	locks := newEventLockTable()

	release, ok := locks.acquire("ev-1", 10*time.Millisecond)
	if !ok {
		t.Fatal("first acquire should succeed immediately")
	}

	// same event is held
	if _, ok := locks.acquire("ev-1", 10*time.Millisecond); ok {
		t.Fatal("second acquire should time out while held")
	}

	// other events are independent
	release2, ok := locks.acquire("ev-2", 10*time.Millisecond)
	if !ok {
		t.Fatal("unrelated event should not contend")
	}
	release2()

	release()
	release3, ok := locks.acquire("ev-1", 10*time.Millisecond)
	if !ok {
		t.Fatal("acquire after release should succeed")
	}
	release3()
}

func TestEventLockWaitsForRelease(t *testing.T) {
	locks := newEventLockTable()

	release, ok := locks.acquire("ev-1", time.Millisecond)
	if !ok {
		t.Fatal("first acquire should succeed")
	}
	go func() {
		time.Sleep(20 * time.Millisecond)
		release()
	}()

	start := time.Now()
	release2, ok := locks.acquire("ev-1", time.Second)
	if !ok {
		t.Fatal("acquire should win once the holder releases")
	}
	release2()
	if time.Since(start) > 500*time.Millisecond {
		t.Fatal("acquire waited far longer than the release took")
	}
}
