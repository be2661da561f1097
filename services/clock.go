package services

import (
	"time"

	"backend/models"
)

// Clock is the single time source for lock-boundary checks, swappable in
// tests.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// EventLocked reports whether the event's menu is frozen. An event with
// no lock time never locks.
func EventLocked(clock Clock, event *models.Event) bool {
	if event.LockTime == nil {
		return false
	}
	return !clock.Now().Before(*event.LockTime)
}
