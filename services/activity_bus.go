package services

import (
	"fmt"
	"time"

	"backend/models"

	"gorm.io/gorm"
)

type activityDeps struct {
	db *gorm.DB
	rt *RealtimeHub
	ps *PushService
}

var _activity activityDeps

func InitActivityDeps(db *gorm.DB, rt *RealtimeHub, ps *PushService) {
	_activity = activityDeps{db: db, rt: rt, ps: ps}
}

var activityLabels = map[string]string{
	"claimed":   "claimed",
	"released":  "released",
	"switched":  "switched to",
	"suggested": "is bringing",
}

// EmitMenuActivity records a committed claim change and fans it out to
// websocket listeners and the other attending guests' devices. Safe to
// call anywhere; a no-op until InitActivityDeps runs.
func EmitMenuActivity(eventID string, userID uint, kind, dish string, snap *Snapshot) {
	if _activity.db == nil {
		return
	}
	a := &models.MenuActivity{
		EventID:   eventID,
		UserID:    userID,
		Kind:      kind,
		DishName:  dish,
		CreatedAt: time.Now(),
	}
	_ = _activity.db.Create(a).Error

	if _activity.rt != nil {
		_activity.rt.BroadcastMenu(eventID, map[string]any{
			"kind":     "menu.updated",
			"activity": a,
			"snapshot": snap,
		})
	}
	if _activity.ps != nil {
		label := activityLabels[kind]
		if label == "" {
			label = kind
		}
		var rsvps []models.RSVP
		if err := _activity.db.Where("event_id = ? AND status = ?", eventID, models.RSVPAttending).Find(&rsvps).Error; err != nil {
			return
		}
		body := fmt.Sprintf("A guest %s %s", label, dish)
		for _, r := range rsvps {
			if r.UserID == userID {
				continue
			}
			_activity.ps.PushToUser(r.UserID, "Menu update", body, map[string]string{
				"eventId": eventID, "kind": kind,
			})
		}
	}
}

// ListMenuActivity returns the newest activity rows for an event.
func ListMenuActivity(db *gorm.DB, eventID string, limit int) ([]models.MenuActivity, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []models.MenuActivity
	err := db.Where("event_id = ?", eventID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
