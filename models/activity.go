package models

import "time"

// MenuActivity is the per-event feed of claim changes, fanned out over
// the websocket hub and push notifications.
type MenuActivity struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EventID   string    `gorm:"type:varchar(36);index" json:"event_id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	Kind      string    `gorm:"size:20" json:"kind"` // "claimed" | "released" | "switched" | "suggested"
	DishName  string    `json:"dish_name"`
	CreatedAt time.Time `json:"created_at"`
}
