package models

import "time"

type RSVPStatus string

const (
	RSVPAttending RSVPStatus = "attending"
	RSVPDeclined  RSVPStatus = "declined"
)

type RSVP struct {
	ID        string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	EventID   string     `gorm:"type:varchar(36);uniqueIndex:idx_rsvps_event_user;not null" json:"event_id"`
	UserID    uint       `gorm:"uniqueIndex:idx_rsvps_event_user;not null" json:"user_id"`
	Status    RSVPStatus `gorm:"size:20;not null" json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
