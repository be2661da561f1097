package models

import "time"

// One supper club gathering. Exactly one event is active at a time;
// past events stay around for the archive.
type Event struct {
	ID           string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title        string     `gorm:"not null" json:"title"`
	VolumeNumber int        `json:"volume_number"`
	Date         time.Time  `json:"date"`
	EventTime    string     `json:"event_time,omitempty"`
	Location     string     `json:"location,omitempty"`
	ColorTheme   string     `gorm:"type:text" json:"color_theme,omitempty"` // JSON string of color overrides
	LockTime     *time.Time `json:"lock_time,omitempty"`                    // nil = menu never locks
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`

	Cookbook *Cookbook `json:"cookbook,omitempty"`
}

type Cookbook struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	EventID   string    `gorm:"type:varchar(36);index;not null" json:"event_id"`
	Name      string    `gorm:"not null" json:"name"`
	CoverURL  string    `json:"cover_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
