package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email               string `gorm:"uniqueIndex;not null"`
	Password            string `gorm:"not null"`
	Name                string
	AvatarURL           string
	DietaryRestrictions string // comma-separated, e.g. "vegetarian,nut-allergy"
	Role                string `gorm:"size:20;default:member"` // "member" | "admin" | "super_admin"
	MFAEnabled          bool
	MFACode             string
	ResetToken          string
	ResetTokenExp       time.Time
}

func (u *User) IsAdmin() bool {
	return u.Role == "admin" || u.Role == "super_admin"
}

func (u *User) DietaryList() []string {
	if strings.TrimSpace(u.DietaryRestrictions) == "" {
		return nil
	}
	return strings.Split(u.DietaryRestrictions, ",")
}
