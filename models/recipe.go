package models

import (
	"strings"
	"time"
)

type Course string

const (
	CourseAppetizer Course = "appetizer"
	CourseMain      Course = "main"
	CourseSide      Course = "side"
	CourseDessert   Course = "dessert"
)

var CourseOrder = []Course{CourseAppetizer, CourseMain, CourseSide, CourseDessert}

func ValidCourse(c Course) bool {
	switch c {
	case CourseAppetizer, CourseMain, CourseSide, CourseDessert:
		return true
	}
	return false
}

// Allergen tags recognized by the cookbook import format.
var KnownAllergens = []string{"nuts", "dairy", "gluten", "eggs", "shellfish", "soy"}

func ValidAllergen(a string) bool {
	for _, k := range KnownAllergens {
		if a == k {
			return true
		}
	}
	return false
}

func JoinAllergens(list []string) string {
	return strings.Join(list, ",")
}

func SplitAllergens(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// A catalog entry from the event's cookbook. Immutable once imported;
// organizer tooling owns these rows, the claim engine only reads them.
type Recipe struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	EventID      string    `gorm:"type:varchar(36);index;not null" json:"event_id"`
	CookbookID   string    `gorm:"type:varchar(36);index" json:"cookbook_id"`
	Name         string    `gorm:"not null" json:"name"`
	PageNumber   *int      `json:"page_number,omitempty"`
	Course       Course    `gorm:"size:20;not null" json:"course"`
	Allergens    string    `json:"-"` // comma-separated allergen tags
	IsVegetarian bool      `json:"is_vegetarian"`
	IsVegan      bool      `json:"is_vegan"` // vegan implies vegetarian
	CreatedAt    time.Time `json:"created_at"`
}

func (r *Recipe) AllergenList() []string {
	return SplitAllergens(r.Allergens)
}

func (r *Recipe) IsVeg() bool {
	return r.IsVegetarian || r.IsVegan
}
