package models

import "time"

// A Claim binds one guest to one dish for one event. Exactly one of the
// two variants is populated: a catalog claim carries RecipeID, a
// suggestion carries the Suggestion* fields (IsSuggestion discriminates).
// Claims are never edited in place — a switch deletes and recreates.
type Claim struct {
	ID      string `gorm:"type:varchar(36);primaryKey" json:"id"`
	EventID string `gorm:"type:varchar(36);index;not null;uniqueIndex:idx_claims_event_user" json:"event_id"`
	UserID  uint   `gorm:"not null;uniqueIndex:idx_claims_event_user" json:"user_id"`

	RecipeID *string `gorm:"type:varchar(36);uniqueIndex:idx_claims_event_recipe" json:"recipe_id,omitempty"`

	IsSuggestion           bool   `json:"is_suggestion"`
	SuggestionName         string `json:"suggestion_name,omitempty"`
	SuggestionCourse       Course `gorm:"size:20" json:"suggestion_course,omitempty"`
	SuggestionAllergens    string `json:"-"`
	SuggestionIsVegetarian bool   `json:"suggestion_is_vegetarian,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// CourseOf resolves the claim's course against the catalog; suggestions
// without a declared course return "".
func (c *Claim) CourseOf(recipes map[string]*Recipe) Course {
	if c.IsSuggestion {
		return c.SuggestionCourse
	}
	if c.RecipeID != nil {
		if r := recipes[*c.RecipeID]; r != nil {
			return r.Course
		}
	}
	return ""
}

// VegOf reports whether the claimed dish counts toward the vegetarian
// quota. Suggestions only track a vegetarian flag, not vegan.
func (c *Claim) VegOf(recipes map[string]*Recipe) bool {
	if c.IsSuggestion {
		return c.SuggestionIsVegetarian
	}
	if c.RecipeID != nil {
		if r := recipes[*c.RecipeID]; r != nil {
			return r.IsVeg()
		}
	}
	return false
}
