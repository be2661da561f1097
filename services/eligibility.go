package services

import (
	"strings"

	"backend/models"
)

// Menu balance thresholds. Two desserts is plenty; once three or fewer
// catalog slots remain with fewer than two veg dishes committed, the
// remaining slots are steered toward vegetarian picks.
const (
	dessertClaimCap         = 2
	vegClaimFloor           = 2
	vegAdvisoryUnclaimedMax = 3
)

// SuggestionPayload is a free-form dish proposal outside the cookbook.
// The schema tracks a vegetarian flag for suggestions but no vegan flag.
type SuggestionPayload struct {
	Name         string        `json:"name"`
	Course       models.Course `json:"course,omitempty"`
	Allergens    []string      `json:"allergens,omitempty"`
	IsVegetarian bool          `json:"is_vegetarian,omitempty"`
}

// ValidateSuggestion checks payload shape only; eligibility is the
// evaluator's job.
func ValidateSuggestion(p SuggestionPayload) *ClaimError {
	if strings.TrimSpace(p.Name) == "" {
		return claimErr(KindInvalidInput, "suggestion needs a name")
	}
	if p.Course != "" && !models.ValidCourse(p.Course) {
		return claimErr(KindInvalidInput, "unknown course: "+string(p.Course))
	}
	for _, a := range p.Allergens {
		if !models.ValidAllergen(a) {
			return claimErr(KindInvalidInput, "unknown allergen: "+a)
		}
	}
	return nil
}

// claimRequest is a proposed claim action for evaluation. Exactly one of
// recipe/suggestion is set. switching means the requester's existing
// claim is being released in the same transition and must not count
// against them.
type claimRequest struct {
	userID     uint
	recipe     *models.Recipe
	suggestion *SuggestionPayload
	switching  bool
}

// evaluateClaim is pure and deterministic: given a snapshot and a
// proposed action it returns the first matching denial, or nil when the
// action is allowed. Denial order: Locked, AlreadyClaimed, RecipeTaken,
// DessertCapReached, VegetarianQuotaAdvisory.
func evaluateClaim(snap *Snapshot, req claimRequest) *ClaimError {
	if snap.LockedNow {
		return claimErr(KindLocked, "selections are locked")
	}

	working := snap.Claims
	if req.switching {
		// The old claim is gone in the same breath: drop it from every
		// count, and its recipe reads as unclaimed again.
		working = make([]models.Claim, 0, len(snap.Claims))
		for _, c := range snap.Claims {
			if c.UserID != req.userID {
				working = append(working, c)
			}
		}
	} else {
		for _, c := range working {
			if c.UserID == req.userID {
				return claimErr(KindAlreadyClaimed, "you already have a dish for this event")
			}
		}
	}

	if req.recipe != nil {
		for _, c := range working {
			if c.RecipeID != nil && *c.RecipeID == req.recipe.ID {
				return claimErr(KindRecipeTaken, "that recipe is already taken")
			}
		}
	}

	recipes := snap.recipeMap()

	var course models.Course
	var veg bool
	if req.recipe != nil {
		course = req.recipe.Course
		veg = req.recipe.IsVeg()
	} else {
		course = req.suggestion.Course
		veg = req.suggestion.IsVegetarian
	}

	if course == models.CourseDessert {
		desserts := 0
		for i := range working {
			if working[i].CourseOf(recipes) == models.CourseDessert {
				desserts++
			}
		}
		if desserts >= dessertClaimCap {
			return claimErr(KindDessertCapReached, "dessert is sorted, pick another course")
		}
	}

	// The veg nudge covers catalog picks and any suggestion that
	// declares a course; a course-less suggestion is left alone.
	if !veg && (req.recipe != nil || req.suggestion.Course != "") {
		vegClaims := 0
		for i := range working {
			if working[i].VegOf(recipes) {
				vegClaims++
			}
		}
		if vegClaims < vegClaimFloor && countUnclaimed(working, snap.Recipes) <= vegAdvisoryUnclaimedMax {
			return claimErr(KindVegetarianQuotaAdvisory, "we'd love a veggie dish before the menu fills up")
		}
	}

	return nil
}

func countUnclaimed(claims []models.Claim, recipes []models.Recipe) int {
	claimed := make(map[string]bool, len(claims))
	for i := range claims {
		if claims[i].RecipeID != nil {
			claimed[*claims[i].RecipeID] = true
		}
	}
	n := 0
	for i := range recipes {
		if !claimed[recipes[i].ID] {
			n++
		}
	}
	return n
}
