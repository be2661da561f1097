package services

import (
	"errors"

	"backend/models"

	"gorm.io/gorm"
)

// Snapshot is one event's full menu state: catalog, committed claims and
// the lock status at read time. It is the unit eligibility reasons over.
type Snapshot struct {
	Event     models.Event    `json:"event"`
	Recipes   []models.Recipe `json:"recipes"`
	Claims    []models.Claim  `json:"claims"`
	LockedNow bool            `json:"locked_now"`
}

func (s *Snapshot) RecipeByID(recipeID string) *models.Recipe {
	for i := range s.Recipes {
		if s.Recipes[i].ID == recipeID {
			return &s.Recipes[i]
		}
	}
	return nil
}

func (s *Snapshot) recipeMap() map[string]*models.Recipe {
	m := make(map[string]*models.Recipe, len(s.Recipes))
	for i := range s.Recipes {
		m[s.Recipes[i].ID] = &s.Recipes[i]
	}
	return m
}

func (s *Snapshot) ClaimByUser(userID uint) *models.Claim {
	for i := range s.Claims {
		if s.Claims[i].UserID == userID {
			return &s.Claims[i]
		}
	}
	return nil
}

// ClaimTransition is the unit ApplyAtomic commits: a delete set, an
// insert, or both (a switch). Never anything in between.
type ClaimTransition struct {
	DeleteClaimIDs []string
	Insert         *models.Claim
}

// ClaimStore owns claim rows and the atomicity contract: a transition
// either commits whole or not at all, and invariants are rechecked at
// commit time so a stale evaluation can't slip a duplicate through.
type ClaimStore struct {
	db    *gorm.DB
	clock Clock
}

func NewClaimStore(db *gorm.DB, clock Clock) *ClaimStore {
	return &ClaimStore{db: db, clock: clock}
}

func (s *ClaimStore) Snapshot(eventID string) (*Snapshot, error) {
	var event models.Event
	if err := s.db.First(&event, "id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, claimErr(KindNotFound, "event not found")
		}
		return nil, err
	}
	var recipes []models.Recipe
	if err := s.db.Where("event_id = ?", eventID).Order("created_at").Find(&recipes).Error; err != nil {
		return nil, err
	}
	var claims []models.Claim
	if err := s.db.Where("event_id = ?", eventID).Order("created_at").Find(&claims).Error; err != nil {
		return nil, err
	}
	return &Snapshot{
		Event:     event,
		Recipes:   recipes,
		Claims:    claims,
		LockedNow: EventLocked(s.clock, &event),
	}, nil
}

// ApplyAtomic commits the transition in one transaction and returns the
// resulting snapshot. Invariants (one claim per guest, one claim per
// catalog recipe) are re-verified inside the transaction; a violation
// found at commit time surfaces as Conflict, a missing event or recipe
// as NotFound.
func (s *ClaimStore) ApplyAtomic(eventID string, t ClaimTransition) (*Snapshot, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.First(&event, "id = ?", eventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return claimErr(KindNotFound, "event not found")
			}
			return err
		}

		if len(t.DeleteClaimIDs) > 0 {
			res := tx.Where("event_id = ? AND id IN ?", eventID, t.DeleteClaimIDs).Delete(&models.Claim{})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected != int64(len(t.DeleteClaimIDs)) {
				return claimErr(KindConflict, "claim changed under us, refetch and retry")
			}
		}

		if t.Insert != nil {
			if t.Insert.RecipeID != nil {
				var recipe models.Recipe
				err := tx.First(&recipe, "id = ? AND event_id = ?", *t.Insert.RecipeID, eventID).Error
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return claimErr(KindNotFound, "recipe not found")
				}
				if err != nil {
					return err
				}
				var taken int64
				if err := tx.Model(&models.Claim{}).Where("recipe_id = ?", *t.Insert.RecipeID).Count(&taken).Error; err != nil {
					return err
				}
				if taken > 0 {
					return claimErr(KindConflict, "recipe was claimed concurrently")
				}
			}
			var held int64
			if err := tx.Model(&models.Claim{}).
				Where("event_id = ? AND user_id = ?", eventID, t.Insert.UserID).
				Count(&held).Error; err != nil {
				return err
			}
			if held > 0 {
				return claimErr(KindConflict, "guest already holds a claim for this event")
			}
			if err := tx.Create(t.Insert).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return claimErr(KindConflict, "claim collided with a concurrent write")
				}
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Snapshot(eventID)
}
