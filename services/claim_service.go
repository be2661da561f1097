package services

import (
	"strings"
	"time"

	"backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// How long a mutation waits for the per-event slot before answering
// Busy. Clients retry with a fresh snapshot.
const eventLockWait = 2 * time.Second

// ClaimService is the public face of the claim engine. Every mutation
// runs evaluate-then-commit under the event's lock, against a snapshot
// fetched inside the critical section, so the rules always see the
// state they are about to change.
type ClaimService struct {
	store *ClaimStore
	locks *eventLockTable
}

func NewClaimService(db *gorm.DB, clock Clock) *ClaimService {
	return &ClaimService{
		store: NewClaimStore(db, clock),
		locks: newEventLockTable(),
	}
}

// GetSnapshot reads without taking the event lock; writers never expose
// a half-applied switch, so readers are safe to run concurrently.
func (s *ClaimService) GetSnapshot(eventID string) (*Snapshot, error) {
	return s.store.Snapshot(eventID)
}

func (s *ClaimService) Claim(eventID string, userID uint, recipeID string) (*Snapshot, error) {
	if strings.TrimSpace(recipeID) == "" {
		return nil, claimErr(KindInvalidInput, "recipe_id is required")
	}
	release, ok := s.locks.acquire(eventID, eventLockWait)
	if !ok {
		return nil, claimErr(KindBusy, "menu is busy, try again")
	}
	defer release()

	snap, err := s.store.Snapshot(eventID)
	if err != nil {
		return nil, err
	}
	recipe := snap.RecipeByID(recipeID)
	if recipe == nil {
		return nil, claimErr(KindNotFound, "recipe not found")
	}
	if denied := evaluateClaim(snap, claimRequest{userID: userID, recipe: recipe}); denied != nil {
		return nil, denied
	}

	out, err := s.store.ApplyAtomic(eventID, ClaimTransition{Insert: &models.Claim{
		ID:       uuid.NewString(),
		EventID:  eventID,
		UserID:   userID,
		RecipeID: &recipe.ID,
	}})
	if err != nil {
		return nil, err
	}
	EmitMenuActivity(eventID, userID, "claimed", recipe.Name, out)
	return out, nil
}

func (s *ClaimService) Unclaim(eventID string, userID uint, claimID string) (*Snapshot, error) {
	if strings.TrimSpace(claimID) == "" {
		return nil, claimErr(KindInvalidInput, "claim_id is required")
	}
	release, ok := s.locks.acquire(eventID, eventLockWait)
	if !ok {
		return nil, claimErr(KindBusy, "menu is busy, try again")
	}
	defer release()

	snap, err := s.store.Snapshot(eventID)
	if err != nil {
		return nil, err
	}
	var claim *models.Claim
	for i := range snap.Claims {
		if snap.Claims[i].ID == claimID {
			claim = &snap.Claims[i]
			break
		}
	}
	if claim == nil || claim.UserID != userID {
		return nil, claimErr(KindNotFound, "claim not found")
	}
	if snap.LockedNow {
		return nil, claimErr(KindLocked, "selections are locked")
	}

	out, err := s.store.ApplyAtomic(eventID, ClaimTransition{DeleteClaimIDs: []string{claim.ID}})
	if err != nil {
		return nil, err
	}
	EmitMenuActivity(eventID, userID, "released", dishName(claim, snap), out)
	return out, nil
}

// Switch releases the guest's current claim and takes the new recipe as
// one committed transition. No reader ever sees the guest with zero or
// two claims, and nobody can slip in between the release and the claim.
func (s *ClaimService) Switch(eventID string, userID uint, newRecipeID string) (*Snapshot, error) {
	if strings.TrimSpace(newRecipeID) == "" {
		return nil, claimErr(KindInvalidInput, "recipe_id is required")
	}
	release, ok := s.locks.acquire(eventID, eventLockWait)
	if !ok {
		return nil, claimErr(KindBusy, "menu is busy, try again")
	}
	defer release()

	snap, err := s.store.Snapshot(eventID)
	if err != nil {
		return nil, err
	}
	recipe := snap.RecipeByID(newRecipeID)
	if recipe == nil {
		return nil, claimErr(KindNotFound, "recipe not found")
	}
	existing := snap.ClaimByUser(userID)
	if denied := evaluateClaim(snap, claimRequest{
		userID:    userID,
		recipe:    recipe,
		switching: existing != nil,
	}); denied != nil {
		return nil, denied
	}

	t := ClaimTransition{Insert: &models.Claim{
		ID:       uuid.NewString(),
		EventID:  eventID,
		UserID:   userID,
		RecipeID: &recipe.ID,
	}}
	kind := "claimed"
	if existing != nil {
		t.DeleteClaimIDs = []string{existing.ID}
		kind = "switched"
	}
	out, err := s.store.ApplyAtomic(eventID, t)
	if err != nil {
		return nil, err
	}
	EmitMenuActivity(eventID, userID, kind, recipe.Name, out)
	return out, nil
}

func (s *ClaimService) Suggest(eventID string, userID uint, payload SuggestionPayload) (*Snapshot, error) {
	if denied := ValidateSuggestion(payload); denied != nil {
		return nil, denied
	}
	release, ok := s.locks.acquire(eventID, eventLockWait)
	if !ok {
		return nil, claimErr(KindBusy, "menu is busy, try again")
	}
	defer release()

	snap, err := s.store.Snapshot(eventID)
	if err != nil {
		return nil, err
	}
	if denied := evaluateClaim(snap, claimRequest{userID: userID, suggestion: &payload}); denied != nil {
		return nil, denied
	}

	out, err := s.store.ApplyAtomic(eventID, ClaimTransition{Insert: &models.Claim{
		ID:                     uuid.NewString(),
		EventID:                eventID,
		UserID:                 userID,
		IsSuggestion:           true,
		SuggestionName:         strings.TrimSpace(payload.Name),
		SuggestionCourse:       payload.Course,
		SuggestionAllergens:    models.JoinAllergens(payload.Allergens),
		SuggestionIsVegetarian: payload.IsVegetarian,
	}})
	if err != nil {
		return nil, err
	}
	EmitMenuActivity(eventID, userID, "suggested", payload.Name, out)
	return out, nil
}

// ReleaseFor drops whatever claim the guest holds, if any. Used when an
// RSVP flips to declined. Honors the lock boundary like any mutation.
func (s *ClaimService) ReleaseFor(eventID string, userID uint) (*Snapshot, error) {
	release, ok := s.locks.acquire(eventID, eventLockWait)
	if !ok {
		return nil, claimErr(KindBusy, "menu is busy, try again")
	}
	defer release()

	snap, err := s.store.Snapshot(eventID)
	if err != nil {
		return nil, err
	}
	existing := snap.ClaimByUser(userID)
	if existing == nil {
		return snap, nil
	}
	if snap.LockedNow {
		return nil, claimErr(KindLocked, "selections are locked")
	}
	out, err := s.store.ApplyAtomic(eventID, ClaimTransition{DeleteClaimIDs: []string{existing.ID}})
	if err != nil {
		return nil, err
	}
	EmitMenuActivity(eventID, userID, "released", dishName(existing, snap), out)
	return out, nil
}

func dishName(c *models.Claim, snap *Snapshot) string {
	if c.IsSuggestion {
		return c.SuggestionName
	}
	if c.RecipeID != nil {
		if r := snap.RecipeByID(*c.RecipeID); r != nil {
			return r.Name
		}
	}
	return ""
}
