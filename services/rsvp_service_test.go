package services

import (
	"testing"
	"time"

	"backend/models"
)

func TestRSVPDeclineReleasesClaim(t *testing.T) {
	db := testDB(t)
	clock := &fakeClock{now: time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)}
	claims := NewClaimService(db, clock)
	rsvps := NewRSVPService(db, claims)

	event := seedEvent(t, db, nil)
	recipe := seedRecipe(t, db, event.ID, "Roast Carrots", models.CourseSide, true, false)

	if _, err := rsvps.Set(event.ID, 1, models.RSVPAttending); err != nil {
		t.Fatalf("rsvp attending: %v", err)
	}
	if _, err := claims.Claim(event.ID, 1, recipe.ID); err != nil {
		t.Fatalf("claim: %v", err)
	}

	rsvp, err := rsvps.Set(event.ID, 1, models.RSVPDeclined)
	if err != nil {
		t.Fatalf("decline: %v", err)
	}
	if rsvp.Status != models.RSVPDeclined {
		t.Fatalf("status = %s", rsvp.Status)
	}

	snap, err := claims.GetSnapshot(event.ID)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(snap.Claims) != 0 {
		t.Fatalf("declining should free the dish, %d claims remain", len(snap.Claims))
	}
}

func TestRSVPDeclineRefusedAfterLock(t *testing.T) {
	db := testDB(t)
	clock := &fakeClock{now: time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)}
	claims := NewClaimService(db, clock)
	rsvps := NewRSVPService(db, claims)

	boundary := clock.now.Add(time.Hour)
	event := seedEvent(t, db, &boundary)
	recipe := seedRecipe(t, db, event.ID, "Roast Carrots", models.CourseSide, true, false)

	if _, err := claims.Claim(event.ID, 1, recipe.ID); err != nil {
		t.Fatalf("claim: %v", err)
	}

	clock.now = boundary.Add(time.Minute)

	_, err := rsvps.Set(event.ID, 1, models.RSVPDeclined)
	wantKind(t, err, KindLocked)

	// without a claim to release, declining a locked event is fine
	if _, err := rsvps.Set(event.ID, 2, models.RSVPDeclined); err != nil {
		t.Fatalf("decline without claim: %v", err)
	}
}

func TestRSVPValidation(t *testing.T) {
	db := testDB(t)
	claims := NewClaimService(db, &fakeClock{now: time.Now()})
	rsvps := NewRSVPService(db, claims)
	event := seedEvent(t, db, nil)

	_, err := rsvps.Set(event.ID, 1, "maybe")
	wantKind(t, err, KindInvalidInput)

	_, err = rsvps.Set("nope", 1, models.RSVPAttending)
	wantKind(t, err, KindNotFound)
}

func TestListGuests(t *testing.T) {
	db := testDB(t)
	claims := NewClaimService(db, &fakeClock{now: time.Now()})
	rsvps := NewRSVPService(db, claims)
	event := seedEvent(t, db, nil)
	recipe := seedRecipe(t, db, event.ID, "Roast Carrots", models.CourseSide, true, false)

	user := models.User{Email: "june@example.com", Password: "x", Name: "June", DietaryRestrictions: "vegetarian"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	if _, err := rsvps.Set(event.ID, user.ID, models.RSVPAttending); err != nil {
		t.Fatalf("rsvp: %v", err)
	}
	if _, err := claims.Claim(event.ID, user.ID, recipe.ID); err != nil {
		t.Fatalf("claim: %v", err)
	}

	guests, err := rsvps.ListGuests(event.ID)
	if err != nil {
		t.Fatalf("list guests: %v", err)
	}
	if len(guests) != 1 {
		t.Fatalf("want 1 guest, got %d", len(guests))
	}
	g := guests[0]
	if g.Name != "June" || g.Status != models.RSVPAttending {
		t.Fatalf("unexpected guest view: %+v", g)
	}
	if g.Claim == nil || g.Claim.RecipeID == nil || *g.Claim.RecipeID != recipe.ID {
		t.Fatal("guest view should carry the claim")
	}
	if len(g.DietaryRestrictions) != 1 || g.DietaryRestrictions[0] != "vegetarian" {
		t.Fatalf("dietary restrictions lost: %v", g.DietaryRestrictions)
	}
}
