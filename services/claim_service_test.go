package services

import (
	"sync"
	"testing"
	"time"

	"backend/models"

	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*ClaimService, *gorm.DB, *fakeClock) {
	t.Helper()
	db := testDB(t)
	clock := &fakeClock{now: time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)}
	return NewClaimService(db, clock), db, clock
}

// The dinner from the menu-balance walkthrough: A(main), B(dessert),
// C(dessert), D(side, vegan) with guests X=1, Y=2, Z=3.
func seedDinner(t *testing.T, db *gorm.DB) (event *models.Event, a, b, c, d *models.Recipe) {
	t.Helper()
	event = seedEvent(t, db, nil)
	a = seedRecipe(t, db, event.ID, "A", models.CourseMain, false, false)
	b = seedRecipe(t, db, event.ID, "B", models.CourseDessert, false, false)
	c = seedRecipe(t, db, event.ID, "C", models.CourseDessert, false, false)
	d = seedRecipe(t, db, event.ID, "D", models.CourseSide, false, true)
	return
}

// meetVegQuota parks two vegetarian suggestions on spare guests so the
// veg nudge stays quiet in tests aimed at other rules.
func meetVegQuota(t *testing.T, svc *ClaimService, eventID string) {
	t.Helper()
	for i, name := range []string{"Herbed Lentils", "Squash Gratin"} {
		_, err := svc.Suggest(eventID, uint(90+i), SuggestionPayload{
			Name:         name,
			Course:       models.CourseSide,
			IsVegetarian: true,
		})
		if err != nil {
			t.Fatalf("veg quota seed: %v", err)
		}
	}
}

func TestClaimDessertCapWalkthrough(t *testing.T) {
	svc, db, _ := newTestService(t)
	event, a, b, c, _ := seedDinner(t, db)
	meetVegQuota(t, svc, event.ID)

	if _, err := svc.Claim(event.ID, 1, b.ID); err != nil {
		t.Fatalf("X claims B: %v", err)
	}
	if _, err := svc.Claim(event.ID, 2, c.ID); err != nil {
		t.Fatalf("Y claims C: %v", err)
	}
	// A is not dessert, so Z gets through even at 2/2 desserts
	if _, err := svc.Claim(event.ID, 3, a.ID); err != nil {
		t.Fatalf("Z claims A: %v", err)
	}

	// any further dessert aim is refused by the cap, regardless of guest
	extra := seedRecipe(t, db, event.ID, "E", models.CourseDessert, false, false)
	_, err := svc.Claim(event.ID, 4, extra.ID)
	wantKind(t, err, KindDessertCapReached)
}

func TestVegAdvisoryOnLiveSnapshot(t *testing.T) {
	svc, db, _ := newTestService(t)
	event, a, b, _, d := seedDinner(t, db)

	// four open slots: no pressure yet
	if _, err := svc.Claim(event.ID, 1, a.ID); err != nil {
		t.Fatalf("claim A: %v", err)
	}

	// three open slots, zero veg dishes: non-veg targets are nudged away
	_, err := svc.Claim(event.ID, 2, b.ID)
	wantKind(t, err, KindVegetarianQuotaAdvisory)

	// a veg dish is always welcome
	if _, err := svc.Claim(event.ID, 2, d.ID); err != nil {
		t.Fatalf("claim D: %v", err)
	}

	// one veg dish is still short of the quota
	_, err = svc.Claim(event.ID, 3, b.ID)
	wantKind(t, err, KindVegetarianQuotaAdvisory)

	// the same call goes through once two veg dishes are committed
	if _, err := svc.Suggest(event.ID, 4, SuggestionPayload{
		Name: "Charred Broccolini", Course: models.CourseSide, IsVegetarian: true,
	}); err != nil {
		t.Fatalf("veg suggestion: %v", err)
	}
	if _, err := svc.Claim(event.ID, 3, b.ID); err != nil {
		t.Fatalf("claim B after quota met: %v", err)
	}
}

func TestClaimSingleSlot(t *testing.T) {
	svc, db, _ := newTestService(t)
	event, a, b, _, d := seedDinner(t, db)
	meetVegQuota(t, svc, event.ID)

	if _, err := svc.Claim(event.ID, 1, a.ID); err != nil {
		t.Fatalf("claim A: %v", err)
	}
	_, err := svc.Claim(event.ID, 1, b.ID)
	wantKind(t, err, KindAlreadyClaimed)

	// switch succeeds where claim was refused, and leaves exactly one
	snap, err := svc.Switch(event.ID, 1, d.ID)
	if err != nil {
		t.Fatalf("switch to D: %v", err)
	}
	if got := snap.ClaimByUser(1); got == nil || *got.RecipeID != d.ID {
		t.Fatalf("guest 1 should hold D after the switch")
	}
	if len(snap.Claims) != 1 {
		t.Fatalf("want 1 claim, got %d", len(snap.Claims))
	}
	// A is free again
	if _, err := svc.Claim(event.ID, 2, a.ID); err != nil {
		t.Fatalf("A should be reclaimable: %v", err)
	}
}

func TestSwitchScenario(t *testing.T) {
	svc, db, _ := newTestService(t)
	event, _, b, c, d := seedDinner(t, db)
	meetVegQuota(t, svc, event.ID)

	if _, err := svc.Claim(event.ID, 1, b.ID); err != nil {
		t.Fatalf("X claims B: %v", err)
	}
	if _, err := svc.Claim(event.ID, 2, c.ID); err != nil {
		t.Fatalf("Y claims C: %v", err)
	}

	snap, err := svc.Switch(event.ID, 1, d.ID)
	if err != nil {
		t.Fatalf("X switches B→D: %v", err)
	}
	if got := snap.ClaimByUser(1); got == nil || *got.RecipeID != d.ID {
		t.Fatal("X should hold D")
	}

	// B became available, D did not
	if _, err := svc.Claim(event.ID, 3, b.ID); err != nil {
		t.Fatalf("B should be free after the switch: %v", err)
	}
	_, err = svc.Claim(event.ID, 4, d.ID)
	wantKind(t, err, KindRecipeTaken)
}

func TestLockBoundaryFreezesMutations(t *testing.T) {
	svc, db, clock := newTestService(t)
	boundary := clock.now.Add(time.Hour)
	event := seedEvent(t, db, &boundary)
	a := seedRecipe(t, db, event.ID, "A", models.CourseMain, true, false)
	b := seedRecipe(t, db, event.ID, "B", models.CourseSide, true, false)

	snap, err := svc.Claim(event.ID, 1, a.ID)
	if err != nil {
		t.Fatalf("claim before lock: %v", err)
	}
	claimID := snap.Claims[0].ID

	clock.now = boundary.Add(time.Minute)

	_, err = svc.Claim(event.ID, 2, b.ID)
	wantKind(t, err, KindLocked)
	_, err = svc.Switch(event.ID, 1, b.ID)
	wantKind(t, err, KindLocked)
	_, err = svc.Unclaim(event.ID, 1, claimID)
	wantKind(t, err, KindLocked)
	_, err = svc.Suggest(event.ID, 2, SuggestionPayload{Name: "bread"})
	wantKind(t, err, KindLocked)

	// reads still work
	snap, err = svc.GetSnapshot(event.ID)
	if err != nil {
		t.Fatalf("snapshot after lock: %v", err)
	}
	if !snap.LockedNow {
		t.Fatal("snapshot should report locked")
	}
	if len(snap.Claims) != 1 {
		t.Fatalf("frozen menu should keep its claim, got %d", len(snap.Claims))
	}
}

func TestUnclaim(t *testing.T) {
	svc, db, _ := newTestService(t)
	event, a, _, _, _ := seedDinner(t, db)

	snap, err := svc.Claim(event.ID, 1, a.ID)
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	claimID := snap.Claims[0].ID

	// someone else's claim id is invisible to guest 2
	_, err = svc.Unclaim(event.ID, 2, claimID)
	wantKind(t, err, KindNotFound)

	snap, err = svc.Unclaim(event.ID, 1, claimID)
	if err != nil {
		t.Fatalf("unclaim: %v", err)
	}
	if len(snap.Claims) != 0 {
		t.Fatalf("want empty claim set, got %d", len(snap.Claims))
	}
}

func TestSuggestFlow(t *testing.T) {
	svc, db, _ := newTestService(t)
	event, _, _, _, _ := seedDinner(t, db)

	snap, err := svc.Suggest(event.ID, 1, SuggestionPayload{
		Name:         "Grandma's Focaccia",
		Course:       models.CourseSide,
		Allergens:    []string{"gluten"},
		IsVegetarian: true,
	})
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	got := snap.ClaimByUser(1)
	if got == nil || !got.IsSuggestion {
		t.Fatal("want a suggestion claim")
	}
	if got.RecipeID != nil {
		t.Fatal("suggestion must not reference the catalog")
	}
	if got.SuggestionAllergens != "gluten" {
		t.Fatalf("allergens lost: %q", got.SuggestionAllergens)
	}

	// the suggestion occupies the one slot
	_, err = svc.Suggest(event.ID, 1, SuggestionPayload{Name: "Second Dish"})
	wantKind(t, err, KindAlreadyClaimed)

	_, err = svc.Suggest(event.ID, 2, SuggestionPayload{Name: " "})
	wantKind(t, err, KindInvalidInput)
}

func TestConcurrentClaimsAreExclusive(t *testing.T) {
	svc, db, _ := newTestService(t)
	event, a, _, _, _ := seedDinner(t, db)

	const guests = 8
	var wg sync.WaitGroup
	errs := make([]error, guests)
	for i := 0; i < guests; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Claim(event.ID, uint(100+i), a.ID)
		}(i)
	}
	wg.Wait()

	won := 0
	for _, err := range errs {
		if err == nil {
			won++
			continue
		}
		switch KindOf(err) {
		case KindRecipeTaken, KindConflict, KindBusy:
		default:
			t.Fatalf("unexpected error kind %q (%v)", KindOf(err), err)
		}
	}
	if won != 1 {
		t.Fatalf("exactly one concurrent claim should win, got %d", won)
	}

	snap, err := svc.GetSnapshot(event.ID)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(snap.Claims) != 1 {
		t.Fatalf("want 1 committed claim, got %d", len(snap.Claims))
	}
}

// Readers taking snapshots while a guest flips between two recipes must
// always see that guest holding exactly one claim.
func TestSwitchNeverExposesZeroOrTwoClaims(t *testing.T) {
	svc, db, _ := newTestService(t)
	event, a, b, _, _ := seedDinner(t, db)

	if _, err := svc.Claim(event.ID, 1, a.ID); err != nil {
		t.Fatalf("seed claim: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		targets := []string{b.ID, a.ID, b.ID, a.ID}
		for _, target := range targets {
			if _, err := svc.Switch(event.ID, 1, target); err != nil {
				t.Errorf("switch: %v", err)
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		default:
		}
		snap, err := svc.GetSnapshot(event.ID)
		if err != nil {
			t.Fatalf("snapshot: %v", err)
		}
		held := 0
		for i := range snap.Claims {
			if snap.Claims[i].UserID == 1 {
				held++
			}
		}
		if held != 1 {
			t.Fatalf("reader saw guest holding %d claims mid-switch", held)
		}
	}
}
