package services

import (
	"testing"
	"time"

	"backend/models"
)

func sampleImport() EventImport {
	page := 42
	return EventImport{
		Title:        "Vol. 4 — Midwinter",
		VolumeNumber: 4,
		Date:         "2026-12-12",
		Location:     "June's place",
		CookbookName: "The Midwinter Table",
		Recipes: []RecipeImport{
			{Name: "Onion Soup", Course: models.CourseAppetizer, Allergens: []string{"dairy", "gluten"}, IsVegetarian: true},
			{Name: "Braised Short Rib", PageNumber: &page, Course: models.CourseMain},
			{Name: "Sticky Toffee Pudding", Course: models.CourseDessert, IsVegetarian: true},
			{Name: "Winter Slaw", Course: models.CourseSide, IsVegan: true},
		},
	}
}

func TestImportEvent(t *testing.T) {
	db := testDB(t)
	svc := NewEventService(db)

	event, err := svc.ImportEvent(sampleImport())
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if event.Cookbook == nil || event.Cookbook.Name != "The Midwinter Table" {
		t.Fatal("cookbook missing from imported event")
	}

	var recipes []models.Recipe
	if err := db.Where("event_id = ?", event.ID).Order("name").Find(&recipes).Error; err != nil {
		t.Fatalf("load recipes: %v", err)
	}
	if len(recipes) != 4 {
		t.Fatalf("want 4 recipes, got %d", len(recipes))
	}
	for _, r := range recipes {
		if r.Name == "Winter Slaw" {
			if !r.IsVegan || !r.IsVegetarian {
				t.Fatal("vegan import must imply vegetarian")
			}
		}
		if r.Name == "Onion Soup" {
			if got := r.AllergenList(); len(got) != 2 {
				t.Fatalf("allergens lost on import: %v", got)
			}
		}
	}
}

func TestImportEventValidation(t *testing.T) {
	svc := NewEventService(testDB(t))

	tests := []struct {
		name   string
		mutate func(*EventImport)
	}{
		{"missing title", func(i *EventImport) { i.Title = " " }},
		{"missing cookbook", func(i *EventImport) { i.CookbookName = "" }},
		{"bad date", func(i *EventImport) { i.Date = "12/12/2026" }},
		{"unnamed recipe", func(i *EventImport) { i.Recipes[0].Name = "" }},
		{"bad course", func(i *EventImport) { i.Recipes[0].Course = "amuse-bouche" }},
		{"bad allergen", func(i *EventImport) { i.Recipes[0].Allergens = []string{"sunlight"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			imp := sampleImport()
			tt.mutate(&imp)
			_, err := svc.ImportEvent(imp)
			wantKind(t, err, KindInvalidInput)
		})
	}
}

func TestActivateRetiresOthers(t *testing.T) {
	db := testDB(t)
	svc := NewEventService(db)

	first, err := svc.ImportEvent(sampleImport())
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if _, err := svc.Activate(first.ID); err != nil {
		t.Fatalf("activate first: %v", err)
	}

	imp := sampleImport()
	imp.Title = "Vol. 5 — Thaw"
	second, err := svc.ImportEvent(imp)
	if err != nil {
		t.Fatalf("import second: %v", err)
	}
	if _, err := svc.Activate(second.ID); err != nil {
		t.Fatalf("activate second: %v", err)
	}

	active, err := svc.ActiveEvent()
	if err != nil {
		t.Fatalf("active event: %v", err)
	}
	if active.ID != second.ID {
		t.Fatal("second event should be the live one")
	}

	archive, err := svc.ListArchive()
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	if len(archive) != 1 || archive[0].ID != first.ID {
		t.Fatalf("first event should be shelved, archive=%d", len(archive))
	}
}

func TestSetLockTime(t *testing.T) {
	db := testDB(t)
	svc := NewEventService(db)

	event, err := svc.ImportEvent(sampleImport())
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if event.LockTime != nil {
		t.Fatal("fresh event should have no lock boundary")
	}

	boundary := time.Date(2026, 12, 11, 18, 0, 0, 0, time.UTC)
	event, err = svc.SetLockTime(event.ID, &boundary)
	if err != nil {
		t.Fatalf("set lock time: %v", err)
	}
	if event.LockTime == nil || !event.LockTime.Equal(boundary) {
		t.Fatal("lock boundary not stored")
	}

	event, err = svc.SetLockTime(event.ID, nil)
	if err != nil {
		t.Fatalf("clear lock time: %v", err)
	}
	if event.LockTime != nil {
		t.Fatal("lock boundary not cleared")
	}
}
