package services

import (
	"testing"
	"time"

	"backend/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// one shared in-memory db across the pool
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.Cookbook{},
		&models.Recipe{},
		&models.Claim{},
		&models.RSVP{},
		&models.MenuActivity{},
		&models.UserDevice{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedEvent(t *testing.T, db *gorm.DB, lockTime *time.Time) *models.Event {
	t.Helper()
	event := &models.Event{
		ID:       uuid.NewString(),
		Title:    "Vol. 3 — The Autumn Table",
		Date:     time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC),
		LockTime: lockTime,
		IsActive: true,
	}
	if err := db.Create(event).Error; err != nil {
		t.Fatalf("seed event: %v", err)
	}
	return event
}

func seedRecipe(t *testing.T, db *gorm.DB, eventID, name string, course models.Course, veg, vegan bool) *models.Recipe {
	t.Helper()
	r := &models.Recipe{
		ID:           uuid.NewString(),
		EventID:      eventID,
		Name:         name,
		Course:       course,
		IsVegetarian: veg || vegan,
		IsVegan:      vegan,
	}
	if err := db.Create(r).Error; err != nil {
		t.Fatalf("seed recipe %s: %v", name, err)
	}
	return r
}

func wantKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("want %s, got nil error", kind)
	}
	if got := KindOf(err); got != kind {
		t.Fatalf("want kind %s, got %s (%v)", kind, got, err)
	}
}
