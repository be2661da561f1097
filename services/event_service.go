package services

import (
	"errors"
	"strings"
	"time"

	"backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventImport is the organizer-side JSON format for setting up an event
// with its cookbook and recipe catalog in one shot.
type EventImport struct {
	Title            string         `json:"title"`
	VolumeNumber     int            `json:"volume_number"`
	Date             string         `json:"date"` // YYYY-MM-DD
	EventTime        string         `json:"event_time,omitempty"`
	Location         string         `json:"location,omitempty"`
	ColorTheme       string         `json:"color_theme,omitempty"`
	CookbookName     string         `json:"cookbook_name"`
	CookbookCoverURL string         `json:"cookbook_cover_url,omitempty"`
	Recipes          []RecipeImport `json:"recipes"`
}

type RecipeImport struct {
	Name         string        `json:"name"`
	PageNumber   *int          `json:"page_number,omitempty"`
	Course       models.Course `json:"course"`
	Allergens    []string      `json:"allergens,omitempty"`
	IsVegetarian bool          `json:"is_vegetarian"`
	IsVegan      bool          `json:"is_vegan"`
}

type EventService struct {
	db *gorm.DB
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{db: db}
}

// ImportEvent creates the event, its cookbook and the recipe catalog in
// one transaction. Recipes are immutable afterward.
func (s *EventService) ImportEvent(imp EventImport) (*models.Event, error) {
	if strings.TrimSpace(imp.Title) == "" {
		return nil, claimErr(KindInvalidInput, "event title is required")
	}
	if strings.TrimSpace(imp.CookbookName) == "" {
		return nil, claimErr(KindInvalidInput, "cookbook name is required")
	}
	date, err := time.Parse("2006-01-02", imp.Date)
	if err != nil {
		return nil, claimErr(KindInvalidInput, "date must be YYYY-MM-DD")
	}
	for _, r := range imp.Recipes {
		if strings.TrimSpace(r.Name) == "" {
			return nil, claimErr(KindInvalidInput, "recipe name is required")
		}
		if !models.ValidCourse(r.Course) {
			return nil, claimErr(KindInvalidInput, "unknown course: "+string(r.Course))
		}
		for _, a := range r.Allergens {
			if !models.ValidAllergen(a) {
				return nil, claimErr(KindInvalidInput, "unknown allergen: "+a)
			}
		}
	}

	event := &models.Event{
		ID:           uuid.NewString(),
		Title:        imp.Title,
		VolumeNumber: imp.VolumeNumber,
		Date:         date,
		EventTime:    imp.EventTime,
		Location:     imp.Location,
		ColorTheme:   imp.ColorTheme,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(event).Error; err != nil {
			return err
		}
		cookbook := &models.Cookbook{
			ID:       uuid.NewString(),
			EventID:  event.ID,
			Name:     imp.CookbookName,
			CoverURL: imp.CookbookCoverURL,
		}
		if err := tx.Create(cookbook).Error; err != nil {
			return err
		}
		for _, r := range imp.Recipes {
			recipe := &models.Recipe{
				ID:           uuid.NewString(),
				EventID:      event.ID,
				CookbookID:   cookbook.ID,
				Name:         r.Name,
				PageNumber:   r.PageNumber,
				Course:       r.Course,
				Allergens:    models.JoinAllergens(r.Allergens),
				IsVegetarian: r.IsVegetarian || r.IsVegan, // vegan implies vegetarian
				IsVegan:      r.IsVegan,
			}
			if err := tx.Create(recipe).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetEvent(event.ID)
}

func (s *EventService) GetEvent(eventID string) (*models.Event, error) {
	var event models.Event
	if err := s.db.First(&event, "id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, claimErr(KindNotFound, "event not found")
		}
		return nil, err
	}
	var cookbook models.Cookbook
	if err := s.db.First(&cookbook, "event_id = ?", eventID).Error; err == nil {
		event.Cookbook = &cookbook
	}
	return &event, nil
}

// ActiveEvent returns the one live event, or NotFound when none is up.
func (s *EventService) ActiveEvent() (*models.Event, error) {
	var event models.Event
	if err := s.db.First(&event, "is_active = ?", true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, claimErr(KindNotFound, "no active event")
		}
		return nil, err
	}
	return s.GetEvent(event.ID)
}

// Activate makes this event the live one and retires any other.
func (s *EventService) Activate(eventID string) (*models.Event, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.First(&event, "id = ?", eventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return claimErr(KindNotFound, "event not found")
			}
			return err
		}
		if err := tx.Model(&models.Event{}).Where("is_active = ?", true).Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Model(&event).Update("is_active", true).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetEvent(eventID)
}

func (s *EventService) SetLockTime(eventID string, lockTime *time.Time) (*models.Event, error) {
	var event models.Event
	if err := s.db.First(&event, "id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, claimErr(KindNotFound, "event not found")
		}
		return nil, err
	}
	if err := s.db.Model(&event).Update("lock_time", lockTime).Error; err != nil {
		return nil, err
	}
	return s.GetEvent(eventID)
}

// ListArchive returns retired events, newest first, for the archive
// shelf.
func (s *EventService) ListArchive() ([]models.Event, error) {
	var events []models.Event
	err := s.db.Where("is_active = ?", false).Order("date DESC").Find(&events).Error
	return events, err
}
