package services

import (
	"errors"

	"backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RSVPService struct {
	db     *gorm.DB
	claims *ClaimService
}

func NewRSVPService(db *gorm.DB, claims *ClaimService) *RSVPService {
	return &RSVPService{db: db, claims: claims}
}

// Set records the guest's RSVP. Flipping to declined releases any dish
// they had claimed; the release goes through the engine, so a locked
// menu refuses the decline too.
func (s *RSVPService) Set(eventID string, userID uint, status models.RSVPStatus) (*models.RSVP, error) {
	if status != models.RSVPAttending && status != models.RSVPDeclined {
		return nil, claimErr(KindInvalidInput, "status must be attending or declined")
	}
	var event models.Event
	if err := s.db.First(&event, "id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, claimErr(KindNotFound, "event not found")
		}
		return nil, err
	}

	if status == models.RSVPDeclined {
		if _, err := s.claims.ReleaseFor(eventID, userID); err != nil {
			return nil, err
		}
	}

	var rsvp models.RSVP
	err := s.db.Where("event_id = ? AND user_id = ?", eventID, userID).First(&rsvp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		rsvp = models.RSVP{
			ID:      uuid.NewString(),
			EventID: eventID,
			UserID:  userID,
			Status:  status,
		}
		if err := s.db.Create(&rsvp).Error; err != nil {
			return nil, err
		}
		return &rsvp, nil
	}
	if err != nil {
		return nil, err
	}
	rsvp.Status = status
	if err := s.db.Save(&rsvp).Error; err != nil {
		return nil, err
	}
	return &rsvp, nil
}

// GuestView is what the guest rail renders: who's coming, their dietary
// needs, and what they're bringing.
type GuestView struct {
	UserID              uint              `json:"user_id"`
	Name                string            `json:"name"`
	AvatarURL           string            `json:"avatar_url,omitempty"`
	DietaryRestrictions []string          `json:"dietary_restrictions,omitempty"`
	Status              models.RSVPStatus `json:"status"`
	Claim               *models.Claim     `json:"claim,omitempty"`
}

func (s *RSVPService) ListGuests(eventID string) ([]GuestView, error) {
	var rsvps []models.RSVP
	if err := s.db.Where("event_id = ?", eventID).Order("created_at").Find(&rsvps).Error; err != nil {
		return nil, err
	}
	var claims []models.Claim
	if err := s.db.Where("event_id = ?", eventID).Find(&claims).Error; err != nil {
		return nil, err
	}
	claimByUser := make(map[uint]*models.Claim, len(claims))
	for i := range claims {
		claimByUser[claims[i].UserID] = &claims[i]
	}

	out := make([]GuestView, 0, len(rsvps))
	for _, r := range rsvps {
		var u models.User
		if err := s.db.First(&u, r.UserID).Error; err != nil {
			continue
		}
		out = append(out, GuestView{
			UserID:              u.ID,
			Name:                u.Name,
			AvatarURL:           u.AvatarURL,
			DietaryRestrictions: u.DietaryList(),
			Status:              r.Status,
			Claim:               claimByUser[u.ID],
		})
	}
	return out, nil
}
