package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/itamarben/shul-backend/internal/models"
	"gorm.io/gorm"
)

// RosterService is the duty-roster CRUD. Who may touch what is decided by
// the authorization primitives and the gabbai guard at the transport layer;
// the one rule enforced here is that members only answer their own offers.
type RosterService struct {
	db *gorm.DB
}

func NewRosterService(db *gorm.DB) *RosterService {
	return &RosterService{db: db}
}

func (s *RosterService) CreateShabbat(date time.Time, parashaID uuid.UUID) (*models.Shabbat, error) {
	shabbat := models.Shabbat{ID: uuid.New(), Date: date, ParashaID: parashaID}
	if err := s.db.Create(&shabbat).Error; err != nil {
		return nil, fmt.Errorf("failed to create shabbat: %w", err)
	}
	return &shabbat, nil
}

func (s *RosterService) ListShabbatot(from time.Time) ([]models.Shabbat, error) {
	var shabbatot []models.Shabbat
	q := s.db.Preload("Parasha").Order("date")
	if !from.IsZero() {
		q = q.Where("date >= ?", from)
	}
	if err := q.Find(&shabbatot).Error; err != nil {
		return nil, fmt.Errorf("failed to list shabbatot: %w", err)
	}
	return shabbatot, nil
}

func (s *RosterService) CreateRoster(shabbatID, dutyID uuid.UUID) (*models.Roster, error) {
	roster := models.Roster{ID: uuid.New(), ShabbatID: shabbatID, DutyID: dutyID}
	if err := s.db.Create(&roster).Error; err != nil {
		return nil, fmt.Errorf("failed to create roster: %w", err)
	}
	return &roster, nil
}

func (s *RosterService) ListRosters(shabbatID uuid.UUID) ([]models.Roster, error) {
	var rosters []models.Roster
	if err := s.db.Preload("Duty").Where("shabbat_id = ?", shabbatID).Find(&rosters).Error; err != nil {
		return nil, fmt.Errorf("failed to list rosters: %w", err)
	}
	return rosters, nil
}

// Assign offers a roster slot to a Profile. A Profile holds at most one
// assignment per roster.
func (s *RosterService) Assign(rosterID, profileID uuid.UUID, offerType string) (*models.Assignment, error) {
	if offerType == "" {
		offerType = models.OfferRegular
	}
	switch offerType {
	case models.OfferRegular, models.OfferStandin, models.OfferSpecial:
	default:
		return nil, ErrInvalidStatus
	}

	assignment := models.Assignment{
		ID:        uuid.New(),
		RosterID:  rosterID,
		ProfileID: profileID,
		Status:    models.AssignmentOffered,
		OfferType: offerType,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Assignment{}).
			Where("roster_id = ? AND profile_id = ?", rosterID, profileID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check assignment: %w", err)
		}
		if count > 0 {
			return ErrAlreadyAssigned
		}
		return tx.Create(&assignment).Error
	})
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (s *RosterService) ListForProfile(profileID uuid.UUID) ([]models.Assignment, error) {
	var assignments []models.Assignment
	if err := s.db.Preload("Roster").Where("profile_id = ?", profileID).Find(&assignments).Error; err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return assignments, nil
}

// SetStatus answers an offer. Members may confirm, postpone or refuse their
// own assignments; only the gabbai cancels, and may act on anyone's.
func (s *RosterService) SetStatus(assignmentID uuid.UUID, requester *models.Profile, status string, gabbai bool) (*models.Assignment, error) {
	var assignment models.Assignment
	if err := s.db.First(&assignment, "id = ?", assignmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to fetch assignment: %w", err)
	}

	switch status {
	case models.AssignmentConfirmed, models.AssignmentPostponed, models.AssignmentRefusal:
		if !gabbai && assignment.ProfileID != requester.ID {
			return nil, ErrPermissionDenied
		}
	case models.AssignmentCancelled, models.AssignmentOffered:
		if !gabbai {
			return nil, ErrPermissionDenied
		}
	default:
		return nil, ErrInvalidStatus
	}

	assignment.Status = status
	if err := s.db.Save(&assignment).Error; err != nil {
		return nil, fmt.Errorf("failed to update assignment: %w", err)
	}
	return &assignment, nil
}
