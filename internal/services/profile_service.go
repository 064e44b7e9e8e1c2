package services

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/itamarben/shul-backend/internal/models"
	"gorm.io/gorm"
)

// ProfileService owns Profile records: save-time invariants, the
// verification-code lifecycle and every derived relation over the family
// graph. Derivations are recomputed per call; nothing is cached.
type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// Create persists a new Profile and applies its linking context atomically.
func (s *ProfileService) Create(p *models.Profile, link LinkingContext) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return saveProfile(tx, p, link)
	})
}

// Save persists changes to an existing Profile, re-running the save-time
// invariants (verification code, Kiddush duty).
func (s *ProfileService) Save(p *models.Profile) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return saveProfile(tx, p, NoLink())
	})
}

func saveProfile(tx *gorm.DB, p *models.Profile, link LinkingContext) error {
	if p.FullName == "" && (p.FirstName == "" || p.LastName == "") {
		return ErrNameRequired
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Title == "" {
		p.Title = models.TitleYisrael
	}

	if err := tx.Save(p).Error; err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	if err := applyLink(tx, p, link); err != nil {
		return err
	}

	// Exactly one of {verification code, linked account} after save.
	if p.UserID == nil && p.VerificationCode == nil {
		code, err := generateVerificationCode(tx)
		if err != nil {
			return err
		}
		p.VerificationCode = &code
		if err := tx.Model(p).Update("verification_code", code).Error; err != nil {
			return fmt.Errorf("failed to store verification code: %w", err)
		}
	} else if p.UserID != nil && p.VerificationCode != nil {
		p.VerificationCode = nil
		if err := tx.Model(p).Update("verification_code", nil).Error; err != nil {
			return fmt.Errorf("failed to clear verification code: %w", err)
		}
	}

	if p.HeadOfHousehold {
		if err := ensureKiddushDuty(tx, p); err != nil {
			return err
		}
	}
	return nil
}

func applyLink(tx *gorm.DB, p *models.Profile, link LinkingContext) error {
	switch link.Kind {
	case LinkNone:
		return nil
	case LinkSpouseOf:
		return setFamily(tx, link.Relative, p, nil)
	case LinkChildOf:
		return setFamily(tx, link.Relative, nil, p)
	case LinkParentOf:
		return linkAsParent(tx, p, link.Relative)
	default:
		return fmt.Errorf("unknown linking kind %d", link.Kind)
	}
}

// The household Kiddush duty follows the head-of-household flag. Idempotent.
func ensureKiddushDuty(tx *gorm.DB, p *models.Profile) error {
	var count int64
	if err := tx.Table("profile_duties").
		Where("profile_id = ? AND duty_id = ?", p.ID, models.KiddushDutyID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check kiddush duty: %w", err)
	}
	if count > 0 {
		return nil
	}

	var duty models.Duty
	if err := tx.First(&duty, "id = ?", models.KiddushDutyID).Error; err != nil {
		return fmt.Errorf("kiddush duty not seeded: %w", err)
	}
	if err := tx.Model(p).Association("Duties").Append(&duty); err != nil {
		return fmt.Errorf("failed to add kiddush duty: %w", err)
	}
	slog.Info("kiddush duty assigned", "profile", p.ID)
	return nil
}

// Get fetches a Profile by id.
func (s *ProfileService) Get(id uuid.UUID) (*models.Profile, error) {
	var p models.Profile
	if err := s.db.Preload("Duties").First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return &p, nil
}

// GetByUser fetches the Profile linked to a login account.
func (s *ProfileService) GetByUser(userID uuid.UUID) (*models.Profile, error) {
	var p models.Profile
	if err := s.db.First(&p, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return &p, nil
}

// Role derives the Profile's role from the graph. Never persisted.
func (s *ProfileService) Role(p *models.Profile) (models.ProfileRole, error) {
	if p.UserID != nil {
		return models.RoleIndependent, nil
	}
	parents, err := s.Parents(p)
	if err != nil {
		return 0, err
	}
	for i := range parents {
		if parents[i].UserID != nil {
			return models.RoleControlled, nil
		}
	}
	return models.RoleMeta, nil
}

// Parents are the parent set of the Profile's single family-of-children.
func (s *ProfileService) Parents(p *models.Profile) ([]models.Profile, error) {
	family, err := childFamily(s.db, p.ID)
	if err != nil || family == nil {
		return nil, err
	}
	return family.Parents, nil
}

func (s *ProfileService) Father(p *models.Profile) (*models.Profile, error) {
	return s.parentByGender(p, models.GenderMale)
}

func (s *ProfileService) Mother(p *models.Profile) (*models.Profile, error) {
	return s.parentByGender(p, models.GenderFemale)
}

func (s *ProfileService) parentByGender(p *models.Profile, gender string) (*models.Profile, error) {
	parents, err := s.Parents(p)
	if err != nil {
		return nil, err
	}
	for i := range parents {
		if parents[i].Gender == gender {
			return &parents[i], nil
		}
	}
	return nil, nil
}

// Spouse is the other parent of the default family. Only that one family
// defines the spouse relation.
func (s *ProfileService) Spouse(p *models.Profile) (*models.Profile, error) {
	if p.DefaultFamilyID == nil {
		return nil, nil
	}
	var family models.Family
	if err := s.db.Preload("Parents").First(&family, "id = ?", *p.DefaultFamilyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch default family: %w", err)
	}
	var others []models.Profile
	for i := range family.Parents {
		if family.Parents[i].ID != p.ID {
			others = append(others, family.Parents[i])
		}
	}
	if len(others) != 1 {
		return nil, nil
	}
	return &others[0], nil
}

// Children is the union of children across every family this Profile parents.
func (s *ProfileService) Children(p *models.Profile) ([]models.Profile, error) {
	families, err := parentFamilies(s.db, p.ID)
	if err != nil {
		return nil, err
	}
	var children []models.Profile
	for i := range families {
		children = append(children, families[i].Children...)
	}
	return children, nil
}

// UpdateNamesFromUser propagates account name edits onto the linked Profile
// (one direction only).
func (s *ProfileService) UpdateNamesFromUser(user *models.User) error {
	p, err := s.GetByUser(user.ID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return nil
		}
		return err
	}
	if p.FirstName == user.FirstName && p.LastName == user.LastName {
		return nil
	}
	slog.Debug("account edited, updating profile names", "profile", p.ID)
	p.FirstName = user.FirstName
	p.LastName = user.LastName
	return s.Save(p)
}

// childFamily returns the one family this Profile belongs to as a child, or
// nil. The schema would allow more; the graph mutators refuse to create them.
func childFamily(db *gorm.DB, profileID uuid.UUID) (*models.Family, error) {
	var family models.Family
	err := db.Preload("Parents").
		Joins("JOIN family_children fc ON fc.family_id = families.id").
		Where("fc.profile_id = ?", profileID).
		First(&family).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch child family: %w", err)
	}
	return &family, nil
}

// parentFamilies returns every family this Profile is a parent in.
func parentFamilies(db *gorm.DB, profileID uuid.UUID) ([]models.Family, error) {
	var families []models.Family
	err := db.Preload("Parents").Preload("Children").
		Joins("JOIN family_parents fp ON fp.family_id = families.id").
		Where("fp.profile_id = ?", profileID).
		Find(&families).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch parent families: %w", err)
	}
	return families, nil
}
