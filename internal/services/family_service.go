package services

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/itamarben/shul-backend/internal/models"
	"gorm.io/gorm"
)

// FamilyService is the only mutator of parent/child relations. Every
// operation runs read-then-write inside one transaction, so two concurrent
// requests cannot both create a default family for the same Profile.
type FamilyService struct {
	db *gorm.DB
}

func NewFamilyService(db *gorm.DB) *FamilyService {
	return &FamilyService{db: db}
}

// SetFamily links a spouse and/or child into the Profile's default family,
// creating it lazily on first use.
func (s *FamilyService) SetFamily(p *models.Profile, spouse, child *models.Profile) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return setFamily(tx, p, spouse, child)
	})
}

func setFamily(tx *gorm.DB, p *models.Profile, spouse, child *models.Profile) error {
	if p.DefaultFamilyID == nil {
		slog.Debug("creating default family", "profile", p.ID)
		family := models.Family{ID: uuid.New()}
		if err := tx.Create(&family).Error; err != nil {
			return fmt.Errorf("failed to create family: %w", err)
		}
		if err := tx.Model(&family).Association("Parents").Append(p); err != nil {
			return fmt.Errorf("failed to add parent to family: %w", err)
		}
		p.DefaultFamilyID = &family.ID
		if err := tx.Model(p).Update("default_family_id", family.ID).Error; err != nil {
			return fmt.Errorf("failed to set default family: %w", err)
		}
	}

	if spouse != nil {
		if err := addSpouse(tx, p, spouse); err != nil {
			return err
		}
	}
	if child != nil {
		if err := addChild(tx, *p.DefaultFamilyID, child); err != nil {
			return err
		}
	}
	return nil
}

// A family holds at most two parents. Re-adding the current spouse is a
// no-op; a different second spouse is rejected.
func addSpouse(tx *gorm.DB, p, spouse *models.Profile) error {
	familyID := *p.DefaultFamilyID

	var isParent int64
	if err := tx.Table("family_parents").
		Where("family_id = ? AND profile_id = ?", familyID, spouse.ID).
		Count(&isParent).Error; err != nil {
		return fmt.Errorf("failed to check family parents: %w", err)
	}
	if isParent == 0 {
		var parents int64
		if err := tx.Table("family_parents").Where("family_id = ?", familyID).Count(&parents).Error; err != nil {
			return fmt.Errorf("failed to count family parents: %w", err)
		}
		if parents >= 2 {
			return ErrSpouseExists
		}
		family := models.Family{ID: familyID}
		if err := tx.Model(&family).Association("Parents").Append(spouse); err != nil {
			return fmt.Errorf("failed to add spouse to family: %w", err)
		}
	}

	if spouse.DefaultFamilyID == nil || *spouse.DefaultFamilyID != familyID {
		spouse.DefaultFamilyID = &familyID
		if err := tx.Model(spouse).Update("default_family_id", familyID).Error; err != nil {
			return fmt.Errorf("failed to set spouse default family: %w", err)
		}
	}
	return nil
}

// A Profile is a child of at most one family. Every derivation (parents,
// father, mother) assumes it, so a second child-family is refused outright.
func addChild(tx *gorm.DB, familyID uuid.UUID, child *models.Profile) error {
	existing, err := childFamily(tx, child.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		if existing.ID == familyID {
			return nil
		}
		return ErrAlreadyChildOfFamily
	}
	family := models.Family{ID: familyID}
	if err := tx.Model(&family).Association("Children").Append(child); err != nil {
		return fmt.Errorf("failed to add child to family: %w", err)
	}
	return nil
}

// linkAsParent attaches a newly created Profile as a parent of an existing
// child. When the child already has a parent with a household, the new
// parent joins that same household as a spouse.
func linkAsParent(tx *gorm.DB, parent *models.Profile, child *models.Profile) error {
	existing, err := childFamily(tx, child.ID)
	var firstParent *models.Profile
	if err != nil {
		return err
	}
	if existing != nil && len(existing.Parents) > 0 {
		firstParent = &existing.Parents[0]
		if firstParent.DefaultFamilyID != nil {
			parent.DefaultFamilyID = firstParent.DefaultFamilyID
			if err := tx.Model(parent).Update("default_family_id", *parent.DefaultFamilyID).Error; err != nil {
				return fmt.Errorf("failed to adopt family: %w", err)
			}
		}
	}
	if err := setFamily(tx, parent, nil, child); err != nil {
		return err
	}
	if firstParent != nil && firstParent.ID != parent.ID {
		return setFamily(tx, firstParent, parent, nil)
	}
	return nil
}

// Associate links an existing Profile as spouse or child. Reserved for the
// gabbai; members create relatives instead.
func (s *FamilyService) AssociateSpouse(p *models.Profile, spouse *models.Profile) error {
	return s.SetFamily(p, spouse, nil)
}

func (s *FamilyService) AssociateChild(p *models.Profile, child *models.Profile) error {
	return s.SetFamily(p, nil, child)
}

// Get fetches a Family with its parents and children.
func (s *FamilyService) Get(id uuid.UUID) (*models.Family, error) {
	var family models.Family
	if err := s.db.Preload("Parents").Preload("Children").First(&family, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to fetch family: %w", err)
	}
	return &family, nil
}

// ListForParent returns the families a Profile parents.
func (s *FamilyService) ListForParent(profileID uuid.UUID) ([]models.Family, error) {
	return parentFamilies(s.db, profileID)
}
