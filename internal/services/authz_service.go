package services

import (
	"github.com/google/uuid"
	"github.com/itamarben/shul-backend/internal/models"
	"gorm.io/gorm"
)

// AuthzService decides which Profiles a requester may read or write. The
// gabbai bypass lives at the transport boundary, not here.
type AuthzService struct {
	db       *gorm.DB
	profiles *ProfileService
}

func NewAuthzService(db *gorm.DB, profiles *ProfileService) *AuthzService {
	return &AuthzService{db: db, profiles: profiles}
}

// HasPermission reports whether requester may access target. Self-access is
// checked first: a person always has full access to their own Profile, even
// as an INDEPENDENT.
func (s *AuthzService) HasPermission(target, requester *models.Profile, write bool) (bool, error) {
	if requester.ID == target.ID {
		return true, nil
	}

	role, err := s.profiles.Role(target)
	if err != nil {
		return false, err
	}

	// An INDEPENDENT cannot be written to by anyone else.
	if role == models.RoleIndependent && write {
		return false, nil
	}

	// META profiles are editable by their children: the requester whose
	// parent this is, or whose spouse's parent this is.
	if role == models.RoleMeta {
		parents, err := s.profiles.Parents(requester)
		if err != nil {
			return false, err
		}
		if containsProfile(parents, target.ID) {
			return true, nil
		}
		spouse, err := s.profiles.Spouse(requester)
		if err != nil {
			return false, err
		}
		if spouse != nil {
			spouseParents, err := s.profiles.Parents(spouse)
			if err != nil {
				return false, err
			}
			if containsProfile(spouseParents, target.ID) {
				return true, nil
			}
		}
	}

	// Spouse or child: target co-occurs with requester in a family the
	// requester parents.
	families, err := parentFamilies(s.db, requester.ID)
	if err != nil {
		return false, err
	}
	for i := range families {
		if containsProfile(families[i].Parents, target.ID) || containsProfile(families[i].Children, target.ID) {
			return true, nil
		}
	}
	return false, nil
}

// AuthorizedIDs is the requester's full visibility (or edit) set: self,
// spouse and the spouse's parents, own parents, and the children of every
// family the requester parents. Under write, INDEPENDENT relatives are
// excluded. The result may repeat ids; callers treat it as a set.
func (s *AuthzService) AuthorizedIDs(requester *models.Profile, write bool) ([]uuid.UUID, error) {
	ids := []uuid.UUID{requester.ID}

	parents, err := s.profiles.Parents(requester)
	if err != nil {
		return nil, err
	}

	spouse, err := s.profiles.Spouse(requester)
	if err != nil {
		return nil, err
	}
	if spouse != nil {
		ok, err := s.writable(spouse, write)
		if err != nil {
			return nil, err
		}
		if ok {
			ids = append(ids, spouse.ID)
			spouseParents, err := s.profiles.Parents(spouse)
			if err != nil {
				return nil, err
			}
			parents = append(parents, spouseParents...)
		}
	}

	for i := range parents {
		ok, err := s.writable(&parents[i], write)
		if err != nil {
			return nil, err
		}
		if ok {
			ids = append(ids, parents[i].ID)
		}
	}

	families, err := parentFamilies(s.db, requester.ID)
	if err != nil {
		return nil, err
	}
	for i := range families {
		for j := range families[i].Children {
			child := &families[i].Children[j]
			ok, err := s.writable(child, write)
			if err != nil {
				return nil, err
			}
			if ok {
				ids = append(ids, child.ID)
			}
		}
	}
	return ids, nil
}

// writable reports whether the Profile may be included under the requested
// access: reads always, writes only for non-INDEPENDENT profiles.
func (s *AuthzService) writable(p *models.Profile, write bool) (bool, error) {
	if !write {
		return true, nil
	}
	role, err := s.profiles.Role(p)
	if err != nil {
		return false, err
	}
	return role != models.RoleIndependent, nil
}

func containsProfile(list []models.Profile, id uuid.UUID) bool {
	for i := range list {
		if list[i].ID == id {
			return true
		}
	}
	return false
}
