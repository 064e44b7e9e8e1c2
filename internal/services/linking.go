package services

import "github.com/itamarben/shul-backend/internal/models"

// LinkingKind says how a newly created Profile relates to an existing one.
type LinkingKind int

const (
	// LinkNone creates a standalone Profile.
	LinkNone LinkingKind = iota
	// LinkSpouseOf attaches the new Profile as the relative's spouse.
	LinkSpouseOf
	// LinkChildOf attaches the new Profile as the relative's child.
	LinkChildOf
	// LinkParentOf attaches the new Profile as a parent of the relative
	// (used when an account holder records their own father or mother).
	LinkParentOf
)

// LinkingContext is consumed exactly once at profile creation; it is never
// stored on the entity.
type LinkingContext struct {
	Kind     LinkingKind
	Relative *models.Profile
}

func NoLink() LinkingContext {
	return LinkingContext{Kind: LinkNone}
}

func SpouseOf(p *models.Profile) LinkingContext {
	return LinkingContext{Kind: LinkSpouseOf, Relative: p}
}

func ChildOf(p *models.Profile) LinkingContext {
	return LinkingContext{Kind: LinkChildOf, Relative: p}
}

func ParentOf(p *models.Profile) LinkingContext {
	return LinkingContext{Kind: LinkParentOf, Relative: p}
}
