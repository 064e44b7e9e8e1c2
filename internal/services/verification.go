package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"

	"github.com/itamarben/shul-backend/internal/models"
	"gorm.io/gorm"
)

// Family relations reported by VerifyCodeWithMetadata.
const (
	RelationSpouse = "spouse"
	RelationChild  = "child"
)

// Code relations: whose code matched.
const (
	CodeRelationSelf   = "self"
	CodeRelationParent = "parent"
)

const codeAttempts = 10

// generateVerificationCode draws a 6-digit code that no other Profile holds.
// Uniqueness is checked inside the caller's transaction, so two concurrent
// registrations cannot both win the same code.
func generateVerificationCode(tx *gorm.DB) (int, error) {
	for i := 0; i < codeAttempts; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(900000))
		if err != nil {
			return 0, fmt.Errorf("failed to draw verification code: %w", err)
		}
		code := int(n.Int64()) + 100000

		var count int64
		if err := tx.Model(&models.Profile{}).Where("verification_code = ?", code).Count(&count).Error; err != nil {
			return 0, fmt.Errorf("failed to check verification code uniqueness: %w", err)
		}
		if count == 0 {
			return code, nil
		}
	}
	return 0, ErrCodeConflict
}

// CodeMatch is the result of checking a verification code against a Profile
// and its household.
type CodeMatch struct {
	Matched        bool
	Family         *models.Family
	FamilyRelation string // spouse or child
	CodeRelation   string // self or parent, empty when not matched
}

// VerifyCodeWithMetadata checks a presented code against the Profile's own
// code and, failing that, against every parent in its household. A child may
// be claimed with a parent's code.
func (s *ProfileService) VerifyCodeWithMetadata(p *models.Profile, code string) (CodeMatch, error) {
	return verifyCodeWithMetadata(s.db, p, code)
}

func verifyCodeWithMetadata(tx *gorm.DB, p *models.Profile, code string) (CodeMatch, error) {
	family, relation, err := familyAndRelation(tx, p)
	if err != nil {
		return CodeMatch{}, err
	}
	if family == nil {
		return CodeMatch{}, nil
	}

	match := CodeMatch{Family: family, FamilyRelation: relation}
	if codeEquals(p.VerificationCode, code) {
		match.Matched = true
		match.CodeRelation = CodeRelationSelf
		return match, nil
	}
	for i := range family.Parents {
		if codeEquals(family.Parents[i].VerificationCode, code) {
			match.Matched = true
			match.CodeRelation = CodeRelationParent
			return match, nil
		}
	}
	return match, nil
}

// familyAndRelation finds the Profile's household: first as a parent, then
// as a child.
func familyAndRelation(tx *gorm.DB, p *models.Profile) (*models.Family, string, error) {
	families, err := parentFamilies(tx, p.ID)
	if err != nil {
		return nil, "", err
	}
	if len(families) > 0 {
		return &families[0], RelationSpouse, nil
	}

	family, err := childFamily(tx, p.ID)
	if err != nil {
		return nil, "", err
	}
	if family != nil {
		return family, RelationChild, nil
	}
	return nil, "", nil
}

// Codes are compared as strings: the caller usually has the code from a URL
// segment or form field.
func codeEquals(have *int, presented string) bool {
	if have == nil || presented == "" {
		return false
	}
	return strconv.Itoa(*have) == presented
}
