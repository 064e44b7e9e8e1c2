package services

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/itamarben/shul-backend/internal/dto"
	"github.com/itamarben/shul-backend/internal/models"
	"gorm.io/gorm"
)

// CheckSignup answers the public pre-registration probe: does a Profile with
// these names exist, is it already claimed, which household is it part of,
// and does the presented code match. Name lookup is case-insensitive.
func (s *ProfileService) CheckSignup(firstName, lastName, code string) (*dto.CheckUserResponse, error) {
	var profile models.Profile
	err := s.db.Where("LOWER(first_name) = LOWER(?) AND LOWER(last_name) = LOWER(?)", firstName, lastName).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.CheckUserResponse{Exists: false}, nil
		}
		return nil, fmt.Errorf("failed to look up profile: %w", err)
	}

	if profile.UserID != nil {
		return &dto.CheckUserResponse{Exists: true, Verified: true}, nil
	}

	match, err := s.VerifyCodeWithMetadata(&profile, code)
	if err != nil {
		return nil, err
	}
	if match.Family == nil {
		// Unlinked and family-less: nothing a sign-up flow can do with it.
		return nil, ErrProfileNotFound
	}
	return &dto.CheckUserResponse{
		Exists:           true,
		Family:           match.Family.DisplayName(),
		Relation:         match.FamilyRelation,
		VerificationCode: &match.Matched,
	}, nil
}

// CheckCode answers the code-first probe: who owns this verification code.
func (s *ProfileService) CheckCode(code string) (*dto.CheckCodeResponse, error) {
	n, err := strconv.Atoi(code)
	if err != nil {
		return &dto.CheckCodeResponse{Exists: false}, nil
	}

	var profile models.Profile
	if err := s.db.Where("verification_code = ?", n).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.CheckCodeResponse{Exists: false}, nil
		}
		return nil, fmt.Errorf("failed to look up profile: %w", err)
	}

	// Codes are cleared on claim, so this should not happen.
	if profile.UserID != nil {
		return &dto.CheckCodeResponse{Exists: true}, nil
	}

	return &dto.CheckCodeResponse{
		Exists:           true,
		VerificationCode: true,
		FirstName:        profile.FirstName,
		LastName:         profile.LastName,
		FullName:         profile.FullName,
	}, nil
}
