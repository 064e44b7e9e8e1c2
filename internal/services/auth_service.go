package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/itamarben/shul-backend/internal/config"
	"github.com/itamarben/shul-backend/internal/dto"
	"github.com/itamarben/shul-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService creates login accounts, runs the profile-claim rules at
// registration, and issues token pairs.
type AuthService struct {
	db       *gorm.DB
	cfg      *config.Config
	profiles *ProfileService
}

func NewAuthService(db *gorm.DB, cfg *config.Config, profiles *ProfileService) *AuthService {
	return &AuthService{db: db, cfg: cfg, profiles: profiles}
}

// Register creates an account. If a Profile already exists for this person
// (created earlier by a spouse or parent), the presented verification code
// must claim it; otherwise a fresh Profile is created.
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if req.FirstName == "" || req.LastName == "" {
		return nil, ErrNameRequired
	}
	if len(req.Password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}

	username := models.BuildUsername(req.FirstName, req.LastName)
	var existing models.User
	if err := s.db.Where("LOWER(username) = LOWER(?)", username).First(&existing).Error; err == nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:        uuid.New(),
		Username:  username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  string(hash),
		Role:      models.RoleMember,
	}

	var profile *models.Profile
	err = s.db.Transaction(func(tx *gorm.DB) error {
		claimed, err := s.resolveClaim(tx, req)
		if err != nil {
			return err
		}

		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		if claimed != nil {
			slog.Debug("claiming existing profile", "profile", claimed.ID)
			claimed.UserID = &user.ID
			if claimed.FirstName != req.FirstName || claimed.LastName != req.LastName {
				claimed.FirstName = req.FirstName
				claimed.LastName = req.LastName
			}
			if err := saveProfile(tx, claimed, NoLink()); err != nil {
				return err
			}
			profile = claimed
			return nil
		}

		profile = &models.Profile{
			ID:        uuid.New(),
			UserID:    &user.ID,
			FirstName: req.FirstName,
			LastName:  req.LastName,
		}
		return saveProfile(tx, profile, NoLink())
	})
	if err != nil {
		return nil, err
	}

	return s.generateTokenPair(&user, profile)
}

// resolveClaim applies the account-creation claim rules, in order: exact
// name match (code mandatory), explicit profile id (code mandatory), code
// only (owner must be unclaimed), else no claim.
func (s *AuthService) resolveClaim(tx *gorm.DB, req *dto.RegisterRequest) (*models.Profile, error) {
	code := ""
	if req.VerificationCode != nil {
		code = strconv.Itoa(*req.VerificationCode)
	}

	var byName models.Profile
	err := tx.Where("first_name = ? AND last_name = ?", req.FirstName, req.LastName).First(&byName).Error
	if err == nil {
		if byName.UserID != nil {
			return nil, ErrAlreadyClaimed
		}
		match, err := verifyCodeWithMetadata(tx, &byName, code)
		if err != nil {
			return nil, err
		}
		if !match.Matched {
			return nil, ErrVerificationCode
		}
		if req.ProfileID != nil && *req.ProfileID != byName.ID {
			return nil, ErrNameInUse
		}
		return &byName, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up profile by name: %w", err)
	}

	if req.ProfileID != nil {
		var byID models.Profile
		if err := tx.First(&byID, "id = ?", *req.ProfileID).Error; err != nil {
			return nil, ErrProfileNotFound
		}
		if byID.UserID != nil {
			return nil, ErrAlreadyClaimed
		}
		match, err := verifyCodeWithMetadata(tx, &byID, code)
		if err != nil {
			return nil, err
		}
		if !match.Matched {
			return nil, ErrVerificationCode
		}
		return &byID, nil
	}

	if req.VerificationCode != nil {
		var byCode models.Profile
		if err := tx.First(&byCode, "verification_code = ?", *req.VerificationCode).Error; err != nil {
			return nil, ErrProfileNotFound
		}
		if byCode.UserID != nil {
			return nil, ErrAlreadyClaimed
		}
		return &byCode, nil
	}

	return nil, nil
}

// Login authenticates by username (case-insensitive) and password.
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	var user models.User
	if err := s.db.Where("LOWER(username) = LOWER(?)", req.Username).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	profile, err := s.profiles.GetByUser(user.ID)
	if err != nil {
		return nil, err
	}
	return s.generateTokenPair(&user, profile)
}

// Refresh rotates a refresh token and issues a new pair.
func (s *AuthService) Refresh(req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	tokenHash := hashToken(req.RefreshToken)

	var stored models.RefreshToken
	if err := s.db.Where("token_hash = ? AND revoked = false", tokenHash).First(&stored).Error; err != nil {
		return nil, ErrInvalidToken
	}
	if time.Now().After(stored.ExpiresAt) {
		s.db.Model(&stored).Update("revoked", true)
		return nil, ErrInvalidToken
	}
	s.db.Model(&stored).Update("revoked", true)

	var user models.User
	if err := s.db.First(&user, "id = ?", stored.UserID).Error; err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}
	profile, err := s.profiles.GetByUser(user.ID)
	if err != nil {
		return nil, err
	}
	return s.generateTokenPair(&user, profile)
}

func (s *AuthService) Logout(req *dto.LogoutRequest) error {
	tokenHash := hashToken(req.RefreshToken)
	return s.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error
}

// UpdateAccount renames the account and propagates the new names onto the
// linked Profile (account to profile, one direction).
func (s *AuthService) UpdateAccount(userID uuid.UUID, req *dto.UpdateAccountRequest) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}
	if req.FirstName == "" || req.LastName == "" {
		return nil, ErrNameRequired
	}
	user.FirstName = req.FirstName
	user.LastName = req.LastName
	if err := s.db.Save(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if err := s.profiles.UpdateNamesFromUser(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) generateTokenPair(user *models.User, profile *models.Profile) (*dto.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(user, profile)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: dto.UserResponse{
			ID:        user.ID,
			ProfileID: profile.ID,
			Username:  user.Username,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Gabbai:    user.Role == models.RoleGabbai,
		},
	}, nil
}

func (s *AuthService) generateAccessToken(user *models.User, profile *models.Profile) (string, error) {
	claims := jwt.MapClaims{
		"sub":        user.ID.String(),
		"username":   user.Username,
		"profile_id": profile.ID.String(),
		"role":       user.Role,
		"iat":        time.Now().Unix(),
		"exp":        time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(user *models.User) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)
	record := models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(rawToken),
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}
	return rawToken, nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
