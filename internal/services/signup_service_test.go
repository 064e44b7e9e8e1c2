package services

import (
	"testing"

	"github.com/itamarben/shul-backend/internal/dto"
	"github.com/itamarben/shul-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckSignupUnknownName(t *testing.T) {
	db := newTestDB(t)
	profiles := NewProfileService(db)

	resp, err := profiles.CheckSignup("Nobody", "Here", "")
	require.NoError(t, err)
	assert.False(t, resp.Exists)
}

func TestCheckSignupClaimedProfile(t *testing.T) {
	db := newTestDB(t)
	auth, _ := newAuthService(db)
	profiles := NewProfileService(db)

	_, err := auth.Register(&dto.RegisterRequest{
		FirstName: "Reuven", LastName: "Katz", Password: "secret-password",
	})
	require.NoError(t, err)

	resp, err := profiles.CheckSignup("reuven", "katz", "")
	require.NoError(t, err)
	assert.True(t, resp.Exists)
	assert.True(t, resp.Verified)
}

func TestCheckSignupChildWithParentCode(t *testing.T) {
	db := newTestDB(t)
	profiles := NewProfileService(db)

	parent := models.Profile{FirstName: "Reuven", LastName: "Katz"}
	require.NoError(t, profiles.Create(&parent, NoLink()))
	child := models.Profile{FirstName: "Yosef", LastName: "Katz"}
	require.NoError(t, profiles.Create(&child, ChildOf(&parent)))
	setCode(t, db, &parent, 900000)

	resp, err := profiles.CheckSignup("Yosef", "Katz", "900000")
	require.NoError(t, err)
	assert.True(t, resp.Exists)
	assert.Equal(t, RelationChild, resp.Relation)
	require.NotNil(t, resp.VerificationCode)
	assert.True(t, *resp.VerificationCode)

	resp, err = profiles.CheckSignup("Yosef", "Katz", "111111")
	require.NoError(t, err)
	require.NotNil(t, resp.VerificationCode)
	assert.False(t, *resp.VerificationCode)
}

func TestCheckSignupFamilylessProfile(t *testing.T) {
	db := newTestDB(t)
	profiles := NewProfileService(db)

	p := models.Profile{FirstName: "Shimon", LastName: "Stern"}
	require.NoError(t, profiles.Create(&p, NoLink()))

	_, err := profiles.CheckSignup("Shimon", "Stern", "")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestCheckCode(t *testing.T) {
	db := newTestDB(t)
	profiles := NewProfileService(db)

	p := models.Profile{FirstName: "Rivka", LastName: "Katz", FullName: "רבקה"}
	require.NoError(t, profiles.Create(&p, NoLink()))
	setCode(t, db, &p, 650000)

	resp, err := profiles.CheckCode("650000")
	require.NoError(t, err)
	assert.True(t, resp.Exists)
	assert.True(t, resp.VerificationCode)
	assert.Equal(t, "Rivka", resp.FirstName)
	assert.Equal(t, "רבקה", resp.FullName)

	resp, err = profiles.CheckCode("000001")
	require.NoError(t, err)
	assert.False(t, resp.Exists)

	resp, err = profiles.CheckCode("not-a-number")
	require.NoError(t, err)
	assert.False(t, resp.Exists)
}
