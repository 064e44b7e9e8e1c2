package services

import (
	"testing"

	"github.com/itamarben/shul-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyCodeOwnCode(t *testing.T) {
	db := newTestDB(t)
	profiles := NewProfileService(db)

	a := models.Profile{FirstName: "Reuven", LastName: "Katz"}
	require.NoError(t, profiles.Create(&a, NoLink()))
	b := models.Profile{FirstName: "Rivka", LastName: "Katz"}
	require.NoError(t, profiles.Create(&b, SpouseOf(&a)))
	setCode(t, db, &a, 900000)

	match, err := profiles.VerifyCodeWithMetadata(&a, "900000")
	require.NoError(t, err)
	assert.True(t, match.Matched)
	assert.Equal(t, CodeRelationSelf, match.CodeRelation)
	assert.Equal(t, RelationSpouse, match.FamilyRelation)
}

func TestVerifyCodeParentCodeClaimsChild(t *testing.T) {
	db := newTestDB(t)
	profiles := NewProfileService(db)

	parent := models.Profile{FirstName: "Reuven", LastName: "Katz"}
	require.NoError(t, profiles.Create(&parent, NoLink()))
	child := models.Profile{FirstName: "Yosef", LastName: "Katz"}
	require.NoError(t, profiles.Create(&child, ChildOf(&parent)))
	setCode(t, db, &parent, 900000)
	setCode(t, db, &child, 417000)

	match, err := profiles.VerifyCodeWithMetadata(&child, "900000")
	require.NoError(t, err)
	assert.True(t, match.Matched)
	assert.Equal(t, CodeRelationParent, match.CodeRelation)
	assert.Equal(t, RelationChild, match.FamilyRelation)

	match, err = profiles.VerifyCodeWithMetadata(&child, "417000")
	require.NoError(t, err)
	assert.True(t, match.Matched)
	assert.Equal(t, CodeRelationSelf, match.CodeRelation)

	match, err = profiles.VerifyCodeWithMetadata(&child, "111111")
	require.NoError(t, err)
	assert.False(t, match.Matched)
	assert.Empty(t, match.CodeRelation)
}

func TestVerifyCodeNoFamily(t *testing.T) {
	db := newTestDB(t)
	profiles := NewProfileService(db)

	p := models.Profile{FirstName: "Shimon", LastName: "Stern"}
	require.NoError(t, profiles.Create(&p, NoLink()))
	setCode(t, db, &p, 555555)

	match, err := profiles.VerifyCodeWithMetadata(&p, "555555")
	require.NoError(t, err)
	assert.False(t, match.Matched)
	assert.Nil(t, match.Family)
}
