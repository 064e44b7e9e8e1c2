package services

import (
	"testing"

	"github.com/itamarben/shul-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetFamilyCreatesOnce(t *testing.T) {
	db := newTestDB(t)
	profiles := NewProfileService(db)
	families := NewFamilyService(db)

	p := models.Profile{FirstName: "Reuven", LastName: "Katz"}
	require.NoError(t, profiles.Create(&p, NoLink()))

	child := models.Profile{FirstName: "Yosef", LastName: "Katz"}
	require.NoError(t, profiles.Create(&child, NoLink()))

	require.NoError(t, families.SetFamily(&p, nil, &child))
	first := *p.DefaultFamilyID

	// Re-linking the same child touches nothing.
	require.NoError(t, families.SetFamily(&p, nil, &child))
	assert.Equal(t, first, *p.DefaultFamilyID)

	var familyCount int64
	require.NoError(t, db.Model(&models.Family{}).Count(&familyCount).Error)
	assert.Equal(t, int64(1), familyCount)

	var childRows int64
	require.NoError(t, db.Table("family_children").Where("profile_id = ?", child.ID).Count(&childRows).Error)
	assert.Equal(t, int64(1), childRows)
}

func TestSecondSpouseRejected(t *testing.T) {
	db := newTestDB(t)
	profiles := NewProfileService(db)
	families := NewFamilyService(db)

	a := models.Profile{FirstName: "Reuven", LastName: "Katz"}
	require.NoError(t, profiles.Create(&a, NoLink()))
	b := models.Profile{FirstName: "Rivka", LastName: "Katz"}
	require.NoError(t, profiles.Create(&b, SpouseOf(&a)))

	c := models.Profile{FirstName: "Leah", LastName: "Stern"}
	require.NoError(t, profiles.Create(&c, NoLink()))

	err := families.SetFamily(&a, &c, nil)
	assert.ErrorIs(t, err, ErrSpouseExists)

	// The current spouse can always be re-added.
	assert.NoError(t, families.SetFamily(&a, &b, nil))
}

func TestSecondChildFamilyRejected(t *testing.T) {
	db := newTestDB(t)
	profiles := NewProfileService(db)
	families := NewFamilyService(db)

	a := models.Profile{FirstName: "Reuven", LastName: "Katz"}
	require.NoError(t, profiles.Create(&a, NoLink()))
	child := models.Profile{FirstName: "Yosef", LastName: "Katz"}
	require.NoError(t, profiles.Create(&child, ChildOf(&a)))

	other := models.Profile{FirstName: "Shimon", LastName: "Stern"}
	require.NoError(t, profiles.Create(&other, NoLink()))

	err := families.SetFamily(&other, nil, &child)
	assert.ErrorIs(t, err, ErrAlreadyChildOfFamily)
}

func TestAssociateSpousePropagatesDefaultFamily(t *testing.T) {
	db := newTestDB(t)
	profiles := NewProfileService(db)
	families := NewFamilyService(db)

	a := models.Profile{FirstName: "Reuven", LastName: "Katz"}
	require.NoError(t, profiles.Create(&a, NoLink()))
	b := models.Profile{FirstName: "Rivka", LastName: "Katz"}
	require.NoError(t, profiles.Create(&b, NoLink()))

	require.NoError(t, families.AssociateSpouse(&a, &b))

	var stored models.Profile
	require.NoError(t, db.First(&stored, "id = ?", b.ID).Error)
	require.NotNil(t, stored.DefaultFamilyID)
	assert.Equal(t, *a.DefaultFamilyID, *stored.DefaultFamilyID)
}

func TestListForParent(t *testing.T) {
	db := newTestDB(t)
	profiles := NewProfileService(db)
	families := NewFamilyService(db)

	a := models.Profile{FirstName: "Reuven", LastName: "Katz"}
	require.NoError(t, profiles.Create(&a, NoLink()))
	child := models.Profile{FirstName: "Yosef", LastName: "Katz"}
	require.NoError(t, profiles.Create(&child, ChildOf(&a)))

	list, err := families.ListForParent(a.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Len(t, list[0].Children, 1)
}
