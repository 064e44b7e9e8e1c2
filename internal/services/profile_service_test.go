package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/itamarben/shul-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRequiresName(t *testing.T) {
	db := newTestDB(t)
	svc := NewProfileService(db)

	err := svc.Create(&models.Profile{FirstName: "David"}, NoLink())
	assert.ErrorIs(t, err, ErrNameRequired)

	// A Hebrew full name alone is enough for metadata-only relatives.
	err = svc.Create(&models.Profile{FullName: "דוד בן ישי"}, NoLink())
	assert.NoError(t, err)
}

func TestCreateGeneratesVerificationCode(t *testing.T) {
	db := newTestDB(t)
	svc := NewProfileService(db)

	p := models.Profile{FirstName: "David", LastName: "Levi"}
	require.NoError(t, svc.Create(&p, NoLink()))

	require.NotNil(t, p.VerificationCode)
	assert.GreaterOrEqual(t, *p.VerificationCode, 100000)
	assert.LessOrEqual(t, *p.VerificationCode, 999999)

	stored, err := svc.Get(p.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.VerificationCode)
	assert.Equal(t, *p.VerificationCode, *stored.VerificationCode)
}

func TestSaveClearsCodeOnceClaimed(t *testing.T) {
	db := newTestDB(t)
	svc := NewProfileService(db)

	p := models.Profile{FirstName: "David", LastName: "Levi"}
	require.NoError(t, svc.Create(&p, NoLink()))
	require.NotNil(t, p.VerificationCode)

	user := models.User{ID: uuid.New(), Username: "David_Levi", FirstName: "David", LastName: "Levi", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	p.UserID = &user.ID
	require.NoError(t, svc.Save(&p))

	stored, err := svc.Get(p.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.VerificationCode)
	require.NotNil(t, stored.UserID)
	assert.Equal(t, user.ID, *stored.UserID)
}

func TestTitleDefaultsToYisrael(t *testing.T) {
	db := newTestDB(t)
	svc := NewProfileService(db)

	p := models.Profile{FirstName: "David", LastName: "Levi"}
	require.NoError(t, svc.Create(&p, NoLink()))
	assert.Equal(t, models.TitleYisrael, p.Title)
}

func TestRoleDerivation(t *testing.T) {
	db := newTestDB(t)
	profiles := NewProfileService(db)

	user := models.User{ID: uuid.New(), Username: "Reuven_Katz", FirstName: "Reuven", LastName: "Katz", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	parent := models.Profile{FirstName: "Reuven", LastName: "Katz", UserID: &user.ID, Gender: models.GenderMale}
	require.NoError(t, profiles.Create(&parent, NoLink()))

	child := models.Profile{FirstName: "Yosef", LastName: "Katz"}
	require.NoError(t, profiles.Create(&child, ChildOf(&parent)))

	grandfather := models.Profile{FullName: "יעקב", Gender: models.GenderMale}
	require.NoError(t, profiles.Create(&grandfather, ParentOf(&parent)))

	role, err := profiles.Role(&parent)
	require.NoError(t, err)
	assert.Equal(t, models.RoleIndependent, role)

	role, err = profiles.Role(&child)
	require.NoError(t, err)
	assert.Equal(t, models.RoleControlled, role)

	role, err = profiles.Role(&grandfather)
	require.NoError(t, err)
	assert.Equal(t, models.RoleMeta, role)
}

func TestSpouseSymmetry(t *testing.T) {
	db := newTestDB(t)
	profiles := NewProfileService(db)

	a := models.Profile{FirstName: "Reuven", LastName: "Katz", Gender: models.GenderMale}
	require.NoError(t, profiles.Create(&a, NoLink()))

	b := models.Profile{FirstName: "Rivka", LastName: "Katz", Gender: models.GenderFemale}
	require.NoError(t, profiles.Create(&b, SpouseOf(&a)))

	require.NotNil(t, a.DefaultFamilyID)
	require.NotNil(t, b.DefaultFamilyID)
	assert.Equal(t, *a.DefaultFamilyID, *b.DefaultFamilyID)

	spouseOfA, err := profiles.Spouse(&a)
	require.NoError(t, err)
	require.NotNil(t, spouseOfA)
	assert.Equal(t, b.ID, spouseOfA.ID)

	spouseOfB, err := profiles.Spouse(&b)
	require.NoError(t, err)
	require.NotNil(t, spouseOfB)
	assert.Equal(t, a.ID, spouseOfB.ID)
}

func TestParentsAndChildren(t *testing.T) {
	db := newTestDB(t)
	profiles := NewProfileService(db)

	father := models.Profile{FirstName: "Reuven", LastName: "Katz", Gender: models.GenderMale}
	require.NoError(t, profiles.Create(&father, NoLink()))
	mother := models.Profile{FirstName: "Rivka", LastName: "Katz", Gender: models.GenderFemale}
	require.NoError(t, profiles.Create(&mother, SpouseOf(&father)))

	child := models.Profile{FirstName: "Yosef", LastName: "Katz"}
	require.NoError(t, profiles.Create(&child, ChildOf(&father)))

	parents, err := profiles.Parents(&child)
	require.NoError(t, err)
	assert.Len(t, parents, 2)

	gotFather, err := profiles.Father(&child)
	require.NoError(t, err)
	require.NotNil(t, gotFather)
	assert.Equal(t, father.ID, gotFather.ID)

	gotMother, err := profiles.Mother(&child)
	require.NoError(t, err)
	require.NotNil(t, gotMother)
	assert.Equal(t, mother.ID, gotMother.ID)

	children, err := profiles.Children(&mother)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, child.ID, children[0].ID)
}

func TestCreateParentJoinsExistingHousehold(t *testing.T) {
	db := newTestDB(t)
	profiles := NewProfileService(db)

	first := models.Profile{FirstName: "Reuven", LastName: "Katz", Gender: models.GenderMale}
	require.NoError(t, profiles.Create(&first, NoLink()))
	child := models.Profile{FirstName: "Yosef", LastName: "Katz"}
	require.NoError(t, profiles.Create(&child, ChildOf(&first)))

	second := models.Profile{FirstName: "Rivka", LastName: "Katz", Gender: models.GenderFemale}
	require.NoError(t, profiles.Create(&second, ParentOf(&child)))

	require.NotNil(t, second.DefaultFamilyID)
	assert.Equal(t, *first.DefaultFamilyID, *second.DefaultFamilyID)

	parents, err := profiles.Parents(&child)
	require.NoError(t, err)
	assert.Len(t, parents, 2)

	spouse, err := profiles.Spouse(&first)
	require.NoError(t, err)
	require.NotNil(t, spouse)
	assert.Equal(t, second.ID, spouse.ID)
}

func TestKiddushDutyIdempotent(t *testing.T) {
	db := newTestDB(t)
	profiles := NewProfileService(db)

	p := models.Profile{FirstName: "Reuven", LastName: "Katz", HeadOfHousehold: true}
	require.NoError(t, profiles.Create(&p, NoLink()))
	require.NoError(t, profiles.Save(&p))
	require.NoError(t, profiles.Save(&p))

	var count int64
	require.NoError(t, db.Table("profile_duties").
		Where("profile_id = ? AND duty_id = ?", p.ID, models.KiddushDutyID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpdateNamesFromUser(t *testing.T) {
	db := newTestDB(t)
	profiles := NewProfileService(db)

	user := models.User{ID: uuid.New(), Username: "Reuven_Katz", FirstName: "Reuven", LastName: "Katz", Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	p := models.Profile{FirstName: "Reuven", LastName: "Katz", UserID: &user.ID}
	require.NoError(t, profiles.Create(&p, NoLink()))

	user.FirstName = "Ruben"
	require.NoError(t, profiles.UpdateNamesFromUser(&user))

	stored, err := profiles.Get(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ruben", stored.FirstName)
	assert.Equal(t, "Katz", stored.LastName)
}
