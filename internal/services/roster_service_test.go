package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/itamarben/shul-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRoster(t *testing.T, rosters *RosterService, torah *TorahService, date time.Time) *models.Roster {
	t.Helper()
	parasha, err := torah.CreateParasha("בראשית")
	require.NoError(t, err)
	shabbat, err := rosters.CreateShabbat(date, parasha.ID)
	require.NoError(t, err)

	duty := models.Duty{ID: uuid.New(), Category: "tefila", Name: "Shacharit", OrderID: 1}
	require.NoError(t, rosters.db.Create(&duty).Error)
	roster, err := rosters.CreateRoster(shabbat.ID, duty.ID)
	require.NoError(t, err)
	return roster
}

func TestAssignOncePerRoster(t *testing.T) {
	db := newTestDB(t)
	rosters := NewRosterService(db)
	torah := NewTorahService(db)
	profiles := NewProfileService(db)

	roster := newTestRoster(t, rosters, torah, time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC))
	p := models.Profile{FirstName: "Reuven", LastName: "Katz"}
	require.NoError(t, profiles.Create(&p, NoLink()))

	a, err := rosters.Assign(roster.ID, p.ID, "")
	require.NoError(t, err)
	assert.Equal(t, models.AssignmentOffered, a.Status)
	assert.Equal(t, models.OfferRegular, a.OfferType)

	_, err = rosters.Assign(roster.ID, p.ID, models.OfferStandin)
	assert.ErrorIs(t, err, ErrAlreadyAssigned)

	_, err = rosters.Assign(roster.ID, uuid.New(), "bogus")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestSetStatusOwnershipRules(t *testing.T) {
	db := newTestDB(t)
	rosters := NewRosterService(db)
	torah := NewTorahService(db)
	profiles := NewProfileService(db)

	roster := newTestRoster(t, rosters, torah, time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC))
	owner := models.Profile{FirstName: "Reuven", LastName: "Katz"}
	require.NoError(t, profiles.Create(&owner, NoLink()))
	other := models.Profile{FirstName: "Shimon", LastName: "Stern"}
	require.NoError(t, profiles.Create(&other, NoLink()))

	a, err := rosters.Assign(roster.ID, owner.ID, "")
	require.NoError(t, err)

	// Someone else cannot answer the offer.
	_, err = rosters.SetStatus(a.ID, &other, models.AssignmentConfirmed, false)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	updated, err := rosters.SetStatus(a.ID, &owner, models.AssignmentConfirmed, false)
	require.NoError(t, err)
	assert.Equal(t, models.AssignmentConfirmed, updated.Status)

	// Cancelling is gabbai-only.
	_, err = rosters.SetStatus(a.ID, &owner, models.AssignmentCancelled, false)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	updated, err = rosters.SetStatus(a.ID, nil, models.AssignmentCancelled, true)
	require.NoError(t, err)
	assert.Equal(t, models.AssignmentCancelled, updated.Status)

	_, err = rosters.SetStatus(a.ID, &owner, "WEIRD", false)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestListShabbatotFrom(t *testing.T) {
	db := newTestDB(t)
	rosters := NewRosterService(db)
	torah := NewTorahService(db)

	parasha, err := torah.CreateParasha("נח")
	require.NoError(t, err)
	_, err = rosters.CreateShabbat(time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC), parasha.ID)
	require.NoError(t, err)
	_, err = rosters.CreateShabbat(time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC), parasha.ID)
	require.NoError(t, err)

	all, err := rosters.ListShabbatot(time.Time{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	upcoming, err := rosters.ListShabbatot(time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, 12, upcoming[0].Date.Day())
}

func TestCreateSegmentValidatesType(t *testing.T) {
	db := newTestDB(t)
	torah := NewTorahService(db)

	parasha, err := torah.CreateParasha("לך לך")
	require.NoError(t, err)

	seg, err := torah.CreateSegment(parasha.ID, models.SegmentRishon, "12:1", "12:13", 13)
	require.NoError(t, err)
	assert.Equal(t, models.SegmentRishon, seg.SegmentType)

	_, err = torah.CreateSegment(parasha.ID, 99, "12:1", "12:13", 13)
	assert.ErrorIs(t, err, ErrInvalidStatus)

	segments, err := torah.ListSegments(parasha.ID)
	require.NoError(t, err)
	assert.Len(t, segments, 1)
}
