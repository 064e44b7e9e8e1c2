package services

import (
	"testing"

	"github.com/itamarben/shul-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeAliyaName(t *testing.T) {
	tests := []struct {
		name       string
		fullName   string
		male       bool
		fatherName string
		title      string
		want       string
	}{
		{
			name:     "levi without father",
			fullName: "שם מלא",
			male:     true,
			title:    models.TitleLevi,
			want:     "שם מלא הלוי",
		},
		{
			name:       "levi son of levi",
			fullName:   "שם מלא",
			male:       true,
			fatherName: "שמי אבא",
			title:      models.TitleLevi,
			want:       "שם מלא בן שמי אבא הלוי",
		},
		{
			name:       "cohen daughter",
			fullName:   "רחל",
			male:       false,
			fatherName: "אהרן",
			title:      models.TitleCohen,
			want:       "רחל בת אהרן הכהן",
		},
		{
			name:       "yisrael gets no suffix",
			fullName:   "דוד",
			male:       true,
			fatherName: "ישי",
			title:      models.TitleYisrael,
			want:       "דוד בן ישי",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := composeAliyaName(tt.fullName, tt.male, tt.fatherName, tt.title)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFullAliyaNameEmptyWithoutFullName(t *testing.T) {
	db := newTestDB(t)
	profiles := NewProfileService(db)

	p := models.Profile{FirstName: "David", LastName: "Levi", Title: models.TitleLevi}
	require.NoError(t, profiles.Create(&p, NoLink()))

	name, err := profiles.FullAliyaName(&p)
	require.NoError(t, err)
	assert.Empty(t, name)
}

func TestFullAliyaNamePrefersLinkedFather(t *testing.T) {
	db := newTestDB(t)
	profiles := NewProfileService(db)

	father := models.Profile{
		FirstName: "Reuven", LastName: "Katz",
		FullName: "ראובן", Gender: models.GenderMale,
	}
	require.NoError(t, profiles.Create(&father, NoLink()))

	son := models.Profile{
		FirstName: "Yosef", LastName: "Katz",
		FullName: "יוסף", Gender: models.GenderMale,
		FatherFullName: "ignored when a father is linked",
		Title:          models.TitleLevi,
	}
	require.NoError(t, profiles.Create(&son, ChildOf(&father)))

	name, err := profiles.FullAliyaName(&son)
	require.NoError(t, err)
	assert.Equal(t, "יוסף בן ראובן הלוי", name)
}

func TestFullAliyaNameFallsBackToFreeText(t *testing.T) {
	db := newTestDB(t)
	profiles := NewProfileService(db)

	p := models.Profile{
		FirstName: "David", LastName: "Levi",
		FullName: "דוד", Gender: models.GenderMale,
		FatherFullName: "ישי",
	}
	require.NoError(t, profiles.Create(&p, NoLink()))

	name, err := profiles.FullAliyaName(&p)
	require.NoError(t, err)
	assert.Equal(t, "דוד בן ישי", name)
}

func TestDisplayNameFallbacks(t *testing.T) {
	withOverride := models.Profile{DisplayNameOverride: "Reuven_Katz", FirstName: "Reuven", LastName: "Katz"}
	assert.Equal(t, "Reuven_Katz", withOverride.DisplayNameWithFamily())

	plain := models.Profile{FirstName: "Reuven", LastName: "Katz"}
	assert.Equal(t, "Reuven", plain.DisplayName())
	assert.Equal(t, "Reuven Katz", plain.DisplayNameWithFamily())

	metaOnly := models.Profile{FullName: "יעקב"}
	assert.Equal(t, "יעקב", metaOnly.DisplayName())
}
