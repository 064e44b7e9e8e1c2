package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/itamarben/shul-backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database migrated with the full
// schema and the seeded Kiddush duty.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Profile{},
		&models.Family{},
		&models.Duty{},
		&models.Shabbat{},
		&models.Roster{},
		&models.Assignment{},
		&models.Parasha{},
		&models.Segment{},
		&models.ShulSetting{},
		&models.SystemLog{},
	))

	kiddush := models.Duty{
		ID:                     models.KiddushDutyID,
		Category:               "household",
		Name:                   "Kiddush",
		OrderID:                19,
		NotApplicableForRoster: true,
	}
	require.NoError(t, db.Create(&kiddush).Error)
	return db
}

// setCode overrides the randomly generated verification code so tests can
// present a known value.
func setCode(t *testing.T, db *gorm.DB, p *models.Profile, code int) {
	t.Helper()
	require.NoError(t, db.Model(p).Update("verification_code", code).Error)
	p.VerificationCode = &code
}
