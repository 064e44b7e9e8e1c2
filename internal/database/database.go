package database

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/itamarben/shul-backend/internal/config"
	"github.com/itamarben/shul-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Connect(cfg *config.Config) error {
	var err error
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	slog.Info("database connected")
	return nil
}

// Migrate runs AutoMigrate for all models.
func Migrate() error {
	return DB.AutoMigrate(
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
	)
}

// SeedDuties makes sure the well-known Kiddush duty exists.
func SeedDuties() error {
	duty := models.Duty{
		ID:                     models.KiddushDutyID,
		Category:               "household",
		Name:                   "Kiddush",
		OrderID:                19,
		NotApplicableForRoster: true,
	}
	return DB.Where("id = ?", models.KiddushDutyID).FirstOrCreate(&duty).Error
}

func Ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
