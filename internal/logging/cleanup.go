package logging

import (
	"log/slog"
	"time"

	"github.com/itamarben/shul-backend/internal/models"
	"gorm.io/gorm"
)

const logRetention = 30 * 24 * time.Hour

// StartCleanup prunes system_logs past the retention window, once a day and
// once at startup.
func StartCleanup(db *gorm.DB, done chan struct{}) {
	prune := func() {
		cutoff := time.Now().Add(-logRetention)
		result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
		if result.Error != nil {
			slog.Error("log cleanup failed", "error", result.Error)
		} else if result.RowsAffected > 0 {
			slog.Info("log cleanup completed", "deleted", result.RowsAffected)
		}
	}

	go func() {
		prune()
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				prune()
			case <-done:
				return
			}
		}
	}()
}
