package handlers

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/itamarben/shul-backend/internal/dto"
	"github.com/itamarben/shul-backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SettingsHandler struct {
	db *gorm.DB
}

func NewSettingsHandler(db *gorm.DB) *SettingsHandler {
	return &SettingsHandler{db: db}
}

// GetSettings returns every shul setting as a key/value map.
func (h *SettingsHandler) GetSettings(c *fiber.Ctx) error {
	var settings []models.ShulSetting
	if err := h.db.Find(&settings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch settings",
		})
	}

	result := make(map[string]interface{})
	for _, s := range settings {
		var value interface{}
		if err := json.Unmarshal(s.Value, &value); err == nil {
			result[s.Key] = value
		}
	}
	return c.JSON(result)
}

// SetSetting creates or updates a setting key (gabbai only).
func (h *SettingsHandler) SetSetting(c *fiber.Ctx) error {
	key := c.Params("key")
	var req dto.SettingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	raw, err := json.Marshal(req.Value)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Value is not serializable",
		})
	}

	var setting models.ShulSetting
	err = h.db.Where("key = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		setting = models.ShulSetting{Key: key, Value: datatypes.JSON(raw)}
		err = h.db.Create(&setting).Error
	} else if err == nil {
		setting.Value = datatypes.JSON(raw)
		err = h.db.Save(&setting).Error
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to store setting",
		})
	}
	return c.JSON(setting)
}

// DeleteSetting removes a setting key (gabbai only).
func (h *SettingsHandler) DeleteSetting(c *fiber.Ctx) error {
	key := c.Params("key")
	if err := h.db.Where("key = ?", key).Delete(&models.ShulSetting{}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete setting",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
