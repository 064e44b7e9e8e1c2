package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/itamarben/shul-backend/internal/config"
	"github.com/itamarben/shul-backend/internal/dto"
	"github.com/itamarben/shul-backend/internal/models"
	"gorm.io/gorm"
)

// GabbaiRequired gates admin routes. The gabbai bypasses profile-level
// authorization entirely, so this check happens at the transport boundary:
// 1. Config-based gabbai usernames or token
// 2. DB-based user Role field
func GabbaiRequired(db *gorm.DB, cfg *config.Config) fiber.Handler {
	gabbaiUsernames := parseCSV(cfg.GabbaiUsernames)

	return func(c *fiber.Ctx) error {
		if cfg.GabbaiToken != "" {
			if c.Get("X-Gabbai-Token") == cfg.GabbaiToken {
				return c.Next()
			}
		}

		token, ok := c.Locals("user").(*jwt.Token)
		if !ok || token == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid claims",
			})
		}

		username, _ := claims["username"].(string)
		sub, _ := claims["sub"].(string)

		if contains(gabbaiUsernames, username) {
			return c.Next()
		}

		if sub != "" {
			userID, err := uuid.Parse(sub)
			if err == nil {
				var user models.User
				if err := db.First(&user, "id = ?", userID).Error; err == nil {
					if user.Role == models.RoleGabbai {
						return c.Next()
					}
				}
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Gabbai access required",
		})
	}
}

// IsGabbai reports whether the request carries gabbai privileges, without
// rejecting it.
func IsGabbai(c *fiber.Ctx, db *gorm.DB, cfg *config.Config) bool {
	if cfg.GabbaiToken != "" && c.Get("X-Gabbai-Token") == cfg.GabbaiToken {
		return true
	}
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return false
	}
	if username, _ := claims["username"].(string); username != "" {
		if contains(parseCSV(cfg.GabbaiUsernames), username) {
			return true
		}
	}
	if role, _ := claims["role"].(string); role == models.RoleGabbai {
		return true
	}
	return false
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}
