package middleware

import (
	"github.com/Hapidzfadli/arsip-desa/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func RequireLevel(allowedLevels ...models.Level) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := GetJWTClaims(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
		}
		for _, level := range allowedLevels {
			if claims.Level == level {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}
}

func RequireAdmin() fiber.Handler {
	return RequireLevel(models.LevelAdmin)
}

// GetUserFromContext membangun identitas dari klaim token. Hanya id, level,
// email, dan username yang terisi; data profil lain diambil dari database
// oleh service yang membutuhkannya.
func GetUserFromContext(c *fiber.Ctx) (*models.User, error) {
	claims, ok := GetJWTClaims(c)
	if !ok {
		return nil, fiber.ErrUnauthorized
	}
	return &models.User{
		Model:    gorm.Model{ID: claims.UserID},
		Level:    claims.Level,
		Email:    claims.Email,
		Username: claims.Username,
	}, nil
}
