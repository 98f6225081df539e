package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/luci582/UnlockED-sub000/backend/config"
	"github.com/luci582/UnlockED-sub000/backend/models"
	"github.com/luci582/UnlockED-sub000/backend/utils"
	"gorm.io/gorm"
)

func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := utils.ExtractUserIDFromToken(c, cfg)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}
		c.Locals("user_id", userID)
		return c.Next()
	}
}

// RequireRole пропускает только пользователей с одной из указанных ролей.
// Роль проверяется по записи в базе, а не по claims токена — роль могла
// измениться после выдачи токена.
func RequireRole(db *gorm.DB, cfg *config.Config, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := utils.ExtractUserIDFromToken(c, cfg)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		for _, role := range roles {
			if user.Role == role {
				c.Locals("user_id", userID)
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Forbidden - insufficient role",
		})
	}
}

func AdminMiddleware(db *gorm.DB, cfg *config.Config) fiber.Handler {
	return RequireRole(db, cfg, models.RoleAdmin)
}
