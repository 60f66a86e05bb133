package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/opentales/opentales-backend/internal/dto"
	"github.com/opentales/opentales-backend/internal/models"
	"gorm.io/gorm"
)

// RequireRoles allows the request through only when the caller's role is in
// the allow-list. The role claim is checked first; when a token predates a
// role change the stored account is consulted.
func RequireRoles(db *gorm.DB, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := UserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		role := Role(c)
		if role == "" {
			var user models.User
			if err := db.First(&user, "id = ?", userID).Error; err == nil {
				role = user.Role
			}
		}

		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}
}
