package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/opentales/opentales-backend/internal/dto"
	"github.com/opentales/opentales-backend/internal/models"
	"gorm.io/gorm"
)

// BanGate blocks content-mutating requests from banned accounts. It runs
// after JWTProtected and checks, in order: account exists, account active,
// no temporary ban in force. The same table is evaluated at login so a
// banned account cannot obtain a fresh token to slip past this gate.
func BanGate(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := UserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		}

		if user.PermanentlyBanned() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Your account has been permanently banned.",
			})
		}

		if user.TemporarilyBanned(time.Now()) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":       true,
				"message":     "Your account is temporarily banned until " + user.BannedUntil.Format("2006-01-02"),
				"bannedUntil": user.BannedUntil,
			})
		}

		return c.Next()
	}
}
