package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/opentales/opentales-backend/internal/dto"
	"github.com/opentales/opentales-backend/internal/services"
	"github.com/opentales/opentales-backend/internal/validation"
)

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: message})
}

// parseBody decodes and validates a JSON request body in one step.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validation.Struct(out); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	return nil
}

func pagination(c *fiber.Ctx) (int, int) {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	return page, limit
}

// privateGroupDenied renders the redacted summary a private group still
// exposes to outsiders.
func privateGroupDenied(c *fiber.Ctx, e *services.PrivateGroupError) error {
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
		"message":      e.Error(),
		"isPrivate":    true,
		"name":         e.Name,
		"description":  e.Description,
		"category":     e.Category,
		"membersCount": e.MembersCount,
	})
}

// banned renders the ban gate rejection, including the expiry for temporary
// bans.
func banned(c *fiber.Ctx, e *services.BanError) error {
	body := fiber.Map{
		"error":   true,
		"message": e.Error(),
	}
	if !e.Permanent {
		body["bannedUntil"] = e.Until
	}
	return c.Status(fiber.StatusForbidden).JSON(body)
}
