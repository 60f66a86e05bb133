package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/opentales/opentales-backend/internal/database"
	"github.com/opentales/opentales-backend/internal/dto"
)

func Health(c *fiber.Ctx) error {
	dbStatus := "ok"
	if err := database.Ping(); err != nil {
		dbStatus = "unreachable"
	}

	status := fiber.StatusOK
	if dbStatus != "ok" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
	})
}
