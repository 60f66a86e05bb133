package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/opentales/opentales-backend/internal/dto"
	"github.com/opentales/opentales-backend/internal/middleware"
	"github.com/opentales/opentales-backend/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	resp, err := h.authService.Register(&req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) || errors.Is(err, services.ErrUsernameTaken) {
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
		return fail(c, fiber.StatusInternalServerError, "Failed to register")
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// RegisterAdmin creates an administrator account. The route is gated on the
// admin role.
func (h *AuthHandler) RegisterAdmin(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	resp, err := h.authService.RegisterAdmin(&req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) || errors.Is(err, services.ErrUsernameTaken) {
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
		return fail(c, fiber.StatusInternalServerError, "Failed to register")
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		var banErr *services.BanError
		if errors.As(err, &banErr) {
			return banned(c, banErr)
		}
		if errors.Is(err, services.ErrInvalidCredentials) {
			return fail(c, fiber.StatusUnauthorized, err.Error())
		}
		return fail(c, fiber.StatusInternalServerError, "Failed to login")
	}

	return c.JSON(resp)
}

func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	user, err := h.authService.Profile(userID)
	if err != nil {
		return fail(c, fiber.StatusNotFound, "User not found")
	}

	return c.JSON(user)
}

func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.UpdateProfileRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, err := h.authService.UpdateProfile(userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
		if errors.Is(err, services.ErrUserNotFound) {
			return fail(c, fiber.StatusNotFound, err.Error())
		}
		return fail(c, fiber.StatusInternalServerError, "Failed to update profile")
	}

	return c.JSON(user)
}

func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.ChangePasswordRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	if err := h.authService.ChangePassword(userID, &req); err != nil {
		if errors.Is(err, services.ErrWrongPassword) {
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
		if errors.Is(err, services.ErrUserNotFound) {
			return fail(c, fiber.StatusNotFound, err.Error())
		}
		return fail(c, fiber.StatusInternalServerError, "Failed to change password")
	}

	return c.JSON(fiber.Map{"message": "Password changed successfully"})
}

// Logout holds no server-side session state; the token simply ages out.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if _, err := middleware.UserID(c); err != nil {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}
