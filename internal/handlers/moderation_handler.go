package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/opentales/opentales-backend/internal/dto"
	"github.com/opentales/opentales-backend/internal/middleware"
	"github.com/opentales/opentales-backend/internal/services"
)

type ModerationHandler struct {
	moderationService *services.ModerationService
	postService       *services.PostService
}

func NewModerationHandler(moderationService *services.ModerationService, postService *services.PostService) *ModerationHandler {
	return &ModerationHandler{moderationService: moderationService, postService: postService}
}

// FileReport accepts an allegation from any authenticated member.
func (h *ModerationHandler) FileReport(c *fiber.Ctx) error {
	reporterID, err := middleware.UserID(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.CreateReportRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	report, err := h.moderationService.FileReport(reporterID, &req)
	if err != nil {
		if errors.Is(err, services.ErrTargetNotFound) {
			return fail(c, fiber.StatusNotFound, err.Error())
		}
		if errors.Is(err, services.ErrSelfReport) {
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
		return fail(c, fiber.StatusInternalServerError, "Failed to file report")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Report submitted successfully",
		"report":  report,
	})
}

func (h *ModerationHandler) ListReports(c *fiber.Ctx) error {
	status := c.Query("status", "")
	page, limit := pagination(c)

	resp, err := h.moderationService.ListReports(status, page, limit)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch reports")
	}
	return c.JSON(resp)
}

func (h *ModerationHandler) ResolveReport(c *fiber.Ctx) error {
	moderatorID, err := middleware.UserID(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid report ID")
	}

	var req dto.ResolveReportRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	report, err := h.moderationService.ResolveReport(moderatorID, reportID, &req)
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			return fail(c, fiber.StatusNotFound, err.Error())
		}
		if errors.Is(err, services.ErrAlreadyResolved) {
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
		return fail(c, fiber.StatusInternalServerError, "Failed to resolve report")
	}

	return c.JSON(fiber.Map{
		"message": "Report processed successfully",
		"report":  report,
	})
}

// ListPendingPosts is the editorial queue view.
func (h *ModerationHandler) ListPendingPosts(c *fiber.Ctx) error {
	page, limit := pagination(c)

	resp, err := h.moderationService.ListPendingPosts(h.postService, page, limit)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch pending posts")
	}
	return c.JSON(resp)
}

// DecidePost approves or rejects one pending post.
func (h *ModerationHandler) DecidePost(c *fiber.Ctx) error {
	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid post ID")
	}

	var req dto.DecidePostRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	post, err := h.moderationService.DecidePendingPost(postID, &req)
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			return fail(c, fiber.StatusNotFound, err.Error())
		}
		if errors.Is(err, services.ErrAlreadyDecided) {
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
		if errors.Is(err, services.ErrInvalidAction) {
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
		return fail(c, fiber.StatusInternalServerError, "Failed to decide post")
	}

	return c.JSON(fiber.Map{
		"message": "Post " + post.Status,
		"post":    post,
	})
}
