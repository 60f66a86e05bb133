package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/opentales/opentales-backend/internal/dto"
	"github.com/opentales/opentales-backend/internal/middleware"
	"github.com/opentales/opentales-backend/internal/services"
)

type CommentHandler struct {
	commentService *services.CommentService
}

func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func (h *CommentHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.CreateCommentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	comment, err := h.commentService.Create(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPostNotFound),
			errors.Is(err, services.ErrParentCommentNotFound):
			return fail(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrNestedReply):
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
		return fail(c, fiber.StatusInternalServerError, "Failed to create comment")
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (h *CommentHandler) ListByPost(c *fiber.Ctx) error {
	viewerID, _ := middleware.UserID(c)
	postID, err := uuid.Parse(c.Params("postId"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid post ID")
	}

	comments, err := h.commentService.ListByPost(viewerID, postID)
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			return fail(c, fiber.StatusNotFound, err.Error())
		}
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch comments")
	}
	return c.JSON(comments)
}

func (h *CommentHandler) Update(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	commentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid comment ID")
	}

	var req dto.UpdateCommentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	comment, err := h.commentService.Update(userID, commentID, &req)
	if err != nil {
		if errors.Is(err, services.ErrCommentNotFound) {
			return fail(c, fiber.StatusNotFound, err.Error())
		}
		if errors.Is(err, services.ErrNotCommentAuthor) {
			return fail(c, fiber.StatusForbidden, err.Error())
		}
		return fail(c, fiber.StatusInternalServerError, "Failed to update comment")
	}
	return c.JSON(comment)
}

func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	commentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid comment ID")
	}

	if err := h.commentService.Delete(userID, commentID); err != nil {
		if errors.Is(err, services.ErrCommentNotFound) {
			return fail(c, fiber.StatusNotFound, err.Error())
		}
		if errors.Is(err, services.ErrNotCommentAuthor) {
			return fail(c, fiber.StatusForbidden, err.Error())
		}
		return fail(c, fiber.StatusInternalServerError, "Failed to delete comment")
	}

	return c.JSON(fiber.Map{"message": "Comment deleted successfully"})
}

func (h *CommentHandler) ToggleLike(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	commentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid comment ID")
	}

	resp, err := h.commentService.ToggleLike(userID, commentID)
	if err != nil {
		if errors.Is(err, services.ErrCommentNotFound) {
			return fail(c, fiber.StatusNotFound, err.Error())
		}
		return fail(c, fiber.StatusInternalServerError, "Failed to toggle like")
	}
	return c.JSON(resp)
}
