package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/opentales/opentales-backend/internal/dto"
	"github.com/opentales/opentales-backend/internal/middleware"
	"github.com/opentales/opentales-backend/internal/services"
)

type PostHandler struct {
	postService *services.PostService
}

func NewPostHandler(postService *services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

func (h *PostHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.CreatePostRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	post, err := h.postService.Create(userID, &req)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to create post")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Post submitted for review",
		"post":    post,
	})
}

func (h *PostHandler) List(c *fiber.Ctx) error {
	viewerID, _ := middleware.UserID(c)
	page, limit := pagination(c)

	resp, err := h.postService.List(viewerID, page, limit)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch posts")
	}
	return c.JSON(resp)
}

func (h *PostHandler) ListByCategory(c *fiber.Ctx) error {
	viewerID, _ := middleware.UserID(c)
	page, limit := pagination(c)

	resp, err := h.postService.ListByCategory(viewerID, c.Params("category"), page, limit)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch posts")
	}
	return c.JSON(resp)
}

func (h *PostHandler) ListByTag(c *fiber.Ctx) error {
	viewerID, _ := middleware.UserID(c)
	page, limit := pagination(c)

	resp, err := h.postService.ListByTag(viewerID, c.Params("tag"), page, limit)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch posts")
	}
	return c.JSON(resp)
}

func (h *PostHandler) ListByAuthor(c *fiber.Ctx) error {
	viewerID, _ := middleware.UserID(c)
	authorID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid user ID")
	}
	page, limit := pagination(c)

	resp, err := h.postService.ListByAuthor(viewerID, authorID, page, limit)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch posts")
	}
	return c.JSON(resp)
}

// ListMine returns the caller's own posts in every status.
func (h *PostHandler) ListMine(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	page, limit := pagination(c)

	resp, err := h.postService.ListMine(userID, page, limit)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch posts")
	}
	return c.JSON(resp)
}

func (h *PostHandler) Get(c *fiber.Ctx) error {
	viewerID, _ := middleware.UserID(c)
	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid post ID")
	}

	post, err := h.postService.Get(viewerID, postID)
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			return fail(c, fiber.StatusNotFound, err.Error())
		}
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch post")
	}
	return c.JSON(post)
}

func (h *PostHandler) Update(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid post ID")
	}

	var req dto.UpdatePostRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	post, err := h.postService.Update(userID, postID, &req)
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			return fail(c, fiber.StatusNotFound, err.Error())
		}
		if errors.Is(err, services.ErrNotPostAuthor) {
			return fail(c, fiber.StatusForbidden, err.Error())
		}
		return fail(c, fiber.StatusInternalServerError, "Failed to update post")
	}

	return c.JSON(fiber.Map{
		"message": "Post updated and resubmitted for review",
		"post":    post,
	})
}

func (h *PostHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid post ID")
	}

	if err := h.postService.Delete(userID, postID); err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			return fail(c, fiber.StatusNotFound, err.Error())
		}
		if errors.Is(err, services.ErrNotPostAuthor) {
			return fail(c, fiber.StatusForbidden, err.Error())
		}
		return fail(c, fiber.StatusInternalServerError, "Failed to delete post")
	}

	return c.JSON(fiber.Map{"message": "Post deleted successfully"})
}

func (h *PostHandler) ToggleLike(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid post ID")
	}

	resp, err := h.postService.ToggleLike(userID, postID)
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			return fail(c, fiber.StatusNotFound, err.Error())
		}
		return fail(c, fiber.StatusInternalServerError, "Failed to toggle like")
	}
	return c.JSON(resp)
}
