package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/opentales/opentales-backend/internal/dto"
	"github.com/opentales/opentales-backend/internal/middleware"
	"github.com/opentales/opentales-backend/internal/services"
)

type GroupHandler struct {
	groupService *services.GroupService
	postService  *services.PostService
}

func NewGroupHandler(groupService *services.GroupService, postService *services.PostService) *GroupHandler {
	return &GroupHandler{groupService: groupService, postService: postService}
}

func (h *GroupHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.CreateGroupRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	group, err := h.groupService.Create(userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrGroupNameTaken) {
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
		return fail(c, fiber.StatusInternalServerError, "Failed to create group")
	}

	return c.Status(fiber.StatusCreated).JSON(group)
}

func (h *GroupHandler) List(c *fiber.Ctx) error {
	viewerID, _ := middleware.UserID(c)
	page, limit := pagination(c)

	resp, err := h.groupService.List(viewerID, page, limit)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch groups")
	}
	return c.JSON(resp)
}

func (h *GroupHandler) Get(c *fiber.Ctx) error {
	viewerID, _ := middleware.UserID(c)
	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid group ID")
	}

	group, err := h.groupService.Get(viewerID, groupID)
	if err != nil {
		var privErr *services.PrivateGroupError
		if errors.As(err, &privErr) {
			return privateGroupDenied(c, privErr)
		}
		if errors.Is(err, services.ErrGroupNotFound) {
			return fail(c, fiber.StatusNotFound, err.Error())
		}
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch group")
	}
	return c.JSON(group)
}

func (h *GroupHandler) Update(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid group ID")
	}

	var req dto.UpdateGroupRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	group, err := h.groupService.Update(userID, groupID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrGroupNotFound):
			return fail(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrNotGroupModerator):
			return fail(c, fiber.StatusForbidden, err.Error())
		case errors.Is(err, services.ErrGroupNameTaken):
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
		return fail(c, fiber.StatusInternalServerError, "Failed to update group")
	}
	return c.JSON(group)
}

func (h *GroupHandler) Join(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid group ID")
	}

	if err := h.groupService.Join(userID, groupID); err != nil {
		if errors.Is(err, services.ErrGroupNotFound) {
			return fail(c, fiber.StatusNotFound, err.Error())
		}
		if errors.Is(err, services.ErrAlreadyMember) {
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
		return fail(c, fiber.StatusInternalServerError, "Failed to join group")
	}

	return c.JSON(fiber.Map{"message": "Joined group successfully"})
}

func (h *GroupHandler) Leave(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid group ID")
	}

	if err := h.groupService.Leave(userID, groupID); err != nil {
		switch {
		case errors.Is(err, services.ErrGroupNotFound):
			return fail(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrNotMember):
			return fail(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrCreatorCannotLeave):
			return fail(c, fiber.StatusForbidden, err.Error())
		}
		return fail(c, fiber.StatusInternalServerError, "Failed to leave group")
	}

	return c.JSON(fiber.Map{"message": "Left group successfully"})
}

func (h *GroupHandler) AddModerator(c *fiber.Ctx) error {
	callerID, err := middleware.UserID(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid group ID")
	}

	var req dto.AddModeratorRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	if err := h.groupService.AddModerator(callerID, groupID, req.UserID); err != nil {
		switch {
		case errors.Is(err, services.ErrGroupNotFound), errors.Is(err, services.ErrUserNotFound):
			return fail(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrNotGroupModerator):
			return fail(c, fiber.StatusForbidden, err.Error())
		case errors.Is(err, services.ErrTargetNotMember), errors.Is(err, services.ErrAlreadyModerator):
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
		return fail(c, fiber.StatusInternalServerError, "Failed to add moderator")
	}

	return c.JSON(fiber.Map{"message": "Moderator added successfully"})
}

func (h *GroupHandler) RemoveModerator(c *fiber.Ctx) error {
	callerID, err := middleware.UserID(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid group ID")
	}

	targetID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	if err := h.groupService.RemoveModerator(callerID, groupID, targetID); err != nil {
		switch {
		case errors.Is(err, services.ErrGroupNotFound):
			return fail(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrNotGroupCreator), errors.Is(err, services.ErrCannotDemoteCreator):
			return fail(c, fiber.StatusForbidden, err.Error())
		case errors.Is(err, services.ErrTargetNotModerator):
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
		return fail(c, fiber.StatusInternalServerError, "Failed to remove moderator")
	}

	return c.JSON(fiber.Map{"message": "Moderator removed successfully"})
}

func (h *GroupHandler) TransferOwnership(c *fiber.Ctx) error {
	callerID, err := middleware.UserID(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid group ID")
	}

	var req dto.TransferOwnershipRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	if err := h.groupService.TransferOwnership(callerID, groupID, req.NewOwnerID); err != nil {
		switch {
		case errors.Is(err, services.ErrGroupNotFound), errors.Is(err, services.ErrUserNotFound):
			return fail(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrNotGroupCreator):
			return fail(c, fiber.StatusForbidden, err.Error())
		case errors.Is(err, services.ErrTargetNotMember):
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
		return fail(c, fiber.StatusInternalServerError, "Failed to transfer ownership")
	}

	return c.JSON(fiber.Map{"message": "Ownership transferred successfully"})
}

// Posts lists a group's published posts, honoring the privacy gate.
func (h *GroupHandler) Posts(c *fiber.Ctx) error {
	viewerID, _ := middleware.UserID(c)
	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid group ID")
	}
	page, limit := pagination(c)

	resp, err := h.groupService.Posts(h.postService, viewerID, groupID, page, limit)
	if err != nil {
		var privErr *services.PrivateGroupError
		if errors.As(err, &privErr) {
			return privateGroupDenied(c, privErr)
		}
		if errors.Is(err, services.ErrGroupNotFound) {
			return fail(c, fiber.StatusNotFound, err.Error())
		}
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch group posts")
	}
	return c.JSON(resp)
}

func (h *GroupHandler) Delete(c *fiber.Ctx) error {
	callerID, err := middleware.UserID(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid group ID")
	}

	if err := h.groupService.Delete(callerID, groupID); err != nil {
		if errors.Is(err, services.ErrGroupNotFound) {
			return fail(c, fiber.StatusNotFound, err.Error())
		}
		if errors.Is(err, services.ErrNotGroupCreator) {
			return fail(c, fiber.StatusForbidden, err.Error())
		}
		return fail(c, fiber.StatusInternalServerError, "Failed to delete group")
	}

	return c.JSON(fiber.Map{"message": "Group deleted successfully"})
}
