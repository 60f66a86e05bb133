package dto

import (
	"github.com/google/uuid"
	"github.com/opentales/opentales-backend/internal/models"
)

type CreateGroupRequest struct {
	Name                 string   `json:"name" validate:"required,max=100"`
	Description          string   `json:"description" validate:"required"`
	IsPrivate            bool     `json:"isPrivate"`
	ConfidentialityLevel int      `json:"confidentialityLevel" validate:"omitempty,oneof=1 2 3"`
	Rules                []string `json:"rules"`
	Category             string   `json:"category" validate:"required,max=50"`
	Topics               []string `json:"topics"`
}

type UpdateGroupRequest struct {
	Name                 string   `json:"name" validate:"omitempty,max=100"`
	Description          string   `json:"description"`
	IsPrivate            *bool    `json:"isPrivate"`
	ConfidentialityLevel int      `json:"confidentialityLevel" validate:"omitempty,oneof=1 2 3"`
	Rules                []string `json:"rules"`
	Category             string   `json:"category" validate:"omitempty,max=50"`
	Topics               []string `json:"topics"`
}

type AddModeratorRequest struct {
	UserID uuid.UUID `json:"userId" validate:"required"`
}

type TransferOwnershipRequest struct {
	NewOwnerID uuid.UUID `json:"newOwnerId" validate:"required"`
}

// GroupView is the member-visible projection of a group: the raw member list
// is always replaced by a count plus three caller-relative booleans.
type GroupView struct {
	models.Group
	Creator      *AuthorSummary `json:"creator"`
	MembersCount int            `json:"membersCount"`
	IsMember     bool           `json:"isMember"`
	IsModerator  bool           `json:"isModerator"`
	IsCreator    bool           `json:"isCreator"`
}

type GroupListResponse struct {
	Groups      []GroupView `json:"groups"`
	CurrentPage int         `json:"currentPage"`
	TotalPages  int         `json:"totalPages"`
	TotalGroups int64       `json:"totalGroups"`
}
