package dto

import (
	"github.com/google/uuid"
	"github.com/opentales/opentales-backend/internal/models"
)

type CreatePostRequest struct {
	Title              string     `json:"title" validate:"required,max=200"`
	Content            string     `json:"content" validate:"required"`
	IsAnonymous        bool       `json:"isAnonymous"`
	Tags               []string   `json:"tags"`
	Category           string     `json:"category" validate:"required,max=50"`
	TriggerWarning     bool       `json:"triggerWarning"`
	TriggerWarningText string     `json:"triggerWarningText" validate:"max=500"`
	Images             []string   `json:"images"`
	GroupID            *uuid.UUID `json:"groupId"`
	IsSensitive        bool       `json:"isSensitive"`
}

type UpdatePostRequest struct {
	Title              string   `json:"title" validate:"required,max=200"`
	Content            string   `json:"content" validate:"required"`
	IsAnonymous        bool     `json:"isAnonymous"`
	Tags               []string `json:"tags"`
	Category           string   `json:"category" validate:"required,max=50"`
	TriggerWarning     bool     `json:"triggerWarning"`
	TriggerWarningText string   `json:"triggerWarningText" validate:"max=500"`
	Images             []string `json:"images"`
	IsSensitive        bool     `json:"isSensitive"`
}

// GroupSummary is the projection of a group attached to posts.
type GroupSummary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	IsPrivate bool      `json:"isPrivate"`
}

// PostView is a post plus the author and group projections the clients render.
type PostView struct {
	models.Post
	Author *AuthorSummary `json:"author"`
	Group  *GroupSummary  `json:"group"`
}

type PostListResponse struct {
	Posts       []PostView `json:"posts"`
	CurrentPage int        `json:"currentPage"`
	TotalPages  int        `json:"totalPages"`
	TotalPosts  int64      `json:"totalPosts"`
}

type LikeResponse struct {
	Likes   int  `json:"likes"`
	IsLiked bool `json:"isLiked"`
}
