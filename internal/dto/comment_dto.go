package dto

import (
	"github.com/google/uuid"
	"github.com/opentales/opentales-backend/internal/models"
)

type CreateCommentRequest struct {
	PostID          uuid.UUID  `json:"postId" validate:"required"`
	Content         string     `json:"content" validate:"required"`
	IsAnonymous     bool       `json:"isAnonymous"`
	ParentCommentID *uuid.UUID `json:"parentCommentId"`
}

type UpdateCommentRequest struct {
	Content     string `json:"content" validate:"required"`
	IsAnonymous bool   `json:"isAnonymous"`
}

// CommentView is a comment plus its author projection. Top-level views carry
// their replies; replies carry none.
type CommentView struct {
	models.Comment
	Author  *AuthorSummary `json:"author"`
	Replies []CommentView  `json:"replies,omitempty"`
}
