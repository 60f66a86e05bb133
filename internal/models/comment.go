package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Comment lifecycle (a 3-state subset of the post lifecycle: comments are
// visible immediately, there is no editorial queue for them).
const (
	CommentStatusActive  = "active"
	CommentStatusFlagged = "flagged"
	CommentStatusRemoved = "removed"
)

// Comment belongs to a post. ParentCommentID supports one level of threading:
// a reply always references a top-level comment, never another reply.
type Comment struct {
	ID              uuid.UUID                      `gorm:"type:uuid;primaryKey" json:"id"`
	AuthorID        uuid.UUID                      `gorm:"type:uuid;not null;index" json:"authorId"`
	PostID          uuid.UUID                      `gorm:"type:uuid;not null;index" json:"postId"`
	Content         string                         `gorm:"type:text;not null" json:"content"`
	IsAnonymous     bool                           `gorm:"default:false" json:"isAnonymous"`
	Likes           datatypes.JSONSlice[uuid.UUID] `gorm:"type:jsonb" json:"likes"`
	ParentCommentID *uuid.UUID                     `gorm:"type:uuid;index" json:"parentCommentId"`
	Status          string                         `gorm:"size:20;not null;default:'active';index" json:"status"`
	CreatedAt       time.Time                      `json:"createdAt"`
	UpdatedAt       time.Time                      `json:"updatedAt"`
}

// LikedBy reports whether userID is in the like-set.
func (c *Comment) LikedBy(userID uuid.UUID) bool {
	for _, id := range c.Likes {
		if id == userID {
			return true
		}
	}
	return false
}
