package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Post lifecycle. Every new post starts pending and only a moderator decision
// moves it to published; edits send it back through the queue.
const (
	PostStatusPending   = "pending"
	PostStatusPublished = "published"
	PostStatusFlagged   = "flagged"
	PostStatusRemoved   = "removed"
)

// Post is a story. Likes is the set of user IDs that liked it; CommentCount
// mirrors the number of live comments and is maintained incrementally.
type Post struct {
	ID                 uuid.UUID                      `gorm:"type:uuid;primaryKey" json:"id"`
	AuthorID           uuid.UUID                      `gorm:"type:uuid;not null;index" json:"authorId"`
	Title              string                         `gorm:"size:200;not null" json:"title"`
	Content            string                         `gorm:"type:text;not null" json:"content"`
	IsAnonymous        bool                           `gorm:"default:false" json:"isAnonymous"`
	Tags               datatypes.JSONSlice[string]    `gorm:"type:jsonb" json:"tags"`
	Category           string                         `gorm:"size:50;not null;index" json:"category"`
	TriggerWarning     bool                           `gorm:"default:false" json:"triggerWarning"`
	TriggerWarningText string                         `gorm:"size:500" json:"triggerWarningText"`
	Images             datatypes.JSONSlice[string]    `gorm:"type:jsonb" json:"images"`
	Likes              datatypes.JSONSlice[uuid.UUID] `gorm:"type:jsonb" json:"likes"`
	CommentCount       int                            `gorm:"default:0" json:"commentCount"`
	ViewCount          int                            `gorm:"default:0" json:"viewCount"`
	Status             string                         `gorm:"size:20;not null;default:'pending';index" json:"status"`
	GroupID            *uuid.UUID                     `gorm:"type:uuid;index" json:"groupId"`
	ModeratorNotes     string                         `gorm:"size:1000" json:"moderatorNotes,omitempty"`
	IsSensitive        bool                           `gorm:"default:false" json:"isSensitive"`
	CreatedAt          time.Time                      `json:"createdAt"`
	UpdatedAt          time.Time                      `json:"updatedAt"`
}

// LikedBy reports whether userID is in the like-set.
func (p *Post) LikedBy(userID uuid.UUID) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}
