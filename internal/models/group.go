package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Confidentiality tiers, finer grained than the IsPrivate flag.
const (
	ConfidentialityPublic      = 1
	ConfidentialityMembersOnly = 2
	ConfidentialityStrict      = 3
)

// Group is a named community. The creator is always kept in Moderators; the
// only operation allowed to change CreatorID is an explicit ownership
// transfer, and the generic remove-moderator path refuses to demote the
// creator.
type Group struct {
	ID                   uuid.UUID                      `gorm:"type:uuid;primaryKey" json:"id"`
	Name                 string                         `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description          string                         `gorm:"type:text;not null" json:"description"`
	CreatorID            uuid.UUID                      `gorm:"type:uuid;not null;index" json:"creatorId"`
	Moderators           datatypes.JSONSlice[uuid.UUID] `gorm:"type:jsonb" json:"moderators"`
	Members              datatypes.JSONSlice[uuid.UUID] `gorm:"type:jsonb" json:"-"`
	IsPrivate            bool                           `gorm:"default:false" json:"isPrivate"`
	ConfidentialityLevel int                            `gorm:"default:1" json:"confidentialityLevel"`
	Rules                datatypes.JSONSlice[string]    `gorm:"type:jsonb" json:"rules"`
	Category             string                         `gorm:"size:50;not null" json:"category"`
	Topics               datatypes.JSONSlice[string]    `gorm:"type:jsonb" json:"topics"`
	CreatedAt            time.Time                      `json:"createdAt"`
	UpdatedAt            time.Time                      `json:"updatedAt"`
}

// IsMember reports whether userID is on the member roster.
func (g *Group) IsMember(userID uuid.UUID) bool {
	for _, id := range g.Members {
		if id == userID {
			return true
		}
	}
	return false
}

// IsModerator reports whether userID is on the moderator roster.
func (g *Group) IsModerator(userID uuid.UUID) bool {
	for _, id := range g.Moderators {
		if id == userID {
			return true
		}
	}
	return false
}

// IsCreator reports whether userID owns the group.
func (g *Group) IsCreator(userID uuid.UUID) bool {
	return g.CreatorID == userID
}
