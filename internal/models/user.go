package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Account roles.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// User is an account. Accounts are never hard-deleted: a permanent ban flips
// IsActive and the row stays for audit and authorship.
type User struct {
	ID             uuid.UUID                      `gorm:"type:uuid;primaryKey" json:"id"`
	Username       string                         `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Email          string                         `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password       string                         `gorm:"not null" json:"-"`
	ProfilePicture string                         `gorm:"size:500" json:"profilePicture"`
	Bio            string                         `gorm:"type:text" json:"bio"`
	IsAnonymous    bool                           `gorm:"default:false" json:"isAnonymous"`
	Role           string                         `gorm:"size:20;not null;default:'user'" json:"role"`
	IsActive       bool                           `gorm:"default:true" json:"isActive"`
	BannedUntil    *time.Time                     `json:"bannedUntil"`
	WarningCount   int                            `gorm:"default:0" json:"warningCount"`
	ReportedCount  int                            `gorm:"default:0" json:"reportedCount"`
	Groups         datatypes.JSONSlice[uuid.UUID] `gorm:"type:jsonb" json:"groups"`
	FollowedTopics datatypes.JSONSlice[string]    `gorm:"type:jsonb" json:"followedTopics"`
	CreatedAt      time.Time                      `json:"createdAt"`
	UpdatedAt      time.Time                      `json:"updatedAt"`
}

// PermanentlyBanned reports whether the account has been deactivated.
// A deactivated account can never pass the ban gate, whatever BannedUntil says.
func (u *User) PermanentlyBanned() bool {
	return !u.IsActive
}

// TemporarilyBanned reports whether a temporary ban is still in force at now.
func (u *User) TemporarilyBanned(now time.Time) bool {
	return u.BannedUntil != nil && u.BannedUntil.After(now)
}

// CanModerate reports whether the account's site-wide role allows moderation
// actions (approving posts, resolving reports, deleting others' content).
func (u *User) CanModerate() bool {
	return u.Role == RoleModerator || u.Role == RoleAdmin
}

// InGroup reports whether groupID is in the account's membership list.
func (u *User) InGroup(groupID uuid.UUID) bool {
	for _, id := range u.Groups {
		if id == groupID {
			return true
		}
	}
	return false
}
