package models

import (
	"time"

	"github.com/google/uuid"
)

// Report lifecycle. Pending reports are the moderation queue; resolved and
// dismissed are terminal.
const (
	ReportStatusPending   = "pending"
	ReportStatusResolved  = "resolved"
	ReportStatusDismissed = "dismissed"
)

// Report target types.
const (
	TargetPost    = "post"
	TargetComment = "comment"
	TargetUser    = "user"
	TargetGroup   = "group"
)

// Corrective actions a moderator can attach when resolving a report.
const (
	ActionNone           = "none"
	ActionWarning        = "warning"
	ActionContentRemoval = "content_removal"
	ActionTemporaryBan   = "temporary_ban"
	ActionPermanentBan   = "permanent_ban"
)

// Report records one account's allegation against a post, comment, user or
// group. TargetID is interpreted through TargetType.
type Report struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ReporterID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"reporterId"`
	TargetType      string     `gorm:"size:20;not null" json:"targetType"`
	TargetID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"targetId"`
	Reason          string     `gorm:"size:500;not null" json:"reason"`
	Description     string     `gorm:"type:text;not null" json:"description"`
	Status          string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	ModeratorNotes  string     `gorm:"size:1000" json:"moderatorNotes"`
	ModeratorAction string     `gorm:"size:30;not null;default:'none'" json:"moderatorAction"`
	ResolvedByID    *uuid.UUID `gorm:"type:uuid" json:"resolvedBy"`
	ResolvedAt      *time.Time `json:"resolvedAt"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}
