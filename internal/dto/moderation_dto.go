package dto

import (
	"github.com/google/uuid"
	"github.com/opentales/opentales-backend/internal/models"
)

type CreateReportRequest struct {
	TargetType  string    `json:"targetType" validate:"required,oneof=post comment user group"`
	TargetID    uuid.UUID `json:"targetId" validate:"required"`
	Reason      string    `json:"reason" validate:"required,max=500"`
	Description string    `json:"description" validate:"required"`
}

type ResolveReportRequest struct {
	Status          string `json:"status" validate:"required,oneof=resolved dismissed"`
	ModeratorNotes  string `json:"moderatorNotes" validate:"max=1000"`
	ModeratorAction string `json:"moderatorAction" validate:"omitempty,oneof=none warning content_removal temporary_ban permanent_ban"`
}

type DecidePostRequest struct {
	Action         string `json:"action" validate:"required,oneof=approve reject"`
	ModeratorNotes string `json:"moderatorNotes" validate:"max=1000"`
}

// ReportView is a report plus the denormalized snapshot of its target, so a
// moderator triaging the queue needs no second lookup per item.
type ReportView struct {
	models.Report
	Reporter      *AuthorSummary `json:"reporter"`
	ResolvedBy    *AuthorSummary `json:"resolvedByUser,omitempty"`
	TargetDetails interface{}    `json:"targetDetails,omitempty"`
}

// Target snapshots attached to ReportView, one shape per target type.
type ReportedPostDetails struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Author  string    `json:"author"`
}

type ReportedCommentDetails struct {
	ID        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	PostTitle string    `json:"postTitle"`
}

type ReportedUserDetails struct {
	ID            uuid.UUID `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	ReportedCount int       `json:"reportedCount"`
	WarningCount  int       `json:"warningCount"`
}

type ReportedGroupDetails struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Creator     string    `json:"creator"`
}

type ReportListResponse struct {
	Reports      []ReportView `json:"reports"`
	CurrentPage  int          `json:"currentPage"`
	TotalPages   int          `json:"totalPages"`
	TotalReports int64        `json:"totalReports"`
}
