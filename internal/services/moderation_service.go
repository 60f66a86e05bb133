package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/opentales/opentales-backend/internal/dto"
	"github.com/opentales/opentales-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrReportNotFound  = errors.New("report not found")
	ErrTargetNotFound  = errors.New("report target not found")
	ErrSelfReport      = errors.New("you cannot report yourself")
	ErrAlreadyResolved = errors.New("report has already been processed")
	ErrAlreadyDecided  = errors.New("post has already been decided")
	ErrInvalidAction   = errors.New(`invalid action: use "approve" or "reject"`)
)

// Temporary bans issued through report resolution always run for seven days.
const temporaryBanDuration = 7 * 24 * time.Hour

type ModerationService struct {
	db *gorm.DB
}

func NewModerationService(db *gorm.DB) *ModerationService {
	return &ModerationService{db: db}
}

// FileReport records an allegation against a post, comment, user or group.
// The target must exist in the matching collection. Reporting a user bumps
// that user's reported counter immediately: the counter tracks allegations,
// not verdicts.
func (s *ModerationService) FileReport(reporterID uuid.UUID, req *dto.CreateReportRequest) (*models.Report, error) {
	exists, err := s.targetExists(req.TargetType, req.TargetID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrTargetNotFound, req.TargetType)
	}

	if req.TargetType == models.TargetUser && req.TargetID == reporterID {
		return nil, ErrSelfReport
	}

	report := models.Report{
		ID:              uuid.New(),
		ReporterID:      reporterID,
		TargetType:      req.TargetType,
		TargetID:        req.TargetID,
		Reason:          req.Reason,
		Description:     req.Description,
		Status:          models.ReportStatusPending,
		ModeratorAction: models.ActionNone,
	}

	if err := s.db.Create(&report).Error; err != nil {
		return nil, err
	}

	if req.TargetType == models.TargetUser {
		err := s.db.Model(&models.User{}).
			Where("id = ?", req.TargetID).
			Update("reported_count", gorm.Expr("reported_count + 1")).Error
		if err != nil {
			return nil, err
		}
	}

	return &report, nil
}

// ListReports returns the triage queue filtered by status (default pending),
// newest first, each report carrying a denormalized snapshot of its target so
// the moderator needs no second lookup per item.
func (s *ModerationService) ListReports(status string, page, limit int) (*dto.ReportListResponse, error) {
	if status == "" {
		status = models.ReportStatusPending
	}
	page, limit = normalizePage(page, limit)

	var total int64
	if err := s.db.Model(&models.Report{}).Where("status = ?", status).Count(&total).Error; err != nil {
		return nil, err
	}

	var reports []models.Report
	err := s.db.Where("status = ?", status).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&reports).Error
	if err != nil {
		return nil, err
	}

	views := make([]dto.ReportView, len(reports))
	for i, r := range reports {
		view := dto.ReportView{Report: r}

		people := []uuid.UUID{r.ReporterID}
		if r.ResolvedByID != nil {
			people = append(people, *r.ResolvedByID)
		}
		summaries, err := loadAuthorSummaries(s.db, people)
		if err != nil {
			return nil, err
		}
		if a, ok := summaries[r.ReporterID]; ok {
			view.Reporter = &a
		}
		if r.ResolvedByID != nil {
			if a, ok := summaries[*r.ResolvedByID]; ok {
				view.ResolvedBy = &a
			}
		}

		details, err := s.targetDetails(r.TargetType, r.TargetID)
		if err != nil {
			return nil, err
		}
		view.TargetDetails = details
		views[i] = view
	}

	return &dto.ReportListResponse{
		Reports:      views,
		CurrentPage:  page,
		TotalPages:   totalPages(total, limit),
		TotalReports: total,
	}, nil
}

// ResolveReport moves a pending report to resolved or dismissed and applies
// the chosen corrective action. Resolved and dismissed are terminal: a second
// resolution attempt fails and re-applies nothing.
func (s *ModerationService) ResolveReport(moderatorID, reportID uuid.UUID, req *dto.ResolveReportRequest) (*models.Report, error) {
	var report models.Report
	if err := s.db.First(&report, "id = ?", reportID).Error; err != nil {
		return nil, ErrReportNotFound
	}

	if report.Status != models.ReportStatusPending {
		return nil, ErrAlreadyResolved
	}

	action := req.ModeratorAction
	if action == "" {
		action = models.ActionNone
	}

	now := time.Now()
	report.Status = req.Status
	report.ModeratorNotes = req.ModeratorNotes
	report.ModeratorAction = action
	report.ResolvedByID = &moderatorID
	report.ResolvedAt = &now

	if err := s.db.Save(&report).Error; err != nil {
		return nil, err
	}

	if action != models.ActionNone {
		if err := s.applyAction(&report, now); err != nil {
			return nil, err
		}
	}
	return &report, nil
}

// applyAction performs the one side effect keyed by (targetType, action).
// Combinations with no row here (group bans, user content_removal) are
// recorded on the report but enforce nothing.
func (s *ModerationService) applyAction(report *models.Report, now time.Time) error {
	switch {
	case report.TargetType == models.TargetPost && report.ModeratorAction == models.ActionContentRemoval:
		return s.db.Model(&models.Post{}).
			Where("id = ?", report.TargetID).
			Update("status", models.PostStatusRemoved).Error

	case report.TargetType == models.TargetComment && report.ModeratorAction == models.ActionContentRemoval:
		return s.db.Model(&models.Comment{}).
			Where("id = ?", report.TargetID).
			Update("status", models.CommentStatusRemoved).Error

	case report.TargetType == models.TargetUser:
		var user models.User
		if err := s.db.First(&user, "id = ?", report.TargetID).Error; err != nil {
			return ErrUserNotFound
		}
		switch report.ModeratorAction {
		case models.ActionWarning:
			return s.db.Model(&user).
				Update("warning_count", gorm.Expr("warning_count + 1")).Error
		case models.ActionTemporaryBan:
			until := now.Add(temporaryBanDuration)
			return s.db.Model(&user).Update("banned_until", until).Error
		case models.ActionPermanentBan:
			return s.db.Model(&user).Update("is_active", false).Error
		}
	}
	return nil
}

// DecidePendingPost is the editorial queue decision: approve publishes,
// reject removes. Only the one transition out of pending exists.
func (s *ModerationService) DecidePendingPost(postID uuid.UUID, req *dto.DecidePostRequest) (*models.Post, error) {
	var post models.Post
	if err := s.db.First(&post, "id = ?", postID).Error; err != nil {
		return nil, ErrPostNotFound
	}

	if post.Status != models.PostStatusPending {
		return nil, fmt.Errorf("%w: post is already %s", ErrAlreadyDecided, post.Status)
	}

	switch req.Action {
	case "approve":
		post.Status = models.PostStatusPublished
	case "reject":
		post.Status = models.PostStatusRemoved
	default:
		return nil, ErrInvalidAction
	}

	if req.ModeratorNotes != "" {
		post.ModeratorNotes = req.ModeratorNotes
	}

	if err := s.db.Save(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// ListPendingPosts returns the editorial queue, newest first.
func (s *ModerationService) ListPendingPosts(postSvc *PostService, page, limit int) (*dto.PostListResponse, error) {
	return postSvc.list(uuid.Nil, page, limit,
		s.db.Where("status = ?", models.PostStatusPending))
}

func (s *ModerationService) targetExists(targetType string, targetID uuid.UUID) (bool, error) {
	var count int64
	var err error
	switch targetType {
	case models.TargetPost:
		err = s.db.Model(&models.Post{}).Where("id = ?", targetID).Count(&count).Error
	case models.TargetComment:
		err = s.db.Model(&models.Comment{}).Where("id = ?", targetID).Count(&count).Error
	case models.TargetUser:
		err = s.db.Model(&models.User{}).Where("id = ?", targetID).Count(&count).Error
	case models.TargetGroup:
		err = s.db.Model(&models.Group{}).Where("id = ?", targetID).Count(&count).Error
	default:
		return false, fmt.Errorf("invalid target type %q", targetType)
	}
	return count > 0, err
}

// targetDetails builds the per-type snapshot attached to triage listings.
// A target deleted since the report was filed yields nil, not an error.
func (s *ModerationService) targetDetails(targetType string, targetID uuid.UUID) (interface{}, error) {
	switch targetType {
	case models.TargetPost:
		var post models.Post
		if err := s.db.First(&post, "id = ?", targetID).Error; err != nil {
			return nil, nil
		}
		return dto.ReportedPostDetails{
			ID:      post.ID,
			Title:   post.Title,
			Content: post.Content,
			Author:  s.username(post.AuthorID),
		}, nil

	case models.TargetComment:
		var comment models.Comment
		if err := s.db.First(&comment, "id = ?", targetID).Error; err != nil {
			return nil, nil
		}
		details := dto.ReportedCommentDetails{
			ID:      comment.ID,
			Content: comment.Content,
			Author:  s.username(comment.AuthorID),
		}
		var post models.Post
		if err := s.db.First(&post, "id = ?", comment.PostID).Error; err == nil {
			details.PostTitle = post.Title
		}
		return details, nil

	case models.TargetUser:
		var user models.User
		if err := s.db.First(&user, "id = ?", targetID).Error; err != nil {
			return nil, nil
		}
		return dto.ReportedUserDetails{
			ID:            user.ID,
			Username:      user.Username,
			Email:         user.Email,
			ReportedCount: user.ReportedCount,
			WarningCount:  user.WarningCount,
		}, nil

	case models.TargetGroup:
		var group models.Group
		if err := s.db.First(&group, "id = ?", targetID).Error; err != nil {
			return nil, nil
		}
		return dto.ReportedGroupDetails{
			ID:          group.ID,
			Name:        group.Name,
			Description: group.Description,
			Creator:     s.username(group.CreatorID),
		}, nil
	}
	return nil, nil
}

func (s *ModerationService) username(id uuid.UUID) string {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return ""
	}
	return user.Username
}
