package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/opentales/opentales-backend/internal/dto"
	"github.com/opentales/opentales-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModerationService_FileReport(t *testing.T) {
	db := setupTestDB(t)
	svc := NewModerationService(db)
	reporter := createUser(t, db, "alice", models.RoleUser)
	offender := createUser(t, db, "bob", models.RoleUser)
	post := createPost(t, db, offender.ID, models.PostStatusPublished)

	t.Run("report against a post", func(t *testing.T) {
		report, err := svc.FileReport(reporter.ID, &dto.CreateReportRequest{
			TargetType:  models.TargetPost,
			TargetID:    post.ID,
			Reason:      "spam",
			Description: "link farm",
		})
		require.NoError(t, err)
		assert.Equal(t, models.ReportStatusPending, report.Status)
		assert.Equal(t, models.ActionNone, report.ModeratorAction)
	})

	t.Run("missing target is rejected", func(t *testing.T) {
		_, err := svc.FileReport(reporter.ID, &dto.CreateReportRequest{
			TargetType:  models.TargetPost,
			TargetID:    uuid.New(),
			Reason:      "spam",
			Description: "gone",
		})
		assert.ErrorIs(t, err, ErrTargetNotFound)
	})

	t.Run("self-report is rejected", func(t *testing.T) {
		_, err := svc.FileReport(reporter.ID, &dto.CreateReportRequest{
			TargetType:  models.TargetUser,
			TargetID:    reporter.ID,
			Reason:      "testing",
			Description: "me",
		})
		assert.ErrorIs(t, err, ErrSelfReport)
	})

	t.Run("reporting a user bumps their counter immediately", func(t *testing.T) {
		_, err := svc.FileReport(reporter.ID, &dto.CreateReportRequest{
			TargetType:  models.TargetUser,
			TargetID:    offender.ID,
			Reason:      "harassment",
			Description: "see comments",
		})
		require.NoError(t, err)

		var stored models.User
		require.NoError(t, db.First(&stored, "id = ?", offender.ID).Error)
		assert.Equal(t, 1, stored.ReportedCount)
	})
}

func TestModerationService_ListReports(t *testing.T) {
	db := setupTestDB(t)
	svc := NewModerationService(db)
	reporter := createUser(t, db, "alice", models.RoleUser)
	offender := createUser(t, db, "bob", models.RoleUser)
	mod := createUser(t, db, "mod", models.RoleModerator)
	post := createPost(t, db, offender.ID, models.PostStatusPublished)

	pending, err := svc.FileReport(reporter.ID, &dto.CreateReportRequest{
		TargetType:  models.TargetPost,
		TargetID:    post.ID,
		Reason:      "spam",
		Description: "link farm",
	})
	require.NoError(t, err)

	resolved, err := svc.FileReport(reporter.ID, &dto.CreateReportRequest{
		TargetType:  models.TargetUser,
		TargetID:    offender.ID,
		Reason:      "harassment",
		Description: "see comments",
	})
	require.NoError(t, err)
	_, err = svc.ResolveReport(mod.ID, resolved.ID, &dto.ResolveReportRequest{
		Status: models.ReportStatusResolved,
	})
	require.NoError(t, err)

	t.Run("defaults to the pending queue", func(t *testing.T) {
		resp, err := svc.ListReports("", 1, 10)
		require.NoError(t, err)
		require.Len(t, resp.Reports, 1)
		assert.Equal(t, pending.ID, resp.Reports[0].ID)

		require.NotNil(t, resp.Reports[0].Reporter)
		assert.Equal(t, "alice", resp.Reports[0].Reporter.Username)

		details, ok := resp.Reports[0].TargetDetails.(dto.ReportedPostDetails)
		require.True(t, ok)
		assert.Equal(t, post.ID, details.ID)
		assert.Equal(t, "bob", details.Author)
	})

	t.Run("resolved filter carries the resolver", func(t *testing.T) {
		resp, err := svc.ListReports(models.ReportStatusResolved, 1, 10)
		require.NoError(t, err)
		require.Len(t, resp.Reports, 1)
		require.NotNil(t, resp.Reports[0].ResolvedBy)
		assert.Equal(t, "mod", resp.Reports[0].ResolvedBy.Username)
	})
}

func TestModerationService_ResolveReport(t *testing.T) {
	db := setupTestDB(t)
	svc := NewModerationService(db)
	reporter := createUser(t, db, "alice", models.RoleUser)
	offender := createUser(t, db, "bob", models.RoleUser)
	mod := createUser(t, db, "mod", models.RoleModerator)

	file := func(t *testing.T, targetType string, targetID uuid.UUID) *models.Report {
		t.Helper()
		report, err := svc.FileReport(reporter.ID, &dto.CreateReportRequest{
			TargetType:  targetType,
			TargetID:    targetID,
			Reason:      "rule breach",
			Description: "details",
		})
		require.NoError(t, err)
		return report
	}

	t.Run("resolution is terminal", func(t *testing.T) {
		post := createPost(t, db, offender.ID, models.PostStatusPublished)
		report := file(t, models.TargetPost, post.ID)

		resolved, err := svc.ResolveReport(mod.ID, report.ID, &dto.ResolveReportRequest{
			Status:         models.ReportStatusDismissed,
			ModeratorNotes: "no breach found",
		})
		require.NoError(t, err)
		assert.Equal(t, models.ReportStatusDismissed, resolved.Status)
		require.NotNil(t, resolved.ResolvedAt)
		require.NotNil(t, resolved.ResolvedByID)
		assert.Equal(t, mod.ID, *resolved.ResolvedByID)

		_, err = svc.ResolveReport(mod.ID, report.ID, &dto.ResolveReportRequest{
			Status: models.ReportStatusResolved,
		})
		assert.ErrorIs(t, err, ErrAlreadyResolved)
	})

	t.Run("content removal takes a post down", func(t *testing.T) {
		post := createPost(t, db, offender.ID, models.PostStatusPublished)
		report := file(t, models.TargetPost, post.ID)

		_, err := svc.ResolveReport(mod.ID, report.ID, &dto.ResolveReportRequest{
			Status:          models.ReportStatusResolved,
			ModeratorAction: models.ActionContentRemoval,
		})
		require.NoError(t, err)

		var stored models.Post
		require.NoError(t, db.First(&stored, "id = ?", post.ID).Error)
		assert.Equal(t, models.PostStatusRemoved, stored.Status)
	})

	t.Run("content removal takes a comment down", func(t *testing.T) {
		post := createPost(t, db, offender.ID, models.PostStatusPublished)
		comment := models.Comment{
			ID:       uuid.New(),
			AuthorID: offender.ID,
			PostID:   post.ID,
			Content:  "rude",
			Likes:    []uuid.UUID{},
			Status:   models.CommentStatusActive,
		}
		require.NoError(t, db.Create(&comment).Error)
		report := file(t, models.TargetComment, comment.ID)

		_, err := svc.ResolveReport(mod.ID, report.ID, &dto.ResolveReportRequest{
			Status:          models.ReportStatusResolved,
			ModeratorAction: models.ActionContentRemoval,
		})
		require.NoError(t, err)

		var stored models.Comment
		require.NoError(t, db.First(&stored, "id = ?", comment.ID).Error)
		assert.Equal(t, models.CommentStatusRemoved, stored.Status)
	})

	t.Run("warning increments the target's counter", func(t *testing.T) {
		target := createUser(t, db, "warned", models.RoleUser)
		report := file(t, models.TargetUser, target.ID)

		_, err := svc.ResolveReport(mod.ID, report.ID, &dto.ResolveReportRequest{
			Status:          models.ReportStatusResolved,
			ModeratorAction: models.ActionWarning,
		})
		require.NoError(t, err)

		var stored models.User
		require.NoError(t, db.First(&stored, "id = ?", target.ID).Error)
		assert.Equal(t, 1, stored.WarningCount)
	})

	t.Run("temporary ban runs seven days", func(t *testing.T) {
		target := createUser(t, db, "timeout", models.RoleUser)
		report := file(t, models.TargetUser, target.ID)

		before := time.Now()
		_, err := svc.ResolveReport(mod.ID, report.ID, &dto.ResolveReportRequest{
			Status:          models.ReportStatusResolved,
			ModeratorAction: models.ActionTemporaryBan,
		})
		require.NoError(t, err)

		var stored models.User
		require.NoError(t, db.First(&stored, "id = ?", target.ID).Error)
		require.NotNil(t, stored.BannedUntil)
		assert.WithinDuration(t, before.Add(7*24*time.Hour), *stored.BannedUntil, 5*time.Second)
		assert.True(t, stored.IsActive)
	})

	t.Run("permanent ban deactivates the account", func(t *testing.T) {
		target := createUser(t, db, "gone", models.RoleUser)
		report := file(t, models.TargetUser, target.ID)

		_, err := svc.ResolveReport(mod.ID, report.ID, &dto.ResolveReportRequest{
			Status:          models.ReportStatusResolved,
			ModeratorAction: models.ActionPermanentBan,
		})
		require.NoError(t, err)

		var stored models.User
		require.NoError(t, db.First(&stored, "id = ?", target.ID).Error)
		assert.False(t, stored.IsActive)
	})

	t.Run("group bans are recorded but enforce nothing", func(t *testing.T) {
		groupSvc := NewGroupService(db)
		group := createGroup(t, groupSvc, offender.ID, "reported-circle", false)
		report := file(t, models.TargetGroup, group.ID)

		resolved, err := svc.ResolveReport(mod.ID, report.ID, &dto.ResolveReportRequest{
			Status:          models.ReportStatusResolved,
			ModeratorAction: models.ActionPermanentBan,
		})
		require.NoError(t, err)
		assert.Equal(t, models.ActionPermanentBan, resolved.ModeratorAction)

		var count int64
		db.Model(&models.Group{}).Where("id = ?", group.ID).Count(&count)
		assert.Equal(t, int64(1), count)
	})
}

func TestModerationService_DecidePendingPost(t *testing.T) {
	db := setupTestDB(t)
	svc := NewModerationService(db)
	author := createUser(t, db, "alice", models.RoleUser)

	t.Run("approve publishes and is terminal", func(t *testing.T) {
		post := createPost(t, db, author.ID, models.PostStatusPending)

		decided, err := svc.DecidePendingPost(post.ID, &dto.DecidePostRequest{Action: "approve"})
		require.NoError(t, err)
		assert.Equal(t, models.PostStatusPublished, decided.Status)

		_, err = svc.DecidePendingPost(post.ID, &dto.DecidePostRequest{Action: "reject"})
		assert.ErrorIs(t, err, ErrAlreadyDecided)
	})

	t.Run("reject removes with notes", func(t *testing.T) {
		post := createPost(t, db, author.ID, models.PostStatusPending)

		decided, err := svc.DecidePendingPost(post.ID, &dto.DecidePostRequest{
			Action:         "reject",
			ModeratorNotes: "violates community rules",
		})
		require.NoError(t, err)
		assert.Equal(t, models.PostStatusRemoved, decided.Status)
		assert.Equal(t, "violates community rules", decided.ModeratorNotes)
	})

	t.Run("unknown post", func(t *testing.T) {
		_, err := svc.DecidePendingPost(uuid.New(), &dto.DecidePostRequest{Action: "approve"})
		assert.ErrorIs(t, err, ErrPostNotFound)
	})
}

func TestModerationService_ListPendingPosts(t *testing.T) {
	db := setupTestDB(t)
	svc := NewModerationService(db)
	postSvc := NewPostService(db)
	author := createUser(t, db, "alice", models.RoleUser)

	createPost(t, db, author.ID, models.PostStatusPublished)
	pending := createPost(t, db, author.ID, models.PostStatusPending)

	resp, err := svc.ListPendingPosts(postSvc, 1, 10)
	require.NoError(t, err)
	require.Len(t, resp.Posts, 1)
	assert.Equal(t, pending.ID, resp.Posts[0].ID)
}
