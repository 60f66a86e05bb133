package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/opentales/opentales-backend/internal/dto"
	"github.com/opentales/opentales-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrCommentNotFound       = errors.New("comment not found")
	ErrParentCommentNotFound = errors.New("parent comment not found")
	ErrNestedReply           = errors.New("replies cannot be nested; reply to the top-level comment")
	ErrNotCommentAuthor      = errors.New("not authorized to modify this comment")
)

type CommentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

// Create inserts a comment and bumps the post's comment counter. Threading is
// one level deep: a reply must reference a top-level comment.
func (s *CommentService) Create(authorID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentView, error) {
	var post models.Post
	if err := s.db.First(&post, "id = ?", req.PostID).Error; err != nil {
		return nil, ErrPostNotFound
	}

	if req.ParentCommentID != nil {
		var parent models.Comment
		if err := s.db.First(&parent, "id = ?", *req.ParentCommentID).Error; err != nil {
			return nil, ErrParentCommentNotFound
		}
		if parent.ParentCommentID != nil {
			return nil, ErrNestedReply
		}
	}

	comment := models.Comment{
		ID:              uuid.New(),
		AuthorID:        authorID,
		PostID:          req.PostID,
		Content:         req.Content,
		IsAnonymous:     req.IsAnonymous,
		Likes:           []uuid.UUID{},
		ParentCommentID: req.ParentCommentID,
		Status:          models.CommentStatusActive,
	}

	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&post).Update("comment_count", gorm.Expr("comment_count + 1")).Error; err != nil {
		return nil, err
	}

	views, err := s.buildViews([]models.Comment{comment}, authorID)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// ListByPost returns a post's active top-level comments newest first, each
// carrying its active replies oldest first.
func (s *CommentService) ListByPost(viewerID, postID uuid.UUID) ([]dto.CommentView, error) {
	var post models.Post
	if err := s.db.First(&post, "id = ?", postID).Error; err != nil {
		return nil, ErrPostNotFound
	}

	var topLevel []models.Comment
	err := s.db.Where("post_id = ? AND parent_comment_id IS NULL AND status = ?", postID, models.CommentStatusActive).
		Order("created_at DESC").
		Find(&topLevel).Error
	if err != nil {
		return nil, err
	}

	views, err := s.buildViews(topLevel, viewerID)
	if err != nil {
		return nil, err
	}

	for i := range views {
		var replies []models.Comment
		err := s.db.Where("parent_comment_id = ? AND status = ?", views[i].ID, models.CommentStatusActive).
			Order("created_at ASC").
			Find(&replies).Error
		if err != nil {
			return nil, err
		}
		replyViews, err := s.buildViews(replies, viewerID)
		if err != nil {
			return nil, err
		}
		views[i].Replies = replyViews
	}
	return views, nil
}

// Update edits a comment's content. Allowed for the author and for site
// moderators/admins.
func (s *CommentService) Update(userID, commentID uuid.UUID, req *dto.UpdateCommentRequest) (*dto.CommentView, error) {
	var comment models.Comment
	if err := s.db.First(&comment, "id = ?", commentID).Error; err != nil {
		return nil, ErrCommentNotFound
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	if comment.AuthorID != userID && !user.CanModerate() {
		return nil, ErrNotCommentAuthor
	}

	comment.Content = req.Content
	comment.IsAnonymous = req.IsAnonymous
	if err := s.db.Save(&comment).Error; err != nil {
		return nil, err
	}

	views, err := s.buildViews([]models.Comment{comment}, userID)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// Delete removes a comment and its direct replies in one batch, then
// decrements the post's comment counter by the exact number of rows removed.
// The count runs against the same filter as the delete, before the delete.
func (s *CommentService) Delete(userID, commentID uuid.UUID) error {
	var comment models.Comment
	if err := s.db.First(&comment, "id = ?", commentID).Error; err != nil {
		return ErrCommentNotFound
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return ErrUserNotFound
	}

	if comment.AuthorID != userID && !user.CanModerate() {
		return ErrNotCommentAuthor
	}

	var removed int64
	filter := s.db.Model(&models.Comment{}).Where("id = ? OR parent_comment_id = ?", commentID, commentID)
	if err := filter.Count(&removed).Error; err != nil {
		return err
	}

	err := s.db.Where("id = ? OR parent_comment_id = ?", commentID, commentID).
		Delete(&models.Comment{}).Error
	if err != nil {
		return err
	}

	var post models.Post
	if err := s.db.First(&post, "id = ?", comment.PostID).Error; err == nil {
		newCount := post.CommentCount - int(removed)
		if newCount < 0 {
			newCount = 0
		}
		if err := s.db.Model(&post).Update("comment_count", newCount).Error; err != nil {
			return err
		}
	}
	return nil
}

// ToggleLike adds or removes the caller from the like-set and reports the
// new count and membership.
func (s *CommentService) ToggleLike(userID, commentID uuid.UUID) (*dto.LikeResponse, error) {
	var comment models.Comment
	if err := s.db.First(&comment, "id = ?", commentID).Error; err != nil {
		return nil, ErrCommentNotFound
	}

	liked := comment.LikedBy(userID)
	if liked {
		next := comment.Likes[:0]
		for _, id := range comment.Likes {
			if id != userID {
				next = append(next, id)
			}
		}
		comment.Likes = next
	} else {
		comment.Likes = append(comment.Likes, userID)
	}

	if err := s.db.Model(&comment).Update("likes", comment.Likes).Error; err != nil {
		return nil, err
	}

	return &dto.LikeResponse{Likes: len(comment.Likes), IsLiked: !liked}, nil
}

func (s *CommentService) buildViews(comments []models.Comment, viewerID uuid.UUID) ([]dto.CommentView, error) {
	ids := make([]uuid.UUID, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.AuthorID)
	}

	authors, err := loadAuthorSummaries(s.db, ids)
	if err != nil {
		return nil, err
	}

	views := make([]dto.CommentView, len(comments))
	for i, c := range comments {
		view := dto.CommentView{Comment: c}
		if !c.IsAnonymous || c.AuthorID == viewerID {
			if a, ok := authors[c.AuthorID]; ok {
				view.Author = &a
			}
		}
		views[i] = view
	}
	return views, nil
}
