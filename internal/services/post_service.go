package services

import (
	"errors"
	"math"

	"github.com/google/uuid"
	"github.com/opentales/opentales-backend/internal/dto"
	"github.com/opentales/opentales-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrPostNotFound  = errors.New("post not found")
	ErrNotPostAuthor = errors.New("not authorized to modify this post")
)

type PostService struct {
	db *gorm.DB
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db}
}

// Create inserts a new post. Status is always pending regardless of input:
// nothing is publicly visible until a moderator approves it.
func (s *PostService) Create(authorID uuid.UUID, req *dto.CreatePostRequest) (*models.Post, error) {
	post := models.Post{
		ID:                 uuid.New(),
		AuthorID:           authorID,
		Title:              req.Title,
		Content:            req.Content,
		IsAnonymous:        req.IsAnonymous,
		Tags:               req.Tags,
		Category:           req.Category,
		TriggerWarning:     req.TriggerWarning,
		TriggerWarningText: req.TriggerWarningText,
		Images:             req.Images,
		Likes:              []uuid.UUID{},
		Status:             models.PostStatusPending,
		GroupID:            req.GroupID,
		IsSensitive:        req.IsSensitive,
	}

	if err := s.db.Create(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// List returns the public feed: published posts, newest first.
func (s *PostService) List(viewerID uuid.UUID, page, limit int) (*dto.PostListResponse, error) {
	return s.list(viewerID, page, limit, s.db.Where("status = ?", models.PostStatusPublished))
}

func (s *PostService) ListByCategory(viewerID uuid.UUID, category string, page, limit int) (*dto.PostListResponse, error) {
	return s.list(viewerID, page, limit,
		s.db.Where("status = ? AND category = ?", models.PostStatusPublished, category))
}

func (s *PostService) ListByTag(viewerID uuid.UUID, tag string, page, limit int) (*dto.PostListResponse, error) {
	query := s.db.Where("status = ?", models.PostStatusPublished)
	// Tags live in a JSON array column; containment is dialect-specific.
	if s.db.Dialector.Name() == "postgres" {
		query = query.Where("tags @> to_jsonb(ARRAY[?::text])", tag)
	} else {
		query = query.Where("EXISTS (SELECT 1 FROM json_each(tags) WHERE json_each.value = ?)", tag)
	}
	return s.list(viewerID, page, limit, query)
}

// ListByAuthor returns another user's published posts.
func (s *PostService) ListByAuthor(viewerID, authorID uuid.UUID, page, limit int) (*dto.PostListResponse, error) {
	return s.list(viewerID, page, limit,
		s.db.Where("author_id = ? AND status = ?", authorID, models.PostStatusPublished))
}

// ListMine returns the caller's own posts in every status, pending and
// removed included.
func (s *PostService) ListMine(authorID uuid.UUID, page, limit int) (*dto.PostListResponse, error) {
	return s.list(authorID, page, limit, s.db.Where("author_id = ?", authorID))
}

// ListByGroup returns a group's published posts. Privacy gating happens in
// the group service before this is called.
func (s *PostService) ListByGroup(viewerID, groupID uuid.UUID, page, limit int) (*dto.PostListResponse, error) {
	return s.list(viewerID, page, limit,
		s.db.Where("group_id = ? AND status = ?", groupID, models.PostStatusPublished))
}

func (s *PostService) list(viewerID uuid.UUID, page, limit int, query *gorm.DB) (*dto.PostListResponse, error) {
	page, limit = normalizePage(page, limit)

	var total int64
	if err := query.Model(&models.Post{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var posts []models.Post
	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	views, err := s.buildViews(posts, viewerID)
	if err != nil {
		return nil, err
	}

	return &dto.PostListResponse{
		Posts:       views,
		CurrentPage: page,
		TotalPages:  totalPages(total, limit),
		TotalPosts:  total,
	}, nil
}

// Get fetches one post and bumps its view counter as a side effect of the
// read. The counter is monotonic with no per-viewer dedup.
func (s *PostService) Get(viewerID, postID uuid.UUID) (*dto.PostView, error) {
	var post models.Post
	if err := s.db.First(&post, "id = ?", postID).Error; err != nil {
		return nil, ErrPostNotFound
	}

	if err := s.db.Model(&post).Update("view_count", gorm.Expr("view_count + 1")).Error; err != nil {
		return nil, err
	}
	post.ViewCount++

	views, err := s.buildViews([]models.Post{post}, viewerID)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// Update rewrites a post's content fields. Only the author may edit, and
// every edit sends the post back through the editorial queue.
func (s *PostService) Update(userID, postID uuid.UUID, req *dto.UpdatePostRequest) (*models.Post, error) {
	var post models.Post
	if err := s.db.First(&post, "id = ?", postID).Error; err != nil {
		return nil, ErrPostNotFound
	}

	if post.AuthorID != userID {
		return nil, ErrNotPostAuthor
	}

	post.Title = req.Title
	post.Content = req.Content
	post.IsAnonymous = req.IsAnonymous
	post.Tags = req.Tags
	post.Category = req.Category
	post.TriggerWarning = req.TriggerWarning
	post.TriggerWarningText = req.TriggerWarningText
	post.Images = req.Images
	post.IsSensitive = req.IsSensitive
	post.Status = models.PostStatusPending

	if err := s.db.Save(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// Delete removes a post and every comment on it. Allowed for the author and
// for site moderators/admins.
func (s *PostService) Delete(userID, postID uuid.UUID) error {
	var post models.Post
	if err := s.db.First(&post, "id = ?", postID).Error; err != nil {
		return ErrPostNotFound
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return ErrUserNotFound
	}

	if post.AuthorID != userID && !user.CanModerate() {
		return ErrNotPostAuthor
	}

	if err := s.db.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
		return err
	}
	return s.db.Delete(&post).Error
}

// ToggleLike adds or removes the caller from the like-set and reports the
// new count and membership.
func (s *PostService) ToggleLike(userID, postID uuid.UUID) (*dto.LikeResponse, error) {
	var post models.Post
	if err := s.db.First(&post, "id = ?", postID).Error; err != nil {
		return nil, ErrPostNotFound
	}

	liked := post.LikedBy(userID)
	if liked {
		next := post.Likes[:0]
		for _, id := range post.Likes {
			if id != userID {
				next = append(next, id)
			}
		}
		post.Likes = next
	} else {
		post.Likes = append(post.Likes, userID)
	}

	if err := s.db.Model(&post).Update("likes", post.Likes).Error; err != nil {
		return nil, err
	}

	return &dto.LikeResponse{Likes: len(post.Likes), IsLiked: !liked}, nil
}

// buildViews attaches author and group projections. Author identity is
// withheld when the post is anonymous, unless the viewer wrote it.
func (s *PostService) buildViews(posts []models.Post, viewerID uuid.UUID) ([]dto.PostView, error) {
	authorIDs := make([]uuid.UUID, 0, len(posts))
	groupIDs := make([]uuid.UUID, 0)
	for _, p := range posts {
		authorIDs = append(authorIDs, p.AuthorID)
		if p.GroupID != nil {
			groupIDs = append(groupIDs, *p.GroupID)
		}
	}

	authors, err := loadAuthorSummaries(s.db, authorIDs)
	if err != nil {
		return nil, err
	}

	groups := map[uuid.UUID]dto.GroupSummary{}
	if len(groupIDs) > 0 {
		var rows []models.Group
		if err := s.db.Where("id IN ?", groupIDs).Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, g := range rows {
			groups[g.ID] = dto.GroupSummary{ID: g.ID, Name: g.Name, IsPrivate: g.IsPrivate}
		}
	}

	views := make([]dto.PostView, len(posts))
	for i, p := range posts {
		view := dto.PostView{Post: p}
		if !p.IsAnonymous || p.AuthorID == viewerID {
			if a, ok := authors[p.AuthorID]; ok {
				view.Author = &a
			}
		}
		if p.GroupID != nil {
			if g, ok := groups[*p.GroupID]; ok {
				view.Group = &g
			}
		}
		views[i] = view
	}
	return views, nil
}

// loadAuthorSummaries fetches the account projection for a set of IDs in one
// query.
func loadAuthorSummaries(db *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]dto.AuthorSummary, error) {
	out := map[uuid.UUID]dto.AuthorSummary{}
	if len(ids) == 0 {
		return out, nil
	}
	var users []models.User
	if err := db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		out[u.ID] = dto.AuthorSummary{
			ID:             u.ID,
			Username:       u.Username,
			ProfilePicture: u.ProfilePicture,
			IsAnonymous:    u.IsAnonymous,
		}
	}
	return out, nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	return int(math.Ceil(float64(total) / float64(limit)))
}
