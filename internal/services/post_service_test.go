package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/opentales/opentales-backend/internal/dto"
	"github.com/opentales/opentales-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostService_Create(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPostService(db)
	author := createUser(t, db, "alice", models.RoleUser)

	post, err := svc.Create(author.ID, &dto.CreatePostRequest{
		Title:    "First story",
		Content:  "It was a dark and stormy night.",
		Category: "life",
		Tags:     []string{"night", "weather"},
	})
	require.NoError(t, err)

	// Submissions always enter the editorial queue.
	assert.Equal(t, models.PostStatusPending, post.Status)
	assert.Empty(t, post.Likes)
	assert.Zero(t, post.CommentCount)
}

func TestPostService_List_OnlyPublished(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPostService(db)
	author := createUser(t, db, "alice", models.RoleUser)

	createPost(t, db, author.ID, models.PostStatusPending)
	createPost(t, db, author.ID, models.PostStatusRemoved)
	published := createPost(t, db, author.ID, models.PostStatusPublished)

	resp, err := svc.List(uuid.Nil, 1, 10)
	require.NoError(t, err)
	require.Len(t, resp.Posts, 1)
	assert.Equal(t, published.ID, resp.Posts[0].ID)
	assert.Equal(t, int64(1), resp.TotalPosts)
}

func TestPostService_ListMine_AllStatuses(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPostService(db)
	author := createUser(t, db, "alice", models.RoleUser)
	other := createUser(t, db, "bob", models.RoleUser)

	createPost(t, db, author.ID, models.PostStatusPending)
	createPost(t, db, author.ID, models.PostStatusPublished)
	createPost(t, db, author.ID, models.PostStatusRemoved)
	createPost(t, db, other.ID, models.PostStatusPublished)

	resp, err := svc.ListMine(author.ID, 1, 10)
	require.NoError(t, err)
	assert.Len(t, resp.Posts, 3)
}

func TestPostService_ListByTag(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPostService(db)
	author := createUser(t, db, "alice", models.RoleUser)

	tagged := &models.Post{
		ID:       uuid.New(),
		AuthorID: author.ID,
		Title:    "Tagged",
		Content:  "content",
		Category: "life",
		Tags:     []string{"grief", "healing"},
		Likes:    []uuid.UUID{},
		Status:   models.PostStatusPublished,
	}
	require.NoError(t, db.Create(tagged).Error)
	createPost(t, db, author.ID, models.PostStatusPublished)

	resp, err := svc.ListByTag(uuid.Nil, "grief", 1, 10)
	require.NoError(t, err)
	require.Len(t, resp.Posts, 1)
	assert.Equal(t, tagged.ID, resp.Posts[0].ID)
}

func TestPostService_Pagination(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPostService(db)
	author := createUser(t, db, "alice", models.RoleUser)

	for i := 0; i < 15; i++ {
		createPost(t, db, author.ID, models.PostStatusPublished)
	}

	page1, err := svc.List(uuid.Nil, 1, 10)
	require.NoError(t, err)
	assert.Len(t, page1.Posts, 10)
	assert.Equal(t, int64(15), page1.TotalPosts)
	assert.Equal(t, 2, page1.TotalPages)

	page2, err := svc.List(uuid.Nil, 2, 10)
	require.NoError(t, err)
	assert.Len(t, page2.Posts, 5)

	// Out-of-range inputs fall back to defaults.
	defaulted, err := svc.List(uuid.Nil, 0, -3)
	require.NoError(t, err)
	assert.Equal(t, 1, defaulted.CurrentPage)
	assert.Len(t, defaulted.Posts, 10)
}

func TestPostService_Get_BumpsViewCount(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPostService(db)
	author := createUser(t, db, "alice", models.RoleUser)
	post := createPost(t, db, author.ID, models.PostStatusPublished)

	view, err := svc.Get(uuid.Nil, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, view.ViewCount)

	view, err = svc.Get(uuid.Nil, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, view.ViewCount)
}

func TestPostService_Update(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPostService(db)
	author := createUser(t, db, "alice", models.RoleUser)
	other := createUser(t, db, "bob", models.RoleUser)
	post := createPost(t, db, author.ID, models.PostStatusPublished)

	req := &dto.UpdatePostRequest{
		Title:    "Revised",
		Content:  "New text.",
		Category: "life",
	}

	t.Run("only the author may edit", func(t *testing.T) {
		_, err := svc.Update(other.ID, post.ID, req)
		assert.ErrorIs(t, err, ErrNotPostAuthor)
	})

	t.Run("an edit re-enters the editorial queue", func(t *testing.T) {
		updated, err := svc.Update(author.ID, post.ID, req)
		require.NoError(t, err)
		assert.Equal(t, "Revised", updated.Title)
		assert.Equal(t, models.PostStatusPending, updated.Status)
	})
}

func TestPostService_Delete(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPostService(db)
	author := createUser(t, db, "alice", models.RoleUser)
	stranger := createUser(t, db, "bob", models.RoleUser)
	mod := createUser(t, db, "mod", models.RoleModerator)

	t.Run("a stranger cannot delete", func(t *testing.T) {
		post := createPost(t, db, author.ID, models.PostStatusPublished)
		assert.ErrorIs(t, svc.Delete(stranger.ID, post.ID), ErrNotPostAuthor)
	})

	t.Run("the author's delete cascades to comments", func(t *testing.T) {
		post := createPost(t, db, author.ID, models.PostStatusPublished)
		comment := models.Comment{
			ID:       uuid.New(),
			AuthorID: stranger.ID,
			PostID:   post.ID,
			Content:  "nice",
			Likes:    []uuid.UUID{},
			Status:   models.CommentStatusActive,
		}
		require.NoError(t, db.Create(&comment).Error)

		require.NoError(t, svc.Delete(author.ID, post.ID))

		var count int64
		db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&count)
		assert.Zero(t, count)
	})

	t.Run("a site moderator may delete someone else's post", func(t *testing.T) {
		post := createPost(t, db, author.ID, models.PostStatusPublished)
		assert.NoError(t, svc.Delete(mod.ID, post.ID))
	})
}

func TestPostService_ToggleLike(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPostService(db)
	author := createUser(t, db, "alice", models.RoleUser)
	fan := createUser(t, db, "bob", models.RoleUser)
	post := createPost(t, db, author.ID, models.PostStatusPublished)

	resp, err := svc.ToggleLike(fan.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, resp.IsLiked)
	assert.Equal(t, 1, resp.Likes)

	// The same caller toggling again removes the like, not a second one.
	resp, err = svc.ToggleLike(fan.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, resp.IsLiked)
	assert.Equal(t, 0, resp.Likes)
}

func TestPostService_AnonymousAuthorRedaction(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPostService(db)
	author := createUser(t, db, "alice", models.RoleUser)
	viewer := createUser(t, db, "bob", models.RoleUser)

	post := &models.Post{
		ID:          uuid.New(),
		AuthorID:    author.ID,
		Title:       "Secret",
		Content:     "content",
		Category:    "life",
		IsAnonymous: true,
		Likes:       []uuid.UUID{},
		Status:      models.PostStatusPublished,
	}
	require.NoError(t, db.Create(post).Error)

	t.Run("other viewers see no author", func(t *testing.T) {
		view, err := svc.Get(viewer.ID, post.ID)
		require.NoError(t, err)
		assert.Nil(t, view.Author)
	})

	t.Run("the author still sees themselves", func(t *testing.T) {
		view, err := svc.Get(author.ID, post.ID)
		require.NoError(t, err)
		require.NotNil(t, view.Author)
		assert.Equal(t, "alice", view.Author.Username)
	})
}
