package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/opentales/opentales-backend/internal/config"
	"github.com/opentales/opentales-backend/internal/models"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory database per test. A single connection
// is enforced so the :memory: database is not silently duplicated by the pool.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Group{},
		&models.Report{},
	))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret: "test-secret",
		JWTExpiry: time.Hour,
	}
}

func createUser(t *testing.T, db *gorm.DB, username, role string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		ID:       uuid.New(),
		Username: username,
		Email:    username + "@example.com",
		Password: string(hash),
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createPost(t *testing.T, db *gorm.DB, authorID uuid.UUID, status string) *models.Post {
	t.Helper()

	post := &models.Post{
		ID:       uuid.New(),
		AuthorID: authorID,
		Title:    "A story",
		Content:  "Something happened to me once.",
		Category: "life",
		Likes:    []uuid.UUID{},
		Status:   status,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}
