package middleware

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/opentales/opentales-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}))
	return db
}

// principal plants a decoded token in context the way the JWT middleware
// would, letting the gate run without a signed header.
func principal(userID uuid.UUID, role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub":  userID.String(),
			"role": role,
		})
		c.Locals("user", token)
		return c.Next()
	}
}

func banGateApp(db *gorm.DB, pre ...fiber.Handler) *fiber.App {
	app := fiber.New()
	for _, h := range pre {
		app.Use(h)
	}
	app.Use(BanGate(db))
	app.Post("/write", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	return app
}

func TestBanGate(t *testing.T) {
	db := setupTestDB(t)

	newUser := func(t *testing.T, mutate func(*models.User)) *models.User {
		t.Helper()
		user := &models.User{
			ID:       uuid.New(),
			Username: uuid.NewString()[:8],
			Email:    uuid.NewString()[:8] + "@example.com",
			Password: "x",
			Role:     models.RoleUser,
			IsActive: true,
		}
		if mutate != nil {
			mutate(user)
		}
		require.NoError(t, db.Create(user).Error)
		return user
	}

	t.Run("active account passes", func(t *testing.T) {
		user := newUser(t, nil)
		app := banGateApp(db, principal(user.ID, user.Role))

		resp, err := app.Test(httptest.NewRequest("POST", "/write", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("no principal is unauthorized", func(t *testing.T) {
		app := banGateApp(db)

		resp, err := app.Test(httptest.NewRequest("POST", "/write", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("token for a deleted account is rejected", func(t *testing.T) {
		app := banGateApp(db, principal(uuid.New(), models.RoleUser))

		resp, err := app.Test(httptest.NewRequest("POST", "/write", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("permanent ban blocks", func(t *testing.T) {
		user := newUser(t, func(u *models.User) { u.IsActive = false })
		app := banGateApp(db, principal(user.ID, user.Role))

		resp, err := app.Test(httptest.NewRequest("POST", "/write", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("temporary ban blocks and names the expiry", func(t *testing.T) {
		until := time.Now().Add(24 * time.Hour)
		user := newUser(t, func(u *models.User) { u.BannedUntil = &until })
		app := banGateApp(db, principal(user.ID, user.Role))

		resp, err := app.Test(httptest.NewRequest("POST", "/write", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Contains(t, body, "bannedUntil")
	})

	t.Run("expired temporary ban passes", func(t *testing.T) {
		past := time.Now().Add(-time.Hour)
		user := newUser(t, func(u *models.User) { u.BannedUntil = &past })
		app := banGateApp(db, principal(user.ID, user.Role))

		resp, err := app.Test(httptest.NewRequest("POST", "/write", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

func TestRequireRoles(t *testing.T) {
	db := setupTestDB(t)

	newApp := func(pre ...fiber.Handler) *fiber.App {
		app := fiber.New()
		for _, h := range pre {
			app.Use(h)
		}
		app.Use(RequireRoles(db, models.RoleModerator, models.RoleAdmin))
		app.Get("/panel", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true})
		})
		return app
	}

	t.Run("moderator passes", func(t *testing.T) {
		app := newApp(principal(uuid.New(), models.RoleModerator))
		resp, err := app.Test(httptest.NewRequest("GET", "/panel", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("plain user is forbidden", func(t *testing.T) {
		app := newApp(principal(uuid.New(), models.RoleUser))
		resp, err := app.Test(httptest.NewRequest("GET", "/panel", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("missing role claim falls back to the stored account", func(t *testing.T) {
		user := models.User{
			ID:       uuid.New(),
			Username: "stored-mod",
			Email:    "stored-mod@example.com",
			Password: "x",
			Role:     models.RoleModerator,
			IsActive: true,
		}
		require.NoError(t, db.Create(&user).Error)

		app := newApp(principal(user.ID, ""))
		resp, err := app.Test(httptest.NewRequest("GET", "/panel", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}
