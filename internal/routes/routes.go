package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/opentales/opentales-backend/internal/config"
	"github.com/opentales/opentales-backend/internal/handlers"
	"github.com/opentales/opentales-backend/internal/middleware"
	"github.com/opentales/opentales-backend/internal/models"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	postHandler *handlers.PostHandler,
	commentHandler *handlers.CommentHandler,
	groupHandler *handlers.GroupHandler,
	moderationHandler *handlers.ModerationHandler,
) {
	api := app.Group("/api")

	api.Get("/health", handlers.Health)

	// Middleware chains. Public reads decode a token when one is presented so
	// caller-relative fields resolve; mutations require a token and pass the
	// ban gate; the moderation panel additionally checks the role.
	optional := middleware.OptionalJWT(cfg)
	jwt := middleware.JWTProtected(cfg)
	banGate := middleware.BanGate(db)
	modOnly := middleware.RequireRoles(db, models.RoleModerator, models.RoleAdmin)
	adminOnly := middleware.RequireRoles(db, models.RoleAdmin)

	// Auth
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", jwt, authHandler.Logout)
	auth.Post("/register-admin", jwt, adminOnly, authHandler.RegisterAdmin)
	auth.Get("/me", jwt, authHandler.Profile)
	auth.Put("/profile", jwt, authHandler.UpdateProfile)
	auth.Put("/change-password", jwt, authHandler.ChangePassword)

	// Posts. Specific segments register before the :id wildcard.
	posts := api.Group("/posts")
	posts.Get("/", optional, postHandler.List)
	posts.Post("/", jwt, banGate, postHandler.Create)
	posts.Get("/my/posts", jwt, banGate, postHandler.ListMine)
	posts.Get("/category/:category", optional, postHandler.ListByCategory)
	posts.Get("/tags/:tag", optional, postHandler.ListByTag)
	posts.Get("/user/:userId", optional, postHandler.ListByAuthor)
	posts.Get("/:id", optional, postHandler.Get)
	posts.Put("/:id", jwt, banGate, postHandler.Update)
	posts.Delete("/:id", jwt, banGate, postHandler.Delete)
	posts.Post("/:id/like", jwt, banGate, postHandler.ToggleLike)

	// Comments
	comments := api.Group("/comments")
	comments.Post("/", jwt, banGate, commentHandler.Create)
	comments.Get("/post/:postId", optional, commentHandler.ListByPost)
	comments.Put("/:id", jwt, banGate, commentHandler.Update)
	comments.Delete("/:id", jwt, banGate, commentHandler.Delete)
	comments.Post("/:id/like", jwt, banGate, commentHandler.ToggleLike)

	// Groups
	groups := api.Group("/groups")
	groups.Get("/", optional, groupHandler.List)
	groups.Post("/", jwt, banGate, groupHandler.Create)
	groups.Get("/:id", optional, groupHandler.Get)
	groups.Put("/:id", jwt, banGate, groupHandler.Update)
	groups.Delete("/:id", jwt, banGate, groupHandler.Delete)
	groups.Post("/:id/join", jwt, banGate, groupHandler.Join)
	groups.Post("/:id/leave", jwt, banGate, groupHandler.Leave)
	groups.Get("/:id/posts", optional, groupHandler.Posts)
	groups.Post("/:id/moderators", jwt, banGate, groupHandler.AddModerator)
	groups.Delete("/:id/moderators/:userId", jwt, banGate, groupHandler.RemoveModerator)
	groups.Post("/:id/transfer-ownership", jwt, banGate, groupHandler.TransferOwnership)

	// Filing a report is open to any member in good standing; the rest of the
	// moderation surface is for site moderators and admins only.
	moderation := api.Group("/moderation")
	moderation.Post("/report", jwt, banGate, moderationHandler.FileReport)
	moderation.Get("/reports", jwt, modOnly, moderationHandler.ListReports)
	moderation.Put("/reports/:id", jwt, modOnly, moderationHandler.ResolveReport)
	moderation.Get("/pending-posts", jwt, modOnly, moderationHandler.ListPendingPosts)
	moderation.Put("/posts/:id", jwt, modOnly, moderationHandler.DecidePost)
}
