package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/duotrack/internal/config"
	"github.com/ahmetcoskunkizilkaya/duotrack/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/duotrack/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

type Handlers struct {
	Auth     *handlers.AuthHandler
	Health   *handlers.HealthHandler
	User     *handlers.UserHandler
	Partner  *handlers.PartnerHandler
	Streak   *handlers.StreakHandler
	Progress *handlers.ProgressHandler
	Post     *handlers.PostHandler
	Note     *handlers.NoteHandler
	Chat     *handlers.ChatHandler
	Admin    *handlers.AdminHandler
}

func Setup(app *fiber.App, cfg *config.Config, db *gorm.DB, h Handlers) {
	api := app.Group("/api")

	// General API rate limit per IP
	api.Use(limiter.New(limiter.Config{
		Max:               cfg.RateLimitAPI,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", h.Health.Check)

	// Auth, public. Stricter per-IP limit.
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               cfg.RateLimitAuth,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.Refresh)

	// JWT on individual routes so the public auth routes stay open.
	jwt := middleware.JWTProtected(cfg)
	api.Post("/auth/logout", jwt, h.Auth.Logout)
	api.Delete("/auth/account", jwt, h.Auth.DeleteAccount)
	api.Get("/auth/me", jwt, h.Auth.Me)

	users := api.Group("/users", jwt)
	users.Get("/profile", h.User.GetProfile)
	users.Put("/profile", h.User.UpdateProfile)
	users.Get("/search", h.User.Search)

	partner := api.Group("/partner", jwt)
	partner.Post("/request", h.Partner.SendRequest)
	partner.Get("/requests", h.Partner.ListRequests)
	partner.Post("/accept", h.Partner.Accept)
	partner.Post("/reject", h.Partner.Reject)
	partner.Get("/details", h.Partner.Details)
	partner.Delete("/", h.Partner.Remove)

	api.Get("/streak", jwt, h.Streak.Status)
	api.Get("/leaderboard", jwt, h.Streak.Leaderboard)

	progress := api.Group("/progress", jwt)
	progress.Get("/", h.Progress.Get)
	progress.Post("/update", h.Progress.Update)
	progress.Post("/increment", h.Progress.Increment)
	progress.Get("/weekly", h.Progress.Weekly)

	posts := api.Group("/posts", jwt)
	posts.Get("/", h.Post.Feed)
	posts.Post("/", h.Post.Create)
	posts.Get("/:id", h.Post.Get)
	posts.Put("/:id", h.Post.Update)
	posts.Delete("/:id", h.Post.Delete)
	posts.Post("/:id/like", h.Post.ToggleLike)
	posts.Post("/:id/comments", h.Post.AddComment)

	notes := api.Group("/notes", jwt)
	notes.Get("/", h.Note.List)
	notes.Post("/", h.Note.Create)
	notes.Put("/:id", h.Note.Update)
	notes.Delete("/:id", h.Note.Delete)

	chat := api.Group("/chat", jwt)
	chat.Get("/messages", h.Chat.History)
	chat.Post("/messages", h.Chat.Send)

	admin := api.Group("/admin", jwt, middleware.AdminRequired(db, cfg))
	admin.Post("/partners/reconcile", h.Admin.ReconcilePartners)
}
