// Package server assembles the Fiber application: services over the
// database, their handlers, global middleware and routes.
package server

import (
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/duotrack/internal/config"
	"github.com/ahmetcoskunkizilkaya/duotrack/internal/dto"
	"github.com/ahmetcoskunkizilkaya/duotrack/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/duotrack/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/duotrack/internal/repository"
	"github.com/ahmetcoskunkizilkaya/duotrack/internal/routes"
	"github.com/ahmetcoskunkizilkaya/duotrack/internal/services"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

type Options struct {
	// Days overrides how handlers decide the request's calendar day.
	Days *handlers.DayResolver
	// Quiet drops the per-request access log.
	Quiet bool
}

func New(cfg *config.Config, db *gorm.DB, opts Options) *fiber.App {
	users := repository.NewUserRepository(db)
	filter := services.NewContentFilter()

	authService := services.NewAuthService(db, cfg)
	profileService := services.NewProfileService(db)
	partnerService := services.NewPartnerService(users)
	streakService := services.NewStreakService(users)
	progressService := services.NewProgressService(db)
	postService := services.NewPostService(db, filter, streakService)
	noteService := services.NewNoteService(db, filter)
	chatService := services.NewChatService(db, filter)
	reconcileService := services.NewReconcileService(users)

	days := opts.Days
	if days == nil {
		days = handlers.NewDayResolver(cfg.Location())
	}

	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))
	app.Use(recover.New())
	app.Use(requestid.New())
	if !opts.Quiet {
		app.Use(fiberlogger.New(fiberlogger.Config{
			Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
		}))
	}
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())

	routes.Setup(app, cfg, db, routes.Handlers{
		Auth:     handlers.NewAuthHandler(authService, profileService),
		Health:   handlers.NewHealthHandler(db),
		User:     handlers.NewUserHandler(profileService),
		Partner:  handlers.NewPartnerHandler(partnerService),
		Streak:   handlers.NewStreakHandler(streakService, days),
		Progress: handlers.NewProgressHandler(progressService, days),
		Post:     handlers.NewPostHandler(postService, days),
		Note:     handlers.NewNoteHandler(noteService),
		Chat:     handlers.NewChatHandler(chatService),
		Admin:    handlers.NewAdminHandler(reconcileService),
	})

	return app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only client errors expose their message.
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.ErrorResponse{
		Error:   true,
		Message: message,
	})
}
