package middleware

import (
	"github.com/ahmetcoskunkizilkaya/duotrack/internal/config"
	"github.com/ahmetcoskunkizilkaya/duotrack/internal/dto"
	"github.com/ahmetcoskunkizilkaya/duotrack/internal/identity"
	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

// JWTProtected admits requests carrying a valid HS256 access token whose
// subject is a user id. The caller is attached to the Sentry scope.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{
			JWTAlg: jwtware.HS256,
			Key:    []byte(cfg.JWTSecret),
		},
		ContextKey: identity.LocalsKey,
		SuccessHandler: func(c *fiber.Ctx) error {
			userID, err := identity.GetUserID(c)
			if err != nil {
				return rejectToken(c)
			}
			if hub := sentryfiber.GetHubFromContext(c); hub != nil {
				hub.Scope().SetUser(sentry.User{ID: userID.String(), Email: identity.GetEmail(c)})
			}
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return rejectToken(c)
		},
	})
}

func rejectToken(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error:   true,
		Message: "Unauthorized: invalid or expired token",
	})
}
