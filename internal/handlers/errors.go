package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/duotrack/internal/dto"
	"github.com/ahmetcoskunkizilkaya/duotrack/internal/services"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
)

var kindStatus = map[services.ErrorKind]int{
	services.KindNotFound:           fiber.StatusNotFound,
	services.KindConflict:           fiber.StatusConflict,
	services.KindPreconditionFailed: fiber.StatusPreconditionFailed,
	services.KindInvalidInput:       fiber.StatusBadRequest,
}

// writeError turns a service error into a response. Operation failures
// keep their message and kind; anything else is a 500 that is logged and
// sent to Sentry.
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrInvalidToken):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrNotOwner):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	var op *services.OpError
	if errors.As(err, &op) {
		status, ok := kindStatus[op.Kind]
		if !ok {
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(dto.ErrorResponse{
			Error: true, Message: op.Error(), Kind: string(op.Kind),
		})
	}

	slog.Error("request failed",
		"method", c.Method(),
		"path", c.Path(),
		"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
		"error", err.Error(),
	)
	if hub := sentryfiber.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: message, Kind: string(services.KindInvalidInput),
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}
