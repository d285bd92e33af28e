package handlers

import (
	"github.com/ahmetcoskunkizilkaya/duotrack/internal/dto"
	"github.com/ahmetcoskunkizilkaya/duotrack/internal/identity"
	"github.com/ahmetcoskunkizilkaya/duotrack/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ProgressHandler struct {
	progressService *services.ProgressService
	days            *DayResolver
}

func NewProgressHandler(progressService *services.ProgressService, days *DayResolver) *ProgressHandler {
	return &ProgressHandler{progressService: progressService, days: days}
}

func (h *ProgressHandler) Get(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	resp, err := h.progressService.Get(c.UserContext(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

func (h *ProgressHandler) Update(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.UpdateProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.progressService.Update(c.UserContext(), userID, &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

func (h *ProgressHandler) Increment(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.IncrementProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.progressService.Increment(c.UserContext(), userID, &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

func (h *ProgressHandler) Weekly(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	resp, err := h.progressService.Weekly(c.UserContext(), userID, h.days.Today(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}
