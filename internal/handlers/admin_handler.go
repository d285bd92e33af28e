package handlers

import (
	"github.com/ahmetcoskunkizilkaya/duotrack/internal/dto"
	"github.com/ahmetcoskunkizilkaya/duotrack/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	reconcileService *services.ReconcileService
}

func NewAdminHandler(reconcileService *services.ReconcileService) *AdminHandler {
	return &AdminHandler{reconcileService: reconcileService}
}

func (h *AdminHandler) ReconcilePartners(c *fiber.Ctx) error {
	repaired, err := h.reconcileService.RepairAsymmetricPairs(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ReconcileResponse{Repaired: repaired, Count: len(repaired)})
}
