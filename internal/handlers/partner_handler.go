package handlers

import (
	"github.com/ahmetcoskunkizilkaya/duotrack/internal/dto"
	"github.com/ahmetcoskunkizilkaya/duotrack/internal/identity"
	"github.com/ahmetcoskunkizilkaya/duotrack/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type PartnerHandler struct {
	partnerService *services.PartnerService
}

func NewPartnerHandler(partnerService *services.PartnerService) *PartnerHandler {
	return &PartnerHandler{partnerService: partnerService}
}

func (h *PartnerHandler) SendRequest(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.SendPartnerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	name, err := h.partnerService.SendRequest(c.UserContext(), userID, req.Email)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SendPartnerResponse{
		Message:     "Partner request sent",
		PartnerName: name,
	})
}

func (h *PartnerHandler) ListRequests(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	pending, err := h.partnerService.ListPendingRequests(c.UserContext(), userID)
	if err != nil {
		return writeError(c, err)
	}

	resp := dto.PendingRequestsResponse{Requests: make([]dto.PendingRequestResponse, 0, len(pending))}
	for _, p := range pending {
		resp.Requests = append(resp.Requests, dto.PendingRequestResponse{
			FromID:    p.FromID,
			FromName:  p.FromName,
			FromEmail: p.FromEmail,
		})
	}
	return c.JSON(resp)
}

func (h *PartnerHandler) Accept(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.PartnerActionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.PartnerID == uuid.Nil {
		return badRequest(c, "partner_id is required")
	}

	if err := h.partnerService.AcceptRequest(c.UserContext(), userID, req.PartnerID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Partner request accepted"})
}

func (h *PartnerHandler) Reject(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.PartnerActionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.PartnerID == uuid.Nil {
		return badRequest(c, "partner_id is required")
	}

	if err := h.partnerService.RejectRequest(c.UserContext(), userID, req.PartnerID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Partner request rejected"})
}

func (h *PartnerHandler) Remove(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	if err := h.partnerService.RemovePartner(c.UserContext(), userID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Partner removed"})
}

func (h *PartnerHandler) Details(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	partner, err := h.partnerService.GetPartner(c.UserContext(), userID)
	if err != nil {
		return writeError(c, err)
	}

	var resp dto.PartnerDetailsResponse
	if partner != nil {
		details := dto.NewUserResponse(partner)
		resp.Partner = &details
	}
	return c.JSON(resp)
}
