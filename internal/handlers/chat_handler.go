package handlers

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/duotrack/internal/dto"
	"github.com/ahmetcoskunkizilkaya/duotrack/internal/identity"
	"github.com/ahmetcoskunkizilkaya/duotrack/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ChatHandler struct {
	chatService *services.ChatService
}

func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// History serves GET /chat/messages?limit=n&before=RFC3339.
func (h *ChatHandler) History(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var before time.Time
	if raw := c.Query("before"); raw != "" {
		before, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return badRequest(c, "before must be an RFC3339 timestamp")
		}
	}

	messages, err := h.chatService.History(c.UserContext(), userID, c.QueryInt("limit", services.DefaultHistorySize), before)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"messages": messages})
}

func (h *ChatHandler) Send(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	msg, err := h.chatService.Send(c.UserContext(), userID, req.Message, req.Type)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}
