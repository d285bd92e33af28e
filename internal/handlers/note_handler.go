package handlers

import (
	"github.com/ahmetcoskunkizilkaya/duotrack/internal/dto"
	"github.com/ahmetcoskunkizilkaya/duotrack/internal/identity"
	"github.com/ahmetcoskunkizilkaya/duotrack/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type NoteHandler struct {
	noteService *services.NoteService
}

func NewNoteHandler(noteService *services.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

func (h *NoteHandler) Create(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	note, err := h.noteService.Create(c.UserContext(), userID, &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(note)
}

func (h *NoteHandler) List(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	notes, err := h.noteService.List(c.UserContext(), userID, c.Query("scope", services.NotesMine))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"notes": notes})
}

func (h *NoteHandler) Update(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	noteID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid note id")
	}

	var req dto.UpdateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	note, err := h.noteService.Update(c.UserContext(), userID, noteID, &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(note)
}

func (h *NoteHandler) Delete(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	noteID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid note id")
	}

	if err := h.noteService.Delete(c.UserContext(), userID, noteID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Note deleted"})
}
