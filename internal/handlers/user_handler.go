package handlers

import (
	"github.com/ahmetcoskunkizilkaya/duotrack/internal/dto"
	"github.com/ahmetcoskunkizilkaya/duotrack/internal/identity"
	"github.com/ahmetcoskunkizilkaya/duotrack/internal/services"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	profileService *services.ProfileService
}

func NewUserHandler(profileService *services.ProfileService) *UserHandler {
	return &UserHandler{profileService: profileService}
}

func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	user, err := h.profileService.Get(c.UserContext(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewUserResponse(user))
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.profileService.Update(c.UserContext(), userID, &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewUserResponse(user))
}

// Search looks a user up by exact email, for the partner invite form.
func (h *UserHandler) Search(c *fiber.Ctx) error {
	if _, err := identity.GetUserID(c); err != nil {
		return unauthorized(c)
	}

	user, err := h.profileService.FindByEmail(c.UserContext(), c.Query("email"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.UserSummary{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		HasPartner: user.HasPartner(),
	})
}
