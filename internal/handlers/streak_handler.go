package handlers

import (
	"github.com/ahmetcoskunkizilkaya/duotrack/internal/dto"
	"github.com/ahmetcoskunkizilkaya/duotrack/internal/identity"
	"github.com/ahmetcoskunkizilkaya/duotrack/internal/services"
	"github.com/gofiber/fiber/v2"
)

type StreakHandler struct {
	streakService *services.StreakService
	days          *DayResolver
}

func NewStreakHandler(streakService *services.StreakService, days *DayResolver) *StreakHandler {
	return &StreakHandler{streakService: streakService, days: days}
}

func (h *StreakHandler) Status(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	status, err := h.streakService.Status(c.UserContext(), userID, h.days.Today(c))
	if err != nil {
		return writeError(c, err)
	}

	resp := dto.StreakResponse{
		CurrentStreak: status.CurrentStreak,
		LongestStreak: status.LongestStreak,
		PostedToday:   status.PostedToday,
		Alive:         status.Alive,
	}
	if status.LastActivityDate != nil {
		resp.LastActivityDate = services.FormatCalendarDay(*status.LastActivityDate)
	}
	return c.JSON(resp)
}

func (h *StreakHandler) Leaderboard(c *fiber.Ctx) error {
	users, err := h.streakService.Leaderboard(c.UserContext(), c.QueryInt("limit", services.DefaultLeaderboardSize))
	if err != nil {
		return writeError(c, err)
	}

	resp := dto.LeaderboardResponse{Entries: make([]dto.LeaderboardEntry, 0, len(users))}
	for i := range users {
		u := &users[i]
		resp.Entries = append(resp.Entries, dto.LeaderboardEntry{
			Rank:       i + 1,
			UserID:     u.ID,
			Name:       u.Name,
			DSAScore:   u.DSAScore,
			DevScore:   u.DevScore,
			TotalScore: u.TotalScore(),
			Streak:     u.Streak,
		})
	}
	return c.JSON(resp)
}
