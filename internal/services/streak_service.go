package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/ahmetcoskunkizilkaya/duotrack/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	DefaultLeaderboardSize = 50
	MaxLeaderboardSize     = 200
)

type StreakService struct {
	users UserStore
}

func NewStreakService(users UserStore) *StreakService {
	return &StreakService{users: users}
}

// StreakStatus is the read model behind the streak indicator.
type StreakStatus struct {
	CurrentStreak    int
	LongestStreak    int
	LastActivityDate *datatypes.Date
	PostedToday      bool
	Alive            bool
}

// RecordActivity advances userID's streak for an activity on today and
// returns the resulting streak and whether its value changed. The row is
// locked for the read-modify-write so concurrent same-day activity cannot
// double count.
func (s *StreakService) RecordActivity(ctx context.Context, userID uuid.UUID, today datatypes.Date) (int, bool, error) {
	var transition StreakTransition
	err := s.users.Transaction(ctx, func(tx UserStore) error {
		user, found, err := tx.FindByIDForUpdate(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to load user: %w", err)
		}
		if !found {
			return ErrUserNotFound
		}

		transition = AdvanceStreak(user.Streak, user.LastActivityDate, today)
		if !transition.Updated {
			return nil
		}

		longest := user.LongestStreak
		if transition.Streak > longest {
			longest = transition.Streak
		}
		if err := tx.UpdateStreak(ctx, userID, transition.Streak, longest, transition.LastActivityDate); err != nil {
			return fmt.Errorf("failed to update streak: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, false, err
	}
	return transition.Streak, transition.Changed, nil
}

// Status reports the streak as seen on today. A streak whose last activity
// is older than yesterday is reported as zero, since the next activity will
// restart it.
func (s *StreakService) Status(ctx context.Context, userID uuid.UUID, today datatypes.Date) (*StreakStatus, error) {
	user, found, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !found {
		return nil, ErrUserNotFound
	}

	status := &StreakStatus{
		CurrentStreak:    user.Streak,
		LongestStreak:    user.LongestStreak,
		LastActivityDate: user.LastActivityDate,
		Alive:            StreakAlive(user.LastActivityDate, today),
	}
	if user.LastActivityDate != nil {
		status.PostedToday = DaysBetween(*user.LastActivityDate, today) <= 0
	}
	if !status.Alive {
		status.CurrentStreak = 0
	}
	return status, nil
}

// Leaderboard returns up to limit users ranked by RankLeaderboard.
func (s *StreakService) Leaderboard(ctx context.Context, limit int) ([]models.User, error) {
	if limit < 1 {
		limit = DefaultLeaderboardSize
	}
	if limit > MaxLeaderboardSize {
		limit = MaxLeaderboardSize
	}

	users, err := s.users.ListUsers(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}
	return RankLeaderboard(users), nil
}

// RankLeaderboard orders users by combined dsa+dev score, highest first,
// breaking ties by id so the order is stable across calls.
func RankLeaderboard(users []models.User) []models.User {
	ranked := make([]models.User, len(users))
	copy(ranked, users)
	sort.SliceStable(ranked, func(i, j int) bool {
		left, right := ranked[i].TotalScore(), ranked[j].TotalScore()
		if left != right {
			return left > right
		}
		return ranked[i].ID.String() < ranked[j].ID.String()
	})
	return ranked
}
