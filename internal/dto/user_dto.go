package dto

import "github.com/google/uuid"

// UpdateProfileRequest changes only the fields that are present.
type UpdateProfileRequest struct {
	Name      *string `json:"name"`
	Mobile    *string `json:"mobile"`
	Course    *string `json:"course"`
	College   *string `json:"college"`
	Year      *string `json:"year"`
	StartDate *string `json:"start_date"`
}

type StreakResponse struct {
	CurrentStreak    int    `json:"current_streak"`
	LongestStreak    int    `json:"longest_streak"`
	LastActivityDate string `json:"last_activity_date,omitempty"`
	PostedToday      bool   `json:"posted_today"`
	Alive            bool   `json:"alive"`
}

type LeaderboardEntry struct {
	Rank       int       `json:"rank"`
	UserID     uuid.UUID `json:"user_id"`
	Name       string    `json:"name"`
	DSAScore   int       `json:"dsa_score"`
	DevScore   int       `json:"dev_score"`
	TotalScore int       `json:"total_score"`
	Streak     int       `json:"streak"`
}

type LeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// UserSummary is what other users may see of an account.
type UserSummary struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	HasPartner bool      `json:"has_partner"`
}
