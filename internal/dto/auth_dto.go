package dto

import (
	"github.com/ahmetcoskunkizilkaya/duotrack/internal/models"
	"github.com/google/uuid"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Mobile   string `json:"mobile"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID               uuid.UUID  `json:"id"`
	Email            string     `json:"email"`
	Name             string     `json:"name"`
	Mobile           string     `json:"mobile,omitempty"`
	Course           string     `json:"course,omitempty"`
	College          string     `json:"college,omitempty"`
	Year             string     `json:"year,omitempty"`
	StartDate        string     `json:"start_date,omitempty"`
	PartnerID        *uuid.UUID `json:"partner_id"`
	Streak           int        `json:"streak"`
	LongestStreak    int        `json:"longest_streak"`
	LastActivityDate string     `json:"last_activity_date,omitempty"`
	DSAScore         int        `json:"dsa_score"`
	DevScore         int        `json:"dev_score"`
}

func NewUserResponse(user *models.User) UserResponse {
	resp := UserResponse{
		ID:            user.ID,
		Email:         user.Email,
		Name:          user.Name,
		Mobile:        user.Mobile,
		Course:        user.Course,
		College:       user.College,
		Year:          user.Year,
		Streak:        user.Streak,
		LongestStreak: user.LongestStreak,
		DSAScore:      user.DSAScore,
		DevScore:      user.DevScore,
	}
	if user.HasPartner() {
		id := *user.PartnerID
		resp.PartnerID = &id
	}
	if user.StartDate != nil {
		resp.StartDate = FormatDate(*user.StartDate)
	}
	if user.LastActivityDate != nil {
		resp.LastActivityDate = FormatDate(*user.LastActivityDate)
	}
	return resp
}

type DeleteAccountRequest struct {
	Password string `json:"password"`
}

// ErrorResponse is the body of every failed request. Kind is set when the
// failure has a machine-readable class (not_found, conflict, ...).
type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
