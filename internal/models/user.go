package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User is the account record shared by pairing, streak and scoring.
// Email is stored normalized (trimmed, lower-case) so the unique index is
// case-insensitive.
type User struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Email            string          `gorm:"not null;size:255;uniqueIndex:idx_users_email" json:"email"`
	Password         string          `gorm:"not null" json:"-"`
	Name             string          `gorm:"size:120;not null" json:"name"`
	Role             string          `gorm:"size:20;default:'user'" json:"role"`
	Mobile           string          `gorm:"size:32" json:"mobile"`
	Course           string          `gorm:"size:120" json:"course"`
	College          string          `gorm:"size:200" json:"college"`
	Year             string          `gorm:"size:20" json:"year"`
	StartDate        *datatypes.Date `json:"start_date"`
	PartnerID        *uuid.UUID      `gorm:"type:uuid;index" json:"partner_id"`
	Streak           int             `gorm:"not null;default:0" json:"streak"`
	LongestStreak    int             `gorm:"not null;default:0" json:"longest_streak"`
	LastActivityDate *datatypes.Date `json:"last_activity_date"`
	DSAScore         int             `gorm:"column:dsa_score;not null;default:0" json:"dsa_score"`
	DevScore         int             `gorm:"not null;default:0" json:"dev_score"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	DeletedAt        gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TotalScore is the combined leaderboard score.
func (u User) TotalScore() int {
	return u.DSAScore + u.DevScore
}

func (u User) HasPartner() bool {
	return u.PartnerID != nil && *u.PartnerID != uuid.Nil
}
