package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

const (
	CategoryDSA     = "DSA"
	CategoryDev     = "Dev"
	CategoryGeneral = "General"
)

// Post is a daily progress log. Creating one counts as the qualifying
// activity for the author's streak.
type Post struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             uuid.UUID      `gorm:"type:uuid;not null;index:idx_posts_user_created,priority:1" json:"user_id"`
	UserName           string         `gorm:"size:120" json:"user_name"`
	Topic              string         `gorm:"size:200;not null" json:"topic"`
	ProblemsSolved     string         `gorm:"type:text" json:"problems_solved"`
	TotalProblemsCount int            `gorm:"not null;default:0" json:"total_problems_count"`
	PostDate           datatypes.Date `gorm:"index" json:"post_date"`
	Tips               string         `gorm:"type:text" json:"tips"`
	Learnings          string         `gorm:"type:text" json:"learnings"`
	Resources          string         `gorm:"type:text" json:"resources"`
	TimeSpent          string         `gorm:"size:50" json:"time_spent"`
	Difficulty         string         `gorm:"size:10;default:'medium'" json:"difficulty"`
	Category           string         `gorm:"size:10;default:'DSA'" json:"category"`
	LikeCount          int            `gorm:"not null;default:0" json:"like_count"`
	CreatedAt          time.Time      `gorm:"index:idx_posts_user_created,priority:2" json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	Comments           []Comment      `gorm:"foreignKey:PostID" json:"comments,omitempty"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type Comment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PostID    uuid.UUID `gorm:"type:uuid;not null;index" json:"post_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	UserName  string    `gorm:"size:120" json:"user_name"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// PostLike records one user's like; the unique pair makes likes a set.
type PostLike struct {
	PostID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"post_id"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
