package dto

import "github.com/ahmetcoskunkizilkaya/duotrack/internal/models"

type CreatePostRequest struct {
	Topic              string `json:"topic"`
	ProblemsSolved     string `json:"problems_solved"`
	TotalProblemsCount int    `json:"total_problems_count"`
	Tips               string `json:"tips"`
	Learnings          string `json:"learnings"`
	Resources          string `json:"resources"`
	TimeSpent          string `json:"time_spent"`
	Difficulty         string `json:"difficulty"`
	Category           string `json:"category"`
}

type UpdatePostRequest struct {
	Topic          *string `json:"topic"`
	ProblemsSolved *string `json:"problems_solved"`
	Tips           *string `json:"tips"`
	Learnings      *string `json:"learnings"`
	Resources      *string `json:"resources"`
	TimeSpent      *string `json:"time_spent"`
	Difficulty     *string `json:"difficulty"`
	Category       *string `json:"category"`
}

type CommentRequest struct {
	Text string `json:"text"`
}

type LikeResponse struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}

// CreatePostResponse reports the post and the streak it produced.
type CreatePostResponse struct {
	Post          models.Post `json:"post"`
	Streak        int         `json:"streak"`
	StreakChanged bool        `json:"streak_changed"`
}
