package services

import (
	"context"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/duotrack/internal/dto"
	"github.com/ahmetcoskunkizilkaya/duotrack/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const weeklyWindowDays = 7

// scoreColumns maps the public field names to their counters.
var scoreColumns = map[string]string{
	"dsa": "dsa_score",
	"dev": "dev_score",
}

// ProgressService edits the score counters. The streak is owned by
// StreakService and is read-only here.
type ProgressService struct {
	db       *gorm.DB
	profiles *ProfileService
}

func NewProgressService(db *gorm.DB) *ProgressService {
	return &ProgressService{db: db, profiles: NewProfileService(db)}
}

func (s *ProgressService) Get(ctx context.Context, userID uuid.UUID) (*dto.ProgressResponse, error) {
	user, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return progressResponse(user), nil
}

func (s *ProgressService) Update(ctx context.Context, userID uuid.UUID, req *dto.UpdateProgressRequest) (*dto.ProgressResponse, error) {
	updates := map[string]interface{}{}
	if req.DSAScore != nil {
		if *req.DSAScore < 0 {
			return nil, invalidInput("dsa_score cannot be negative")
		}
		updates["dsa_score"] = *req.DSAScore
	}
	if req.DevScore != nil {
		if *req.DevScore < 0 {
			return nil, invalidInput("dev_score cannot be negative")
		}
		updates["dev_score"] = *req.DevScore
	}
	if len(updates) == 0 {
		return nil, invalidInput("nothing to update")
	}

	result := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update progress: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrUserNotFound
	}
	return s.Get(ctx, userID)
}

// Increment adds amount to one counter with a single additive UPDATE.
func (s *ProgressService) Increment(ctx context.Context, userID uuid.UUID, req *dto.IncrementProgressRequest) (*dto.ProgressResponse, error) {
	column, ok := scoreColumns[req.Field]
	if !ok {
		return nil, invalidInput("field must be dsa or dev")
	}
	if req.Amount < 1 {
		return nil, invalidInput("amount must be at least 1")
	}

	result := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn(column, gorm.Expr(column+" + ?", req.Amount))
	if result.Error != nil {
		return nil, fmt.Errorf("failed to increment progress: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrUserNotFound
	}
	return s.Get(ctx, userID)
}

// Weekly counts the user's posts per category for the seven days ending
// on today, oldest first.
func (s *ProgressService) Weekly(ctx context.Context, userID uuid.UUID, today datatypes.Date) (*dto.WeeklyProgressResponse, error) {
	from := AddDays(today, -(weeklyWindowDays - 1))

	var posts []models.Post
	if err := s.db.WithContext(ctx).
		Select("post_date", "category").
		Where("user_id = ? AND post_date >= ? AND post_date <= ?", userID, from, AddDays(today, 0)).
		Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("failed to load weekly posts: %w", err)
	}

	days := make([]dto.WeeklyDay, weeklyWindowDays)
	for i := range days {
		days[i].Date = FormatCalendarDay(AddDays(from, i))
	}
	for _, post := range posts {
		i := DaysBetween(from, post.PostDate)
		if i < 0 || i >= weeklyWindowDays {
			continue
		}
		switch post.Category {
		case models.CategoryDev:
			days[i].Dev++
		case models.CategoryGeneral:
			days[i].General++
		default:
			days[i].DSA++
		}
		days[i].Total++
	}
	return &dto.WeeklyProgressResponse{Days: days}, nil
}

func progressResponse(user *models.User) *dto.ProgressResponse {
	resp := &dto.ProgressResponse{
		DSAScore:   user.DSAScore,
		DevScore:   user.DevScore,
		TotalScore: user.TotalScore(),
		Streak:     user.Streak,
	}
	if user.LastActivityDate != nil {
		resp.LastActivityDate = FormatCalendarDay(*user.LastActivityDate)
	}
	return resp
}
