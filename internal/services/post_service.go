package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/duotrack/internal/dto"
	"github.com/ahmetcoskunkizilkaya/duotrack/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	FeedAll     = "all"
	FeedMine    = "my"
	FeedPartner = "partner"

	DefaultFeedSize = 50
	MaxFeedSize     = 200
)

// ActivityRecorder advances a user's streak for a qualifying activity.
type ActivityRecorder interface {
	RecordActivity(ctx context.Context, userID uuid.UUID, today datatypes.Date) (int, bool, error)
}

type PostService struct {
	db      *gorm.DB
	filter  *ContentFilter
	streaks ActivityRecorder
}

func NewPostService(db *gorm.DB, filter *ContentFilter, streaks ActivityRecorder) *PostService {
	return &PostService{db: db, filter: filter, streaks: streaks}
}

// Create stores a daily post, adds its problem count to the author's DSA
// score and records the post as today's activity.
func (s *PostService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreatePostRequest, today datatypes.Date) (*dto.CreatePostResponse, error) {
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return nil, invalidInput("topic is required")
	}
	if req.TotalProblemsCount < 0 {
		return nil, invalidInput("total_problems_count cannot be negative")
	}
	difficulty, err := normalizeDifficulty(req.Difficulty)
	if err != nil {
		return nil, err
	}
	category, err := normalizeCategory(req.Category)
	if err != nil {
		return nil, err
	}
	if err := s.filter.Validate(topic, req.ProblemsSolved, req.Tips, req.Learnings); err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load author: %w", err)
	}

	post := models.Post{
		ID:                 uuid.New(),
		UserID:             userID,
		UserName:           user.Name,
		Topic:              topic,
		ProblemsSolved:     req.ProblemsSolved,
		TotalProblemsCount: req.TotalProblemsCount,
		PostDate:           AddDays(today, 0),
		Tips:               req.Tips,
		Learnings:          req.Learnings,
		Resources:          req.Resources,
		TimeSpent:          req.TimeSpent,
		Difficulty:         difficulty,
		Category:           category,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&post).Error; err != nil {
			return fmt.Errorf("failed to create post: %w", err)
		}
		if post.TotalProblemsCount == 0 {
			return nil
		}
		return tx.Model(&models.User{}).
			Where("id = ?", userID).
			UpdateColumn("dsa_score", gorm.Expr("dsa_score + ?", post.TotalProblemsCount)).Error
	})
	if err != nil {
		return nil, err
	}

	streak, changed, err := s.streaks.RecordActivity(ctx, userID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to record activity: %w", err)
	}

	return &dto.CreatePostResponse{Post: post, Streak: streak, StreakChanged: changed}, nil
}

// Feed lists posts newest first. "all" covers the caller and their partner;
// the partner feed of an unpaired user is empty.
func (s *PostService) Feed(ctx context.Context, userID uuid.UUID, filter string, limit int) ([]models.Post, error) {
	if limit < 1 {
		limit = DefaultFeedSize
	}
	if limit > MaxFeedSize {
		limit = MaxFeedSize
	}

	query := s.db.WithContext(ctx).Model(&models.Post{})
	switch filter {
	case FeedMine:
		query = query.Where("user_id = ?", userID)
	case "", FeedAll, FeedPartner:
		var user models.User
		if err := s.db.WithContext(ctx).Select("id", "partner_id").First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, fmt.Errorf("failed to load user: %w", err)
		}
		if filter == FeedPartner {
			if !user.HasPartner() {
				return []models.Post{}, nil
			}
			query = query.Where("user_id = ?", *user.PartnerID)
			break
		}
		// The shared feed is the pair's posts only.
		authors := []uuid.UUID{userID}
		if user.HasPartner() {
			authors = append(authors, *user.PartnerID)
		}
		query = query.Where("user_id IN ?", authors)
	default:
		return nil, invalidInput("filter must be all, my or partner")
	}

	var posts []models.Post
	if err := query.
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("failed to load feed: %w", err)
	}
	return posts, nil
}

func (s *PostService) Get(ctx context.Context, postID uuid.UUID) (*models.Post, error) {
	var post models.Post
	err := s.db.WithContext(ctx).
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&post, "id = ?", postID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to load post: %w", err)
	}
	return &post, nil
}

// Update edits the post's text fields. Counts and dates are fixed once
// the post exists since they have already fed the score and streak.
func (s *PostService) Update(ctx context.Context, userID uuid.UUID, postID uuid.UUID, req *dto.UpdatePostRequest) (*models.Post, error) {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		return nil, ErrNotOwner
	}

	updates := map[string]interface{}{}
	var texts []string
	setText := func(column string, value *string) {
		if value != nil {
			updates[column] = *value
			texts = append(texts, *value)
		}
	}
	if req.Topic != nil && strings.TrimSpace(*req.Topic) == "" {
		return nil, invalidInput("topic cannot be empty")
	}
	setText("topic", req.Topic)
	setText("problems_solved", req.ProblemsSolved)
	setText("tips", req.Tips)
	setText("learnings", req.Learnings)
	if req.Resources != nil {
		updates["resources"] = *req.Resources
	}
	if req.TimeSpent != nil {
		updates["time_spent"] = *req.TimeSpent
	}
	if req.Difficulty != nil {
		difficulty, err := normalizeDifficulty(*req.Difficulty)
		if err != nil {
			return nil, err
		}
		updates["difficulty"] = difficulty
	}
	if req.Category != nil {
		category, err := normalizeCategory(*req.Category)
		if err != nil {
			return nil, err
		}
		updates["category"] = category
	}
	if err := s.filter.Validate(texts...); err != nil {
		return nil, err
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", postID).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update post: %w", err)
		}
	}
	return s.Get(ctx, postID)
}

func (s *PostService) Delete(ctx context.Context, userID uuid.UUID, postID uuid.UUID) error {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return ErrNotOwner
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.PostLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, "id = ?", postID).Error
	})
}

// ToggleLike flips userID's like on the post and returns the new state.
func (s *PostService) ToggleLike(ctx context.Context, userID uuid.UUID, postID uuid.UUID) (*dto.LikeResponse, error) {
	var resp dto.LikeResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Select("id").First(&post, "id = ?", postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPostNotFound
			}
			return err
		}

		removed := tx.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.PostLike{})
		if removed.Error != nil {
			return removed.Error
		}
		delta := -1
		if removed.RowsAffected == 0 {
			if err := tx.Create(&models.PostLike{PostID: postID, UserID: userID}).Error; err != nil {
				return err
			}
			delta = 1
			resp.Liked = true
		}

		if err := tx.Model(&models.Post{}).Where("id = ?", postID).
			UpdateColumn("like_count", gorm.Expr("like_count + ?", delta)).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).Select("like_count").Where("id = ?", postID).Scan(&resp.LikeCount).Error
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *PostService) AddComment(ctx context.Context, userID uuid.UUID, postID uuid.UUID, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, invalidInput("comment text is required")
	}
	if err := s.filter.Validate(text); err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, postID); err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.WithContext(ctx).Select("id", "name").First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load commenter: %w", err)
	}

	comment := models.Comment{
		ID:       uuid.New(),
		PostID:   postID,
		UserID:   userID,
		UserName: user.Name,
		Text:     text,
	}
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return &comment, nil
}

func normalizeDifficulty(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return models.DifficultyMedium, nil
	case models.DifficultyEasy:
		return models.DifficultyEasy, nil
	case models.DifficultyMedium:
		return models.DifficultyMedium, nil
	case models.DifficultyHard:
		return models.DifficultyHard, nil
	}
	return "", invalidInput("difficulty must be easy, medium or hard")
}

func normalizeCategory(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "dsa":
		return models.CategoryDSA, nil
	case "dev":
		return models.CategoryDev, nil
	case "general":
		return models.CategoryGeneral, nil
	}
	return "", invalidInput("category must be DSA, Dev or General")
}
