package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/duotrack/internal/dto"
	"github.com/ahmetcoskunkizilkaya/duotrack/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	NotesMine    = "my"
	NotesPartner = "partner"
	NotesAll     = "all"
)

// NoteService keeps study notes. A note is readable by its author and the
// author's partner, and writable by the author only.
type NoteService struct {
	db     *gorm.DB
	filter *ContentFilter
}

func NewNoteService(db *gorm.DB, filter *ContentFilter) *NoteService {
	return &NoteService{db: db, filter: filter}
}

func (s *NoteService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateNoteRequest) (*models.Note, error) {
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		return nil, invalidInput("title and content are required")
	}
	category, err := normalizeCategory(req.Category)
	if err != nil {
		return nil, err
	}
	if err := s.filter.Validate(title, content); err != nil {
		return nil, err
	}

	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	note := models.Note{
		ID:       uuid.New(),
		UserID:   userID,
		UserName: user.Name,
		Title:    title,
		Content:  content,
		Category: category,
	}
	if err := s.db.WithContext(ctx).Create(&note).Error; err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	return &note, nil
}

// List returns notes newest first for scope my, partner or all (both).
func (s *NoteService) List(ctx context.Context, userID uuid.UUID, scope string) ([]models.Note, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var owners []uuid.UUID
	switch scope {
	case "", NotesMine:
		owners = []uuid.UUID{userID}
	case NotesPartner:
		if user.HasPartner() {
			owners = []uuid.UUID{*user.PartnerID}
		}
	case NotesAll:
		owners = []uuid.UUID{userID}
		if user.HasPartner() {
			owners = append(owners, *user.PartnerID)
		}
	default:
		return nil, invalidInput("scope must be my, partner or all")
	}
	if len(owners) == 0 {
		return []models.Note{}, nil
	}

	var notes []models.Note
	if err := s.db.WithContext(ctx).
		Where("user_id IN ?", owners).
		Order("created_at DESC").
		Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}

func (s *NoteService) Update(ctx context.Context, userID uuid.UUID, noteID uuid.UUID, req *dto.UpdateNoteRequest) (*models.Note, error) {
	note, err := s.ownedNote(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, invalidInput("title cannot be empty")
		}
		updates["title"] = title
	}
	if req.Content != nil {
		content := strings.TrimSpace(*req.Content)
		if content == "" {
			return nil, invalidInput("content cannot be empty")
		}
		updates["content"] = content
	}
	if req.Category != nil {
		category, err := normalizeCategory(*req.Category)
		if err != nil {
			return nil, err
		}
		updates["category"] = category
	}
	title, _ := updates["title"].(string)
	content, _ := updates["content"].(string)
	if err := s.filter.Validate(title, content); err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return note, nil
	}

	if err := s.db.WithContext(ctx).Model(note).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}
	return s.ownedNote(ctx, userID, noteID)
}

func (s *NoteService) Delete(ctx context.Context, userID uuid.UUID, noteID uuid.UUID) error {
	note, err := s.ownedNote(ctx, userID, noteID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(note).Error
}

func (s *NoteService) ownedNote(ctx context.Context, userID uuid.UUID, noteID uuid.UUID) (*models.Note, error) {
	var note models.Note
	if err := s.db.WithContext(ctx).First(&note, "id = ?", noteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to load note: %w", err)
	}
	if note.UserID != userID {
		return nil, ErrNotOwner
	}
	return &note, nil
}

func (s *NoteService) loadUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}
