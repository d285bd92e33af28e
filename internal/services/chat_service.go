package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/duotrack/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DefaultHistorySize = 100
	MaxHistorySize     = 500
	maxMessageLength   = 2000
)

// ChatService carries messages between the two members of a pair.
type ChatService struct {
	db     *gorm.DB
	filter *ContentFilter
}

func NewChatService(db *gorm.DB, filter *ContentFilter) *ChatService {
	return &ChatService{db: db, filter: filter}
}

// Send posts a message to userID's current partner.
func (s *ChatService) Send(ctx context.Context, userID uuid.UUID, message string, messageType string) (*models.ChatMessage, error) {
	message = strings.TrimSpace(message)
	if messageType == "" {
		messageType = models.MessageTypeText
	}
	switch messageType {
	case models.MessageTypeText, models.MessageTypeNudge, models.MessageTypeCheckIn:
	default:
		return nil, invalidInput("type must be text, nudge or checkin")
	}
	if message == "" {
		return nil, invalidInput("message is required")
	}
	if len(message) > maxMessageLength {
		return nil, invalidInput("message is too long")
	}
	if err := s.filter.Validate(message); err != nil {
		return nil, err
	}

	partnerID, err := s.partnerOf(ctx, userID)
	if err != nil {
		return nil, err
	}

	msg := models.ChatMessage{
		ID:             uuid.New(),
		ConversationID: models.ConversationID(userID, partnerID),
		SenderID:       userID,
		ReceiverID:     partnerID,
		Message:        message,
		Type:           messageType,
	}
	if err := s.db.WithContext(ctx).Create(&msg).Error; err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}
	return &msg, nil
}

// History returns up to limit messages of the current conversation sent
// before the given time (zero means now), oldest first.
func (s *ChatService) History(ctx context.Context, userID uuid.UUID, limit int, before time.Time) ([]models.ChatMessage, error) {
	if limit < 1 {
		limit = DefaultHistorySize
	}
	if limit > MaxHistorySize {
		limit = MaxHistorySize
	}

	partnerID, err := s.partnerOf(ctx, userID)
	if err != nil {
		return nil, err
	}

	query := s.db.WithContext(ctx).Where("conversation_id = ?", models.ConversationID(userID, partnerID))
	if !before.IsZero() {
		query = query.Where("created_at < ?", before)
	}

	var messages []models.ChatMessage
	if err := query.Order("created_at DESC").Limit(limit).Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (s *ChatService) partnerOf(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Select("id", "partner_id").First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, ErrUserNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !user.HasPartner() {
		return uuid.Nil, ErrNoPartner
	}
	return *user.PartnerID, nil
}
