package models

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MessageTypeText    = "text"
	MessageTypeNudge   = "nudge"
	MessageTypeCheckIn = "checkin"
)

// ChatMessage belongs to exactly one two-party conversation.
type ChatMessage struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ConversationID string    `gorm:"size:73;not null;index:idx_chat_conversation_created,priority:1" json:"conversation_id"`
	SenderID       uuid.UUID `gorm:"type:uuid;not null" json:"sender_id"`
	ReceiverID     uuid.UUID `gorm:"type:uuid;not null" json:"receiver_id"`
	Message        string    `gorm:"type:text;not null" json:"message"`
	Type           string    `gorm:"size:20;default:'text'" json:"type"`
	CreatedAt      time.Time `gorm:"index:idx_chat_conversation_created,priority:2" json:"created_at"`
}

func (m *ChatMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// ConversationID is the sorted pair of participant ids, so both sides
// compute the same key.
func ConversationID(a, b uuid.UUID) string {
	ids := []string{a.String(), b.String()}
	sort.Strings(ids)
	return strings.Join(ids, ":")
}
