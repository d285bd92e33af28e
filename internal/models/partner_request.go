package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PartnerRequest is one entry of the recipient's pending-request set.
// The composite unique index gives the set its no-duplicates guarantee.
type PartnerRequest struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FromID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_partner_requests_pair,priority:1" json:"from_id"`
	ToID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_partner_requests_pair,priority:2;index" json:"to_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *PartnerRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (PartnerRequest) TableName() string {
	return "partner_requests"
}
