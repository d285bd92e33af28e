package services

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/duotrack/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UserStore is the document-store surface used by pairing and streaks.
// Lookups report absence through the bool instead of an error.
type UserStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (models.User, bool, error)
	// FindByIDForUpdate locks the row until the surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (models.User, bool, error)
	FindByEmail(ctx context.Context, email string) (models.User, bool, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.User, error)

	SetPartner(ctx context.Context, userID uuid.UUID, partnerID *uuid.UUID) error
	// ClearPartnerIfMatches clears userID's partner only while it still
	// references partnerID.
	ClearPartnerIfMatches(ctx context.Context, userID uuid.UUID, partnerID uuid.UUID) error
	ListPartnered(ctx context.Context) ([]models.User, error)

	// AddPendingRequest is an additive union: it reports false when the
	// entry was already present.
	AddPendingRequest(ctx context.Context, fromID uuid.UUID, toID uuid.UUID) (bool, error)
	RemovePendingRequest(ctx context.Context, fromID uuid.UUID, toID uuid.UUID) (bool, error)
	HasPendingRequest(ctx context.Context, fromID uuid.UUID, toID uuid.UUID) (bool, error)
	ListPendingRequesters(ctx context.Context, toID uuid.UUID) ([]uuid.UUID, error)
	ClearRequestsInvolving(ctx context.Context, userIDs ...uuid.UUID) error

	UpdateStreak(ctx context.Context, userID uuid.UUID, streak int, longest int, lastActivity datatypes.Date) error
	ListUsers(ctx context.Context, limit int) ([]models.User, error)

	Transaction(ctx context.Context, fn func(tx UserStore) error) error
}
