package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/duotrack/internal/models"
	"github.com/google/uuid"
)

// PartnerService owns the pairing lifecycle: requests, acceptance,
// rejection and unpairing. Every mutation that touches two user rows runs
// in one transaction with both rows locked.
type PartnerService struct {
	users UserStore
}

func NewPartnerService(users UserStore) *PartnerService {
	return &PartnerService{users: users}
}

// PendingRequest describes one user waiting for an answer.
type PendingRequest struct {
	FromID    uuid.UUID
	FromName  string
	FromEmail string
}

// SendRequest records fromID in the pending set of the user registered
// under email and returns that user's display name.
func (s *PartnerService) SendRequest(ctx context.Context, fromID uuid.UUID, email string) (string, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return "", invalidInput("partner email is required")
	}

	target, found, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("failed to find user by email: %w", err)
	}
	if !found {
		return "", ErrUserNotFound
	}
	if target.ID == fromID {
		return "", ErrSelfRequest
	}
	if target.HasPartner() {
		return "", ErrTargetHasPartner
	}

	requester, found, err := s.users.FindByID(ctx, fromID)
	if err != nil {
		return "", fmt.Errorf("failed to load requester: %w", err)
	}
	if !found {
		return "", ErrUserNotFound
	}
	if requester.HasPartner() {
		return "", ErrAlreadyPartnered
	}

	pending, err := s.users.HasPendingRequest(ctx, fromID, target.ID)
	if err != nil {
		return "", fmt.Errorf("failed to check pending request: %w", err)
	}
	if pending {
		return "", ErrDuplicateRequest
	}

	added, err := s.users.AddPendingRequest(ctx, fromID, target.ID)
	if err != nil {
		return "", fmt.Errorf("failed to add pending request: %w", err)
	}
	if !added {
		// Lost a race against an identical request.
		return "", ErrDuplicateRequest
	}
	return target.Name, nil
}

// ListPendingRequests resolves the requesters waiting on userID. Requesters
// whose accounts are gone are skipped.
func (s *PartnerService) ListPendingRequests(ctx context.Context, userID uuid.UUID) ([]PendingRequest, error) {
	ids, err := s.users.ListPendingRequesters(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending requests: %w", err)
	}
	if len(ids) == 0 {
		return []PendingRequest{}, nil
	}

	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load requesters: %w", err)
	}
	byID := make(map[uuid.UUID]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	requests := make([]PendingRequest, 0, len(ids))
	for _, id := range ids {
		u, ok := byID[id]
		if !ok {
			continue
		}
		requests = append(requests, PendingRequest{FromID: u.ID, FromName: u.Name, FromEmail: u.Email})
	}
	return requests, nil
}

// AcceptRequest pairs userID with fromID. Both users must still be
// unpartnered when the request is accepted. Every other pending request
// involving either user is dropped in the same transaction.
func (s *PartnerService) AcceptRequest(ctx context.Context, userID uuid.UUID, fromID uuid.UUID) error {
	if fromID == uuid.Nil {
		return invalidInput("partner id is required")
	}

	return s.users.Transaction(ctx, func(tx UserStore) error {
		// Lock in a fixed order so two accepts over the same pair cannot
		// deadlock.
		first, second := userID, fromID
		if bytes.Compare(first[:], second[:]) > 0 {
			first, second = second, first
		}
		locked := make(map[uuid.UUID]models.User, 2)
		for _, id := range []uuid.UUID{first, second} {
			u, found, err := tx.FindByIDForUpdate(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to lock user: %w", err)
			}
			if found {
				locked[id] = u
			}
		}

		user, ok := locked[userID]
		if !ok {
			return ErrUserNotFound
		}

		pending, err := tx.HasPendingRequest(ctx, fromID, userID)
		if err != nil {
			return fmt.Errorf("failed to check pending request: %w", err)
		}
		if !pending {
			return ErrRequestNotPending
		}

		requester, ok := locked[fromID]
		if !ok {
			return ErrRequesterGone
		}
		if user.HasPartner() {
			return ErrAlreadyPartnered
		}
		if requester.HasPartner() {
			return ErrRequesterPaired
		}

		if err := tx.SetPartner(ctx, userID, &fromID); err != nil {
			return fmt.Errorf("failed to set partner: %w", err)
		}
		if _, err := tx.RemovePendingRequest(ctx, fromID, userID); err != nil {
			return fmt.Errorf("failed to remove pending request: %w", err)
		}
		if err := tx.SetPartner(ctx, fromID, &userID); err != nil {
			return fmt.Errorf("failed to set partner: %w", err)
		}
		if err := tx.ClearRequestsInvolving(ctx, userID, fromID); err != nil {
			return fmt.Errorf("failed to clear stale requests: %w", err)
		}
		return nil
	})
}

// RejectRequest drops fromID from userID's pending set.
func (s *PartnerService) RejectRequest(ctx context.Context, userID uuid.UUID, fromID uuid.UUID) error {
	if fromID == uuid.Nil {
		return invalidInput("partner id is required")
	}

	removed, err := s.users.RemovePendingRequest(ctx, fromID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove pending request: %w", err)
	}
	if !removed {
		return ErrRequestNotPending
	}
	return nil
}

// RemovePartner unpairs userID. It succeeds without changes when userID has
// no partner, so callers may retry it freely.
func (s *PartnerService) RemovePartner(ctx context.Context, userID uuid.UUID) error {
	return s.users.Transaction(ctx, func(tx UserStore) error {
		user, found, err := tx.FindByIDForUpdate(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to load user: %w", err)
		}
		if !found {
			return ErrUserNotFound
		}
		if !user.HasPartner() {
			return nil
		}

		partnerID := *user.PartnerID
		if err := tx.SetPartner(ctx, userID, nil); err != nil {
			return fmt.Errorf("failed to clear partner: %w", err)
		}
		if err := tx.ClearPartnerIfMatches(ctx, partnerID, userID); err != nil {
			return fmt.Errorf("failed to clear partner: %w", err)
		}
		return nil
	})
}

// GetPartner returns userID's partner, or nil when there is none or the
// partner record no longer exists.
func (s *PartnerService) GetPartner(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, found, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !found {
		return nil, ErrUserNotFound
	}
	if !user.HasPartner() {
		return nil, nil
	}

	partner, found, err := s.users.FindByID(ctx, *user.PartnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load partner: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &partner, nil
}

// NormalizeEmail is the canonical form used for storage and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
