package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/duotrack/internal/models"
	"github.com/google/uuid"
)

// ReconcileService repairs pairs left asymmetric by writes that bypassed
// PartnerService, such as manual edits or partial restores.
type ReconcileService struct {
	users UserStore
}

func NewReconcileService(users UserStore) *ReconcileService {
	return &ReconcileService{users: users}
}

// RepairAsymmetricPairs clears partner_id on every user whose partner is
// missing or points elsewhere, and returns the repaired ids. Healthy pairs
// are left alone, so running it twice repairs nothing the second time.
func (s *ReconcileService) RepairAsymmetricPairs(ctx context.Context) ([]uuid.UUID, error) {
	repaired := make([]uuid.UUID, 0)
	err := s.users.Transaction(ctx, func(tx UserStore) error {
		partnered, err := tx.ListPartnered(ctx)
		if err != nil {
			return fmt.Errorf("failed to list partnered users: %w", err)
		}

		ids := make([]uuid.UUID, 0, len(partnered))
		for _, u := range partnered {
			ids = append(ids, *u.PartnerID)
		}
		partners, err := tx.FindByIDs(ctx, ids)
		if err != nil {
			return fmt.Errorf("failed to load partners: %w", err)
		}
		byID := make(map[uuid.UUID]models.User, len(partners))
		for _, p := range partners {
			byID[p.ID] = p
		}

		for _, u := range partnered {
			partnerID := *u.PartnerID
			p, ok := byID[partnerID]
			if ok && p.HasPartner() && *p.PartnerID == u.ID {
				continue
			}
			if err := tx.ClearPartnerIfMatches(ctx, u.ID, partnerID); err != nil {
				return fmt.Errorf("failed to clear partner: %w", err)
			}
			slog.Warn("repaired asymmetric partner link", "user_id", u.ID, "partner_id", partnerID, "partner_exists", ok)
			repaired = append(repaired, u.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return repaired, nil
}
