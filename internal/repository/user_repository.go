// Package repository implements the services store interfaces on GORM.
package repository

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/duotrack/internal/models"
	"github.com/ahmetcoskunkizilkaya/duotrack/internal/services"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

var _ services.UserStore = (*UserRepository)(nil)

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (models.User, bool, error) {
	return r.first(r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *UserRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (models.User, bool, error) {
	query := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where("id = ?", id)
	return r.first(query)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, bool, error) {
	return r.first(r.db.WithContext(ctx).Where("email = ?", services.NormalizeEmail(email)))
}

func (r *UserRepository) first(query *gorm.DB) (models.User, bool, error) {
	var user models.User
	result := query.Limit(1).Find(&user)
	if result.Error != nil {
		return models.User{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.User{}, false, nil
	}
	return user, true, nil
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.User, error) {
	users := make([]models.User, 0, len(ids))
	if len(ids) == 0 {
		return users, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) SetPartner(ctx context.Context, userID uuid.UUID, partnerID *uuid.UUID) error {
	var value interface{}
	if partnerID != nil {
		value = *partnerID
	}
	return r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("partner_id", value).Error
}

func (r *UserRepository) ClearPartnerIfMatches(ctx context.Context, userID uuid.UUID, partnerID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND partner_id = ?", userID, partnerID).
		Update("partner_id", nil).Error
}

func (r *UserRepository) ListPartnered(ctx context.Context) ([]models.User, error) {
	users := make([]models.User, 0)
	if err := r.db.WithContext(ctx).Where("partner_id IS NOT NULL").Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) AddPendingRequest(ctx context.Context, fromID uuid.UUID, toID uuid.UUID) (bool, error) {
	request := models.PartnerRequest{FromID: fromID, ToID: toID}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&request)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *UserRepository) RemovePendingRequest(ctx context.Context, fromID uuid.UUID, toID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("from_id = ? AND to_id = ?", fromID, toID).
		Delete(&models.PartnerRequest{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *UserRepository) HasPendingRequest(ctx context.Context, fromID uuid.UUID, toID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.PartnerRequest{}).
		Where("from_id = ? AND to_id = ?", fromID, toID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *UserRepository) ListPendingRequesters(ctx context.Context, toID uuid.UUID) ([]uuid.UUID, error) {
	var requests []models.PartnerRequest
	if err := r.db.WithContext(ctx).
		Where("to_id = ?", toID).
		Order("created_at ASC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(requests))
	for _, request := range requests {
		ids = append(ids, request.FromID)
	}
	return ids, nil
}

func (r *UserRepository) ClearRequestsInvolving(ctx context.Context, userIDs ...uuid.UUID) error {
	if len(userIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("from_id IN ? OR to_id IN ?", userIDs, userIDs).
		Delete(&models.PartnerRequest{}).Error
}

func (r *UserRepository) UpdateStreak(ctx context.Context, userID uuid.UUID, streak int, longest int, lastActivity datatypes.Date) error {
	return r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"streak":             streak,
			"longest_streak":     longest,
			"last_activity_date": lastActivity,
			"updated_at":         time.Now(),
		}).Error
}

func (r *UserRepository) ListUsers(ctx context.Context, limit int) ([]models.User, error) {
	users := make([]models.User, 0, limit)
	if err := r.db.WithContext(ctx).
		Order("(dsa_score + dev_score) DESC").
		Order("id ASC").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) Transaction(ctx context.Context, fn func(tx services.UserStore) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UserRepository{db: tx})
	})
}
