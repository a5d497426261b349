package repository

import (
	"time"

	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DeviceTokenRepository interface {
	Register(token *model.DeviceToken) (*model.DeviceToken, error)
	FindByToken(token string) (*model.DeviceToken, error)
	FindActiveByUserIDs(userIDs []uuid.UUID) ([]model.DeviceToken, error)
	DeleteByToken(token string) error
	DeactivateByUserID(userID uuid.UUID) error
}

type deviceTokenRepo struct {
	db *gorm.DB
}

func NewDeviceTokenRepo(db *gorm.DB) DeviceTokenRepository {
	return &deviceTokenRepo{db}
}

// Register upserts keyed by the token string. A token re-registered from a
// different account changes owner instead of duplicating: the token string is
// globally unique regardless of who holds it.
func (r *deviceTokenRepo) Register(token *model.DeviceToken) (*model.DeviceToken, error) {
	now := time.Now()
	token.IsActive = true
	token.LastUsedAt = &now

	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "token"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"user_id", "device_type", "platform", "is_active", "last_used_at", "updated_at",
		}),
	}).Create(token).Error
	if err != nil {
		return nil, err
	}
	return r.FindByToken(token.Token)
}

func (r *deviceTokenRepo) FindByToken(token string) (*model.DeviceToken, error) {
	var record model.DeviceToken
	if err := r.db.Where("token = ?", token).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *deviceTokenRepo) FindActiveByUserIDs(userIDs []uuid.UUID) ([]model.DeviceToken, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var tokens []model.DeviceToken
	err := r.db.Where("user_id IN ? AND is_active = ?", userIDs, true).Find(&tokens).Error
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

// DeleteByToken removes the row for good. Delete-if-exists: racing deletes of
// the same failed token are idempotent.
func (r *deviceTokenRepo) DeleteByToken(token string) error {
	return r.db.Unscoped().Where("token = ?", token).Delete(&model.DeviceToken{}).Error
}

func (r *deviceTokenRepo) DeactivateByUserID(userID uuid.UUID) error {
	return r.db.Model(&model.DeviceToken{}).Where("user_id = ?", userID).
		Update("is_active", false).Error
}
