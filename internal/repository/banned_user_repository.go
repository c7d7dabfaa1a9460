package repository

import (
	"context"

	"gorm.io/gorm"

	"civictrack/internal/model"
)

// BannedUserRepository defines ban persistence operations.
type BannedUserRepository interface {
	Create(ctx context.Context, ban *model.BannedUser) error
	FindByUserID(ctx context.Context, userID uint) (*model.BannedUser, error)
	Delete(ctx context.Context, userID uint) error
	List(ctx context.Context) ([]model.BannedUser, error)
}

type bannedUserRepository struct {
	db *gorm.DB
}

// NewBannedUserRepository builds a GORM-backed repository.
func NewBannedUserRepository(db *gorm.DB) BannedUserRepository {
	return &bannedUserRepository{db: db}
}

func (r *bannedUserRepository) Create(ctx context.Context, ban *model.BannedUser) error {
	return r.db.WithContext(ctx).Create(ban).Error
}

func (r *bannedUserRepository) FindByUserID(ctx context.Context, userID uint) (*model.BannedUser, error) {
	var ban model.BannedUser
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&ban).Error; err != nil {
		return nil, err
	}
	return &ban, nil
}

func (r *bannedUserRepository) Delete(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.BannedUser{}).Error
}

func (r *bannedUserRepository) List(ctx context.Context) ([]model.BannedUser, error) {
	var bans []model.BannedUser
	if err := r.db.WithContext(ctx).Order("banned_at DESC").Find(&bans).Error; err != nil {
		return nil, err
	}
	return bans, nil
}
