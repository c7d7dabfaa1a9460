package repository

import (
	"context"

	"gorm.io/gorm"

	"civictrack/internal/model"
)

// FlagRepository defines flag persistence operations.
type FlagRepository interface {
	Create(ctx context.Context, flag *model.Flag) error
	FindByIssueAndUser(ctx context.Context, issueID, userID uint) (*model.Flag, error)
	CountByIssue(ctx context.Context, issueID uint) (int64, error)
}

type flagRepository struct {
	db *gorm.DB
}

// NewFlagRepository builds a GORM-backed repository.
func NewFlagRepository(db *gorm.DB) FlagRepository {
	return &flagRepository{db: db}
}

func (r *flagRepository) Create(ctx context.Context, flag *model.Flag) error {
	return r.db.WithContext(ctx).Create(flag).Error
}

func (r *flagRepository) FindByIssueAndUser(ctx context.Context, issueID, userID uint) (*model.Flag, error) {
	var flag model.Flag
	if err := r.db.WithContext(ctx).
		Where("issue_id = ? AND user_id = ?", issueID, userID).
		First(&flag).Error; err != nil {
		return nil, err
	}
	return &flag, nil
}

func (r *flagRepository) CountByIssue(ctx context.Context, issueID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Flag{}).
		Where("issue_id = ?", issueID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
