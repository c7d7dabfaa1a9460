package repository

import (
	"context"

	"gorm.io/gorm"

	"civictrack/internal/model"
)

// IssueRepository defines issue persistence operations.
type IssueRepository interface {
	Create(ctx context.Context, issue *model.Issue) error
	// List returns all issues with photos eagerly attached, newest first.
	List(ctx context.Context) ([]model.Issue, error)
	FindByID(ctx context.Context, id uint) (*model.Issue, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	AppendStatusLog(ctx context.Context, entry *model.StatusLog) error
	ListStatusLogs(ctx context.Context, issueID uint) ([]model.StatusLog, error)
	// WithTransaction executes fn against a repository bound to one transaction.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo IssueRepository) error) error
}

type issueRepository struct {
	db *gorm.DB
}

// NewIssueRepository builds a GORM-backed repository.
func NewIssueRepository(db *gorm.DB) IssueRepository {
	return &issueRepository{db: db}
}

func (r *issueRepository) Create(ctx context.Context, issue *model.Issue) error {
	// Photos attached to the struct are inserted alongside the issue.
	return r.db.WithContext(ctx).Create(issue).Error
}

func (r *issueRepository) List(ctx context.Context) ([]model.Issue, error) {
	var issues []model.Issue
	if err := r.db.WithContext(ctx).
		Preload("Photos").
		Order("created_at DESC").
		Find(&issues).Error; err != nil {
		return nil, err
	}
	return issues, nil
}

func (r *issueRepository) FindByID(ctx context.Context, id uint) (*model.Issue, error) {
	var issue model.Issue
	if err := r.db.WithContext(ctx).Preload("Photos").First(&issue, id).Error; err != nil {
		return nil, err
	}
	return &issue, nil
}

func (r *issueRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.db.WithContext(ctx).Model(&model.Issue{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *issueRepository) AppendStatusLog(ctx context.Context, entry *model.StatusLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *issueRepository) ListStatusLogs(ctx context.Context, issueID uint) ([]model.StatusLog, error) {
	var logs []model.StatusLog
	if err := r.db.WithContext(ctx).
		Where("issue_id = ?", issueID).
		Order("changed_at ASC, id ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *issueRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo IssueRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &issueRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
