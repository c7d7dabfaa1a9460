package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "civictrack/internal/errors"
	"civictrack/internal/model"
	"civictrack/internal/repository"
)

// ReportIssueInput carries the fields of a new issue report.
type ReportIssueInput struct {
	UserID      uint
	Title       string
	Description string
	Category    string
	Latitude    float64
	Longitude   float64
	PhotoURLs   []string
}

// IssueService handles issue reporting, listing and status tracking.
type IssueService interface {
	// Report persists a new issue with status "Reported" and any photos.
	// Banned reporters are rejected.
	Report(ctx context.Context, in ReportIssueInput) (*model.Issue, error)
	// List returns all issues with photos attached, newest first.
	List(ctx context.Context) ([]model.Issue, error)
	Get(ctx context.Context, id uint) (*model.Issue, error)
	// UpdateStatus overwrites the issue status and appends a StatusLog row
	// in the same transaction. No transition graph is enforced; any value
	// may be written and a later write wins.
	UpdateStatus(ctx context.Context, id uint, newStatus string) (*model.Issue, error)
	StatusHistory(ctx context.Context, id uint) ([]model.StatusLog, error)
}

type issueService struct {
	issueRepo  repository.IssueRepository
	userRepo   repository.UserRepository
	bannedRepo repository.BannedUserRepository
}

// NewIssueService creates a new issue service.
func NewIssueService(
	issueRepo repository.IssueRepository,
	userRepo repository.UserRepository,
	bannedRepo repository.BannedUserRepository,
) IssueService {
	return &issueService{
		issueRepo:  issueRepo,
		userRepo:   userRepo,
		bannedRepo: bannedRepo,
	}
}

func (s *issueService) Report(ctx context.Context, in ReportIssueInput) (*model.Issue, error) {
	if _, err := s.userRepo.FindByID(ctx, in.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find reporter: %w", err)
	}

	if _, err := s.bannedRepo.FindByUserID(ctx, in.UserID); err == nil {
		return nil, apperrors.ErrUserBanned
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check ban: %w", err)
	}

	userID := in.UserID
	issue := &model.Issue{
		UserID:      &userID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		Status:      model.StatusReported,
		Photos:      make([]model.IssuePhoto, 0, len(in.PhotoURLs)),
	}
	for _, url := range in.PhotoURLs {
		issue.Photos = append(issue.Photos, model.IssuePhoto{PhotoURL: url})
	}

	if err := s.issueRepo.Create(ctx, issue); err != nil {
		return nil, fmt.Errorf("create issue: %w", err)
	}

	return issue, nil
}

func (s *issueService) List(ctx context.Context) ([]model.Issue, error) {
	return s.issueRepo.List(ctx)
}

func (s *issueService) Get(ctx context.Context, id uint) (*model.Issue, error) {
	issue, err := s.issueRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrIssueNotFound
		}
		return nil, err
	}
	return issue, nil
}

func (s *issueService) UpdateStatus(ctx context.Context, id uint, newStatus string) (*model.Issue, error) {
	var updated *model.Issue
	err := s.issueRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.IssueRepository) error {
		issue, err := repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrIssueNotFound
			}
			return err
		}

		oldStatus := issue.Status
		if err := repo.UpdateStatus(ctx, id, newStatus); err != nil {
			return fmt.Errorf("update status: %w", err)
		}
		if err := repo.AppendStatusLog(ctx, &model.StatusLog{
			IssueID:   id,
			OldStatus: oldStatus,
			NewStatus: newStatus,
			ChangedAt: time.Now(),
		}); err != nil {
			return fmt.Errorf("append status log: %w", err)
		}

		issue.Status = newStatus
		updated = issue
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *issueService) StatusHistory(ctx context.Context, id uint) ([]model.StatusLog, error) {
	if _, err := s.issueRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrIssueNotFound
		}
		return nil, err
	}
	return s.issueRepo.ListStatusLogs(ctx, id)
}
