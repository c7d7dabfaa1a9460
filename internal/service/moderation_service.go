package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "civictrack/internal/errors"
	"civictrack/internal/model"
	"civictrack/internal/repository"
)

// ModerationService handles flags, bans and user removal.
//
// Flags never trigger a ban automatically; banning is an explicit admin
// action. A threshold policy would plug in at FlagIssue.
type ModerationService interface {
	FlagIssue(ctx context.Context, issueID, userID uint) (*model.Flag, error)
	BanUser(ctx context.Context, userID uint, reason string) (*model.BannedUser, error)
	UnbanUser(ctx context.Context, userID uint) error
	IsBanned(ctx context.Context, userID uint) (bool, error)
	ListBanned(ctx context.Context) ([]model.BannedUser, error)
	// DeleteUser removes a user; owned issues survive with a null reporter
	// reference, the user's flags and ban row are removed.
	DeleteUser(ctx context.Context, userID uint) error
}

type moderationService struct {
	issueRepo  repository.IssueRepository
	userRepo   repository.UserRepository
	flagRepo   repository.FlagRepository
	bannedRepo repository.BannedUserRepository
}

// NewModerationService creates a new moderation service.
func NewModerationService(
	issueRepo repository.IssueRepository,
	userRepo repository.UserRepository,
	flagRepo repository.FlagRepository,
	bannedRepo repository.BannedUserRepository,
) ModerationService {
	return &moderationService{
		issueRepo:  issueRepo,
		userRepo:   userRepo,
		flagRepo:   flagRepo,
		bannedRepo: bannedRepo,
	}
}

func (s *moderationService) FlagIssue(ctx context.Context, issueID, userID uint) (*model.Flag, error) {
	if _, err := s.issueRepo.FindByID(ctx, issueID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrIssueNotFound
		}
		return nil, fmt.Errorf("find issue: %w", err)
	}

	existing, err := s.flagRepo.FindByIssueAndUser(ctx, issueID, userID)
	if err == nil && existing != nil {
		return nil, apperrors.ErrAlreadyFlagged
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check existing flag: %w", err)
	}

	flag := &model.Flag{IssueID: issueID, UserID: userID}
	if err := s.flagRepo.Create(ctx, flag); err != nil {
		return nil, fmt.Errorf("create flag: %w", err)
	}
	return flag, nil
}

func (s *moderationService) BanUser(ctx context.Context, userID uint, reason string) (*model.BannedUser, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	// Banning an already banned user keeps the original row.
	if existing, err := s.bannedRepo.FindByUserID(ctx, userID); err == nil {
		return existing, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check existing ban: %w", err)
	}

	ban := &model.BannedUser{UserID: userID, Reason: reason}
	if err := s.bannedRepo.Create(ctx, ban); err != nil {
		return nil, fmt.Errorf("create ban: %w", err)
	}
	return ban, nil
}

func (s *moderationService) UnbanUser(ctx context.Context, userID uint) error {
	if _, err := s.bannedRepo.FindByUserID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotBanned
		}
		return fmt.Errorf("find ban: %w", err)
	}
	return s.bannedRepo.Delete(ctx, userID)
}

func (s *moderationService) IsBanned(ctx context.Context, userID uint) (bool, error) {
	_, err := s.bannedRepo.FindByUserID(ctx, userID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

func (s *moderationService) ListBanned(ctx context.Context) ([]model.BannedUser, error) {
	return s.bannedRepo.List(ctx)
}

func (s *moderationService) DeleteUser(ctx context.Context, userID uint) error {
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
