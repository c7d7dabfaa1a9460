package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "civictrack/internal/errors"
	"civictrack/internal/model"
)

func newModerationService(
	mIssue *MockIssueRepository,
	mUser *MockUserRepository,
	mFlag *MockFlagRepository,
	mBan *MockBannedUserRepository,
) ModerationService {
	return NewModerationService(mIssue, mUser, mFlag, mBan)
}

func TestModerationService_FlagIssue(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(*MockIssueRepository, *MockFlagRepository)
		expectedError error
	}{
		{
			name: "first flag succeeds",
			setupMock: func(mIssue *MockIssueRepository, mFlag *MockFlagRepository) {
				mIssue.On("FindByID", mock.Anything, uint(5)).Return(&model.Issue{ID: 5}, nil)
				mFlag.On("FindByIssueAndUser", mock.Anything, uint(5), uint(2)).Return(nil, gorm.ErrRecordNotFound)
				mFlag.On("Create", mock.Anything, mock.AnythingOfType("*model.Flag")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name: "repeat flag conflicts",
			setupMock: func(mIssue *MockIssueRepository, mFlag *MockFlagRepository) {
				mIssue.On("FindByID", mock.Anything, uint(5)).Return(&model.Issue{ID: 5}, nil)
				mFlag.On("FindByIssueAndUser", mock.Anything, uint(5), uint(2)).Return(&model.Flag{IssueID: 5, UserID: 2}, nil)
			},
			expectedError: apperrors.ErrAlreadyFlagged,
		},
		{
			name: "unknown issue",
			setupMock: func(mIssue *MockIssueRepository, mFlag *MockFlagRepository) {
				mIssue.On("FindByID", mock.Anything, uint(5)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrIssueNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockIssueRepo := new(MockIssueRepository)
			mockFlagRepo := new(MockFlagRepository)
			tt.setupMock(mockIssueRepo, mockFlagRepo)

			service := newModerationService(mockIssueRepo, new(MockUserRepository), mockFlagRepo, new(MockBannedUserRepository))

			flag, err := service.FlagIssue(context.Background(), 5, 2)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, flag)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, flag)
				assert.Equal(t, uint(5), flag.IssueID)
				assert.Equal(t, uint(2), flag.UserID)
			}

			mockIssueRepo.AssertExpectations(t)
			mockFlagRepo.AssertExpectations(t)
		})
	}
}

func TestModerationService_BanUser(t *testing.T) {
	t.Run("bans an existing user", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockBannedRepo := new(MockBannedUserRepository)
		mockUserRepo.On("FindByID", mock.Anything, uint(4)).Return(&model.User{ID: 4}, nil)
		mockBannedRepo.On("FindByUserID", mock.Anything, uint(4)).Return(nil, gorm.ErrRecordNotFound)
		mockBannedRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.BannedUser")).Return(nil)

		service := newModerationService(new(MockIssueRepository), mockUserRepo, new(MockFlagRepository), mockBannedRepo)

		ban, err := service.BanUser(context.Background(), 4, "repeated spam")

		assert.NoError(t, err)
		assert.NotNil(t, ban)
		assert.Equal(t, uint(4), ban.UserID)
		assert.Equal(t, "repeated spam", ban.Reason)
		mockBannedRepo.AssertExpectations(t)
	})

	t.Run("banning twice keeps the original row", func(t *testing.T) {
		existing := &model.BannedUser{UserID: 4, Reason: "original reason"}
		mockUserRepo := new(MockUserRepository)
		mockBannedRepo := new(MockBannedUserRepository)
		mockUserRepo.On("FindByID", mock.Anything, uint(4)).Return(&model.User{ID: 4}, nil)
		mockBannedRepo.On("FindByUserID", mock.Anything, uint(4)).Return(existing, nil)

		service := newModerationService(new(MockIssueRepository), mockUserRepo, new(MockFlagRepository), mockBannedRepo)

		ban, err := service.BanUser(context.Background(), 4, "new reason")

		assert.NoError(t, err)
		assert.Equal(t, "original reason", ban.Reason)
		mockBannedRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown user", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockUserRepo.On("FindByID", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)

		service := newModerationService(new(MockIssueRepository), mockUserRepo, new(MockFlagRepository), new(MockBannedUserRepository))

		ban, err := service.BanUser(context.Background(), 9, "spam")

		assert.Equal(t, apperrors.ErrUserNotFound, err)
		assert.Nil(t, ban)
	})
}

func TestModerationService_UnbanUser(t *testing.T) {
	t.Run("lifts an existing ban", func(t *testing.T) {
		mockBannedRepo := new(MockBannedUserRepository)
		mockBannedRepo.On("FindByUserID", mock.Anything, uint(4)).Return(&model.BannedUser{UserID: 4}, nil)
		mockBannedRepo.On("Delete", mock.Anything, uint(4)).Return(nil)

		service := newModerationService(new(MockIssueRepository), new(MockUserRepository), new(MockFlagRepository), mockBannedRepo)

		assert.NoError(t, service.UnbanUser(context.Background(), 4))
		mockBannedRepo.AssertExpectations(t)
	})

	t.Run("user not banned", func(t *testing.T) {
		mockBannedRepo := new(MockBannedUserRepository)
		mockBannedRepo.On("FindByUserID", mock.Anything, uint(4)).Return(nil, gorm.ErrRecordNotFound)

		service := newModerationService(new(MockIssueRepository), new(MockUserRepository), new(MockFlagRepository), mockBannedRepo)

		assert.Equal(t, apperrors.ErrNotBanned, service.UnbanUser(context.Background(), 4))
	})
}

func TestModerationService_IsBanned(t *testing.T) {
	mockBannedRepo := new(MockBannedUserRepository)
	mockBannedRepo.On("FindByUserID", mock.Anything, uint(1)).Return(&model.BannedUser{UserID: 1}, nil)
	mockBannedRepo.On("FindByUserID", mock.Anything, uint(2)).Return(nil, gorm.ErrRecordNotFound)

	service := newModerationService(new(MockIssueRepository), new(MockUserRepository), new(MockFlagRepository), mockBannedRepo)

	banned, err := service.IsBanned(context.Background(), 1)
	assert.NoError(t, err)
	assert.True(t, banned)

	banned, err = service.IsBanned(context.Background(), 2)
	assert.NoError(t, err)
	assert.False(t, banned)
}
