package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"civictrack/internal/model"
	"civictrack/internal/repository"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockIssueRepository is a mock implementation of repository.IssueRepository.
type MockIssueRepository struct {
	mock.Mock
}

func (m *MockIssueRepository) Create(ctx context.Context, issue *model.Issue) error {
	args := m.Called(ctx, issue)
	return args.Error(0)
}

func (m *MockIssueRepository) List(ctx context.Context) ([]model.Issue, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Issue), args.Error(1)
}

func (m *MockIssueRepository) FindByID(ctx context.Context, id uint) (*model.Issue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Issue), args.Error(1)
}

func (m *MockIssueRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockIssueRepository) AppendStatusLog(ctx context.Context, entry *model.StatusLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockIssueRepository) ListStatusLogs(ctx context.Context, issueID uint) ([]model.StatusLog, error) {
	args := m.Called(ctx, issueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StatusLog), args.Error(1)
}

// WithTransaction runs fn against the mock itself so expectations set on the
// mock cover calls made inside the transaction.
func (m *MockIssueRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.IssueRepository) error) error {
	return fn(ctx, m)
}

// MockFlagRepository is a mock implementation of repository.FlagRepository.
type MockFlagRepository struct {
	mock.Mock
}

func (m *MockFlagRepository) Create(ctx context.Context, flag *model.Flag) error {
	args := m.Called(ctx, flag)
	return args.Error(0)
}

func (m *MockFlagRepository) FindByIssueAndUser(ctx context.Context, issueID, userID uint) (*model.Flag, error) {
	args := m.Called(ctx, issueID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Flag), args.Error(1)
}

func (m *MockFlagRepository) CountByIssue(ctx context.Context, issueID uint) (int64, error) {
	args := m.Called(ctx, issueID)
	return args.Get(0).(int64), args.Error(1)
}

// MockBannedUserRepository is a mock implementation of repository.BannedUserRepository.
type MockBannedUserRepository struct {
	mock.Mock
}

func (m *MockBannedUserRepository) Create(ctx context.Context, ban *model.BannedUser) error {
	args := m.Called(ctx, ban)
	return args.Error(0)
}

func (m *MockBannedUserRepository) FindByUserID(ctx context.Context, userID uint) (*model.BannedUser, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BannedUser), args.Error(1)
}

func (m *MockBannedUserRepository) Delete(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockBannedUserRepository) List(ctx context.Context) ([]model.BannedUser, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BannedUser), args.Error(1)
}

// MockStateStore is a mock implementation of auth.StateStoreInterface.
type MockStateStore struct {
	mock.Mock
}

func (m *MockStateStore) Issue(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockStateStore) Consume(ctx context.Context, state string) (bool, error) {
	args := m.Called(ctx, state)
	return args.Bool(0), args.Error(1)
}
