package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"civictrack/internal/model"
)

// setupTestDB opens an in-memory SQLite database and migrates the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "open test db")

	err = db.AutoMigrate(
		&model.User{},
		&model.Issue{},
		&model.IssuePhoto{},
		&model.StatusLog{},
		&model.Flag{},
		&model.BannedUser{},
	)
	require.NoError(t, err, "migrate test schema")
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()
	user := &model.User{Name: "Test User", Email: email, IsVerified: true}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestIssueRepository_CreateAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewIssueRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "reporter@example.com")
	base := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	older := &model.Issue{
		UserID:      &user.ID,
		Title:       "Streetlight out",
		Description: "Dark corner",
		Category:    "electricity",
		Latitude:    12.93,
		Longitude:   77.62,
		Status:      model.StatusReported,
		CreatedAt:   base,
	}
	require.NoError(t, repo.Create(ctx, older))

	newer := &model.Issue{
		UserID:      &user.ID,
		Title:       "Pothole",
		Description: "On Main St",
		Category:    "road",
		Latitude:    12.9,
		Longitude:   77.6,
		Status:      model.StatusReported,
		CreatedAt:   base.Add(time.Hour),
		Photos: []model.IssuePhoto{
			{PhotoURL: "https://photos.example.com/pothole-1.jpg"},
			{PhotoURL: "https://photos.example.com/pothole-2.jpg"},
		},
	}
	require.NoError(t, repo.Create(ctx, newer))

	issues, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, issues, 2)

	// Newest first, photos eagerly attached.
	assert.Equal(t, "Pothole", issues[0].Title)
	assert.Len(t, issues[0].Photos, 2)
	assert.Equal(t, "Streetlight out", issues[1].Title)
	assert.Len(t, issues[1].Photos, 0)

	assert.NotZero(t, issues[0].ID)
	assert.Equal(t, model.StatusReported, issues[0].Status)
	assert.Equal(t, 12.9, issues[0].Latitude)
	assert.Equal(t, 77.6, issues[0].Longitude)
}

func TestIssueRepository_StatusLogs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewIssueRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "reporter@example.com")
	issue := &model.Issue{UserID: &user.ID, Title: "Pothole", Category: "road", Status: model.StatusReported}
	require.NoError(t, repo.Create(ctx, issue))

	base := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.AppendStatusLog(ctx, &model.StatusLog{
		IssueID: issue.ID, OldStatus: "Reported", NewStatus: "In Progress", ChangedAt: base,
	}))
	require.NoError(t, repo.AppendStatusLog(ctx, &model.StatusLog{
		IssueID: issue.ID, OldStatus: "In Progress", NewStatus: "Resolved", ChangedAt: base.Add(time.Hour),
	}))

	logs, err := repo.ListStatusLogs(ctx, issue.ID)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "In Progress", logs[0].NewStatus)
	assert.Equal(t, "Resolved", logs[1].NewStatus)
}

func TestIssueRepository_UpdateStatusInTransaction(t *testing.T) {
	db := setupTestDB(t)
	repo := NewIssueRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "reporter@example.com")
	issue := &model.Issue{UserID: &user.ID, Title: "Pothole", Category: "road", Status: model.StatusReported}
	require.NoError(t, repo.Create(ctx, issue))

	err := repo.WithTransaction(ctx, func(ctx context.Context, txRepo IssueRepository) error {
		if err := txRepo.UpdateStatus(ctx, issue.ID, "In Progress"); err != nil {
			return err
		}
		return txRepo.AppendStatusLog(ctx, &model.StatusLog{
			IssueID:   issue.ID,
			OldStatus: model.StatusReported,
			NewStatus: "In Progress",
			ChangedAt: time.Now(),
		})
	})
	require.NoError(t, err)

	reloaded, err := repo.FindByID(ctx, issue.ID)
	require.NoError(t, err)
	assert.Equal(t, "In Progress", reloaded.Status)

	logs, err := repo.ListStatusLogs(ctx, issue.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, model.StatusReported, logs[0].OldStatus)
}

func TestFlagRepository_UniquePerIssueAndUser(t *testing.T) {
	db := setupTestDB(t)
	issueRepo := NewIssueRepository(db)
	flagRepo := NewFlagRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "flagger@example.com")
	issue := &model.Issue{UserID: &user.ID, Title: "Pothole", Category: "road", Status: model.StatusReported}
	require.NoError(t, issueRepo.Create(ctx, issue))

	require.NoError(t, flagRepo.Create(ctx, &model.Flag{IssueID: issue.ID, UserID: user.ID}))
	// Second identical flag hits the composite unique index.
	assert.Error(t, flagRepo.Create(ctx, &model.Flag{IssueID: issue.ID, UserID: user.ID}))

	count, err := flagRepo.CountByIssue(ctx, issue.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
