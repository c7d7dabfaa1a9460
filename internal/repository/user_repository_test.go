package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"civictrack/internal/model"
)

func TestUserRepository_FindByEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	seedUser(t, db, "known@example.com")

	user, err := repo.FindByEmail(ctx, "known@example.com")
	require.NoError(t, err)
	assert.Equal(t, "known@example.com", user.Email)

	_, err = repo.FindByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_EmailUnique(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.User{Name: "A", Email: "a@x.com"}))
	assert.Error(t, repo.Create(ctx, &model.User{Name: "A again", Email: "a@x.com"}))
}

// Deleting a user must never leave an issue pointing at a missing user:
// issues survive with a null reporter, flags and ban rows go with the user.
func TestUserRepository_DeleteDetachesOwnedRows(t *testing.T) {
	db := setupTestDB(t)
	userRepo := NewUserRepository(db)
	issueRepo := NewIssueRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "leaving@example.com")
	other := seedUser(t, db, "staying@example.com")

	issue := &model.Issue{UserID: &user.ID, Title: "Pothole", Category: "road", Status: model.StatusReported}
	require.NoError(t, issueRepo.Create(ctx, issue))
	require.NoError(t, db.Create(&model.Flag{IssueID: issue.ID, UserID: user.ID}).Error)
	require.NoError(t, db.Create(&model.BannedUser{UserID: user.ID, Reason: "spam"}).Error)

	require.NoError(t, userRepo.Delete(ctx, user.ID))

	_, err := userRepo.FindByID(ctx, user.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	reloaded, err := issueRepo.FindByID(ctx, issue.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.UserID)

	var flagCount, banCount int64
	require.NoError(t, db.Model(&model.Flag{}).Where("user_id = ?", user.ID).Count(&flagCount).Error)
	require.NoError(t, db.Model(&model.BannedUser{}).Where("user_id = ?", user.ID).Count(&banCount).Error)
	assert.Zero(t, flagCount)
	assert.Zero(t, banCount)

	// Unrelated users are untouched.
	_, err = userRepo.FindByID(ctx, other.ID)
	assert.NoError(t, err)
}

func TestUserRepository_DeleteUnknownUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	err := repo.Delete(context.Background(), 404)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
