package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"civictrack/internal/model"
)

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

// Running the seed twice must not duplicate users or issues.
func TestSeedIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, run(ctx, db))

	var users, issues, photos int64
	require.NoError(t, db.Model(&model.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&model.Issue{}).Count(&issues).Error)
	require.NoError(t, db.Model(&model.IssuePhoto{}).Count(&photos).Error)
	assert.Equal(t, int64(len(seedUsers)), users)
	assert.Equal(t, int64(len(seedIssues)), issues)

	require.NoError(t, run(ctx, db))

	var users2, issues2, photos2 int64
	require.NoError(t, db.Model(&model.User{}).Count(&users2).Error)
	require.NoError(t, db.Model(&model.Issue{}).Count(&issues2).Error)
	require.NoError(t, db.Model(&model.IssuePhoto{}).Count(&photos2).Error)
	assert.Equal(t, users, users2)
	assert.Equal(t, issues, issues2)
	assert.Equal(t, photos, photos2)
}
