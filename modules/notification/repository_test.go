package notification

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&Activity{}), "failed to migrate test database")
	return db
}

func TestRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	activity := &Activity{
		Type:       ActivityTaskCreated,
		UserID:     "u1",
		TaskID:     "t1",
		Message:    "New task 'Buy milk' created",
		OccurredAt: time.Now(),
	}
	require.NoError(t, repo.Create(context.Background(), activity))
	assert.Len(t, activity.ID, 36, "expected a UUID to be assigned")

	var found Activity
	require.NoError(t, db.First(&found, "id = ?", activity.ID).Error)
	assert.Equal(t, activity.Message, found.Message)
	assert.Equal(t, ActivityTaskCreated, found.Type)
}

func TestRepository_CreateKeepsGivenID(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	activity := &Activity{ID: "fixed-id", Type: ActivityTaskDeleted, UserID: "u1", TaskID: "t1", OccurredAt: time.Now()}
	require.NoError(t, repo.Create(context.Background(), activity))
	assert.Equal(t, "fixed-id", activity.ID)

	dup := &Activity{ID: "fixed-id", Type: ActivityTaskDeleted, UserID: "u1", TaskID: "t1", OccurredAt: time.Now()}
	assert.Error(t, repo.Create(context.Background(), dup))
}

func TestRepository_ListByUser(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(ctx, &Activity{
			Type:       ActivityTaskCreated,
			UserID:     "u1",
			TaskID:     fmt.Sprintf("t%d", i),
			OccurredAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, repo.Create(ctx, &Activity{
		Type: ActivityTaskCreated, UserID: "u2", TaskID: "other", OccurredAt: base,
	}))

	t.Run("newest first", func(t *testing.T) {
		activities, err := repo.ListByUser(ctx, "u1", 0)
		require.NoError(t, err)
		require.Len(t, activities, 5)
		assert.Equal(t, "t4", activities[0].TaskID)
		assert.Equal(t, "t0", activities[4].TaskID)
	})

	t.Run("limit", func(t *testing.T) {
		activities, err := repo.ListByUser(ctx, "u1", 2)
		require.NoError(t, err)
		require.Len(t, activities, 2)
		assert.Equal(t, "t4", activities[0].TaskID)
		assert.Equal(t, "t3", activities[1].TaskID)
	})

	t.Run("unknown user yields empty slice", func(t *testing.T) {
		activities, err := repo.ListByUser(ctx, "nobody", 10)
		require.NoError(t, err)
		assert.NotNil(t, activities)
		assert.Empty(t, activities)
	})

	t.Run("count", func(t *testing.T) {
		count, err := repo.CountByUser(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, int64(5), count)
	})
}
