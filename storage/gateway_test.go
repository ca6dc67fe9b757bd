package storage

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/example/tasklist-service/domain/task"
)

// setupTestGateway connects to MONGO_URI and uses a throwaway database.
// The test is skipped when MongoDB is not reachable.
func setupTestGateway(t *testing.T) *Gateway {
	t.Helper()

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set, skipping MongoDB integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	database := fmt.Sprintf("tasklist_test_%d", time.Now().UnixNano())
	g, err := Connect(ctx, Config{
		URI:        uri,
		Database:   database,
		Collection: "User",
		OpTimeout:  5 * time.Second,
	})
	if err != nil {
		t.Skipf("MongoDB not available at %s: %v", uri, err)
	}

	t.Cleanup(func() {
		ctx := context.Background()
		_ = g.client.Database(database).Drop(ctx)
		_ = g.Close(ctx)
	})
	return g
}

func TestGateway_TaskLifecycle(t *testing.T) {
	g := setupTestGateway(t)
	ctx := context.Background()

	u, err := g.InsertUser(ctx)
	require.NoError(t, err)
	userID := u.ID.Hex()

	tasks, err := g.FindTasks(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	now := task.Timestamp(time.Now())
	first := task.New(task.Input{Name: "Buy milk", Description: "2%"}, now)
	second := task.New(task.Input{Name: "Walk dog", Description: "park"}, now)
	require.NoError(t, g.PushTask(ctx, userID, first))
	require.NoError(t, g.PushTask(ctx, userID, second))

	tasks, err = g.FindTasks(ctx, userID)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, first.ID, tasks[0].ID)
	assert.Equal(t, second.ID, tasks[1].ID)

	found, err := g.FindTask(ctx, second.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Walk dog", found.Name)

	later := now.Add(time.Minute)
	require.NoError(t, g.SetTask(ctx, userID, first.ID.Hex(), task.Input{Name: "Buy oat milk", Description: "1L"}, later))
	found, err = g.FindTask(ctx, first.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Buy oat milk", found.Name)
	assert.True(t, found.UpdatedAt.Equal(later))
	assert.True(t, found.CreatedAt.Equal(now))

	require.NoError(t, g.CompleteTask(ctx, userID, first.ID.Hex()))
	_, err = g.FindTask(ctx, first.ID.Hex())
	assert.ErrorIs(t, err, ErrNoMatch)

	stored, err := g.FindUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.CompletedTasks)
	assert.Len(t, stored.Tasks, 1)

	// completing again matches nothing and leaves the counter alone
	assert.ErrorIs(t, g.CompleteTask(ctx, userID, first.ID.Hex()), ErrNoMatch)
	stored, err = g.FindUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.CompletedTasks)

	require.NoError(t, g.IncrementCompleted(ctx, userID))
	stored, err = g.FindUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.CompletedTasks)

	require.NoError(t, g.PullTask(ctx, userID, second.ID.Hex()))
	tasks, err = g.FindTasks(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestGateway_NoMatch(t *testing.T) {
	g := setupTestGateway(t)
	ctx := context.Background()
	unknown := primitive.NewObjectID().Hex()

	_, err := g.FindTasks(ctx, unknown)
	assert.ErrorIs(t, err, ErrNoMatch)

	_, err = g.FindUser(ctx, unknown)
	assert.ErrorIs(t, err, ErrNoMatch)

	err = g.PushTask(ctx, unknown, task.New(task.Input{Name: "x"}, time.Now()))
	assert.ErrorIs(t, err, ErrNoMatch)
	assert.ErrorIs(t, g.IncrementCompleted(ctx, unknown), ErrNoMatch)

	u, err := g.InsertUser(ctx)
	require.NoError(t, err)
	assert.ErrorIs(t, g.PullTask(ctx, u.ID.Hex(), unknown), ErrNoMatch)
	assert.ErrorIs(t, g.SetTask(ctx, u.ID.Hex(), unknown, task.Input{Name: "x"}, time.Now()), ErrNoMatch)

	_, err = g.FindTask(ctx, "bogus")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestGateway_WithSession(t *testing.T) {
	g := setupTestGateway(t)

	var inner context.Context
	err := g.WithSession(context.Background(), func(ctx context.Context) error {
		inner = ctx
		_, err := g.InsertUser(ctx)
		return err
	})
	require.NoError(t, err)
	assert.NotNil(t, inner)
}
