package task

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	domain "github.com/example/tasklist-service/domain/task"
)

func newTestModule(t *testing.T) (*TaskModule, *mockStore, string) {
	t.Helper()
	store := newMockStore()
	userID := store.addUser()
	return NewModule(store, &mockLogger{}), store, userID
}

func TestTaskModule_Name(t *testing.T) {
	m, _, _ := newTestModule(t)
	assert.Equal(t, "task", m.Name())
	assert.Len(t, m.EmitEvents(), 4)
}

func TestTaskModule_StartRequiresStore(t *testing.T) {
	m := NewModule(nil, &mockLogger{})
	assert.Error(t, m.Start(context.Background()))

	m, _, _ = newTestModule(t)
	assert.NoError(t, m.Start(context.Background()))
	assert.NoError(t, m.Stop(context.Background()))
}

type pingStore struct {
	*mockStore
	pingErr error
}

func (p *pingStore) Ping(context.Context) error { return p.pingErr }

func TestTaskModule_Health(t *testing.T) {
	t.Run("store without ping", func(t *testing.T) {
		m, _, _ := newTestModule(t)
		assert.True(t, m.Health(context.Background()).Healthy)
	})

	t.Run("ping ok", func(t *testing.T) {
		m := NewModule(&pingStore{mockStore: newMockStore()}, &mockLogger{})
		status := m.Health(context.Background())
		assert.True(t, status.Healthy)
		assert.Equal(t, "mongo-driver", status.Details["driver"])
	})

	t.Run("ping fails", func(t *testing.T) {
		m := NewModule(&pingStore{mockStore: newMockStore(), pingErr: errors.New("down")}, &mockLogger{})
		status := m.Health(context.Background())
		assert.False(t, status.Healthy)
		assert.Contains(t, status.Message, "down")
	})
}

func TestTaskModule_CreateAndGet(t *testing.T) {
	m, _, userID := newTestModule(t)
	ctx := context.Background()

	created, err := m.createTask(ctx, CreateTaskRequest{UserID: userID, Name: "Buy milk"}, nil)
	require.NoError(t, err)
	require.NoError(t, created.Err())
	assert.Equal(t, MsgTaskCreated, created.Message)
	require.NotNil(t, created.Task)

	got, err := m.getTask(ctx, GetTaskRequest{TaskID: created.Task.ID.Hex()}, nil)
	require.NoError(t, err)
	require.NoError(t, got.Err())
	assert.Equal(t, "Buy milk", got.Task.Name)

	list, err := m.listTasks(ctx, ListTasksRequest{UserID: userID}, nil)
	require.NoError(t, err)
	require.NoError(t, list.Err())
	assert.Equal(t, 1, list.Total)
}

func TestTaskModule_Validation(t *testing.T) {
	m, _, userID := newTestModule(t)
	ctx := context.Background()
	taskID := primitive.NewObjectID().Hex()

	tests := []struct {
		name string
		call func() domain.Failure
	}{
		{"get without task id", func() domain.Failure {
			r, _ := m.getTask(ctx, GetTaskRequest{}, nil)
			return r.Failure
		}},
		{"list without user id", func() domain.Failure {
			r, _ := m.listTasks(ctx, ListTasksRequest{}, nil)
			return r.Failure
		}},
		{"create without name", func() domain.Failure {
			r, _ := m.createTask(ctx, CreateTaskRequest{UserID: userID}, nil)
			return r.Failure
		}},
		{"update without task id", func() domain.Failure {
			r, _ := m.updateTask(ctx, UpdateTaskRequest{UserID: userID, Name: "x"}, nil)
			return r.Failure
		}},
		{"update without name", func() domain.Failure {
			r, _ := m.updateTask(ctx, UpdateTaskRequest{UserID: userID, TaskID: taskID}, nil)
			return r.Failure
		}},
		{"delete without user id", func() domain.Failure {
			r, _ := m.deleteTask(ctx, DeleteTaskRequest{TaskID: taskID}, nil)
			return r.Failure
		}},
		{"complete without user id", func() domain.Failure {
			r, _ := m.completeTask(ctx, CompleteTaskRequest{TaskID: taskID}, nil)
			return r.Failure
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := tc.call()
			assert.Equal(t, domain.CodeInvalidRequest, f.Code)
			assert.ErrorIs(t, f.Err(), domain.ErrInvalidRequest)
		})
	}
}

func TestTaskModule_NotFoundCrossesTheWire(t *testing.T) {
	m, _, userID := newTestModule(t)
	taskID := primitive.NewObjectID().Hex()

	resp, err := m.completeTask(context.Background(), CompleteTaskRequest{UserID: userID, TaskID: taskID}, nil)
	require.NoError(t, err)

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded MessageResponse
	require.NoError(t, json.Unmarshal(data, &decoded))

	got := decoded.Err()
	require.Error(t, got)
	assert.ErrorIs(t, got, domain.ErrNotFound)
	assert.Equal(t, "Task with ID "+taskID+", wasn't found", got.Error())
	assert.Empty(t, decoded.Message)
}

func TestTaskModule_UpdateDeleteComplete(t *testing.T) {
	m, store, userID := newTestModule(t)
	ctx := context.Background()

	a, _ := m.createTask(ctx, CreateTaskRequest{UserID: userID, Name: "a"}, nil)
	b, _ := m.createTask(ctx, CreateTaskRequest{UserID: userID, Name: "b"}, nil)

	upd, err := m.updateTask(ctx, UpdateTaskRequest{UserID: userID, TaskID: a.Task.ID.Hex(), Name: "a2"}, nil)
	require.NoError(t, err)
	require.NoError(t, upd.Err())
	assert.Equal(t, MsgTaskUpdated, upd.Message)

	del, err := m.deleteTask(ctx, DeleteTaskRequest{UserID: userID, TaskID: a.Task.ID.Hex()}, nil)
	require.NoError(t, err)
	require.NoError(t, del.Err())
	assert.Equal(t, MsgTaskDeleted, del.Message)

	done, err := m.completeTask(ctx, CompleteTaskRequest{UserID: userID, TaskID: b.Task.ID.Hex()}, nil)
	require.NoError(t, err)
	require.NoError(t, done.Err())
	assert.Equal(t, MsgTaskCompleted, done.Message)

	assert.Empty(t, store.users[userID].tasks)
	assert.Equal(t, 1, store.users[userID].completed)
}

func TestNewTaskAdapter_NilContainer(t *testing.T) {
	assert.Panics(t, func() { NewTaskAdapter(nil) })
}
