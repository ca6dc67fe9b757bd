package task

import (
	"context"
	"time"

	domain "github.com/example/tasklist-service/domain/task"
)

// Store is the document store gateway the lifecycle manager depends on.
// Lookups and updates that match nothing return storage.ErrNoMatch.
type Store interface {
	// WithSession scopes one store session around fn and always releases it.
	WithSession(ctx context.Context, fn func(ctx context.Context) error) error

	FindTask(ctx context.Context, taskID string) (*domain.Task, error)
	FindTasks(ctx context.Context, userID string) ([]domain.Task, error)
	PushTask(ctx context.Context, userID string, t domain.Task) error
	SetTask(ctx context.Context, userID, taskID string, in domain.Input, at time.Time) error
	PullTask(ctx context.Context, userID, taskID string) error
	CompleteTask(ctx context.Context, userID, taskID string) error
}

type pinger interface {
	Ping(ctx context.Context) error
}
