package task

import (
	"context"
	"errors"
	"time"

	"github.com/go-monolith/mono/pkg/types"

	domain "github.com/example/tasklist-service/domain/task"
	"github.com/example/tasklist-service/storage"
)

// Service is the task lifecycle manager. Every operation runs inside one
// store session and maps store outcomes to domain errors.
type Service struct {
	store  Store
	logger types.Logger
	now    func() time.Time
}

// NewService creates a new task service.
func NewService(store Store, logger types.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
		now:    func() time.Time { return domain.Timestamp(time.Now()) },
	}
}

// GetTask returns the task with the given id, whichever user owns it.
func (s *Service) GetTask(ctx context.Context, taskID string) (*domain.Task, error) {
	var found *domain.Task
	err := s.store.WithSession(ctx, func(ctx context.Context) error {
		t, err := s.store.FindTask(ctx, taskID)
		if err != nil {
			return err
		}
		found = t
		return nil
	})
	if err != nil {
		return nil, s.fail(domain.OpGet, domain.NotFound(taskID), err)
	}
	return found, nil
}

// GetAllTasks returns the tasks of a user in insertion order. A user with no
// tasks yields an empty slice.
func (s *Service) GetAllTasks(ctx context.Context, userID string) ([]domain.Task, error) {
	var tasks []domain.Task
	err := s.store.WithSession(ctx, func(ctx context.Context) error {
		found, err := s.store.FindTasks(ctx, userID)
		if err != nil {
			return err
		}
		tasks = found
		return nil
	})
	if err != nil {
		return nil, s.fail(domain.OpList, domain.UserNotFound(userID), err)
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, nil
}

// CreateTask appends a new task to the user's list. The push is filtered by
// user id, so an unknown user is reported without any write.
func (s *Service) CreateTask(ctx context.Context, userID string, in domain.Input) (*domain.Task, error) {
	t := domain.New(in, s.now())
	err := s.store.WithSession(ctx, func(ctx context.Context) error {
		return s.store.PushTask(ctx, userID, t)
	})
	if err != nil {
		return nil, s.fail(domain.OpCreate, domain.UserNotFound(userID), err)
	}
	return &t, nil
}

// UpdateTask sets name, description and updated_at on one of the user's
// tasks and returns the updated_at it wrote. A task owned by another user is
// reported as not found.
func (s *Service) UpdateTask(ctx context.Context, userID, taskID string, in domain.Input) (time.Time, error) {
	at := domain.Timestamp(s.now())
	err := s.store.WithSession(ctx, func(ctx context.Context) error {
		return s.store.SetTask(ctx, userID, taskID, in, at)
	})
	if err != nil {
		return time.Time{}, s.fail(domain.OpUpdate, domain.NotFound(taskID), err)
	}
	return at, nil
}

// DeleteTask removes one of the user's tasks.
func (s *Service) DeleteTask(ctx context.Context, userID, taskID string) error {
	err := s.store.WithSession(ctx, func(ctx context.Context) error {
		return s.store.PullTask(ctx, userID, taskID)
	})
	if err != nil {
		return s.fail(domain.OpDelete, domain.NotFound(taskID), err)
	}
	return nil
}

// CompleteTask removes one of the user's tasks and increments the user's
// completed counter. Both happen in a single store update: either the task
// is gone and the counter moved by one, or nothing changed.
func (s *Service) CompleteTask(ctx context.Context, userID, taskID string) error {
	err := s.store.WithSession(ctx, func(ctx context.Context) error {
		return s.store.CompleteTask(ctx, userID, taskID)
	})
	if err != nil {
		return s.fail(domain.OpComplete, domain.NotFound(taskID), err)
	}
	return nil
}

// fail maps a no-match outcome to notFound and anything else to a storage
// error for op. Storage causes are logged, never returned in the message.
func (s *Service) fail(op domain.Op, notFound error, err error) error {
	if errors.Is(err, storage.ErrNoMatch) {
		return notFound
	}
	s.logger.Error("Task store operation failed", "op", string(op), "error", err)
	return domain.Storage(op, err)
}
