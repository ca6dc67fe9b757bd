package user

import (
	"context"
	"errors"

	"github.com/go-monolith/mono/pkg/types"

	"github.com/example/tasklist-service/domain/task"
	domain "github.com/example/tasklist-service/domain/user"
	"github.com/example/tasklist-service/storage"
)

// Service manages user documents.
type Service struct {
	store  Store
	logger types.Logger
}

// NewService creates a new user service.
func NewService(store Store, logger types.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// CreateUser inserts an empty user and returns its summary.
func (s *Service) CreateUser(ctx context.Context) (*domain.Summary, error) {
	var created *domain.User
	err := s.store.WithSession(ctx, func(ctx context.Context) error {
		u, err := s.store.InsertUser(ctx)
		if err != nil {
			return err
		}
		created = u
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to create user", "error", err)
		return nil, task.Storage(task.OpCreateUser, err)
	}
	summary := created.Summary()
	return &summary, nil
}

// GetUser returns the summary of an existing user.
func (s *Service) GetUser(ctx context.Context, userID string) (*domain.Summary, error) {
	var found *domain.User
	err := s.store.WithSession(ctx, func(ctx context.Context) error {
		u, err := s.store.FindUser(ctx, userID)
		if err != nil {
			return err
		}
		found = u
		return nil
	})
	if errors.Is(err, storage.ErrNoMatch) {
		return nil, task.UserNotFound(userID)
	}
	if err != nil {
		s.logger.Error("Failed to get user", "user_id", userID, "error", err)
		return nil, task.Storage(task.OpGetUser, err)
	}
	summary := found.Summary()
	return &summary, nil
}

// Exists reports whether userID names a stored user. Malformed ids are
// reported as absent.
func (s *Service) Exists(ctx context.Context, userID string) (bool, error) {
	if _, err := storage.ParseID(userID); err != nil {
		return false, nil
	}
	_, err := s.GetUser(ctx, userID)
	if errors.Is(err, task.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
