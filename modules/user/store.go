package user

import (
	"context"

	domain "github.com/example/tasklist-service/domain/user"
)

// Store is the part of the document store gateway the user module needs.
type Store interface {
	WithSession(ctx context.Context, fn func(ctx context.Context) error) error
	InsertUser(ctx context.Context) (*domain.User, error)
	FindUser(ctx context.Context, userID string) (*domain.User, error)
}
