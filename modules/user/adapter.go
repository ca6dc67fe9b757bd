package user

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"

	domain "github.com/example/tasklist-service/domain/user"
)

// UserPort defines the interface for user operations (used by other modules).
// This is the "port" in hexagonal architecture.
type UserPort interface {
	CreateUser(ctx context.Context) (*domain.Summary, error)
	GetUser(ctx context.Context, userID string) (*domain.Summary, error)
	ValidateUser(ctx context.Context, userID string) (bool, error)
}

// userAdapter wraps ServiceContainer for type-safe cross-module communication.
// This is the "adapter" that implements the port interface.
type userAdapter struct {
	container mono.ServiceContainer
}

// NewUserAdapter creates a new adapter for user services.
// container is the ServiceContainer from the user module received via SetDependencyServiceContainer.
func NewUserAdapter(container mono.ServiceContainer) UserPort {
	if container == nil {
		panic("user adapter requires non-nil ServiceContainer")
	}
	return &userAdapter{container: container}
}

// CreateUser creates an empty user via the create-user service.
func (a *userAdapter) CreateUser(ctx context.Context) (*domain.Summary, error) {
	req := CreateUserRequest{}
	var resp UserResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceCreateUser,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("create-user service call failed: %w", err)
	}

	if err := resp.Err(); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// GetUser retrieves a user summary by ID via the get-user service.
func (a *userAdapter) GetUser(ctx context.Context, userID string) (*domain.Summary, error) {
	req := GetUserRequest{UserID: userID}
	var resp UserResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceGetUser,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("get-user service call failed: %w", err)
	}

	if err := resp.Err(); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// ValidateUser checks if a user exists via the validate-user service.
func (a *userAdapter) ValidateUser(ctx context.Context, userID string) (bool, error) {
	req := ValidateUserRequest{UserID: userID}
	var resp ValidateUserResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceValidateUser,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return false, fmt.Errorf("validate-user service call failed: %w", err)
	}

	if err := resp.Err(); err != nil {
		return false, err
	}
	return resp.Valid, nil
}
