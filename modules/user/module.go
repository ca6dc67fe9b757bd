package user

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"

	"github.com/example/tasklist-service/domain/task"
)

// Service names registered by the user module.
const (
	ServiceCreateUser   = "create-user"
	ServiceGetUser      = "get-user"
	ServiceValidateUser = "validate-user"
)

// UserModule provides user management services.
type UserModule struct {
	service *Service
	logger  types.Logger
}

// Compile-time interface checks.
var _ mono.Module = (*UserModule)(nil)
var _ mono.ServiceProviderModule = (*UserModule)(nil)

// NewModule creates a new UserModule.
func NewModule(store Store, logger types.Logger) *UserModule {
	return &UserModule{
		service: NewService(store, logger),
		logger:  logger,
	}
}

// Name returns the module name.
func (m *UserModule) Name() string {
	return "user"
}

// RegisterServices registers request-reply services in the service container.
func (m *UserModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container,
		ServiceCreateUser,
		json.Unmarshal,
		json.Marshal,
		m.createUser,
	); err != nil {
		return fmt.Errorf("failed to register create-user service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container,
		ServiceGetUser,
		json.Unmarshal,
		json.Marshal,
		m.getUser,
	); err != nil {
		return fmt.Errorf("failed to register get-user service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container,
		ServiceValidateUser,
		json.Unmarshal,
		json.Marshal,
		m.validateUser,
	); err != nil {
		return fmt.Errorf("failed to register validate-user service: %w", err)
	}

	m.logger.Info("Registered services", "services", "create-user, get-user, validate-user")
	return nil
}

// createUser handles the create-user service request.
func (m *UserModule) createUser(ctx context.Context, _ CreateUserRequest, _ *mono.Msg) (UserResponse, error) {
	summary, err := m.service.CreateUser(ctx)
	if err != nil {
		return UserResponse{Failure: task.NewFailure(err)}, nil
	}
	m.logger.Info("User created", "user_id", summary.ID)
	return UserResponse{User: summary}, nil
}

// getUser handles the get-user service request.
func (m *UserModule) getUser(ctx context.Context, req GetUserRequest, _ *mono.Msg) (UserResponse, error) {
	if req.UserID == "" {
		return UserResponse{Failure: task.NewFailure(&task.InvalidRequestError{Field: "user_id", Reason: "is required"})}, nil
	}
	summary, err := m.service.GetUser(ctx, req.UserID)
	if err != nil {
		return UserResponse{Failure: task.NewFailure(err)}, nil
	}
	return UserResponse{User: summary}, nil
}

// validateUser handles the validate-user service request.
func (m *UserModule) validateUser(ctx context.Context, req ValidateUserRequest, _ *mono.Msg) (ValidateUserResponse, error) {
	valid, err := m.service.Exists(ctx, req.UserID)
	if err != nil {
		return ValidateUserResponse{Failure: task.NewFailure(err)}, nil
	}
	return ValidateUserResponse{Valid: valid}, nil
}

// Start initializes the module.
func (m *UserModule) Start(_ context.Context) error {
	m.logger.Info("User module started")
	return nil
}

// Stop shuts down the module.
func (m *UserModule) Stop(_ context.Context) error {
	m.logger.Info("User module stopped")
	return nil
}
