package user

import (
	"github.com/example/tasklist-service/domain/task"
	domain "github.com/example/tasklist-service/domain/user"
)

// CreateUserRequest is the request for creating a user.
type CreateUserRequest struct{}

// GetUserRequest is the request for getting a user.
type GetUserRequest struct {
	UserID string `json:"user_id"`
}

// UserResponse is the response for creating or getting a user.
type UserResponse struct {
	User *domain.Summary `json:"user,omitempty"`
	task.Failure
}

// ValidateUserRequest is the request for validating a user.
type ValidateUserRequest struct {
	UserID string `json:"user_id"`
}

// ValidateUserResponse is the response for validating a user.
type ValidateUserResponse struct {
	Valid bool `json:"valid"`
	task.Failure
}
