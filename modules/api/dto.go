package api

import (
	domain "github.com/example/tasklist-service/domain/task"
	"github.com/example/tasklist-service/modules/notification"
)

// TaskRequest is the HTTP body for creating or updating a task.
type TaskRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// MessageResponse is the HTTP response of update, delete and complete.
type MessageResponse struct {
	Message string `json:"message"`
}

// CreateTaskResponse is the HTTP response for creating a task.
type CreateTaskResponse struct {
	Message string       `json:"message"`
	Task    *domain.Task `json:"task"`
}

// ListTasksResponse is the HTTP response for listing tasks.
type ListTasksResponse struct {
	Tasks []domain.Task `json:"tasks"`
	Total int           `json:"total"`
}

// ListActivityResponse is the HTTP response for a user's activity log.
type ListActivityResponse struct {
	Activities []notification.Activity `json:"activities"`
	Total      int64                   `json:"total"`
}

// HealthResponse is the HTTP response for health check.
type HealthResponse struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorResponse is the HTTP response for errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
