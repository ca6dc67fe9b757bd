package task

import (
	"context"

	domain "github.com/example/tasklist-service/domain/task"
)

// Success messages returned by the mutating services.
const (
	MsgTaskCreated   = "Task created"
	MsgTaskUpdated   = "Task updated"
	MsgTaskDeleted   = "Task deleted"
	MsgTaskCompleted = "Task completed"
)

// GetTaskRequest is the request for getting a task.
type GetTaskRequest struct {
	TaskID string `json:"task_id"`
}

// TaskResponse is the response for a single task.
type TaskResponse struct {
	Task *domain.Task `json:"task,omitempty"`
	domain.Failure
}

// ListTasksRequest is the request for listing a user's tasks.
type ListTasksRequest struct {
	UserID string `json:"user_id"`
}

// ListTasksResponse is the response for listing tasks.
type ListTasksResponse struct {
	Tasks []domain.Task `json:"tasks"`
	Total int           `json:"total"`
	domain.Failure
}

// CreateTaskRequest is the request for creating a task.
type CreateTaskRequest struct {
	UserID      string `json:"user_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreateTaskResponse is the response for creating a task.
type CreateTaskResponse struct {
	Message string       `json:"message,omitempty"`
	Task    *domain.Task `json:"task,omitempty"`
	domain.Failure
}

// UpdateTaskRequest is the request for updating a task.
type UpdateTaskRequest struct {
	UserID      string `json:"user_id"`
	TaskID      string `json:"task_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// DeleteTaskRequest is the request for deleting a task.
type DeleteTaskRequest struct {
	UserID string `json:"user_id"`
	TaskID string `json:"task_id"`
}

// CompleteTaskRequest is the request for completing a task.
type CompleteTaskRequest struct {
	UserID string `json:"user_id"`
	TaskID string `json:"task_id"`
}

// MessageResponse is the response of update, delete and complete.
type MessageResponse struct {
	Message string `json:"message,omitempty"`
	domain.Failure
}

// TaskPort defines the interface for task operations (hexagonal port).
// Driving adapters such as the HTTP API use it to reach the core domain.
type TaskPort interface {
	GetTask(ctx context.Context, taskID string) (*domain.Task, error)
	ListTasks(ctx context.Context, userID string) ([]domain.Task, error)
	CreateTask(ctx context.Context, userID string, in domain.Input) (*domain.Task, error)
	UpdateTask(ctx context.Context, userID, taskID string, in domain.Input) error
	DeleteTask(ctx context.Context, userID, taskID string) error
	CompleteTask(ctx context.Context, userID, taskID string) error
}
