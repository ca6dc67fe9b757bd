package task

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"

	domain "github.com/example/tasklist-service/domain/task"
)

// taskAdapter wraps ServiceContainer for type-safe cross-module communication.
// This is the adapter that implements the TaskPort interface.
type taskAdapter struct {
	container mono.ServiceContainer
}

// NewTaskAdapter creates a new adapter for task services.
// container is the ServiceContainer from the task module received via SetDependencyServiceContainer.
func NewTaskAdapter(container mono.ServiceContainer) TaskPort {
	if container == nil {
		panic("task adapter requires non-nil ServiceContainer")
	}
	return &taskAdapter{container: container}
}

func (a *taskAdapter) call(ctx context.Context, service string, req, resp any) error {
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		resp,
	); err != nil {
		return fmt.Errorf("%s service call failed: %w", service, err)
	}
	return nil
}

// GetTask retrieves a task by ID via the get-task service.
func (a *taskAdapter) GetTask(ctx context.Context, taskID string) (*domain.Task, error) {
	var resp TaskResponse
	if err := a.call(ctx, ServiceGetTask, &GetTaskRequest{TaskID: taskID}, &resp); err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	return resp.Task, nil
}

// ListTasks lists a user's tasks via the list-tasks service.
func (a *taskAdapter) ListTasks(ctx context.Context, userID string) ([]domain.Task, error) {
	var resp ListTasksResponse
	if err := a.call(ctx, ServiceListTasks, &ListTasksRequest{UserID: userID}, &resp); err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	if resp.Tasks == nil {
		return []domain.Task{}, nil
	}
	return resp.Tasks, nil
}

// CreateTask creates a task via the create-task service.
func (a *taskAdapter) CreateTask(ctx context.Context, userID string, in domain.Input) (*domain.Task, error) {
	req := CreateTaskRequest{UserID: userID, Name: in.Name, Description: in.Description}
	var resp CreateTaskResponse
	if err := a.call(ctx, ServiceCreateTask, &req, &resp); err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	return resp.Task, nil
}

// UpdateTask updates a task via the update-task service.
func (a *taskAdapter) UpdateTask(ctx context.Context, userID, taskID string, in domain.Input) error {
	req := UpdateTaskRequest{UserID: userID, TaskID: taskID, Name: in.Name, Description: in.Description}
	var resp MessageResponse
	if err := a.call(ctx, ServiceUpdateTask, &req, &resp); err != nil {
		return err
	}
	return resp.Err()
}

// DeleteTask deletes a task via the delete-task service.
func (a *taskAdapter) DeleteTask(ctx context.Context, userID, taskID string) error {
	var resp MessageResponse
	if err := a.call(ctx, ServiceDeleteTask, &DeleteTaskRequest{UserID: userID, TaskID: taskID}, &resp); err != nil {
		return err
	}
	return resp.Err()
}

// CompleteTask completes a task via the complete-task service.
func (a *taskAdapter) CompleteTask(ctx context.Context, userID, taskID string) error {
	var resp MessageResponse
	if err := a.call(ctx, ServiceCompleteTask, &CompleteTaskRequest{UserID: userID, TaskID: taskID}, &resp); err != nil {
		return err
	}
	return resp.Err()
}
