package task

import (
	"context"
	"time"

	"github.com/go-monolith/mono"

	domain "github.com/example/tasklist-service/domain/task"
	"github.com/example/tasklist-service/events"
)

// getTask handles the get-task service request.
func (m *TaskModule) getTask(ctx context.Context, req GetTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	if req.TaskID == "" {
		return TaskResponse{Failure: domain.NewFailure(required("task_id"))}, nil
	}

	t, err := m.service.GetTask(ctx, req.TaskID)
	if err != nil {
		return TaskResponse{Failure: domain.NewFailure(err)}, nil
	}
	return TaskResponse{Task: t}, nil
}

// listTasks handles the list-tasks service request.
func (m *TaskModule) listTasks(ctx context.Context, req ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	if req.UserID == "" {
		return ListTasksResponse{Tasks: []domain.Task{}, Failure: domain.NewFailure(required("user_id"))}, nil
	}

	tasks, err := m.service.GetAllTasks(ctx, req.UserID)
	if err != nil {
		return ListTasksResponse{Tasks: []domain.Task{}, Failure: domain.NewFailure(err)}, nil
	}
	return ListTasksResponse{Tasks: tasks, Total: len(tasks)}, nil
}

// createTask handles the create-task service request.
func (m *TaskModule) createTask(ctx context.Context, req CreateTaskRequest, _ *mono.Msg) (CreateTaskResponse, error) {
	if req.UserID == "" {
		return CreateTaskResponse{Failure: domain.NewFailure(required("user_id"))}, nil
	}
	if req.Name == "" {
		return CreateTaskResponse{Failure: domain.NewFailure(required("name"))}, nil
	}

	t, err := m.service.CreateTask(ctx, req.UserID, domain.Input{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return CreateTaskResponse{Failure: domain.NewFailure(err)}, nil
	}

	if m.eventBus != nil {
		event := events.TaskCreatedEvent{
			TaskID:      t.ID.Hex(),
			UserID:      req.UserID,
			Name:        t.Name,
			Description: t.Description,
			CreatedAt:   t.CreatedAt,
		}
		if err := events.TaskCreatedV1.Publish(m.eventBus, event, nil); err != nil {
			// Event publishing is best-effort; log but don't fail the operation
			m.logger.Warn("Failed to publish TaskCreated event", "task_id", event.TaskID, "error", err)
		}
	}

	return CreateTaskResponse{Message: MsgTaskCreated, Task: t}, nil
}

// updateTask handles the update-task service request.
func (m *TaskModule) updateTask(ctx context.Context, req UpdateTaskRequest, _ *mono.Msg) (MessageResponse, error) {
	if err := requireIDs(req.UserID, req.TaskID); err != nil {
		return MessageResponse{Failure: domain.NewFailure(err)}, nil
	}
	if req.Name == "" {
		return MessageResponse{Failure: domain.NewFailure(required("name"))}, nil
	}

	updatedAt, err := m.service.UpdateTask(ctx, req.UserID, req.TaskID, domain.Input{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return MessageResponse{Failure: domain.NewFailure(err)}, nil
	}

	if m.eventBus != nil {
		event := events.TaskUpdatedEvent{
			TaskID:    req.TaskID,
			UserID:    req.UserID,
			Name:      req.Name,
			UpdatedAt: updatedAt,
		}
		if err := events.TaskUpdatedV1.Publish(m.eventBus, event, nil); err != nil {
			m.logger.Warn("Failed to publish TaskUpdated event", "task_id", req.TaskID, "error", err)
		}
	}

	return MessageResponse{Message: MsgTaskUpdated}, nil
}

// deleteTask handles the delete-task service request.
func (m *TaskModule) deleteTask(ctx context.Context, req DeleteTaskRequest, _ *mono.Msg) (MessageResponse, error) {
	if err := requireIDs(req.UserID, req.TaskID); err != nil {
		return MessageResponse{Failure: domain.NewFailure(err)}, nil
	}

	if err := m.service.DeleteTask(ctx, req.UserID, req.TaskID); err != nil {
		return MessageResponse{Failure: domain.NewFailure(err)}, nil
	}

	if m.eventBus != nil {
		event := events.TaskDeletedEvent{
			TaskID:    req.TaskID,
			UserID:    req.UserID,
			DeletedAt: time.Now(),
		}
		if err := events.TaskDeletedV1.Publish(m.eventBus, event, nil); err != nil {
			m.logger.Warn("Failed to publish TaskDeleted event", "task_id", req.TaskID, "error", err)
		}
	}

	return MessageResponse{Message: MsgTaskDeleted}, nil
}

// completeTask handles the complete-task service request.
func (m *TaskModule) completeTask(ctx context.Context, req CompleteTaskRequest, _ *mono.Msg) (MessageResponse, error) {
	if err := requireIDs(req.UserID, req.TaskID); err != nil {
		return MessageResponse{Failure: domain.NewFailure(err)}, nil
	}

	if err := m.service.CompleteTask(ctx, req.UserID, req.TaskID); err != nil {
		return MessageResponse{Failure: domain.NewFailure(err)}, nil
	}

	if m.eventBus != nil {
		event := events.TaskCompletedEvent{
			TaskID:      req.TaskID,
			UserID:      req.UserID,
			CompletedAt: time.Now(),
		}
		if err := events.TaskCompletedV1.Publish(m.eventBus, event, nil); err != nil {
			m.logger.Warn("Failed to publish TaskCompleted event", "task_id", req.TaskID, "error", err)
		}
	}

	return MessageResponse{Message: MsgTaskCompleted}, nil
}

func required(field string) error {
	return &domain.InvalidRequestError{Field: field, Reason: "is required"}
}

func requireIDs(userID, taskID string) error {
	if userID == "" {
		return required("user_id")
	}
	if taskID == "" {
		return required("task_id")
	}
	return nil
}
