package task

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"

	"github.com/example/tasklist-service/events"
)

// Service names registered by the task module.
const (
	ServiceGetTask      = "get-task"
	ServiceListTasks    = "list-tasks"
	ServiceCreateTask   = "create-task"
	ServiceUpdateTask   = "update-task"
	ServiceDeleteTask   = "delete-task"
	ServiceCompleteTask = "complete-task"
)

// TaskModule provides task lifecycle services (core domain).
type TaskModule struct {
	store    Store
	service  *Service
	eventBus mono.EventBus
	logger   types.Logger
}

var (
	_ mono.Module                = (*TaskModule)(nil)
	_ mono.ServiceProviderModule = (*TaskModule)(nil)
	_ mono.EventBusAwareModule   = (*TaskModule)(nil)
	_ mono.EventEmitterModule    = (*TaskModule)(nil)
	_ mono.HealthCheckableModule = (*TaskModule)(nil)
)

// NewModule creates a task module backed by store.
func NewModule(store Store, logger types.Logger) *TaskModule {
	return &TaskModule{
		store:   store,
		service: NewService(store, logger),
		logger:  logger,
	}
}

func (m *TaskModule) Name() string {
	return "task"
}

func (m *TaskModule) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

func (m *TaskModule) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.TaskCreatedV1.ToBase(),
		events.TaskUpdatedV1.ToBase(),
		events.TaskDeletedV1.ToBase(),
		events.TaskCompletedV1.ToBase(),
	}
}

func (m *TaskModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceGetTask, json.Unmarshal, json.Marshal, m.getTask,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceGetTask, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceListTasks, json.Unmarshal, json.Marshal, m.listTasks,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceListTasks, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceCreateTask, json.Unmarshal, json.Marshal, m.createTask,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceCreateTask, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceUpdateTask, json.Unmarshal, json.Marshal, m.updateTask,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceUpdateTask, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceDeleteTask, json.Unmarshal, json.Marshal, m.deleteTask,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceDeleteTask, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceCompleteTask, json.Unmarshal, json.Marshal, m.completeTask,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceCompleteTask, err)
	}

	m.logger.Info("Registered task services",
		"services", []string{
			ServiceGetTask, ServiceListTasks, ServiceCreateTask,
			ServiceUpdateTask, ServiceDeleteTask, ServiceCompleteTask,
		})
	return nil
}

// Health pings the document store when it supports it.
func (m *TaskModule) Health(ctx context.Context) mono.HealthStatus {
	p, ok := m.store.(pinger)
	if !ok {
		return mono.HealthStatus{Healthy: true, Message: "operational"}
	}
	if err := p.Ping(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("document store ping failed: %v", err),
		}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"driver": "mongo-driver",
		},
	}
}

func (m *TaskModule) Start(_ context.Context) error {
	if m.store == nil {
		return fmt.Errorf("task store not set")
	}
	if m.eventBus == nil {
		m.logger.Warn("eventBus not set, task events will not be published")
	}
	m.logger.Info("Task module started")
	return nil
}

func (m *TaskModule) Stop(_ context.Context) error {
	m.logger.Info("Task module stopped")
	return nil
}
