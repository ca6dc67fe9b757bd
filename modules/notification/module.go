package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/tasklist-service/domain/task"
	"github.com/example/tasklist-service/events"
)

// ServiceListActivity is the request-reply service exposing the activity log.
const ServiceListActivity = "list-activity"

// NotificationModule records task events into a SQLite activity log.
// It subscribes to domain events using the EventConsumerModule interface.
type NotificationModule struct {
	dbPath string
	db     *gorm.DB
	repo   *Repository
	logger types.Logger
}

var _ mono.Module = (*NotificationModule)(nil)
var _ mono.EventConsumerModule = (*NotificationModule)(nil)
var _ mono.ServiceProviderModule = (*NotificationModule)(nil)
var _ mono.HealthCheckableModule = (*NotificationModule)(nil)

// NewModule creates a NotificationModule writing to the SQLite file at dbPath.
func NewModule(dbPath string, logger types.Logger) *NotificationModule {
	return &NotificationModule{
		dbPath: dbPath,
		logger: logger,
	}
}

func (m *NotificationModule) Name() string {
	return "notification"
}

func (m *NotificationModule) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskCreatedV1, m.handleTaskCreated, m); err != nil {
		return fmt.Errorf("failed to register TaskCreated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskUpdatedV1, m.handleTaskUpdated, m); err != nil {
		return fmt.Errorf("failed to register TaskUpdated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskCompletedV1, m.handleTaskCompleted, m); err != nil {
		return fmt.Errorf("failed to register TaskCompleted consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskDeletedV1, m.handleTaskDeleted, m); err != nil {
		return fmt.Errorf("failed to register TaskDeleted consumer: %w", err)
	}

	m.logger.Info("Registered event consumers", "events", "TaskCreated, TaskUpdated, TaskCompleted, TaskDeleted")
	return nil
}

func (m *NotificationModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceListActivity, json.Unmarshal, json.Marshal, m.listActivity,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceListActivity, err)
	}
	return nil
}

func (m *NotificationModule) handleTaskCreated(ctx context.Context, event events.TaskCreatedEvent, _ *mono.Msg) error {
	return m.record(ctx, &Activity{
		Type:       ActivityTaskCreated,
		UserID:     event.UserID,
		TaskID:     event.TaskID,
		Message:    fmt.Sprintf("New task '%s' created", event.Name),
		OccurredAt: event.CreatedAt,
	})
}

func (m *NotificationModule) handleTaskUpdated(ctx context.Context, event events.TaskUpdatedEvent, _ *mono.Msg) error {
	return m.record(ctx, &Activity{
		Type:       ActivityTaskUpdated,
		UserID:     event.UserID,
		TaskID:     event.TaskID,
		Message:    fmt.Sprintf("Task %s renamed to '%s'", event.TaskID, event.Name),
		OccurredAt: event.UpdatedAt,
	})
}

func (m *NotificationModule) handleTaskCompleted(ctx context.Context, event events.TaskCompletedEvent, _ *mono.Msg) error {
	return m.record(ctx, &Activity{
		Type:       ActivityTaskCompleted,
		UserID:     event.UserID,
		TaskID:     event.TaskID,
		Message:    fmt.Sprintf("Task %s completed!", event.TaskID),
		OccurredAt: event.CompletedAt,
	})
}

func (m *NotificationModule) handleTaskDeleted(ctx context.Context, event events.TaskDeletedEvent, _ *mono.Msg) error {
	return m.record(ctx, &Activity{
		Type:       ActivityTaskDeleted,
		UserID:     event.UserID,
		TaskID:     event.TaskID,
		Message:    fmt.Sprintf("Task %s deleted", event.TaskID),
		OccurredAt: event.DeletedAt,
	})
}

func (m *NotificationModule) record(ctx context.Context, activity *Activity) error {
	if m.repo == nil {
		return fmt.Errorf("notification module not started")
	}
	if err := m.repo.Create(ctx, activity); err != nil {
		m.logger.Error("Failed to record activity", "type", activity.Type, "task_id", activity.TaskID, "error", err)
		return err
	}
	m.logger.Debug("Activity recorded", "type", activity.Type, "task_id", activity.TaskID, "user_id", activity.UserID)
	return nil
}

// ListActivity returns the newest activities of a user and the total count.
// Repository faults come back as a task.StorageError; the cause is logged.
func (m *NotificationModule) ListActivity(ctx context.Context, userID string, limit int) ([]Activity, int64, error) {
	if m.repo == nil {
		return nil, 0, m.storageFailure(userID, fmt.Errorf("notification module not started"))
	}
	activities, err := m.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, 0, m.storageFailure(userID, err)
	}
	total, err := m.repo.CountByUser(ctx, userID)
	if err != nil {
		return nil, 0, m.storageFailure(userID, err)
	}
	return activities, total, nil
}

func (m *NotificationModule) storageFailure(userID string, err error) error {
	m.logger.Error("Failed to list activity", "user_id", userID, "error", err)
	return task.Storage(task.OpListActivity, err)
}

// listActivity handles the list-activity service request.
func (m *NotificationModule) listActivity(ctx context.Context, req ListActivityRequest, _ *mono.Msg) (ListActivityResponse, error) {
	if req.UserID == "" {
		err := &task.InvalidRequestError{Field: "user_id", Reason: "is required"}
		return ListActivityResponse{Activities: []Activity{}, Failure: task.NewFailure(err)}, nil
	}
	activities, total, err := m.ListActivity(ctx, req.UserID, req.Limit)
	if err != nil {
		return ListActivityResponse{Activities: []Activity{}, Failure: task.NewFailure(err)}, nil
	}
	return ListActivityResponse{Activities: activities, Total: total}, nil
}

// Health performs a health check on the activity database.
func (m *NotificationModule) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get sql.DB: %v", err),
		}
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"driver": "sqlite",
			"path":   m.dbPath,
		},
	}
}

// Start opens the activity database and runs migrations.
func (m *NotificationModule) Start(_ context.Context) error {
	m.logger.Info("Opening activity database", "path", m.dbPath)

	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	// SQLite allows one writer; an in-memory database also lives in a single connection.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&Activity{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	m.db = db
	m.repo = NewRepository(db)

	m.logger.Info("Notification module started - listening for task events")
	return nil
}

// Stop closes the activity database.
func (m *NotificationModule) Stop(_ context.Context) error {
	if m.db == nil {
		return nil
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	m.logger.Info("Notification module stopped")
	return nil
}
