package notification

import (
	"time"
)

// Activity types recorded from task events.
const (
	ActivityTaskCreated   = "task_created"
	ActivityTaskUpdated   = "task_updated"
	ActivityTaskDeleted   = "task_deleted"
	ActivityTaskCompleted = "task_completed"
)

// Activity is one entry of a user's activity log.
type Activity struct {
	ID         string    `gorm:"primarykey;size:36" json:"id"`
	Type       string    `gorm:"size:32;not null" json:"type"`
	UserID     string    `gorm:"size:24;not null;index" json:"user_id"`
	TaskID     string    `gorm:"size:24;not null" json:"task_id"`
	Message    string    `gorm:"size:500" json:"message"`
	OccurredAt time.Time `gorm:"not null" json:"occurred_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName returns the table name for Activity model.
func (Activity) TableName() string {
	return "activities"
}
