package notification

import (
	"github.com/example/tasklist-service/domain/task"
)

// ListActivityRequest is the request for listing a user's activity.
type ListActivityRequest struct {
	UserID string `json:"user_id"`
	Limit  int    `json:"limit,omitempty"`
}

// ListActivityResponse is the response for listing activity.
type ListActivityResponse struct {
	Activities []Activity `json:"activities"`
	Total      int64      `json:"total"`
	task.Failure
}
