package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// ActivityPort reads the activity log from other modules.
type ActivityPort interface {
	ListActivity(ctx context.Context, userID string, limit int) ([]Activity, int64, error)
}

type activityAdapter struct {
	container mono.ServiceContainer
}

// NewActivityAdapter creates an adapter for the list-activity service.
func NewActivityAdapter(container mono.ServiceContainer) ActivityPort {
	if container == nil {
		panic("activity adapter requires non-nil ServiceContainer")
	}
	return &activityAdapter{container: container}
}

func (a *activityAdapter) ListActivity(ctx context.Context, userID string, limit int) ([]Activity, int64, error) {
	req := ListActivityRequest{UserID: userID, Limit: limit}
	var resp ListActivityResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceListActivity,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, 0, fmt.Errorf("list-activity service call failed: %w", err)
	}

	if err := resp.Err(); err != nil {
		return nil, 0, err
	}
	return resp.Activities, resp.Total, nil
}
