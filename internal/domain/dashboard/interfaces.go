package dashboard

import (
	"context"

	"github.com/somoscreators/taskboard/internal/domain/activity"
	"github.com/somoscreators/taskboard/internal/domain/task"
)

// Source provides the raw task records of one load.
type Source interface {
	Fetch(ctx context.Context) ([]task.Raw, error)
}

// ActivityLogger records dashboard events.
type ActivityLogger interface {
	LogActivity(ctx context.Context, entry *activity.Entry) error
}
