package repository

import (
	"context"

	"github.com/somoscreators/taskboard/internal/domain/task"
)

// TaskExportRepository manages the persisted task export
type TaskExportRepository interface {
	Fetch(ctx context.Context) ([]task.Raw, error)
	Import(ctx context.Context, records []task.Raw) (int, error)
	Count(ctx context.Context) (int, error)
}
