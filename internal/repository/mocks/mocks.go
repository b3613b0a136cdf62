package mocks

import (
	"context"

	"github.com/somoscreators/taskboard/internal/domain/activity"
	"github.com/somoscreators/taskboard/internal/domain/task"
	"github.com/stretchr/testify/mock"
)

// Source is a mock for dashboard.Source.
type Source struct {
	mock.Mock
}

func (m *Source) Fetch(ctx context.Context) ([]task.Raw, error) {
	args := m.Called(ctx)
	if records, ok := args.Get(0).([]task.Raw); ok {
		return records, args.Error(1)
	}
	return nil, args.Error(1)
}

// TaskExportRepository is a mock for repository.TaskExportRepository.
type TaskExportRepository struct {
	mock.Mock
}

func (m *TaskExportRepository) Fetch(ctx context.Context) ([]task.Raw, error) {
	args := m.Called(ctx)
	if records, ok := args.Get(0).([]task.Raw); ok {
		return records, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskExportRepository) Import(ctx context.Context, records []task.Raw) (int, error) {
	args := m.Called(ctx, records)
	return args.Int(0), args.Error(1)
}

func (m *TaskExportRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, entry *activity.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, opts activity.ListOptions) ([]activity.Entry, error) {
	args := m.Called(ctx, opts)
	if entries, ok := args.Get(0).([]activity.Entry); ok {
		return entries, args.Error(1)
	}
	return nil, args.Error(1)
}
