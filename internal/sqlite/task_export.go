package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/somoscreators/taskboard/internal/domain/task"
	"github.com/somoscreators/taskboard/internal/repository"
)

var taskExportColumns = []string{
	"client_nickname",
	"task_number",
	"task_title",
	"job_title",
	"version",
	"request_date",
	"unit_name",
	"end_date",
	"current_due_date",
	"request_type_name",
	"execution_group_name",
	"owner_display_name",
	"owner_group_name",
	"closing_date",
	"priority",
	"parent_task_id",
	"start_date",
	"tipo_tarefa",
	"pipeline_step_title",
}

// TaskExportRepository implements repository.TaskExportRepository for SQLite.
// It also serves as a dashboard source.
type TaskExportRepository struct {
	db *DB
}

var _ repository.TaskExportRepository = (*TaskExportRepository)(nil)

// NewTaskExportRepository creates a new TaskExportRepository
func NewTaskExportRepository(db *DB) *TaskExportRepository {
	return &TaskExportRepository{db: db}
}

// Fetch returns every stored record in import order
func (r *TaskExportRepository) Fetch(ctx context.Context) ([]task.Raw, error) {
	query := "SELECT " + strings.Join(taskExportColumns, ", ") + " FROM task_export ORDER BY position"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		if isMissingTable(err) {
			return nil, fmt.Errorf("%w: task_export table", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to list task export: %w", err)
	}
	defer rows.Close()

	records := []task.Raw{}
	for rows.Next() {
		var raw task.Raw
		if err := rows.Scan(fields(&raw)...); err != nil {
			return nil, fmt.Errorf("failed to scan task export row: %w", err)
		}
		records = append(records, raw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task export rows: %w", err)
	}

	return records, nil
}

// Import replaces the stored export with records in one transaction
func (r *TaskExportRepository) Import(ctx context.Context, records []task.Raw) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM task_export"); err != nil {
		return 0, fmt.Errorf("failed to clear task export: %w", err)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(taskExportColumns)+1), ", ")
	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO task_export (position, "+strings.Join(taskExportColumns, ", ")+") VALUES ("+placeholders+")")
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := range records {
		args := make([]any, 0, len(taskExportColumns)+1)
		args = append(args, i)
		for _, f := range fields(&records[i]) {
			args = append(args, string(*f.(*task.Field)))
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return 0, fmt.Errorf("failed to insert record %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit import: %w", err)
	}
	return len(records), nil
}

// Count returns the number of stored records
func (r *TaskExportRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM task_export").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count task export: %w", err)
	}
	return count, nil
}

// fields lists the record's columns in taskExportColumns order.
func fields(raw *task.Raw) []any {
	return []any{
		&raw.ClientNickname,
		&raw.TaskNumber,
		&raw.TaskTitle,
		&raw.JobTitle,
		&raw.Version,
		&raw.RequestDate,
		&raw.UnitName,
		&raw.EndDate,
		&raw.CurrentDueDate,
		&raw.RequestTypeName,
		&raw.TaskExecutionFunctionGroupName,
		&raw.TaskOwnerDisplayName,
		&raw.TaskOwnerGroupName,
		&raw.TaskClosingDate,
		&raw.Priority,
		&raw.ParentTaskID,
		&raw.StartDate,
		&raw.TipoTarefa,
		&raw.PipelineStepTitle,
	}
}
