package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/somoscreators/taskboard/internal/domain/dashboard"
	"github.com/somoscreators/taskboard/internal/domain/project"
	"github.com/somoscreators/taskboard/internal/domain/task"
	"github.com/somoscreators/taskboard/internal/view"
)

// Service defines dashboard operations needed by MCP.
type Service interface {
	Load(ctx context.Context) (dashboard.Status, error)
	Status(ctx context.Context) dashboard.Status
	Query(ctx context.Context, viewName string, params view.Params) (*dashboard.Result, error)
	Tasks(ctx context.Context, viewName string, params view.Params) ([]task.Task, error)
	Projects(ctx context.Context, viewName string, params view.Params) ([]project.Row, error)
	Export(ctx context.Context, viewName string, params view.Params) (view.Table, error)
	Row(ctx context.Context, viewName string, id int) (view.Row, error)
	Options(ctx context.Context, viewName, group string) (view.Options, error)
	Group(ctx context.Context, viewName, number string) (task.Group, error)
}

// Handler dispatches dashboard commands.
type Handler struct {
	svc         Service
	defaultView string
}

// NewHandler creates a new handler. Calls without a view use defaultView.
func NewHandler(svc Service, defaultView string) *Handler {
	if defaultView == "" {
		defaultView = view.ViewTeam
	}
	return &Handler{svc: svc, defaultView: defaultView}
}

// Handle dispatches a method by tool name with JSON params.
func (h *Handler) Handle(ctx context.Context, method string, params json.RawMessage) (any, error) {
	switch method {
	case "dashboard_status":
		return h.Status(ctx), nil
	case "reload_data":
		return h.Reload(ctx)
	case "filter_options":
		var req OptionsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.Options(ctx, req)
	case "query_tasks":
		var req QueryParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.QueryTasks(ctx, req)
	case "list_projects":
		var req QueryParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.ListProjects(ctx, req)
	case "timeline_rows":
		var req QueryParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.TimelineRows(ctx, req)
	case "get_row":
		var req RowParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.GetRow(ctx, req)
	case "get_task_group":
		var req GroupParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.GetTaskGroup(ctx, req)
	case "export_csv":
		var req QueryParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.ExportCSV(ctx, req)
	default:
		return nil, mapError(fmt.Errorf("%w: %s", ErrMethodNotFound, method))
	}
}

// Status reports the loaded snapshot.
func (h *Handler) Status(ctx context.Context) dashboard.Status {
	return h.svc.Status(ctx)
}

// Reload fetches the data source again.
func (h *Handler) Reload(ctx context.Context) (dashboard.Status, error) {
	status, err := h.svc.Load(ctx)
	if err != nil {
		return dashboard.Status{}, mapError(err)
	}
	return status, nil
}

// Options lists the selector values of a view.
func (h *Handler) Options(ctx context.Context, req OptionsParams) (view.Options, error) {
	opts, err := h.svc.Options(ctx, h.view(req.View), req.Group)
	if err != nil {
		return view.Options{}, mapError(err)
	}
	return opts, nil
}

// QueryTasks returns the filtered tasks of a view.
func (h *Handler) QueryTasks(ctx context.Context, req QueryParams) (TasksResponse, error) {
	params, err := req.Params()
	if err != nil {
		return TasksResponse{}, mapError(err)
	}
	name := h.view(req.View)
	tasks, err := h.svc.Tasks(ctx, name, params)
	if err != nil {
		return TasksResponse{}, mapError(err)
	}
	return TasksResponse{View: name, Count: len(tasks), Tasks: tasks}, nil
}

// ListProjects returns the project rows of a view's filtered tasks.
func (h *Handler) ListProjects(ctx context.Context, req QueryParams) (ProjectsResponse, error) {
	params, err := req.Params()
	if err != nil {
		return ProjectsResponse{}, mapError(err)
	}
	name := h.view(req.View)
	rows, err := h.svc.Projects(ctx, name, params)
	if err != nil {
		return ProjectsResponse{}, mapError(err)
	}
	return ProjectsResponse{View: name, Count: len(rows), Projects: rows}, nil
}

// TimelineRows projects the display rows of a view.
func (h *Handler) TimelineRows(ctx context.Context, req QueryParams) (*dashboard.Result, error) {
	params, err := req.Params()
	if err != nil {
		return nil, mapError(err)
	}
	result, err := h.svc.Query(ctx, h.view(req.View), params)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// GetRow returns one row of the last timeline_rows result.
func (h *Handler) GetRow(ctx context.Context, req RowParams) (view.Row, error) {
	row, err := h.svc.Row(ctx, h.view(req.View), req.ID)
	if err != nil {
		return view.Row{}, mapError(err)
	}
	return row, nil
}

// GetTaskGroup returns a principal task with its subtasks.
func (h *Handler) GetTaskGroup(ctx context.Context, req GroupParams) (task.Group, error) {
	if strings.TrimSpace(req.TaskNumber) == "" {
		return task.Group{}, mapError(fmt.Errorf("%w: task_number is required", ErrInvalidParams))
	}
	group, err := h.svc.Group(ctx, h.view(req.View), req.TaskNumber)
	if err != nil {
		return task.Group{}, mapError(err)
	}
	return group, nil
}

// ExportCSV renders the export table of a view.
func (h *Handler) ExportCSV(ctx context.Context, req QueryParams) (ExportResponse, error) {
	params, err := req.Params()
	if err != nil {
		return ExportResponse{}, mapError(err)
	}
	table, err := h.svc.Export(ctx, h.view(req.View), params)
	if err != nil {
		return ExportResponse{}, mapError(err)
	}
	if table.Empty() {
		return ExportResponse{Filename: table.Filename, Empty: true, Message: NoDataMessage}, nil
	}
	return ExportResponse{
		Filename: table.Filename,
		Rows:     len(table.Rows),
		CSV:      string(table.CSV()),
	}, nil
}

func (h *Handler) view(name string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	return h.defaultView
}

// Params converts the query arguments into pipeline params.
func (q QueryParams) Params() (view.Params, error) {
	params := view.DefaultParams(time.Time{})
	params.Client = q.Client
	params.Group = q.Group
	params.Member = q.Member
	if q.Days != nil {
		if *q.Days <= 0 {
			return view.Params{}, fmt.Errorf("%w: days must be positive", ErrInvalidParams)
		}
		params.WindowDays = *q.Days
	}
	if q.Principal != nil {
		params.IncludePrincipal = *q.Principal
	}
	if q.Subtask != nil {
		params.IncludeSubtask = *q.Subtask
	}
	groupBy, err := view.ParseGroupBy(q.GroupBy)
	if err != nil {
		return view.Params{}, err
	}
	params.GroupBy = groupBy
	return params, nil
}

func decodeParams(params json.RawMessage, out any) error {
	if len(bytes.TrimSpace(params)) == 0 || bytes.Equal(bytes.TrimSpace(params), []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(params, out); err != nil {
		return mapError(fmt.Errorf("%w: %w", ErrInvalidParams, err))
	}
	return nil
}
