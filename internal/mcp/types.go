package mcp

import (
	"github.com/somoscreators/taskboard/internal/domain/project"
	"github.com/somoscreators/taskboard/internal/domain/task"
	"github.com/somoscreators/taskboard/internal/view"
)

// StatusParams is the input of dashboard_status and reload_data.
type StatusParams struct{}

// OptionsParams is the input of filter_options.
type OptionsParams struct {
	View  string `json:"view,omitempty" jsonschema:"view name (omit for the default view)"`
	Group string `json:"group,omitempty" jsonschema:"team whose members should be listed"`
}

// QueryParams selects the filtered subset of a view.
type QueryParams struct {
	View      string `json:"view,omitempty" jsonschema:"view name (omit for the default view)"`
	Client    string `json:"client,omitempty" jsonschema:"client name, or all"`
	Group     string `json:"group,omitempty" jsonschema:"team name, or all"`
	Member    string `json:"member,omitempty" jsonschema:"owner display name, or all"`
	Days      *int   `json:"days,omitempty" jsonschema:"recency window in days (default 30)"`
	Principal *bool  `json:"principal,omitempty" jsonschema:"include principal tasks (default true)"`
	Subtask   *bool  `json:"subtask,omitempty" jsonschema:"include subtasks (default true)"`
	GroupBy   string `json:"group_by,omitempty" jsonschema:"row grouping: client, team, owner or auto"`
}

// RowParams is the input of get_row.
type RowParams struct {
	View string `json:"view,omitempty" jsonschema:"view name (omit for the default view)"`
	ID   int    `json:"id" jsonschema:"row id from the last timeline_rows call"`
}

// GroupParams is the input of get_task_group.
type GroupParams struct {
	View       string `json:"view,omitempty" jsonschema:"view name (omit for the default view)"`
	TaskNumber string `json:"task_number" jsonschema:"number of the principal task"`
}

// TasksResponse is the output of query_tasks.
type TasksResponse struct {
	View  string      `json:"view"`
	Count int         `json:"count"`
	Tasks []task.Task `json:"tasks"`
}

// ProjectsResponse is the output of list_projects.
type ProjectsResponse struct {
	View     string        `json:"view"`
	Count    int           `json:"count"`
	Projects []project.Row `json:"projects"`
}

// ExportResponse is the output of export_csv.
type ExportResponse struct {
	Filename string `json:"filename"`
	Rows     int    `json:"rows"`
	Empty    bool   `json:"empty"`
	Message  string `json:"message,omitempty"`
	CSV      string `json:"csv,omitempty"`
}

// NoDataMessage is reported when an export has no rows.
const NoDataMessage = view.NoDataMessage
