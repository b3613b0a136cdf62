package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// registerTools adds every dashboard tool to the server.
func registerTools(server *sdkmcp.Server, h *Handler) {
	// Status
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "dashboard_status",
		Description: "Report whether task data is loaded, when, how many records and which views are served",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ StatusParams) (*sdkmcp.CallToolResult, any, error) {
		return nil, h.Status(ctx), nil
	})
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "reload_data",
		Description: "Fetch the task export again and replace the loaded data. On failure the previous data stays loaded",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ StatusParams) (*sdkmcp.CallToolResult, any, error) {
		return result(h.Reload(ctx))
	})

	// Browsing
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "filter_options",
		Description: "List the clients, teams, team members and recency periods a view can be filtered by",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in OptionsParams) (*sdkmcp.CallToolResult, any, error) {
		return result(h.Options(ctx, in))
	})
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "query_tasks",
		Description: "Return the normalized tasks of a view that pass the client, team, member, recency and task-type filters",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in QueryParams) (*sdkmcp.CallToolResult, any, error) {
		return result(h.QueryTasks(ctx, in))
	})
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "Aggregate the filtered principal tasks of a view into one row per project (job title)",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in QueryParams) (*sdkmcp.CallToolResult, any, error) {
		return result(h.ListProjects(ctx, in))
	})
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "timeline_rows",
		Description: "Project the filtered data of a view into timeline rows with labels, dates, groups, styles and tooltips",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in QueryParams) (*sdkmcp.CallToolResult, any, error) {
		return result(h.TimelineRows(ctx, in))
	})
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_row",
		Description: "Get one row of the last timeline_rows result of a view by id",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in RowParams) (*sdkmcp.CallToolResult, any, error) {
		return result(h.GetRow(ctx, in))
	})
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_task_group",
		Description: "Get a principal task with its subtasks, including combined and adjusted dates",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in GroupParams) (*sdkmcp.CallToolResult, any, error) {
		return result(h.GetTaskGroup(ctx, in))
	})

	// Export
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "export_csv",
		Description: "Render the filtered data of a view as the CSV export with its suggested file name",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in QueryParams) (*sdkmcp.CallToolResult, any, error) {
		return result(h.ExportCSV(ctx, in))
	})
}

func result[T any](out T, err error) (*sdkmcp.CallToolResult, any, error) {
	if err != nil {
		return nil, nil, err
	}
	return nil, out, nil
}
