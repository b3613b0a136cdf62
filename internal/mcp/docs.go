package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `taskboard serves a read-only timeline of the agency's task export.

Core concepts:
- Snapshot: one successful load of the export. reload_data replaces it; a failed reload keeps the old one.
- View: a named pipeline configuration. "clients" aggregates principal tasks into projects; "team" shows tasks and subtasks.
- Filters: client, group (team), member, days (recency window), principal/subtask toggles. "all" means no filter.
- Rows: timeline_rows returns display rows; row ids are positions in that result and are valid until the next reload.

Default workflow:
1) dashboard_status to see whether data is loaded and which views exist.
2) filter_options for valid client, team and member names.
3) timeline_rows (or query_tasks / list_projects) with filters.
4) get_row or get_task_group for details; export_csv for the spreadsheet export.

Docs:
- taskboard://docs/index
- taskboard://docs/views
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "taskboard://docs/index",
		Name:        "docs_index",
		Title:       "taskboard docs index",
		Description: "Entry point: tools, filters and their defaults.",
		Content: `# taskboard: Agent Docs Index

## Tools

- ` + "`dashboard_status`" + ` / ` + "`reload_data`" + ` manage the loaded snapshot.
- ` + "`filter_options`" + ` lists clients, teams, members of a team and the recency periods (7, 15, 30, 60, 90, 180, 365 days).
- ` + "`query_tasks`" + ` returns normalized tasks; ` + "`list_projects`" + ` aggregates principal tasks by job title.
- ` + "`timeline_rows`" + ` returns display rows; ` + "`get_row`" + ` looks one up by id.
- ` + "`get_task_group`" + ` returns a principal task with its subtasks.
- ` + "`export_csv`" + ` renders the CSV export.

## Filter defaults

- ` + "`days`" + `: 30. A task is recent when its start or end date falls inside the window.
- ` + "`principal`" + ` and ` + "`subtask`" + `: true. Turning both off yields no rows.
- ` + "`client`" + `, ` + "`group`" + `, ` + "`member`" + `: all.
- ` + "`group_by`" + `: the view default.

## Limits

- Data is read-only; there is no write tool.
- Row ids are only meaningful for the last ` + "`timeline_rows`" + ` call of the same view.
`,
	},
	{
		URI:         "taskboard://docs/views",
		Name:        "docs_views",
		Title:       "Views",
		Description: "How the clients and team views differ.",
		Content: `# Views

## clients

- Project level: principal tasks aggregated by job title; the first record of each project wins.
- Excludes status Finalizada and Cancelada.
- Start: request date, then start date. End: adjusted due date, then end date, then current due date.
- Default span 30 days when a row has no end.
- Version labels resolved by prefix (BRF is V0, V2 is 2, DES/EXT use the leading digits).
- Grouped by client when no client is selected, by team otherwise.

## team

- Task level: principal tasks and subtasks.
- Excludes status Finalizada.
- Start: start date (subtasks inherit the principal's). End chain as above.
- Default span 14 days.
- Version labels shown verbatim.
- Grouped by team.

## Shared rules

- Group names "Criação", "Bruno Prosperi" and "Thiago Bocatto" are normalized; the latter two execute as Criação.
- Display priority comes from the pipeline step: Backlog, Em Ajuste (high), Em Criação (medium), Em Validação (low).
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
