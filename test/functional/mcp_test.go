package functional_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/somoscreators/taskboard/internal/testserver"
	"github.com/stretchr/testify/require"
)

func newMCPSession(t *testing.T, ts *testserver.TestServer) *sdkmcp.ClientSession {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	client := sdkmcp.NewClient(&sdkmcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)
	session, err := client.Connect(ctx, &sdkmcp.StreamableClientTransport{Endpoint: ts.Server.URL + "/mcp"}, nil)
	if err != nil {
		cancel()
		t.Fatalf("Failed to connect: %v", err)
	}
	t.Cleanup(func() {
		session.Close()
		cancel()
	})
	return session
}

// callTool calls a tool and unwraps the JSON text content
func callTool(t *testing.T, session *sdkmcp.ClientSession, name string, args map[string]any) json.RawMessage {
	t.Helper()

	result, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err, "tools/call %s failed", name)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok, "expected text content")
	require.False(t, result.IsError, "Tool error: %s", text.Text)
	return json.RawMessage(text.Text)
}

func callToolError(t *testing.T, session *sdkmcp.ClientSession, name string, args map[string]any) string {
	t.Helper()

	result, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err)
	require.True(t, result.IsError, "expected %s to fail", name)
	text, ok := result.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestFunctional_MCPServerInfo(t *testing.T) {
	ts := testserver.New(t, testserver.Records())
	session := newMCPSession(t, ts)

	initResult := session.InitializeResult()
	require.NotNil(t, initResult)
	require.Equal(t, "taskboard", initResult.ServerInfo.Name)

	tools, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)
	names := make(map[string]bool)
	for _, tool := range tools.Tools {
		names[tool.Name] = true
	}
	for _, name := range []string{"dashboard_status", "reload_data", "filter_options", "query_tasks", "list_projects", "timeline_rows", "get_row", "get_task_group", "export_csv"} {
		require.True(t, names[name], "Missing expected tool: %s", name)
	}
}

func TestFunctional_MCPTimelineWorkflow(t *testing.T) {
	ts := testserver.New(t, testserver.Records())
	session := newMCPSession(t, ts)

	var status struct {
		Loaded  bool `json:"loaded"`
		Records int  `json:"records"`
	}
	require.NoError(t, json.Unmarshal(callTool(t, session, "dashboard_status", nil), &status))
	require.True(t, status.Loaded)
	require.Equal(t, 4, status.Records)

	var rows struct {
		Projection struct {
			Rows []struct {
				ID         int    `json:"id"`
				TaskNumber string `json:"task_number"`
			} `json:"rows"`
		} `json:"projection"`
	}
	require.NoError(t, json.Unmarshal(callTool(t, session, "timeline_rows", map[string]any{"view": "team"}), &rows))
	require.Len(t, rows.Projection.Rows, 3)

	var row struct {
		TaskNumber string `json:"task_number"`
	}
	last := rows.Projection.Rows[len(rows.Projection.Rows)-1]
	require.NoError(t, json.Unmarshal(callTool(t, session, "get_row", map[string]any{"view": "team", "id": last.ID}), &row))
	require.Equal(t, last.TaskNumber, row.TaskNumber)

	var group struct {
		Principal struct {
			Number string `json:"task_number"`
		} `json:"principal"`
		Subtasks []json.RawMessage `json:"subtasks"`
	}
	require.NoError(t, json.Unmarshal(callTool(t, session, "get_task_group", map[string]any{"task_number": "100"}), &group))
	require.Equal(t, "100", group.Principal.Number)
	require.Len(t, group.Subtasks, 1)

	msg := callToolError(t, session, "get_task_group", map[string]any{"task_number": "101"})
	require.Contains(t, msg, "GROUP_NOT_FOUND")
}

func TestFunctional_MCPExport(t *testing.T) {
	ts := testserver.New(t, testserver.Records())
	session := newMCPSession(t, ts)

	var export struct {
		Filename string `json:"filename"`
		Rows     int    `json:"rows"`
		Empty    bool   `json:"empty"`
		CSV      string `json:"csv"`
	}
	require.NoError(t, json.Unmarshal(callTool(t, session, "export_csv", map[string]any{"view": "clients"}), &export))
	require.Equal(t, "projetos_clientes_2024-06-15.csv", export.Filename)
	require.Equal(t, 2, export.Rows)
	require.False(t, export.Empty)
	require.Contains(t, export.CSV, "Campanha Inverno")

	require.NoError(t, json.Unmarshal(callTool(t, session, "export_csv", map[string]any{"client": "Nobody"}), &export))
	require.True(t, export.Empty)
	require.Zero(t, export.Rows)
}
