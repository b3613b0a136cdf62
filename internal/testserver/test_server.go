package testserver

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/somoscreators/taskboard/internal/domain/activity"
	"github.com/somoscreators/taskboard/internal/domain/dashboard"
	"github.com/somoscreators/taskboard/internal/domain/task"
	"github.com/somoscreators/taskboard/internal/mcp"
	"github.com/somoscreators/taskboard/internal/sqlite"
	"github.com/somoscreators/taskboard/internal/transport"
	"github.com/stretchr/testify/require"
)

// Now is the fixed clock of every test server.
var Now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

type TestServer struct {
	Server  *httptest.Server
	DB      *sqlite.DB
	Repo    *sqlite.TaskExportRepository
	Service *dashboard.Service
}

// New starts an HTTP server over an in-memory SQLite source seeded with
// records. The snapshot is loaded before New returns.
func New(t *testing.T, records []task.Raw) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	ctx := context.Background()
	repo := sqlite.NewTaskExportRepository(db)
	_, err = repo.Import(ctx, records)
	require.NoError(t, err)

	activitySvc := activity.NewService(sqlite.NewActivityRepository(db), nil)
	svc, err := dashboard.NewService(repo, dashboard.Options{
		Location: time.UTC,
		Now:      func() time.Time { return Now },
		Activity: activitySvc,
	}, nil)
	require.NoError(t, err)
	_, err = svc.Load(ctx)
	require.NoError(t, err)

	mcpServer := mcp.NewServer(mcp.Config{Service: svc})
	server := httptest.NewServer(transport.NewServer(svc, mcp.NewHandler(svc, ""), transport.Options{
		MCP:      mcp.NewHTTPHandler(mcpServer, nil),
		Activity: activitySvc,
	}))

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return &TestServer{
		Server:  server,
		DB:      db,
		Repo:    repo,
		Service: svc,
	}
}

// Records is a small principal/subtask data set around Now.
func Records() []task.Raw {
	return []task.Raw{
		{
			TaskNumber:                     "100",
			TaskTitle:                      "Campanha de inverno",
			JobTitle:                       "Campanha Inverno",
			Version:                        "V2",
			ClientNickname:                 "Acme",
			TipoTarefa:                     "Principal",
			Priority:                       "Alta",
			RequestDate:                    "2024-06-01 09:00:00",
			StartDate:                      "2024-06-03 09:00:00",
			EndDate:                        "2024-06-28 18:00:00",
			TaskOwnerDisplayName:           "Ana",
			TaskOwnerGroupName:             "Criação/Redação",
			TaskExecutionFunctionGroupName: "Criação",
		},
		{
			TaskNumber:           "101",
			TaskTitle:            "Key visual",
			TipoTarefa:           "Subtarefa",
			ParentTaskID:         "100",
			ClientNickname:       "Acme",
			EndDate:              "2024-07-05 18:00:00",
			TaskOwnerDisplayName: "Bruno",
			TaskOwnerGroupName:   "Criação/Arte",
		},
		{
			TaskNumber:           "200",
			TaskTitle:            "Plano de mídia",
			JobTitle:             "Plano Q3",
			ClientNickname:       "Globex",
			TipoTarefa:           "Principal",
			StartDate:            "2024-06-10 09:00:00",
			CurrentDueDate:       "2024-06-20 18:00:00",
			TaskOwnerDisplayName: "Carla",
			TaskOwnerGroupName:   "Mídia",
		},
		{
			TaskNumber:      "300",
			TaskTitle:       "Relatório antigo",
			JobTitle:        "Relatório 2023",
			ClientNickname:  "Acme",
			TipoTarefa:      "Principal",
			StartDate:       "2023-01-10 09:00:00",
			EndDate:         "2023-02-10 18:00:00",
			TaskClosingDate: "2023-02-10 18:00:00",
		},
	}
}
