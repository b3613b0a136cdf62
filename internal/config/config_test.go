package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/somoscreators/taskboard/internal/domain/task"
	"github.com/somoscreators/taskboard/internal/view"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TASKBOARD_CONFIG_PATH", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0:8080", cfg.Addr())
	require.Equal(t, TransportHTTP, cfg.Transport.Mode)
	require.Equal(t, SourceFile, cfg.Source.Kind)
	require.Equal(t, "dados.json", cfg.Source.Path)
	require.Equal(t, 30*time.Second, cfg.SourceTimeout())
	require.Equal(t, view.ViewTeam, cfg.DefaultView)
	require.Empty(t, cfg.Activity.DB)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeFile(t, "taskboard.yaml", `
server:
  port: 9090
source:
  kind: http
  url: https://example.com/dados.json
views:
  clients:
    excluded_statuses: ["Finalizada"]
  studio:
    title: Estúdio
    level: task
    default_span_days: 7
`)

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, SourceHTTP, cfg.Source.Kind)
	require.Equal(t, "https://example.com/dados.json", cfg.Source.URL)

	profiles, err := cfg.Profiles()
	require.NoError(t, err)
	require.Len(t, profiles, 3)
	require.Equal(t, []string{"Finalizada"}, profiles[0].ExcludedStatuses)
	require.Equal(t, "studio", profiles[2].Name)
	require.Equal(t, 7, profiles[2].DefaultSpanDays)
	require.Equal(t, task.VersionVerbatim, profiles[2].Versions)
}

func TestLoad_JSONCFile(t *testing.T) {
	path := writeFile(t, "taskboard.jsonc", `{
  // comments and trailing commas are accepted
  "log": {"level": "debug",},
  "timezone": "UTC",
}`)

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, time.UTC, cfg.Location())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TASKBOARD_SERVER_HOST", "127.0.0.1")
	t.Setenv("TASKBOARD_SERVER_PORT", "7000")
	t.Setenv("TASKBOARD_TRANSPORT", TransportStdio)
	t.Setenv("TASKBOARD_SOURCE_KIND", SourceSQLite)
	t.Setenv("TASKBOARD_SOURCE_DB", "/tmp/tasks.db")
	t.Setenv("TASKBOARD_SOURCE_TIMEOUT", "5")
	t.Setenv("TASKBOARD_ACTIVITY_DB", "/tmp/activity.db")

	cfg, err := LoadFrom("")
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:7000", cfg.Addr())
	require.Equal(t, TransportStdio, cfg.Transport.Mode)
	require.Equal(t, SourceSQLite, cfg.Source.Kind)
	require.Equal(t, "/tmp/tasks.db", cfg.Source.DB)
	require.Equal(t, 5*time.Second, cfg.SourceTimeout())
	require.Equal(t, "/tmp/activity.db", cfg.Activity.DB)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("port", func(t *testing.T) {
		t.Setenv("TASKBOARD_SERVER_PORT", "abc")
		_, err := LoadFrom("")
		require.Error(t, err)
	})
	t.Run("timeout", func(t *testing.T) {
		t.Setenv("TASKBOARD_SOURCE_TIMEOUT", "0")
		_, err := LoadFrom("")
		require.Error(t, err)
	})
	t.Run("transport", func(t *testing.T) {
		t.Setenv("TASKBOARD_TRANSPORT", "grpc")
		_, err := LoadFrom("")
		require.Error(t, err)
	})
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
	})
}

func TestLocation_UnknownFallsBackToLocal(t *testing.T) {
	cfg := Default()
	cfg.Timezone = "Mars/Olympus"
	require.Equal(t, time.Local, cfg.Location())
}

func TestProfiles_UnknownDefaultView(t *testing.T) {
	cfg := Default()
	cfg.DefaultView = "missing"
	_, err := cfg.Profiles()
	require.Error(t, err)
}
