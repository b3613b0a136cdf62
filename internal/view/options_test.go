package view_test

import (
	"testing"

	"github.com/somoscreators/taskboard/internal/domain/task"
	"github.com/somoscreators/taskboard/internal/view"
	"github.com/stretchr/testify/require"
)

func TestBuildOptions_Team(t *testing.T) {
	prof := profile(t, view.ViewTeam)
	g := load(prof,
		task.Raw{ClientNickname: "VIVO", TaskOwnerGroupName: "Mídia / Social", TaskOwnerDisplayName: "Bia"},
		task.Raw{ClientNickname: "AMERICANAS", TaskOwnerGroupName: "mídia", TaskOwnerDisplayName: "Ana"},
		task.Raw{ClientNickname: "VIVO", TaskExecutionFunctionGroupName: "Mídia", TaskOwnerDisplayName: "Ana"},
		task.Raw{TaskOwnerGroupName: "BI", TaskOwnerDisplayName: "Caio"},
	)

	opts := view.BuildOptions(g.Tasks, prof, "Mídia")
	require.Equal(t, []string{"AMERICANAS", "VIVO"}, opts.Clients)
	require.Equal(t, append(append([]string{}, view.MainGroups...), "Bruno Prosperi"), opts.Groups)
	require.Equal(t, []string{"Ana", "Bia"}, opts.Members)
	require.Equal(t, view.Periods, opts.Periods)

	opts = view.BuildOptions(g.Tasks, prof, "todos")
	require.Empty(t, opts.Members)
}

func TestBuildOptions_ConditionalGroup(t *testing.T) {
	prof := profile(t, view.ViewTeam)
	g := load(prof, task.Raw{TaskOwnerGroupName: "thiago bocatto / Arte"})

	opts := view.BuildOptions(g.Tasks, prof, "")
	require.Contains(t, opts.Groups, "Thiago Bocatto")

	clients := profile(t, view.ViewClients)
	require.Equal(t, view.MainGroups, view.BuildOptions(g.Tasks, clients, "").Groups)
}
