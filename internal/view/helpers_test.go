package view_test

import (
	"testing"
	"time"

	"github.com/somoscreators/taskboard/internal/domain/task"
	"github.com/somoscreators/taskboard/internal/view"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func profile(t *testing.T, name string) view.Profile {
	t.Helper()
	for _, p := range view.DefaultProfiles() {
		if p.Name == name {
			return p
		}
	}
	require.FailNow(t, "unknown profile", name)
	return view.Profile{}
}

func load(prof view.Profile, raws ...task.Raw) *task.Graph {
	tasks := task.NewNormalizer(time.UTC, prof.Versions).NormalizeAll(raws)
	return task.BuildGraph(tasks)
}

func numbers(tasks []task.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Number)
	}
	return out
}
