package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/somoscreators/taskboard/internal/domain/activity"
	"github.com/stretchr/testify/require"
)

func TestActivityRepository_LogList(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	base := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	repo := NewActivityRepository(db)
	entry1 := &activity.Entry{
		Type:       activity.TypeLoadSucceeded,
		SnapshotID: "snap1",
		Count:      120,
		Summary:    "loaded 120 records",
		CreatedAt:  base,
	}
	entry2 := &activity.Entry{
		Type:      activity.TypeExportBuilt,
		View:      "team",
		Count:     8,
		Summary:   "tarefas_2024-06-15.csv",
		Details:   `{"client":"Acme"}`,
		CreatedAt: base.Add(time.Minute),
	}

	require.NoError(t, repo.Log(ctx, entry1))
	require.NoError(t, repo.Log(ctx, entry2))
	require.NotZero(t, entry1.ID)
	require.NotEqual(t, entry1.ID, entry2.ID)

	entries, err := repo.List(ctx, activity.ListOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, entry2.Type, entries[0].Type)
	require.Equal(t, `{"client":"Acme"}`, entries[0].Details)
	require.Equal(t, entry1.Type, entries[1].Type)
	require.Equal(t, 120, entries[1].Count)
	require.True(t, entries[1].CreatedAt.Equal(base))
}

func TestActivityRepository_Filters(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewActivityRepository(db)

	for i, entry := range []*activity.Entry{
		{Type: activity.TypeLoadFailed, Summary: "boom"},
		{Type: activity.TypeExportBuilt, View: "team"},
		{Type: activity.TypeExportBuilt, View: "clients"},
		{Type: activity.TypeExportBuilt, View: "team"},
	} {
		entry.CreatedAt = time.Date(2024, 6, 15, 12, i, 0, 0, time.UTC)
		require.NoError(t, repo.Log(ctx, entry))
	}

	exportType := activity.TypeExportBuilt
	entries, err := repo.List(ctx, activity.ListOptions{Type: &exportType, View: "team"})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	entries, err = repo.List(ctx, activity.ListOptions{Limit: 1})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "team", entries[0].View)

	failed := activity.TypeLoadFailed
	entries, err = repo.List(ctx, activity.ListOptions{Type: &failed})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "boom", entries[0].Summary)
}

func TestActivityRepository_Empty(t *testing.T) {
	db := NewTestDB(t)

	entries, err := NewActivityRepository(db).List(context.Background(), activity.ListOptions{})
	require.NoError(t, err)
	require.NotNil(t, entries)
	require.Empty(t, entries)
}
