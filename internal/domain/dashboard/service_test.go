package dashboard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/somoscreators/taskboard/internal/domain/activity"
	"github.com/somoscreators/taskboard/internal/domain/dashboard"
	"github.com/somoscreators/taskboard/internal/domain/task"
	"github.com/somoscreators/taskboard/internal/repository/mocks"
	"github.com/somoscreators/taskboard/internal/view"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func sampleRecords() []task.Raw {
	return []task.Raw{
		{
			TaskNumber:         "T1",
			TaskTitle:          "Campanha de inverno",
			JobTitle:           "Campaign X",
			ClientNickname:     "Acme",
			TipoTarefa:         "Principal",
			StartDate:          "2024-01-01 00:00:00",
			EndDate:            "2024-01-15 00:00:00",
			TaskOwnerGroupName: "Criação/Redação",
		},
		{TaskNumber: "T2", TaskTitle: "Peça 1", TipoTarefa: "Subtarefa", ParentTaskID: "T1", ClientNickname: "Acme"},
		{TaskNumber: "T3", TaskTitle: "Peça 2", TipoTarefa: "Subtarefa", ParentTaskID: "T1", ClientNickname: "Acme"},
	}
}

func newService(t *testing.T, src dashboard.Source) *dashboard.Service {
	t.Helper()
	svc, err := dashboard.NewService(src, dashboard.Options{
		Location: time.UTC,
		Now:      func() time.Time { return now },
	}, nil)
	require.NoError(t, err)
	return svc
}

func loaded(t *testing.T, records []task.Raw) *dashboard.Service {
	t.Helper()
	ctx := context.Background()
	src := &mocks.Source{}
	src.On("Fetch", ctx).Return(records, nil)
	svc := newService(t, src)
	_, err := svc.Load(ctx)
	require.NoError(t, err)
	return svc
}

func wideParams() view.Params {
	p := view.DefaultParams(now)
	p.WindowDays = 3650
	p.Client = "all"
	p.Group = "all"
	return p
}

func TestService_EndToEnd(t *testing.T) {
	ctx := context.Background()
	svc := loaded(t, sampleRecords())

	result, err := svc.Query(ctx, view.ViewTeam, wideParams())
	require.NoError(t, err)
	require.Len(t, result.Tasks, 3)
	require.Len(t, result.Projection.Rows, 3)

	group, err := svc.Group(ctx, view.ViewTeam, "T1")
	require.NoError(t, err)
	require.Len(t, group.Subtasks, 2)
	require.NotNil(t, group.Principal.CombinedEnd)
	require.True(t, group.Principal.CombinedEnd.Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)))

	status := svc.Status(ctx)
	require.True(t, status.Loaded)
	require.Equal(t, 3, status.Records)
	require.Equal(t, 1, status.Groups)
	require.Len(t, status.Views, 2)
}

func TestService_QueryProjectView(t *testing.T) {
	ctx := context.Background()
	svc := loaded(t, sampleRecords())

	result, err := svc.Query(ctx, view.ViewClients, wideParams())
	require.NoError(t, err)
	require.Len(t, result.Projects, 1)
	require.Equal(t, "Campaign X", result.Projects[0].Key)
	require.Len(t, result.Projection.Rows, 1)
	require.Equal(t, view.GroupByClient, result.Projection.GroupBy)
	require.Equal(t, []string{"Acme"}, result.Projection.Groups)
}

func TestService_NotLoaded(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, &mocks.Source{})

	_, err := svc.Query(ctx, view.ViewTeam, wideParams())
	require.ErrorIs(t, err, dashboard.ErrNotLoaded)

	_, err = svc.Export(ctx, view.ViewTeam, wideParams())
	require.ErrorIs(t, err, dashboard.ErrNotLoaded)

	require.False(t, svc.Status(ctx).Loaded)
}

func TestService_UnknownView(t *testing.T) {
	ctx := context.Background()
	svc := loaded(t, sampleRecords())

	_, err := svc.Query(ctx, "nope", wideParams())
	require.ErrorIs(t, err, dashboard.ErrUnknownView)

	_, err = svc.Options(ctx, "nope", "")
	require.ErrorIs(t, err, dashboard.ErrUnknownView)
}

func TestService_LoadFailureKeepsSnapshot(t *testing.T) {
	ctx := context.Background()
	src := &mocks.Source{}
	src.On("Fetch", ctx).Return(sampleRecords(), nil).Once()
	src.On("Fetch", ctx).Return(nil, errors.New("boom")).Once()

	svc := newService(t, src)
	first, err := svc.Load(ctx)
	require.NoError(t, err)

	_, err = svc.Load(ctx)
	require.ErrorIs(t, err, dashboard.ErrLoadFailure)

	status := svc.Status(ctx)
	require.Equal(t, first.SnapshotID, status.SnapshotID)
	require.Equal(t, 3, status.Records)
	src.AssertExpectations(t)
}

func TestService_Row(t *testing.T) {
	ctx := context.Background()
	svc := loaded(t, sampleRecords())

	_, err := svc.Row(ctx, view.ViewTeam, 0)
	require.ErrorIs(t, err, dashboard.ErrRowNotFound)

	_, err = svc.Query(ctx, view.ViewTeam, wideParams())
	require.NoError(t, err)

	row, err := svc.Row(ctx, view.ViewTeam, 1)
	require.NoError(t, err)
	require.Equal(t, "T2", row.TaskNumber)
	require.True(t, row.Subtask)

	_, err = svc.Row(ctx, view.ViewTeam, 42)
	require.ErrorIs(t, err, dashboard.ErrRowNotFound)
}

func TestService_ReloadResetsRows(t *testing.T) {
	ctx := context.Background()
	svc := loaded(t, sampleRecords())

	_, err := svc.Query(ctx, view.ViewTeam, wideParams())
	require.NoError(t, err)

	_, err = svc.Load(ctx)
	require.NoError(t, err)

	_, err = svc.Row(ctx, view.ViewTeam, 0)
	require.ErrorIs(t, err, dashboard.ErrRowNotFound)
}

func TestService_Export(t *testing.T) {
	ctx := context.Background()
	svc := loaded(t, sampleRecords())

	table, err := svc.Export(ctx, view.ViewTeam, wideParams())
	require.NoError(t, err)
	require.Len(t, table.Rows, 3)
	require.Equal(t, "tarefas_2024-06-15.csv", table.Filename)

	table, err = svc.Export(ctx, view.ViewClients, wideParams())
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	require.Equal(t, "projetos_clientes_2024-06-15.csv", table.Filename)

	narrow := wideParams()
	narrow.WindowDays = 7
	table, err = svc.Export(ctx, view.ViewTeam, narrow)
	require.NoError(t, err)
	require.True(t, table.Empty())
}

func TestService_Options(t *testing.T) {
	ctx := context.Background()
	svc := loaded(t, sampleRecords())

	opts, err := svc.Options(ctx, view.ViewTeam, task.GroupCriacao)
	require.NoError(t, err)
	require.Equal(t, []string{"Acme"}, opts.Clients)
	require.Equal(t, view.Periods, opts.Periods)
}

func TestService_GroupNotFound(t *testing.T) {
	svc := loaded(t, sampleRecords())

	_, err := svc.Group(context.Background(), view.ViewTeam, "T2")
	require.ErrorIs(t, err, dashboard.ErrGroupNotFound)
}

func TestNewService_RejectsInvalidProfiles(t *testing.T) {
	profiles := view.DefaultProfiles()
	profiles[0].DefaultSpanDays = 0

	_, err := dashboard.NewService(&mocks.Source{}, dashboard.Options{Profiles: profiles}, nil)
	require.ErrorIs(t, err, view.ErrInvalidProfile)

	dup := append(view.DefaultProfiles(), view.DefaultProfiles()[1])
	_, err = dashboard.NewService(&mocks.Source{}, dashboard.Options{Profiles: dup}, nil)
	require.ErrorIs(t, err, view.ErrInvalidProfile)
}

func TestService_RecordsActivity(t *testing.T) {
	ctx := context.Background()
	src := &mocks.Source{}
	src.On("Fetch", ctx).Return(sampleRecords(), nil).Once()
	src.On("Fetch", ctx).Return(nil, errors.New("boom")).Once()

	repo := &mocks.ActivityRepository{}
	var logged []*activity.Entry
	repo.On("Log", ctx, mock.Anything).Run(func(args mock.Arguments) {
		logged = append(logged, args.Get(1).(*activity.Entry))
	}).Return(nil)

	svc, err := dashboard.NewService(src, dashboard.Options{
		Location: time.UTC,
		Now:      func() time.Time { return now },
		Activity: activity.NewService(repo, nil),
	}, nil)
	require.NoError(t, err)

	status, err := svc.Load(ctx)
	require.NoError(t, err)
	_, err = svc.Export(ctx, view.ViewTeam, wideParams())
	require.NoError(t, err)
	_, err = svc.Load(ctx)
	require.Error(t, err)

	require.Len(t, logged, 3)
	require.Equal(t, activity.TypeLoadSucceeded, logged[0].Type)
	require.Equal(t, status.SnapshotID, logged[0].SnapshotID)
	require.Equal(t, 3, logged[0].Count)
	require.Equal(t, activity.TypeExportBuilt, logged[1].Type)
	require.Equal(t, "tarefas_2024-06-15.csv", logged[1].Summary)
	require.Contains(t, logged[1].Details, `"window_days":3650`)
	require.Equal(t, activity.TypeLoadFailed, logged[2].Type)
	require.True(t, logged[2].CreatedAt.Equal(now))
}

func TestService_ActivityFailureIsIgnored(t *testing.T) {
	ctx := context.Background()
	src := &mocks.Source{}
	src.On("Fetch", ctx).Return(sampleRecords(), nil)

	repo := &mocks.ActivityRepository{}
	repo.On("Log", ctx, mock.Anything).Return(errors.New("read-only database"))

	svc, err := dashboard.NewService(src, dashboard.Options{Activity: activity.NewService(repo, nil)}, nil)
	require.NoError(t, err)

	_, err = svc.Load(ctx)
	require.NoError(t, err)
}
