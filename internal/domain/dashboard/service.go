package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/somoscreators/taskboard/internal/domain/activity"
	"github.com/somoscreators/taskboard/internal/domain/project"
	"github.com/somoscreators/taskboard/internal/domain/task"
	"github.com/somoscreators/taskboard/internal/view"
)

// Service owns the loaded snapshot and runs the view pipeline over it.
type Service struct {
	source   Source
	profiles []view.Profile
	loc      *time.Location
	now      func() time.Time
	logger   *slog.Logger
	activity ActivityLogger

	mu       sync.RWMutex
	snapshot *Snapshot
	last     map[string]*Result
}

// NewService creates a dashboard service.
func NewService(source Source, opts Options, logger *slog.Logger) (*Service, error) {
	profiles := opts.Profiles
	if len(profiles) == 0 {
		profiles = view.DefaultProfiles()
	}
	seen := make(map[string]struct{}, len(profiles))
	for _, p := range profiles {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[p.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate view %q", view.ErrInvalidProfile, p.Name)
		}
		seen[p.Name] = struct{}{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		source:   source,
		profiles: profiles,
		loc:      opts.Location,
		now:      now,
		logger:   logger,
		activity: opts.Activity,
		last:     make(map[string]*Result),
	}, nil
}

// Load fetches the raw records and replaces the snapshot. On failure the
// previous snapshot stays active.
func (s *Service) Load(ctx context.Context) (Status, error) {
	s.logger.Info("loading task records")
	raws, err := s.source.Fetch(ctx)
	if err != nil {
		s.logger.Error("failed to load task records", "error", err)
		s.logActivity(ctx, &activity.Entry{Type: activity.TypeLoadFailed, Summary: err.Error()})
		return Status{}, fmt.Errorf("%w: %w", ErrLoadFailure, err)
	}

	snap := &Snapshot{
		ID:       uuid.NewString(),
		LoadedAt: s.now(),
		Records:  len(raws),
		models:   make(map[string]*Model, len(s.profiles)),
	}
	for _, prof := range s.profiles {
		tasks := task.NewNormalizer(s.loc, prof.Versions).NormalizeAll(raws)
		snap.models[prof.Name] = &Model{Profile: prof, Graph: task.BuildGraph(tasks)}
	}

	s.mu.Lock()
	s.snapshot = snap
	s.last = make(map[string]*Result)
	s.mu.Unlock()

	status := s.statusOf(snap)
	s.logger.Info("task records loaded", "snapshot_id", snap.ID, "records", snap.Records, "groups", status.Groups)
	s.logActivity(ctx, &activity.Entry{
		Type:       activity.TypeLoadSucceeded,
		SnapshotID: snap.ID,
		Count:      snap.Records,
		Summary:    fmt.Sprintf("%d records, %d groups", snap.Records, status.Groups),
	})
	return status, nil
}

// Status summarizes the current snapshot.
func (s *Service) Status(ctx context.Context) Status {
	s.mu.RLock()
	snap := s.snapshot
	s.mu.RUnlock()
	return s.statusOf(snap)
}

func (s *Service) statusOf(snap *Snapshot) Status {
	status := Status{Views: make([]ViewStatus, 0, len(s.profiles))}
	for _, p := range s.profiles {
		status.Views = append(status.Views, ViewStatus{Name: p.Name, Title: p.Title, Level: p.Level})
	}
	if snap == nil {
		return status
	}
	loadedAt := snap.LoadedAt
	status.Loaded = true
	status.SnapshotID = snap.ID
	status.LoadedAt = &loadedAt
	status.Records = snap.Records
	if len(s.profiles) > 0 {
		if m, ok := snap.Model(s.profiles[0].Name); ok {
			status.Groups = m.Graph.Len()
		}
	}
	return status
}

// Profiles returns the served views.
func (s *Service) Profiles() []view.Profile {
	return append([]view.Profile(nil), s.profiles...)
}

// Query filters a view and projects its timeline rows. The result becomes
// the view's last result for row lookups.
func (s *Service) Query(ctx context.Context, viewName string, params view.Params) (*Result, error) {
	snap, model, err := s.model(viewName)
	if err != nil {
		return nil, err
	}
	params = s.withNow(params)
	prof := model.Profile

	result := &Result{
		SnapshotID: snap.ID,
		View:       prof.Name,
		Params:     params,
		Tasks:      view.Filter(model.Graph.Tasks, prof, params),
	}
	if prof.Level == view.LevelProject {
		result.Projects = project.Aggregate(result.Tasks)
		result.Projection = view.ProjectProjects(result.Projects, prof, params)
	} else {
		result.Projection = view.ProjectTasks(result.Tasks, prof, params)
	}

	s.mu.Lock()
	if s.snapshot == snap {
		s.last[prof.Name] = result
	}
	s.mu.Unlock()

	s.logger.Debug("filters applied",
		"view", prof.Name,
		"client", params.Client,
		"group", params.Group,
		"member", params.Member,
		"window_days", params.WindowDays,
		"tasks", len(result.Tasks),
		"rows", len(result.Projection.Rows),
	)
	return result, nil
}

// Tasks returns the filtered tasks of a view.
func (s *Service) Tasks(ctx context.Context, viewName string, params view.Params) ([]task.Task, error) {
	_, model, err := s.model(viewName)
	if err != nil {
		return nil, err
	}
	return view.Filter(model.Graph.Tasks, model.Profile, s.withNow(params)), nil
}

// Projects returns the project rows of a view's filtered tasks.
func (s *Service) Projects(ctx context.Context, viewName string, params view.Params) ([]project.Row, error) {
	tasks, err := s.Tasks(ctx, viewName, params)
	if err != nil {
		return nil, err
	}
	return project.Aggregate(tasks), nil
}

// Export builds the export table of a view. Project views export project
// rows; task views export tasks with parent titles from the full collection.
func (s *Service) Export(ctx context.Context, viewName string, params view.Params) (view.Table, error) {
	snap, model, err := s.model(viewName)
	if err != nil {
		return view.Table{}, err
	}
	params = s.withNow(params)
	prof := model.Profile
	filtered := view.Filter(model.Graph.Tasks, prof, params)

	var table view.Table
	if prof.Level == view.LevelProject {
		table = view.ExportProjects(project.Aggregate(filtered), prof, params.Now)
	} else {
		table = view.ExportTasks(filtered, model.Graph, params.Now)
	}
	s.logger.Info("export built", "view", prof.Name, "rows", len(table.Rows), "filename", table.Filename)
	s.logActivity(ctx, &activity.Entry{
		Type:       activity.TypeExportBuilt,
		SnapshotID: snap.ID,
		View:       prof.Name,
		Count:      len(table.Rows),
		Summary:    table.Filename,
		Details:    exportDetails(params),
	})
	return table, nil
}

// Row looks up a row of the view's last query result.
func (s *Service) Row(ctx context.Context, viewName string, id int) (view.Row, error) {
	if _, _, err := s.model(viewName); err != nil {
		return view.Row{}, err
	}
	s.mu.RLock()
	result := s.last[viewName]
	s.mu.RUnlock()
	if result == nil {
		return view.Row{}, ErrRowNotFound
	}
	row, ok := result.Projection.Row(id)
	if !ok {
		return view.Row{}, ErrRowNotFound
	}
	return row, nil
}

// Options lists the selector values of a view. Members are listed for group.
func (s *Service) Options(ctx context.Context, viewName, group string) (view.Options, error) {
	_, model, err := s.model(viewName)
	if err != nil {
		return view.Options{}, err
	}
	return view.BuildOptions(model.Graph.Tasks, model.Profile, group), nil
}

// Group returns the principal task and subtasks for a task number.
func (s *Service) Group(ctx context.Context, viewName, number string) (task.Group, error) {
	_, model, err := s.model(viewName)
	if err != nil {
		return task.Group{}, err
	}
	group, ok := model.Graph.Group(number)
	if !ok {
		return task.Group{}, ErrGroupNotFound
	}
	return group, nil
}

func (s *Service) model(viewName string) (*Snapshot, *Model, error) {
	s.mu.RLock()
	snap := s.snapshot
	s.mu.RUnlock()

	if !s.hasView(viewName) {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownView, viewName)
	}
	if snap == nil {
		return nil, nil, ErrNotLoaded
	}
	model, ok := snap.Model(viewName)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownView, viewName)
	}
	return snap, model, nil
}

// logActivity records an event. Failures are logged and never fail the caller.
func (s *Service) logActivity(ctx context.Context, entry *activity.Entry) {
	if s.activity == nil {
		return
	}
	entry.CreatedAt = s.now()
	if err := s.activity.LogActivity(ctx, entry); err != nil {
		s.logger.Warn("failed to record activity", "type", entry.Type, "error", err)
	}
}

func exportDetails(params view.Params) string {
	data, err := json.Marshal(params)
	if err != nil {
		return ""
	}
	return string(data)
}

func (s *Service) hasView(name string) bool {
	for _, p := range s.profiles {
		if p.Name == name {
			return true
		}
	}
	return false
}

func (s *Service) withNow(params view.Params) view.Params {
	if params.Now.IsZero() {
		params.Now = s.now()
	}
	return params
}
