package dashboard

import (
	"time"

	"github.com/somoscreators/taskboard/internal/domain/project"
	"github.com/somoscreators/taskboard/internal/domain/task"
	"github.com/somoscreators/taskboard/internal/view"
)

// Model is the normalized, enriched collection of one view.
type Model struct {
	Profile view.Profile
	Graph   *task.Graph
}

// Snapshot is the immutable state of one successful load.
type Snapshot struct {
	ID       string
	LoadedAt time.Time
	Records  int
	models   map[string]*Model
}

// Model returns the model of a view.
func (s *Snapshot) Model(name string) (*Model, bool) {
	m, ok := s.models[name]
	return m, ok
}

// Result is the outcome of one query.
type Result struct {
	SnapshotID string          `json:"snapshot_id"`
	View       string          `json:"view"`
	Params     view.Params     `json:"params"`
	Tasks      []task.Task     `json:"-"`
	Projects   []project.Row   `json:"-"`
	Projection view.Projection `json:"projection"`
}

// Status summarizes the loaded snapshot.
type Status struct {
	Loaded     bool         `json:"loaded"`
	SnapshotID string       `json:"snapshot_id,omitempty"`
	LoadedAt   *time.Time   `json:"loaded_at,omitempty"`
	Records    int          `json:"records"`
	Groups     int          `json:"groups"`
	Views      []ViewStatus `json:"views"`
}

// ViewStatus describes one served view.
type ViewStatus struct {
	Name  string     `json:"name"`
	Title string     `json:"title"`
	Level view.Level `json:"level"`
}
