package view

import (
	"fmt"
	"strings"

	"github.com/somoscreators/taskboard/internal/domain/task"
)

// Level selects whether a view projects tasks or aggregated projects.
type Level string

const (
	LevelProject Level = "project"
	LevelTask    Level = "task"
)

// GroupBy selects the row grouping key.
type GroupBy string

const (
	GroupByClient GroupBy = "client"
	GroupByTeam   GroupBy = "team"
	GroupByOwner  GroupBy = "owner"
	// GroupByAuto groups by client when no client is selected, by team otherwise.
	GroupByAuto GroupBy = "auto"
)

// ParseGroupBy validates a grouping name. Empty yields "".
func ParseGroupBy(name string) (GroupBy, error) {
	switch g := GroupBy(strings.ToLower(strings.TrimSpace(name))); g {
	case "", GroupByClient, GroupByTeam, GroupByOwner, GroupByAuto:
		return g, nil
	default:
		return "", fmt.Errorf("%w: group_by %q", ErrInvalidParams, name)
	}
}

// Built-in view names.
const (
	ViewClients = "clients"
	ViewTeam    = "team"
)

// MainGroups is the fixed list of teams offered by the group filter.
var MainGroups = []string{
	"BI",
	"Criação",
	"Estratégia",
	"Mídia",
	"Operações - Negócios",
	"Produção",
}

// Profile holds every per-view difference of the pipeline.
type Profile struct {
	Name              string               `yaml:"name" json:"name"`
	Title             string               `yaml:"title" json:"title"`
	Level             Level                `yaml:"level" json:"level"`
	Versions          task.VersionStrategy `yaml:"version_strategy" json:"version_strategy"`
	ExcludedStatuses  []string             `yaml:"excluded_statuses" json:"excluded_statuses"`
	StartChain        []task.DateField     `yaml:"start_chain" json:"start_chain"`
	EndChain          []task.DateField     `yaml:"end_chain" json:"end_chain"`
	DefaultSpanDays   int                  `yaml:"default_span_days" json:"default_span_days"`
	GroupBy           GroupBy              `yaml:"group_by" json:"group_by"`
	MainGroups        []string             `yaml:"main_groups" json:"main_groups"`
	PinnedGroups      []string             `yaml:"pinned_groups" json:"pinned_groups,omitempty"`
	ConditionalGroups []string             `yaml:"conditional_groups" json:"conditional_groups,omitempty"`
	LabelWidth        int                  `yaml:"label_width" json:"label_width"`
	VersionedWidth    int                  `yaml:"label_width_versioned" json:"label_width_versioned"`
}

// DefaultProfiles returns the built-in client and team views.
func DefaultProfiles() []Profile {
	return []Profile{
		{
			Name:             ViewClients,
			Title:            "Projetos por cliente",
			Level:            LevelProject,
			Versions:         task.VersionPrefix,
			ExcludedStatuses: []string{"Finalizada", "Cancelada"},
			StartChain:       []task.DateField{task.DateRequest, task.DateStart},
			EndChain:         []task.DateField{task.DateAdjustedDue, task.DateEnd, task.DateCurrentDue},
			DefaultSpanDays:  30,
			GroupBy:          GroupByAuto,
			MainGroups:       append([]string(nil), MainGroups...),
			LabelWidth:       30,
			VersionedWidth:   22,
		},
		{
			Name:              ViewTeam,
			Title:             "Tarefas por equipe",
			Level:             LevelTask,
			Versions:          task.VersionVerbatim,
			ExcludedStatuses:  []string{"Finalizada"},
			StartChain:        []task.DateField{task.DateStart},
			EndChain:          []task.DateField{task.DateAdjustedDue, task.DateEnd, task.DateCurrentDue},
			DefaultSpanDays:   14,
			GroupBy:           GroupByTeam,
			MainGroups:        append([]string(nil), MainGroups...),
			PinnedGroups:      []string{task.GroupBrunoProsperi},
			ConditionalGroups: []string{task.GroupThiagoBocatto},
			LabelWidth:        30,
			VersionedWidth:    22,
		},
	}
}

// Merge fills the zero fields of p from base.
func (p Profile) Merge(base Profile) Profile {
	if p.Name == "" {
		p.Name = base.Name
	}
	if p.Title == "" {
		p.Title = base.Title
	}
	if p.Level == "" {
		p.Level = base.Level
	}
	if p.Versions == "" {
		p.Versions = base.Versions
	}
	if p.ExcludedStatuses == nil {
		p.ExcludedStatuses = base.ExcludedStatuses
	}
	if len(p.StartChain) == 0 {
		p.StartChain = base.StartChain
	}
	if len(p.EndChain) == 0 {
		p.EndChain = base.EndChain
	}
	if p.DefaultSpanDays == 0 {
		p.DefaultSpanDays = base.DefaultSpanDays
	}
	if p.GroupBy == "" {
		p.GroupBy = base.GroupBy
	}
	if p.MainGroups == nil {
		p.MainGroups = base.MainGroups
	}
	if p.PinnedGroups == nil {
		p.PinnedGroups = base.PinnedGroups
	}
	if p.ConditionalGroups == nil {
		p.ConditionalGroups = base.ConditionalGroups
	}
	if p.LabelWidth == 0 {
		p.LabelWidth = base.LabelWidth
	}
	if p.VersionedWidth == 0 {
		p.VersionedWidth = base.VersionedWidth
	}
	return p
}

// Validate checks that the profile can drive the pipeline.
func (p Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidProfile)
	}
	if p.Level != LevelProject && p.Level != LevelTask {
		return fmt.Errorf("%w: %s: unknown level %q", ErrInvalidProfile, p.Name, p.Level)
	}
	if _, err := task.ParseVersionStrategy(string(p.Versions)); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidProfile, p.Name, err)
	}
	for _, f := range append(append([]task.DateField(nil), p.StartChain...), p.EndChain...) {
		if !f.Valid() {
			return fmt.Errorf("%w: %s: unknown date field %q", ErrInvalidProfile, p.Name, f)
		}
	}
	if p.DefaultSpanDays <= 0 {
		return fmt.Errorf("%w: %s: default_span_days must be positive", ErrInvalidProfile, p.Name)
	}
	if _, err := ParseGroupBy(string(p.GroupBy)); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidProfile, p.Name, err)
	}
	if p.LabelWidth <= 0 || p.VersionedWidth <= 0 {
		return fmt.Errorf("%w: %s: label widths must be positive", ErrInvalidProfile, p.Name)
	}
	return nil
}

// ResolveProfiles merges overrides into the built-in profiles by name.
// Overrides with a new name are appended after being merged with the team view.
func ResolveProfiles(overrides []Profile) ([]Profile, error) {
	profiles := DefaultProfiles()
	index := make(map[string]int, len(profiles))
	for i, p := range profiles {
		index[p.Name] = i
	}
	for _, o := range overrides {
		if strings.TrimSpace(o.Name) == "" {
			return nil, fmt.Errorf("%w: missing name", ErrInvalidProfile)
		}
		if i, ok := index[o.Name]; ok {
			profiles[i] = o.Merge(profiles[i])
			continue
		}
		index[o.Name] = len(profiles)
		profiles = append(profiles, o.Merge(profiles[index[ViewTeam]]))
	}
	for i, p := range profiles {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		profiles[i].Versions, _ = task.ParseVersionStrategy(string(p.Versions))
		profiles[i].GroupBy, _ = ParseGroupBy(string(p.GroupBy))
	}
	return profiles, nil
}
