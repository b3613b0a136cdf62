package view

import (
	"slices"
	"time"

	"github.com/somoscreators/taskboard/internal/domain/project"
	"github.com/somoscreators/taskboard/internal/domain/task"
)

// Placeholder texts for absent values.
const (
	NotDefined    = "Não definido"
	NotDefinedFem = "Não definida"
	NoTitle       = "Sem título"
	NoClient      = "Sem cliente"
	NoTeam        = "Sem equipe"
	NoOwner       = "Sem responsável"
)

const ellipsis = "..."

// TooltipField is one label/value line of a row's detail popup.
type TooltipField struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Row is a display-ready timeline item.
type Row struct {
	ID         int            `json:"id"`
	Label      string         `json:"label"`
	Title      string         `json:"title"`
	Start      time.Time      `json:"start"`
	End        time.Time      `json:"end"`
	GroupKey   string         `json:"group"`
	Style      string         `json:"style"`
	Color      string         `json:"color"`
	Tooltip    []TooltipField `json:"tooltip"`
	TaskNumber string         `json:"task_number,omitempty"`
	Version    string         `json:"version,omitempty"`
	Subtask    bool           `json:"subtask"`
}

// Projection is the row set handed to the timeline renderer.
type Projection struct {
	View    string   `json:"view"`
	Level   Level    `json:"level"`
	GroupBy GroupBy  `json:"group_by"`
	Rows    []Row    `json:"rows"`
	Groups  []string `json:"groups"`
	Empty   bool     `json:"empty"` // no row survived the filters
}

// Row returns the row with the given id.
func (p Projection) Row(id int) (Row, bool) {
	if id < 0 || id >= len(p.Rows) {
		return Row{}, false
	}
	return p.Rows[id], true
}

// item is the common shape of tasks and project rows seen by the projector.
type item struct {
	title    string
	version  string
	client   string
	owner    string
	team     string
	number   string
	priority task.Priority
	subtask  bool
	dates    func([]task.DateField) *time.Time
	tooltip  []TooltipField
}

// ResolveGroupBy picks the grouping key for a query.
func ResolveGroupBy(prof Profile, params Params) GroupBy {
	g := params.GroupBy
	if g == "" {
		g = prof.GroupBy
	}
	if g == GroupByAuto || g == "" {
		if IsAll(params.Client) {
			return GroupByClient
		}
		return GroupByTeam
	}
	return g
}

// ProjectTasks projects task-level rows. The input is not modified.
func ProjectTasks(tasks []task.Task, prof Profile, params Params) Projection {
	items := make([]item, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, taskItem(t))
	}
	return buildProjection(items, prof, params, true)
}

// ProjectProjects projects project-level rows. The input is not modified.
func ProjectProjects(rows []project.Row, prof Profile, params Params) Projection {
	items := make([]item, 0, len(rows))
	for _, r := range rows {
		items = append(items, projectItem(r, prof))
	}
	return buildProjection(items, prof, params, false)
}

func buildProjection(items []item, prof Profile, params Params, taskLevel bool) Projection {
	groupBy := ResolveGroupBy(prof, params)
	level := LevelProject
	if taskLevel {
		level = LevelTask
	}
	proj := Projection{
		View:    prof.Name,
		Level:   level,
		GroupBy: groupBy,
		Rows:    make([]Row, 0, len(items)),
		Groups:  []string{},
	}

	seen := make(map[string]struct{})
	for i, it := range items {
		start := params.Now
		if d := it.dates(prof.StartChain); d != nil {
			start = *d
		}
		end := start.AddDate(0, 0, prof.DefaultSpanDays)
		if d := it.dates(prof.EndChain); d != nil {
			end = *d
		}

		style := PriorityClass(it.priority)
		if taskLevel {
			if it.subtask {
				style += " task-subtask"
			} else {
				style += " task-principal"
			}
		}

		key := groupKey(it, groupBy)
		if _, ok := seen[key]; !ok {
			seen[key] = struct{}{}
			proj.Groups = append(proj.Groups, key)
		}

		proj.Rows = append(proj.Rows, Row{
			ID:         i,
			Label:      label(it.title, it.version, prof),
			Title:      it.title,
			Start:      start,
			End:        end,
			GroupKey:   key,
			Style:      style,
			Color:      ClientColor(it.client),
			Tooltip:    it.tooltip,
			TaskNumber: it.number,
			Version:    it.version,
			Subtask:    it.subtask,
		})
	}
	slices.Sort(proj.Groups)
	proj.Empty = len(proj.Rows) == 0
	return proj
}

func groupKey(it item, groupBy GroupBy) string {
	switch groupBy {
	case GroupByClient:
		return orDefault(it.client, NoClient)
	case GroupByOwner:
		return orDefault(it.owner, NoOwner)
	default:
		return orDefault(it.team, NoTeam)
	}
}

// label combines the version label and the title, truncating the title to
// the profile's width for the chosen form.
func label(title, version string, prof Profile) string {
	if version == "" {
		return truncate(title, prof.LabelWidth)
	}
	return "[" + version + "] " + truncate(title, prof.VersionedWidth)
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width]) + ellipsis
}

func taskItem(t task.Task) item {
	team := t.ExecutionGroup
	if team == "" {
		team = t.OwnerGroup
	}
	typ := string(t.Type)
	if t.Type == task.TypeOther {
		typ = NotDefined
	}
	return item{
		title:    orDefault(t.Title, NoTitle),
		version:  t.VersionDisplay,
		client:   t.ClientName,
		owner:    t.OwnerDisplayName,
		team:     team,
		number:   t.Number,
		priority: t.Priority,
		subtask:  t.IsSubtask,
		dates:    t.FirstDate,
		tooltip: []TooltipField{
			{Label: "Tipo", Value: typ},
			{Label: "Cliente", Value: orDefault(t.ClientName, NotDefined)},
			{Label: "Responsável", Value: orDefault(t.OwnerDisplayName, NotDefined)},
			{Label: "Prioridade", Value: string(t.Priority)},
			{Label: "Data Início", Value: orDefault(task.FormatDate(t.Start), NotDefinedFem)},
			{Label: "Prazo/Fim", Value: orDefault(task.FormatDate(t.End), NotDefinedFem)},
			{Label: "Equipe", Value: orDefault(t.OwnerGroupName, NotDefinedFem)},
			{Label: "Status", Value: orDefault(t.Status, NotDefined)},
		},
	}
}

func projectItem(r project.Row, prof Profile) item {
	team := r.ExecutionGroup
	if team == "" {
		team = r.OwnerGroup
	}
	tooltip := []TooltipField{
		{Label: "Cliente", Value: orDefault(r.ClientName, NotDefined)},
		{Label: "Data Início", Value: orDefault(task.FormatDate(r.Request), NotDefinedFem)},
		{Label: "Prazo/Fim", Value: orDefault(task.FormatDate(r.FirstDate(prof.EndChain)), NotDefinedFem)},
		{Label: "Equipe", Value: orDefault(team, NoTeam)},
	}
	if r.Status != "" {
		tooltip = append(tooltip, TooltipField{Label: "Status", Value: r.Status})
	}
	return item{
		title:    orDefault(r.Key, NoTitle),
		version:  r.VersionDisplay,
		client:   r.ClientName,
		owner:    r.OwnerDisplayName,
		team:     team,
		number:   r.TaskNumber,
		priority: r.Priority,
		dates:    r.FirstDate,
		tooltip:  tooltip,
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
