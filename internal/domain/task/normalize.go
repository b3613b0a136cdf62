package task

import (
	"strings"
	"time"
)

// GroupCriacao is the canonical name of the creative team.
const GroupCriacao = "Criação"

// Individuals promoted to pseudo-groups executed by the creative team.
const (
	GroupBrunoProsperi = "Bruno Prosperi"
	GroupThiagoBocatto = "Thiago Bocatto"
)

var groupAliases = []struct {
	match     []string
	group     string
	execution string
}{
	{match: []string{"CRIAÇÃO", "CRIACAO"}, group: GroupCriacao, execution: GroupCriacao},
	{match: []string{"BRUNO PROSPERI"}, group: GroupBrunoProsperi, execution: GroupCriacao},
	{match: []string{"THIAGO BOCATTO"}, group: GroupThiagoBocatto, execution: GroupCriacao},
}

var priorityBySteps = map[string]Priority{
	"Backlog":      PriorityBacklog,
	"Em Ajuste":    PriorityHigh,
	"Em Criação":   PriorityMedium,
	"Em Validação": PriorityLow,
}

// Normalizer maps raw records into Tasks.
type Normalizer struct {
	// Location is used for dates without an offset. Nil means time.Local.
	Location *time.Location
	Versions VersionStrategy
}

// NewNormalizer creates a normalizer.
func NewNormalizer(loc *time.Location, versions VersionStrategy) Normalizer {
	return Normalizer{Location: loc, Versions: versions}
}

// NormalizeAll normalizes a collection, recording each record's position.
func (n Normalizer) NormalizeAll(raws []Raw) []Task {
	tasks := make([]Task, 0, len(raws))
	for i, raw := range raws {
		t := n.Normalize(raw)
		t.Position = i
		tasks = append(tasks, t)
	}
	return tasks
}

// Normalize maps one raw record into a Task. It never fails: unrecognized
// or missing values come through as absent or default.
func (n Normalizer) Normalize(raw Raw) Task {
	t := Task{
		Number:           raw.TaskNumber.String(),
		Title:            raw.TaskTitle.String(),
		JobTitle:         raw.JobTitle.String(),
		ClientName:       raw.ClientNickname.String(),
		OwnerDisplayName: raw.TaskOwnerDisplayName.String(),
		OwnerGroupName:   raw.TaskOwnerGroupName.String(),
		ExecutionGroup:   raw.TaskExecutionFunctionGroupName.String(),
		RequestTypeName:  raw.RequestTypeName.String(),
		UnitName:         raw.UnitName.String(),
		Status:           raw.PipelineStepTitle.String(),
		SourcePriority:   raw.Priority.String(),
		ParentNumber:     raw.ParentTaskID.String(),
		Version:          raw.Version.String(),
		Type:             Type(raw.TipoTarefa.String()),
	}

	if t.OwnerGroupName != "" {
		t.OwnerGroup, t.OwnerSubgroup = splitGroup(t.OwnerGroupName)
		for _, alias := range groupAliases {
			if matchesAny(t.OwnerGroup, alias.match) {
				t.OwnerGroup = alias.group
				t.ExecutionGroup = alias.execution
				break
			}
		}
	}
	if t.ExecutionGroup == "" {
		t.ExecutionGroup = t.OwnerGroup
	}

	t.Priority = PriorityFor(t.Status)

	t.IsSubtask = t.Type == TypeSubtask
	if t.Type == "" {
		t.Type = TypeOther
	}

	t.Start = ParseTimestamp(raw.StartDate.String(), n.Location)
	t.End = ParseTimestamp(raw.EndDate.String(), n.Location)
	t.CurrentDue = ParseTimestamp(raw.CurrentDueDate.String(), n.Location)
	t.Request = ParseTimestamp(raw.RequestDate.String(), n.Location)
	t.Closing = ParseTimestamp(raw.TaskClosingDate.String(), n.Location)

	t.VersionDisplay = n.Versions.Resolve(t.Version, t.RequestTypeName)

	return t
}

// PriorityFor maps a pipeline step label to its display priority.
func PriorityFor(step string) Priority {
	if p, ok := priorityBySteps[step]; ok {
		return p
	}
	return PriorityDefault
}

// splitGroup splits a composite "group/subgroup" label. Extra segments stay
// in the subgroup, joined by " / ".
func splitGroup(composite string) (string, string) {
	if !strings.Contains(composite, "/") {
		return composite, ""
	}
	parts := strings.Split(composite, "/")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts[0], strings.Join(parts[1:], " / ")
}

func matchesAny(value string, candidates []string) bool {
	upper := strings.ToUpper(value)
	for _, c := range candidates {
		if upper == c {
			return true
		}
	}
	return false
}
