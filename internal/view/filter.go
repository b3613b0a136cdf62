package view

import (
	"strings"
	"time"

	"github.com/somoscreators/taskboard/internal/domain/task"
)

// DefaultWindowDays is the recency window used when none is given.
const DefaultWindowDays = 30

// Periods are the recency windows offered to callers, in days.
var Periods = []int{7, 15, 30, 60, 90, 180, 365}

// Params are the filter and projection inputs of one query.
// Client, Group and Member accept "", "all" or "todos" to skip the filter.
type Params struct {
	Client           string    `json:"client,omitempty"`
	Group            string    `json:"group,omitempty"`
	Member           string    `json:"member,omitempty"`
	WindowDays       int       `json:"window_days"`
	IncludePrincipal bool      `json:"include_principal"`
	IncludeSubtask   bool      `json:"include_subtask"`
	GroupBy          GroupBy   `json:"group_by,omitempty"`
	Now              time.Time `json:"-"`
}

// DefaultParams returns params that keep every task type over the default window.
func DefaultParams(now time.Time) Params {
	return Params{
		WindowDays:       DefaultWindowDays,
		IncludePrincipal: true,
		IncludeSubtask:   true,
		Now:              now,
	}
}

// IsAll reports whether a selector value means "no filter".
func IsAll(value string) bool {
	v := strings.TrimSpace(value)
	return v == "" || strings.EqualFold(v, "all") || strings.EqualFold(v, "todos")
}

// Filter returns the tasks passing every predicate, in input order.
func Filter(tasks []task.Task, prof Profile, params Params) []task.Task {
	out := make([]task.Task, 0)
	if !params.IncludePrincipal && !params.IncludeSubtask {
		return out
	}

	cutoff := params.Now.AddDate(0, 0, -params.WindowDays)
	excluded := make(map[string]struct{}, len(prof.ExcludedStatuses))
	for _, s := range prof.ExcludedStatuses {
		excluded[s] = struct{}{}
	}
	group := strings.ToUpper(strings.TrimSpace(params.Group))

	for _, t := range tasks {
		if !recent(t, cutoff) {
			continue
		}
		if _, ok := excluded[t.Status]; ok {
			continue
		}
		if !IsAll(params.Client) && t.ClientName != params.Client {
			continue
		}
		if !IsAll(params.Group) && !InGroup(t, group) {
			continue
		}
		if !IsAll(params.Member) && t.OwnerDisplayName != params.Member {
			continue
		}
		if !params.IncludePrincipal && t.Type == task.TypePrincipal {
			continue
		}
		if !params.IncludeSubtask && t.Type == task.TypeSubtask {
			continue
		}
		out = append(out, t)
	}
	return out
}

// recent reports whether the start or the end date is at or after cutoff.
func recent(t task.Task, cutoff time.Time) bool {
	if t.Start != nil && !t.Start.Before(cutoff) {
		return true
	}
	return t.End != nil && !t.End.Before(cutoff)
}

// InGroup reports whether any team field of t contains group, ignoring case.
// group must already be upper-cased.
func InGroup(t task.Task, group string) bool {
	for _, field := range []string{t.ExecutionGroup, t.OwnerGroup, t.OwnerGroupName} {
		if field != "" && strings.Contains(strings.ToUpper(field), group) {
			return true
		}
	}
	return false
}
