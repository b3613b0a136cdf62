package view

import (
	"slices"
	"strings"

	"github.com/somoscreators/taskboard/internal/domain/task"
)

// Options lists the selector values a view offers.
type Options struct {
	Clients []string `json:"clients"`
	Groups  []string `json:"groups"`
	Members []string `json:"members"`
	Periods []int    `json:"periods"`
}

// BuildOptions derives the selector values from the full task collection.
// Members are listed only when group selects a team.
func BuildOptions(tasks []task.Task, prof Profile, group string) Options {
	opts := Options{
		Clients: distinctSorted(tasks, func(t task.Task) string { return t.ClientName }),
		Groups:  groupOptions(tasks, prof),
		Members: []string{},
		Periods: append([]int(nil), Periods...),
	}
	if !IsAll(group) {
		opts.Members = Members(tasks, group)
	}
	return opts
}

func groupOptions(tasks []task.Task, prof Profile) []string {
	groups := make([]string, 0, len(prof.MainGroups)+len(prof.PinnedGroups)+len(prof.ConditionalGroups))
	groups = append(groups, prof.MainGroups...)
	groups = append(groups, prof.PinnedGroups...)
	for _, g := range prof.ConditionalGroups {
		present := slices.ContainsFunc(tasks, func(t task.Task) bool {
			return t.OwnerGroup == g || strings.Contains(t.OwnerGroupName, g)
		})
		if present {
			groups = append(groups, g)
		}
	}
	return groups
}

// Members lists the distinct owners of a team: tasks whose execution or
// owner group equals group, or whose composite group name contains it,
// ignoring case.
func Members(tasks []task.Task, group string) []string {
	group = strings.TrimSpace(group)
	upper := strings.ToUpper(group)
	inTeam := make([]task.Task, 0)
	for _, t := range tasks {
		if strings.EqualFold(t.ExecutionGroup, group) ||
			strings.EqualFold(t.OwnerGroup, group) ||
			(t.OwnerGroupName != "" && strings.Contains(strings.ToUpper(t.OwnerGroupName), upper)) {
			inTeam = append(inTeam, t)
		}
	}
	return distinctSorted(inTeam, func(t task.Task) string { return t.OwnerDisplayName })
}

func distinctSorted(tasks []task.Task, value func(task.Task) string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, t := range tasks {
		v := value(t)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}
