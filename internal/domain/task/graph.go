package task

import "time"

// Group is a principal task with its subtasks in input order.
type Group struct {
	Principal Task   `json:"principal"`
	Subtasks  []Task `json:"subtasks"`
}

// Graph is the principal-to-subtask index over an enriched task collection.
type Graph struct {
	// Tasks holds the enriched copies in input order.
	Tasks []Task

	groups   map[string]groupIndex
	order    []string
	byNumber map[string]int
}

type groupIndex struct {
	principal int
	subtasks  []int
}

// BuildGraph indexes principals and their subtasks and returns enriched
// copies of tasks. The input slice is not modified.
//
// For every principal that owns subtasks the combined date range is set on
// the principal, subtasks without a start inherit the principal's start, and
// every subtask gets an adjusted due date. Running BuildGraph on its own
// output yields the same result.
func BuildGraph(tasks []Task) *Graph {
	enriched := make([]Task, len(tasks))
	copy(enriched, tasks)

	children := make(map[string][]int)
	byNumber := make(map[string]int)
	for i, t := range enriched {
		if t.Number != "" {
			byNumber[t.Number] = i
		}
		if t.ParentNumber != "" {
			children[t.ParentNumber] = append(children[t.ParentNumber], i)
		}
	}

	g := &Graph{
		Tasks:    enriched,
		groups:   make(map[string]groupIndex),
		byNumber: byNumber,
	}
	for i, t := range enriched {
		if !t.IsPrincipal() || t.Number == "" {
			continue
		}
		// duplicate numbers: last principal wins, first position is kept
		if _, seen := g.groups[t.Number]; !seen {
			g.order = append(g.order, t.Number)
		}
		g.groups[t.Number] = groupIndex{principal: i, subtasks: children[t.Number]}
	}

	for _, number := range g.order {
		idx := g.groups[number]
		if len(idx.subtasks) == 0 {
			continue
		}
		g.enrich(idx)
	}

	return g
}

func (g *Graph) enrich(idx groupIndex) {
	principal := &g.Tasks[idx.principal]

	var earliest, latest *time.Time
	consider := func(t Task) {
		if t.Start != nil && (earliest == nil || t.Start.Before(*earliest)) {
			earliest = t.Start
		}
		end := t.End
		if end == nil {
			end = t.CurrentDue
		}
		if end != nil && (latest == nil || end.After(*latest)) {
			latest = end
		}
	}
	consider(*principal)
	for _, i := range idx.subtasks {
		consider(g.Tasks[i])
	}
	if earliest != nil {
		principal.CombinedStart = earliest
	}
	if latest != nil {
		principal.CombinedEnd = latest
	}

	for _, i := range idx.subtasks {
		sub := &g.Tasks[i]
		if sub.Start == nil && principal.Start != nil {
			sub.Start = principal.Start
		}
		switch {
		case sub.End != nil:
			sub.AdjustedDue = sub.End
		case principal.End != nil:
			sub.AdjustedDue = principal.End
		default:
			sub.AdjustedDue = principal.CurrentDue
		}
	}
}

// Len returns the number of groups.
func (g *Graph) Len() int {
	return len(g.order)
}

// Numbers returns the principal task numbers in first-seen order.
func (g *Graph) Numbers() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Group returns the group of the principal with the given number.
func (g *Graph) Group(number string) (Group, bool) {
	idx, ok := g.groups[number]
	if !ok {
		return Group{}, false
	}
	group := Group{
		Principal: g.Tasks[idx.principal],
		Subtasks:  make([]Task, 0, len(idx.subtasks)),
	}
	for _, i := range idx.subtasks {
		group.Subtasks = append(group.Subtasks, g.Tasks[i])
	}
	return group, true
}

// Groups returns every group in first-seen order.
func (g *Graph) Groups() []Group {
	out := make([]Group, 0, len(g.order))
	for _, number := range g.order {
		group, _ := g.Group(number)
		out = append(out, group)
	}
	return out
}

// ByNumber returns the last task carrying the given number.
func (g *Graph) ByNumber(number string) (Task, bool) {
	i, ok := g.byNumber[number]
	if !ok {
		return Task{}, false
	}
	return g.Tasks[i], true
}
