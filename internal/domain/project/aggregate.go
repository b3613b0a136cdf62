package project

import "github.com/somoscreators/taskboard/internal/domain/task"

// Aggregate produces one row per distinct project key among non-subtask
// tasks, in first-seen order. Later tasks with a known key are ignored.
func Aggregate(tasks []task.Task) []Row {
	seen := make(map[string]struct{})
	rows := make([]Row, 0)
	for _, t := range tasks {
		if t.IsSubtask {
			continue
		}
		key := t.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		rows = append(rows, newRow(key, t))
	}
	return rows
}

// Find returns the row with the given key.
func Find(rows []Row, key string) (Row, error) {
	for _, r := range rows {
		if r.Key == key {
			return r, nil
		}
	}
	return Row{}, ErrProjectNotFound
}
