package view

import "github.com/somoscreators/taskboard/internal/domain/task"

var priorityClasses = map[task.Priority]string{
	task.PriorityHigh:    "task-priority-high",
	task.PriorityMedium:  "task-priority-medium",
	task.PriorityLow:     "task-priority-low",
	task.PriorityDefault: "task-priority-default",
	task.PriorityBacklog: "task-priority-backlog",
}

var clientColors = map[string]string{
	"SICREDI":        "danger",
	"SAMSUNG":        "primary",
	"SAMSUNGE":       "primary",
	"SAMSUNGB":       "primary",
	"SAMSUNGE-STORE": "primary",
	"VIVO":           "success",
	"RD":             "warning",
	"AMERICANAS":     "info",
	"OBOTICARIO":     "dark",
	"JOHNSONSBABY":   "secondary",
	"COGNA":          "secondary",
	"ENGIE":          "danger",
	"OUI":            "warning",
	"OUi":            "warning",
	"IDEAZARVOS":     "dark",
	"SUPERDIGITAL":   "primary",
	"SUNO":           "success",
	"SUNOCREATORS":   "success",
}

// DefaultClientColor is used for clients without an assigned color.
const DefaultClientColor = "secondary"

// PriorityClass returns the style class of a priority.
func PriorityClass(p task.Priority) string {
	if c, ok := priorityClasses[p]; ok {
		return c
	}
	return priorityClasses[task.PriorityDefault]
}

// ClientColor returns the contextual color class of a client.
func ClientColor(client string) string {
	if c, ok := clientColors[client]; ok {
		return c
	}
	return DefaultClientColor
}
