package project

import (
	"time"

	"github.com/somoscreators/taskboard/internal/domain/task"
)

// Row is one project among principal tasks. Its fields come from the first
// task seen with the project's key.
type Row struct {
	Key              string        `json:"job_title"`
	ClientName       string        `json:"client_name,omitempty"`
	Version          string        `json:"version,omitempty"`
	VersionDisplay   string        `json:"version_display"`
	ExecutionGroup   string        `json:"execution_group_name,omitempty"`
	OwnerGroup       string        `json:"owner_group,omitempty"`
	OwnerGroupName   string        `json:"owner_group_name,omitempty"`
	OwnerDisplayName string        `json:"owner_display_name,omitempty"`
	Priority         task.Priority `json:"priority"`
	TaskNumber       string        `json:"task_number,omitempty"`
	Status           string        `json:"status,omitempty"`

	Start      *time.Time `json:"start_date,omitempty"`
	End        *time.Time `json:"end_date,omitempty"`
	CurrentDue *time.Time `json:"current_due_date,omitempty"`
	// Request falls back to Start when the task has no request date.
	Request     *time.Time `json:"request_date,omitempty"`
	AdjustedDue *time.Time `json:"adjusted_due_date,omitempty"`
}

// Date returns the value of the named date field.
func (r Row) Date(f task.DateField) *time.Time {
	switch f {
	case task.DateStart:
		return r.Start
	case task.DateEnd:
		return r.End
	case task.DateCurrentDue:
		return r.CurrentDue
	case task.DateRequest:
		return r.Request
	case task.DateAdjustedDue:
		return r.AdjustedDue
	default:
		return nil
	}
}

// FirstDate returns the first present date in chain order.
func (r Row) FirstDate(chain []task.DateField) *time.Time {
	for _, f := range chain {
		if d := r.Date(f); d != nil {
			return d
		}
	}
	return nil
}

func newRow(key string, t task.Task) Row {
	request := t.Request
	if request == nil {
		request = t.Start
	}
	return Row{
		Key:              key,
		ClientName:       t.ClientName,
		Version:          t.Version,
		VersionDisplay:   t.VersionDisplay,
		ExecutionGroup:   t.ExecutionGroup,
		OwnerGroup:       t.OwnerGroup,
		OwnerGroupName:   t.OwnerGroupName,
		OwnerDisplayName: t.OwnerDisplayName,
		Priority:         t.Priority,
		TaskNumber:       t.Number,
		Status:           t.Status,
		Start:            t.Start,
		End:              t.End,
		CurrentDue:       t.CurrentDue,
		Request:          request,
		AdjustedDue:      t.AdjustedDue,
	}
}
