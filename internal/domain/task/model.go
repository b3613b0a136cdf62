package task

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Field is a raw input value. Strings, numbers and true are kept as text;
// null, false and missing values are empty, and empty means absent.
type Field string

// UnmarshalJSON coerces scalar JSON values into text.
func (f *Field) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		*f = ""
		return nil
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*f = Field(s)
	case 'n', 'f':
		// null, false
		*f = ""
	case '{', '[':
		return fmt.Errorf("%w: %s", ErrUnsupportedValue, string(trimmed[:1]))
	default:
		*f = Field(trimmed)
	}
	return nil
}

// String returns the field text.
func (f Field) String() string {
	return string(f)
}

// Raw is one record of the project-management export.
type Raw struct {
	ClientNickname                 Field `json:"ClientNickname,omitempty"`
	TaskNumber                     Field `json:"TaskNumber,omitempty"`
	TaskTitle                      Field `json:"TaskTitle,omitempty"`
	JobTitle                       Field `json:"JobTitle,omitempty"`
	Version                        Field `json:"Version,omitempty"`
	RequestDate                    Field `json:"RequestDate,omitempty"`
	UnitName                       Field `json:"UnitName,omitempty"`
	EndDate                        Field `json:"EndDate,omitempty"`
	CurrentDueDate                 Field `json:"CurrentDueDate,omitempty"`
	RequestTypeName                Field `json:"RequestTypeName,omitempty"`
	TaskExecutionFunctionGroupName Field `json:"TaskExecutionFunctionGroupName,omitempty"`
	TaskOwnerDisplayName           Field `json:"TaskOwnerDisplayName,omitempty"`
	TaskOwnerGroupName             Field `json:"TaskOwnerGroupName,omitempty"`
	TaskClosingDate                Field `json:"TaskClosingDate,omitempty"`
	Priority                       Field `json:"Priority,omitempty"`
	ParentTaskID                   Field `json:"ParentTaskID,omitempty"`
	StartDate                      Field `json:"StartDate,omitempty"`
	TipoTarefa                     Field `json:"TipoTarefa,omitempty"`
	PipelineStepTitle              Field `json:"PipelineStepTitle,omitempty"`
}

// Priority is the display-priority proxy derived from the pipeline step.
type Priority string

const (
	PriorityBacklog Priority = "backlog"
	PriorityHigh    Priority = "high"
	PriorityMedium  Priority = "medium"
	PriorityLow     Priority = "low"
	PriorityDefault Priority = "default"
)

// Type is the task type tag read from the source.
type Type string

const (
	TypePrincipal Type = "Principal"
	TypeSubtask   Type = "Subtarefa"
	// TypeOther marks a record with no type tag.
	TypeOther Type = "Outro"
)

// DateField names one of the date-valued fields of a Task.
type DateField string

const (
	DateStart         DateField = "start"
	DateEnd           DateField = "end"
	DateCurrentDue    DateField = "current_due"
	DateRequest       DateField = "request"
	DateClosing       DateField = "closing"
	DateCombinedStart DateField = "combined_start"
	DateCombinedEnd   DateField = "combined_end"
	DateAdjustedDue   DateField = "adjusted_due"
)

// Valid reports whether f names a known date field.
func (f DateField) Valid() bool {
	switch f {
	case DateStart, DateEnd, DateCurrentDue, DateRequest, DateClosing,
		DateCombinedStart, DateCombinedEnd, DateAdjustedDue:
		return true
	}
	return false
}

// Task is a normalized task record.
type Task struct {
	Number           string   `json:"task_number,omitempty"`
	Title            string   `json:"title,omitempty"`
	JobTitle         string   `json:"job_title,omitempty"`
	ClientName       string   `json:"client_name,omitempty"`
	OwnerDisplayName string   `json:"owner_display_name,omitempty"`
	OwnerGroupName   string   `json:"owner_group_name,omitempty"`
	OwnerGroup       string   `json:"owner_group,omitempty"`
	OwnerSubgroup    string   `json:"owner_subgroup,omitempty"`
	ExecutionGroup   string   `json:"execution_group_name,omitempty"`
	RequestTypeName  string   `json:"request_type_name,omitempty"`
	UnitName         string   `json:"unit_name,omitempty"`
	Status           string   `json:"status,omitempty"`
	SourcePriority   string   `json:"source_priority,omitempty"`
	Priority         Priority `json:"priority"`
	Type             Type     `json:"task_type"`
	IsSubtask        bool     `json:"is_subtask"`
	ParentNumber     string   `json:"parent_task_id,omitempty"`
	Version          string   `json:"version,omitempty"`
	VersionDisplay   string   `json:"version_display"`

	Start      *time.Time `json:"start_date,omitempty"`
	End        *time.Time `json:"end_date,omitempty"`
	CurrentDue *time.Time `json:"current_due_date,omitempty"`
	Request    *time.Time `json:"request_date,omitempty"`
	Closing    *time.Time `json:"closing_date,omitempty"`

	CombinedStart *time.Time `json:"combined_start_date,omitempty"`
	CombinedEnd   *time.Time `json:"combined_end_date,omitempty"`
	AdjustedDue   *time.Time `json:"adjusted_due_date,omitempty"`

	// Position is the index of the source record in the loaded collection.
	Position int `json:"position"`
}

// Date returns the value of the named date field.
func (t Task) Date(f DateField) *time.Time {
	switch f {
	case DateStart:
		return t.Start
	case DateEnd:
		return t.End
	case DateCurrentDue:
		return t.CurrentDue
	case DateRequest:
		return t.Request
	case DateClosing:
		return t.Closing
	case DateCombinedStart:
		return t.CombinedStart
	case DateCombinedEnd:
		return t.CombinedEnd
	case DateAdjustedDue:
		return t.AdjustedDue
	default:
		return nil
	}
}

// FirstDate returns the first present date in chain order.
func (t Task) FirstDate(chain []DateField) *time.Time {
	for _, f := range chain {
		if d := t.Date(f); d != nil {
			return d
		}
	}
	return nil
}

// IsPrincipal reports whether the task is tagged as a principal task.
func (t Task) IsPrincipal() bool {
	return t.Type == TypePrincipal
}

// Key returns the project key: the job title, or the task title when absent.
func (t Task) Key() string {
	if t.JobTitle != "" {
		return t.JobTitle
	}
	return t.Title
}

// Raw renders the task back into a raw record.
func (t Task) Raw() Raw {
	typ := t.Type
	if typ == TypeOther {
		typ = ""
	}
	return Raw{
		ClientNickname:                 Field(t.ClientName),
		TaskNumber:                     Field(t.Number),
		TaskTitle:                      Field(t.Title),
		JobTitle:                       Field(t.JobTitle),
		Version:                        Field(t.Version),
		RequestDate:                    Field(formatRaw(t.Request)),
		UnitName:                       Field(t.UnitName),
		EndDate:                        Field(formatRaw(t.End)),
		CurrentDueDate:                 Field(formatRaw(t.CurrentDue)),
		RequestTypeName:                Field(t.RequestTypeName),
		TaskExecutionFunctionGroupName: Field(t.ExecutionGroup),
		TaskOwnerDisplayName:           Field(t.OwnerDisplayName),
		TaskOwnerGroupName:             Field(t.OwnerGroupName),
		TaskClosingDate:                Field(formatRaw(t.Closing)),
		Priority:                       Field(t.SourcePriority),
		ParentTaskID:                   Field(t.ParentNumber),
		StartDate:                      Field(formatRaw(t.Start)),
		TipoTarefa:                     Field(typ),
		PipelineStepTitle:              Field(t.Status),
	}
}
