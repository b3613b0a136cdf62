package activity

import "time"

// Type represents the kind of dashboard event
type Type string

const (
	TypeLoadSucceeded Type = "load_succeeded"
	TypeLoadFailed    Type = "load_failed"
	TypeExportBuilt   Type = "export_built"
)

// Valid reports whether t is a known event type.
func (t Type) Valid() bool {
	switch t {
	case TypeLoadSucceeded, TypeLoadFailed, TypeExportBuilt:
		return true
	default:
		return false
	}
}

// Entry represents an event in the activity log
type Entry struct {
	ID         int64     `json:"id"`
	Type       Type      `json:"type"`
	SnapshotID string    `json:"snapshot_id,omitempty"`
	View       string    `json:"view,omitempty"`
	Count      int       `json:"count"`
	Summary    string    `json:"summary"`
	Details    string    `json:"details,omitempty"` // JSON string
	CreatedAt  time.Time `json:"created_at"`
}
