package source

import "errors"

var (
	// ErrDecode is returned when the payload is not a JSON array of task records.
	ErrDecode = errors.New("invalid task export")

	// ErrNotFound is returned when the export does not exist at the source.
	ErrNotFound = errors.New("task export not found")
)
