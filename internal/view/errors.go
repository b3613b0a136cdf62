package view

import "errors"

var (
	// ErrInvalidProfile indicates a view profile that cannot drive the pipeline.
	ErrInvalidProfile = errors.New("invalid view profile")
	// ErrInvalidParams indicates a malformed filter or projection parameter.
	ErrInvalidParams = errors.New("invalid view parameters")
)
