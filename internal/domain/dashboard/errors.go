package dashboard

import "errors"

var (
	// ErrLoadFailure indicates the raw records could not be fetched or decoded.
	ErrLoadFailure = errors.New("load failure")
	// ErrNotLoaded indicates no snapshot has been loaded yet.
	ErrNotLoaded = errors.New("data not loaded")
	// ErrUnknownView indicates the requested view profile doesn't exist.
	ErrUnknownView = errors.New("unknown view")
	// ErrRowNotFound indicates the row id is not part of the view's last result.
	ErrRowNotFound = errors.New("row not found")
	// ErrGroupNotFound indicates no principal task carries the number.
	ErrGroupNotFound = errors.New("task group not found")
)
