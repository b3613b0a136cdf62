package task

import "errors"

var (
	// ErrUnsupportedValue indicates a raw field holding an object or array.
	ErrUnsupportedValue = errors.New("unsupported raw field value")
	// ErrUnknownVersionStrategy indicates an unrecognized version strategy name.
	ErrUnknownVersionStrategy = errors.New("unknown version strategy")
)
