package activity

import "errors"

// ErrInvalidInput is returned for a nil entry or an unknown event type.
var ErrInvalidInput = errors.New("invalid activity entry")
