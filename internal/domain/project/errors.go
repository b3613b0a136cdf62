package project

import "errors"

// ErrProjectNotFound indicates no project row carries the requested key.
var ErrProjectNotFound = errors.New("project not found")
