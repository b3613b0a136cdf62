package mcp

import (
	"errors"
	"fmt"

	"github.com/somoscreators/taskboard/internal/domain/dashboard"
	"github.com/somoscreators/taskboard/internal/view"
)

var (
	// ErrInvalidParams is returned when tool or method arguments are malformed.
	ErrInvalidParams = errors.New("invalid params")

	// ErrMethodNotFound is returned for unknown dispatch methods.
	ErrMethodNotFound = errors.New("method not found")
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	if e.RecoveryHint != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.RecoveryHint)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// CodeValue and MessageValue let transports map the error without importing
// this package.
func (e *APIError) CodeValue() string {
	return e.Code
}

func (e *APIError) MessageValue() string {
	return e.Message
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, dashboard.ErrNotLoaded):
		return &APIError{Code: "NOT_LOADED", Message: "no task data loaded", RecoveryHint: "Call reload_data"}
	case errors.Is(err, dashboard.ErrLoadFailure):
		return &APIError{Code: "LOAD_FAILED", Message: err.Error(), RecoveryHint: "Check the data source and retry reload_data"}
	case errors.Is(err, dashboard.ErrUnknownView):
		return &APIError{Code: "UNKNOWN_VIEW", Message: err.Error(), RecoveryHint: "Call dashboard_status for the view names"}
	case errors.Is(err, dashboard.ErrRowNotFound):
		return &APIError{Code: "ROW_NOT_FOUND", Message: "row not found", RecoveryHint: "Call timeline_rows first and use one of its row ids"}
	case errors.Is(err, dashboard.ErrGroupNotFound):
		return &APIError{Code: "GROUP_NOT_FOUND", Message: "no principal task with that number"}
	case errors.Is(err, ErrInvalidParams), errors.Is(err, view.ErrInvalidParams):
		return &APIError{Code: "INVALID_PARAMS", Message: err.Error()}
	case errors.Is(err, ErrMethodNotFound):
		return &APIError{Code: "METHOD_NOT_FOUND", Message: err.Error()}
	default:
		return nil
	}
}

// mapError returns the API error for known domain errors and err otherwise.
func mapError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
