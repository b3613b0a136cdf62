package transport

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/somoscreators/taskboard/internal/domain/activity"
	"github.com/somoscreators/taskboard/internal/domain/dashboard"
	"github.com/somoscreators/taskboard/internal/view"
)

// ErrInvalidQuery indicates a malformed query or path parameter.
var ErrInvalidQuery = errors.New("invalid query parameter")

// ErrorBody is the JSON body of a failed REST call.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes a failed REST call.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func invalidQuery(name, value string) error {
	return fmt.Errorf("%w: %s=%q", ErrInvalidQuery, name, value)
}

// statusFor maps domain errors to an HTTP status and error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, dashboard.ErrNotLoaded):
		return http.StatusServiceUnavailable, "NOT_LOADED"
	case errors.Is(err, dashboard.ErrUnknownView):
		return http.StatusNotFound, "UNKNOWN_VIEW"
	case errors.Is(err, dashboard.ErrRowNotFound):
		return http.StatusNotFound, "ROW_NOT_FOUND"
	case errors.Is(err, dashboard.ErrGroupNotFound):
		return http.StatusNotFound, "GROUP_NOT_FOUND"
	case errors.Is(err, dashboard.ErrLoadFailure):
		return http.StatusBadGateway, "LOAD_FAILED"
	case errors.Is(err, ErrInvalidQuery), errors.Is(err, view.ErrInvalidParams), errors.Is(err, activity.ErrInvalidInput):
		return http.StatusBadRequest, "INVALID_REQUEST"
	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "code", code, "error", err)
	}
	writeJSON(w, status, ErrorBody{Error: ErrorDetail{Code: code, Message: err.Error()}})
}
