package source

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/somoscreators/taskboard/internal/domain/task"
)

// DefaultTimeout bounds a remote fetch when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// HTTP fetches the task export with a GET request.
type HTTP struct {
	URL     string
	Timeout time.Duration
	Client  *http.Client
}

// NewHTTP creates an HTTP source.
func NewHTTP(url string, timeout time.Duration) *HTTP {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTP{URL: url, Timeout: timeout, Client: http.DefaultClient}
}

// Fetch requests the export and decodes the body. Non-2xx responses fail.
func (h *HTTP) Fetch(ctx context.Context) ([]task.Raw, error) {
	ctx, cancel := context.WithTimeout(ctx, h.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", h.URL, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, h.URL)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("fetch %s: unexpected status %d", h.URL, resp.StatusCode)
	}
	return Decode(resp.Body)
}
