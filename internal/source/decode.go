package source

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/somoscreators/taskboard/internal/domain/task"
)

// Decode reads a JSON array of raw task records. Any malformed element fails
// the whole payload.
func Decode(r io.Reader) ([]task.Raw, error) {
	var records []task.Raw
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if records == nil {
		records = []task.Raw{}
	}
	return records, nil
}
