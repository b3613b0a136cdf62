package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/somoscreators/taskboard/internal/domain/task"
)

// DefaultPath is the export file read when no path is configured.
const DefaultPath = "dados.json"

// File reads the task export from a local JSON file.
type File struct {
	Path string
}

// NewFile creates a file source. An empty path means DefaultPath.
func NewFile(path string) *File {
	if path == "" {
		path = DefaultPath
	}
	return &File{Path: path}
}

// Fetch reads and decodes the whole file.
func (f *File) Fetch(ctx context.Context) ([]task.Raw, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := os.Open(f.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, f.Path)
		}
		return nil, fmt.Errorf("open %s: %w", f.Path, err)
	}
	defer file.Close()

	return Decode(file)
}
