package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/somoscreators/taskboard/internal/config"
	"github.com/somoscreators/taskboard/internal/domain/task"
	"github.com/somoscreators/taskboard/internal/sqlite"
)

// Fetcher returns the raw task records of one load.
type Fetcher interface {
	Fetch(ctx context.Context) ([]task.Raw, error)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds the source selected by cfg. The returned closer releases the
// source's clients and is never nil on success.
func Open(ctx context.Context, cfg config.SourceConfig) (Fetcher, io.Closer, error) {
	timeout := time.Duration(cfg.Timeout) * time.Second
	switch cfg.Kind {
	case config.SourceFile, "":
		return NewFile(cfg.Path), nopCloser{}, nil
	case config.SourceHTTP:
		if cfg.URL == "" {
			return nil, nil, fmt.Errorf("http source requires a url")
		}
		return NewHTTP(cfg.URL, timeout), nopCloser{}, nil
	case config.SourceGCS:
		gcs, err := NewGCS(ctx, cfg.Bucket, cfg.Object, cfg.Prefix)
		if err != nil {
			return nil, nil, err
		}
		return gcs, gcs, nil
	case config.SourceSQLite:
		db, err := OpenDB(cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		return sqlite.NewTaskExportRepository(db), db, nil
	default:
		return nil, nil, fmt.Errorf("unknown source kind %q", cfg.Kind)
	}
}

// OpenDB opens the SQLite database at path and applies the migrations.
func OpenDB(path string) (*sqlite.DB, error) {
	if err := ensureDBDir(path); err != nil {
		return nil, fmt.Errorf("prepare database path: %w", err)
	}
	db, err := sqlite.New(path)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
