package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	"github.com/somoscreators/taskboard/migrations"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// In-memory databases are per connection
	if dataSourceName == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	return &DB{db}, nil
}

// RunMigrations applies the embedded goose migrations
func (db *DB) RunMigrations() error {
	goose.SetBaseFS(migrations.FS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.Up(db.DB, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
