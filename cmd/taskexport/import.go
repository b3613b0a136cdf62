package main

import (
	"context"
	"errors"

	"github.com/somoscreators/taskboard/internal/source"
	"github.com/somoscreators/taskboard/internal/sqlite"
	flag "github.com/spf13/pflag"
)

var errJSONRequired = errors.New("--json is required")

func importCmd() *Command {
	var configPath, dbPath, jsonPath string
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	fs.StringVar(&configPath, "config", "", "config file (default $TASKBOARD_CONFIG_PATH)")
	fs.StringVar(&dbPath, "db", "", "SQLite database (default: source.db from config)")
	fs.StringVar(&jsonPath, "json", "", "JSON export to import")

	return &Command{
		Flags: fs,
		Usage: "import --json <file> [--db <path>]",
		Short: "Replace the SQLite task export table with a JSON export.",
		Exec: func(ctx context.Context, o *IO, _ []string) error {
			if jsonPath == "" {
				return errJSONRequired
			}
			if dbPath == "" {
				cfg, err := loadConfig(configPath)
				if err != nil {
					return err
				}
				dbPath = cfg.Source.DB
			}
			return execImport(ctx, o, dbPath, jsonPath)
		},
	}
}

func execImport(ctx context.Context, o *IO, dbPath, jsonPath string) error {
	records, err := source.NewFile(jsonPath).Fetch(ctx)
	if err != nil {
		return err
	}

	db, err := source.OpenDB(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := sqlite.NewTaskExportRepository(db).Import(ctx, records)
	if err != nil {
		return err
	}
	o.Printf("imported %d records into %s\n", n, dbPath)
	return nil
}
