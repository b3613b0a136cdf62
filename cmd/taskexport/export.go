package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/atomic"
	"github.com/somoscreators/taskboard/internal/config"
	"github.com/somoscreators/taskboard/internal/domain/dashboard"
	"github.com/somoscreators/taskboard/internal/source"
	"github.com/somoscreators/taskboard/internal/view"
	flag "github.com/spf13/pflag"
)

var errInvalidDays = errors.New("--days must be positive")

type exportOptions struct {
	configPath  string
	view        string
	client      string
	group       string
	member      string
	days        int
	noPrincipal bool
	noSubtask   bool
	out         string
}

func exportCmd() *Command {
	var opts exportOptions
	fs := flag.NewFlagSet("taskexport", flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", "", "config file (default $TASKBOARD_CONFIG_PATH)")
	fs.StringVar(&opts.view, "view", "", "view to export (default: configured default view)")
	fs.StringVar(&opts.client, "client", "", "client filter")
	fs.StringVar(&opts.group, "group", "", "team filter")
	fs.StringVar(&opts.member, "member", "", "owner filter")
	fs.IntVar(&opts.days, "days", view.DefaultWindowDays, "recency window in days")
	fs.BoolVar(&opts.noPrincipal, "no-principal", false, "leave out principal tasks")
	fs.BoolVar(&opts.noSubtask, "no-subtask", false, "leave out subtasks")
	fs.StringVarP(&opts.out, "out", "o", ".", "output directory")

	return &Command{
		Flags: fs,
		Usage: "[flags] | import [flags]",
		Short: "Write the CSV export of a dashboard view.",
		Exec: func(ctx context.Context, o *IO, _ []string) error {
			return execExport(ctx, o, opts)
		},
	}
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFrom(path)
}

func execExport(ctx context.Context, o *IO, opts exportOptions) error {
	if opts.days <= 0 {
		return errInvalidDays
	}
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	profiles, err := cfg.Profiles()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(o.err, &slog.HandlerOptions{Level: slog.LevelWarn}))
	src, closer, err := source.Open(ctx, cfg.Source)
	if err != nil {
		return err
	}
	defer closer.Close()

	svc, err := dashboard.NewService(src, dashboard.Options{
		Profiles: profiles,
		Location: cfg.Location(),
	}, logger)
	if err != nil {
		return err
	}
	if _, err := svc.Load(ctx); err != nil {
		return err
	}

	name := opts.view
	if name == "" {
		name = cfg.DefaultView
	}
	params := view.DefaultParams(time.Time{})
	params.Client = opts.client
	params.Group = opts.group
	params.Member = opts.member
	params.WindowDays = opts.days
	params.IncludePrincipal = !opts.noPrincipal
	params.IncludeSubtask = !opts.noSubtask

	table, err := svc.Export(ctx, name, params)
	if err != nil {
		return err
	}
	if table.Empty() {
		o.Println(view.NoDataMessage)
		return nil
	}

	if err := os.MkdirAll(opts.out, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	path := filepath.Join(opts.out, table.Filename)
	if err := atomic.WriteFile(path, bytes.NewReader(table.CSV())); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	// atomic.WriteFile leaves new files at the temp file's 0600
	if err := os.Chmod(path, 0o644); err != nil {
		return fmt.Errorf("set export permissions: %w", err)
	}
	o.Printf("%s (%d rows)\n", path, len(table.Rows))
	return nil
}
