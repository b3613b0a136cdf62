package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/somoscreators/taskboard/internal/config"
	"github.com/somoscreators/taskboard/internal/domain/activity"
	"github.com/somoscreators/taskboard/internal/domain/dashboard"
	"github.com/somoscreators/taskboard/internal/mcp"
	"github.com/somoscreators/taskboard/internal/source"
	"github.com/somoscreators/taskboard/internal/sqlite"
	"github.com/somoscreators/taskboard/internal/transport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
	logWriter := io.Writer(os.Stdout)
	if cfg.Transport.Mode == config.TransportStdio {
		logWriter = os.Stderr
	}
	if cfg.Log.Path != "" {
		fileWriter, file, err := newLogFileWriter(cfg.Log.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			defer file.Close()
			logWriter = fileWriter
		}
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	profiles, err := cfg.Profiles()
	if err != nil {
		logger.Error("invalid view configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	src, closer, err := source.Open(ctx, cfg.Source)
	if err != nil {
		logger.Error("failed to open data source", "kind", cfg.Source.Kind, "error", err)
		os.Exit(1)
	}
	defer closer.Close()

	var activitySvc *activity.Service
	opts := dashboard.Options{
		Profiles: profiles,
		Location: cfg.Location(),
	}
	if cfg.Activity.DB != "" {
		db, err := source.OpenDB(cfg.Activity.DB)
		if err != nil {
			logger.Error("failed to open activity database", "path", cfg.Activity.DB, "error", err)
			os.Exit(1)
		}
		defer db.Close()
		activitySvc = activity.NewService(sqlite.NewActivityRepository(db), logger)
		opts.Activity = activitySvc
	}

	svc, err := dashboard.NewService(src, opts, logger)
	if err != nil {
		logger.Error("failed to create dashboard service", "error", err)
		os.Exit(1)
	}

	// A failed first load leaves the service empty until reload succeeds.
	if _, err := svc.Load(ctx); err != nil {
		logger.Warn("initial load failed", "kind", cfg.Source.Kind, "error", err)
	}

	mcpServer := mcp.NewServer(mcp.Config{
		Service:     svc,
		DefaultView: cfg.DefaultView,
		Logger:      logger,
	})

	switch cfg.Transport.Mode {
	case config.TransportStdio:
		runStdioMode(logger, mcpServer)
	case config.TransportMCPHTTP:
		runHTTPMode(logger, mcpOnlyRouter(mcp.NewHTTPHandler(mcpServer, logger)), cfg.Addr())
	default:
		routerOpts := transport.Options{
			MCP:    mcp.NewHTTPHandler(mcpServer, logger),
			Logger: logger,
		}
		if activitySvc != nil {
			routerOpts.Activity = activitySvc
		}
		router := transport.NewServer(svc, mcp.NewHandler(svc, cfg.DefaultView), routerOpts)
		runHTTPMode(logger, router, cfg.Addr())
	}
}

func runStdioMode(logger *slog.Logger, mcpServer *sdkmcp.Server) {
	logger.Info("starting stdio transport")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-stop
		logger.Info("shutting down")
		cancel()
	}()

	// Run blocks until stdin closes or context is canceled
	if err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil {
		logger.Error("stdio server error", "error", err)
		os.Exit(1)
	}
}

func mcpOnlyRouter(mcpHandler http.Handler) http.Handler {
	router := http.NewServeMux()
	router.Handle("/mcp", mcpHandler)
	router.Handle("/mcp/", mcpHandler)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return router
}

func runHTTPMode(logger *slog.Logger, handler http.Handler, addr string) {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
