package transport

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/somoscreators/taskboard/internal/domain/activity"
	"github.com/somoscreators/taskboard/internal/domain/dashboard"
	"github.com/somoscreators/taskboard/internal/domain/project"
	"github.com/somoscreators/taskboard/internal/domain/task"
	"github.com/somoscreators/taskboard/internal/view"
)

// Service defines the dashboard operations served over HTTP.
type Service interface {
	Load(ctx context.Context) (dashboard.Status, error)
	Status(ctx context.Context) dashboard.Status
	Query(ctx context.Context, viewName string, params view.Params) (*dashboard.Result, error)
	Tasks(ctx context.Context, viewName string, params view.Params) ([]task.Task, error)
	Projects(ctx context.Context, viewName string, params view.Params) ([]project.Row, error)
	Export(ctx context.Context, viewName string, params view.Params) (view.Table, error)
	Row(ctx context.Context, viewName string, id int) (view.Row, error)
	Options(ctx context.Context, viewName, group string) (view.Options, error)
	Group(ctx context.Context, viewName, number string) (task.Group, error)
}

// Dispatcher handles JSON-RPC method dispatch.
type Dispatcher interface {
	Handle(ctx context.Context, method string, params json.RawMessage) (any, error)
}

// ActivityLister lists recorded dashboard events.
type ActivityLister interface {
	Recent(ctx context.Context, opts activity.ListOptions) ([]activity.Entry, error)
}

// Options configures the router.
type Options struct {
	// MCP, when set, is mounted at /mcp.
	MCP http.Handler
	// Activity, when set, serves /api/activity.
	Activity ActivityLister
	Logger   *slog.Logger
}

// Server wires HTTP handlers.
type Server struct {
	svc        Service
	dispatcher Dispatcher
	activity   ActivityLister
	logger     *slog.Logger
}

// NewServer creates an HTTP server router with middleware.
func NewServer(svc Service, dispatcher Dispatcher, opts Options) *chi.Mux {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	srv := &Server{svc: svc, dispatcher: dispatcher, activity: opts.Activity, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", srv.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/status", srv.handleStatus)
		r.Post("/reload", srv.handleReload)
		if opts.Activity != nil {
			r.Get("/activity", srv.handleActivity)
		}
		r.Route("/views/{view}", func(r chi.Router) {
			r.Get("/options", srv.handleOptions)
			r.Get("/tasks", srv.handleTasks)
			r.Get("/projects", srv.handleProjects)
			r.Get("/rows", srv.handleRows)
			r.Get("/rows/{id}", srv.handleRow)
			r.Get("/groups/{taskNumber}", srv.handleGroup)
			r.Get("/export.csv", srv.handleExport)
		})
	})

	if dispatcher != nil {
		r.Post("/rpc", srv.handleRPC)
	}
	if opts.MCP != nil {
		r.Handle("/mcp", opts.MCP)
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Status(r.Context()))
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	status, err := s.svc.Load(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := s.svc.Options(r.Context(), chi.URLParam(r, "view"), r.URL.Query().Get("group"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, opts)
}

func (s *Server) handleTasks(w http.ResponseWriter, r *http.Request) {
	params, err := parseParams(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	name := chi.URLParam(r, "view")
	tasks, err := s.svc.Tasks(r.Context(), name, params)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"view": name, "count": len(tasks), "tasks": tasks})
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	params, err := parseParams(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	name := chi.URLParam(r, "view")
	rows, err := s.svc.Projects(r.Context(), name, params)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"view": name, "count": len(rows), "projects": rows})
}

func (s *Server) handleRows(w http.ResponseWriter, r *http.Request) {
	params, err := parseParams(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	result, err := s.svc.Query(r.Context(), chi.URLParam(r, "view"), params)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result.Projection)
}

func (s *Server) handleRow(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, invalidQuery("id", chi.URLParam(r, "id")))
		return
	}
	row, err := s.svc.Row(r.Context(), chi.URLParam(r, "view"), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (s *Server) handleGroup(w http.ResponseWriter, r *http.Request) {
	group, err := s.svc.Group(r.Context(), chi.URLParam(r, "view"), chi.URLParam(r, "taskNumber"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	params, err := parseParams(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	table, err := s.svc.Export(r.Context(), chi.URLParam(r, "view"), params)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if table.Empty() {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename="+table.Filename)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(table.CSV())
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := activity.ListOptions{View: q.Get("view")}
	if v := q.Get("type"); v != "" {
		typ := activity.Type(v)
		if !typ.Valid() {
			s.writeError(w, r, invalidQuery("type", v))
			return
		}
		opts.Type = &typ
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit <= 0 {
			s.writeError(w, r, invalidQuery("limit", v))
			return
		}
		opts.Limit = limit
	}
	entries, err := s.activity.Recent(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"count": len(entries), "activity": entries})
}

// codedError is implemented by dispatcher errors that carry an API code.
type codedError interface {
	error
	CodeValue() string
	MessageValue() string
}

func (s *Server) handleRPC(w http.ResponseWriter, r *http.Request) {
	req, err := ParseRequest(r.Body)
	if err != nil {
		code := CodeInvalidRequest
		if errors.Is(err, ErrRPCParse) {
			code = CodeParseError
		}
		WriteError(w, req.ID, code, err.Error(), nil)
		return
	}

	result, err := s.dispatcher.Handle(r.Context(), req.Method, req.Params)
	if err != nil {
		var coded codedError
		if !errors.As(err, &coded) {
			s.logger.Error("rpc call failed", "method", req.Method, "error", err)
			WriteError(w, req.ID, CodeInternalError, err.Error(), nil)
			return
		}
		WriteError(w, req.ID, rpcCode(coded.CodeValue()), coded.MessageValue(), coded)
		return
	}

	WriteResult(w, req.ID, result)
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				logger.Info("http request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration", time.Since(start),
					"request_id", middleware.GetReqID(r.Context()),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
