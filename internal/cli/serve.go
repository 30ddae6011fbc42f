package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/classlink/pkg/buildinfo"
	"github.com/matzehuels/classlink/pkg/errors"
	"github.com/matzehuels/classlink/pkg/observability"
	"github.com/matzehuels/classlink/pkg/pipeline"
)

const (
	maxBodyBytes    = 10 << 20
	requestTimeout  = 60 * time.Second
	shutdownTimeout = 10 * time.Second
)

var contentTypes = map[string]string{
	pipeline.FormatSVG: "image/svg+xml",
	pipeline.FormatPNG: "image/png",
	pipeline.FormatPDF: "application/pdf",
	pipeline.FormatDOT: "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatXMI: "application/xml",
}

// serveCommand creates the serve command, an HTTP front end to the pipeline.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the render and export pipeline over HTTP",
		Long: `Start an HTTP server. Request bodies are diagram JSON documents.

  POST /render/{format}   svg, png, pdf or dot
  POST /export            XMI 1.1 document
  GET  /healthz

Render options are taken from the query string (renderer, padding, scale,
stroke, fill, no_labels, pinned, refresh); export accepts model and refresh.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				c.Config.Server.Addr = addr
			}
			return c.runServe(cmd.Context(), noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, noCache bool) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	srv := &http.Server{
		Addr:              c.Config.Server.Addr,
		Handler:           newServer(runner, c.Config.pipelineOptions(), logger).routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr, "version", buildinfo.Version)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("listen %s: %w", srv.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// server holds the HTTP handlers.
type server struct {
	runner   *pipeline.Runner
	defaults pipeline.Options
	logger   *log.Logger
}

func newServer(runner *pipeline.Runner, defaults pipeline.Options, logger *log.Logger) *server {
	return &server{runner: runner, defaults: defaults, logger: logger}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Post("/render/{format}", s.handleRender)
	r.Post("/export", s.handleExport)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, errors.New(errors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path))
	})
	return r
}

// observe reports each request to the server hooks and logs the response.
func (s *server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		observability.Server().OnRequest(r.Context(), r.Method, r.URL.Path)

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		dur := time.Since(start)
		observability.Server().OnResponse(r.Context(), r.Method, route, status, dur)
		s.logger.Info("request", "method", r.Method, "route", route, "status", status,
			"duration", dur.Round(time.Microsecond), "id", middleware.GetReqID(r.Context()))
	})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if format == pipeline.FormatXMI {
		writeError(w, errors.New(errors.ErrCodeInvalidFormat, "use POST /export for xmi"))
		return
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, err)
		return
	}

	opts, err := s.queryOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}
	opts.Formats = []string{format}
	s.run(w, r, format, opts)
}

func (s *server) handleExport(w http.ResponseWriter, r *http.Request) {
	opts := s.defaults
	opts.Formats = []string{pipeline.FormatXMI}
	q := r.URL.Query()
	if model := q.Get("model"); model != "" {
		opts.ModelName = model
	}
	if err := queryBool(q, "refresh", &opts.Refresh); err != nil {
		writeError(w, err)
		return
	}
	s.run(w, r, pipeline.FormatXMI, opts)
}

func (s *server) run(w http.ResponseWriter, r *http.Request, format string, opts pipeline.Options) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
		return
	}
	opts.Logger = s.logger

	result, err := s.runner.Execute(r.Context(), body, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	h := w.Header()
	h.Set("Content-Type", contentTypes[format])
	h.Set("X-Classlink-Cache", strconv.FormatBool(result.CacheHit))
	if n := len(result.Dangling); n > 0 {
		h.Set("X-Classlink-Dangling", strconv.Itoa(n))
	}
	if n := len(result.Skipped); n > 0 {
		h.Set("X-Classlink-Skipped", strconv.Itoa(n))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// queryOptions overlays query parameters on the server defaults.
func (s *server) queryOptions(r *http.Request) (pipeline.Options, error) {
	opts := s.defaults
	q := r.URL.Query()

	if v := q.Get("renderer"); v != "" {
		opts.Renderer = v
	}
	if v := q.Get("stroke"); v != "" {
		opts.Stroke = v
	}
	if v := q.Get("fill"); v != "" {
		opts.NodeFill = v
	}

	floats := []struct {
		name string
		dst  *float64
	}{
		{"padding", &opts.Padding},
		{"scale", &opts.Scale},
	}
	for _, f := range floats {
		v := q.Get(f.name)
		if v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "%s: %q is not a number", f.name, v)
		}
		*f.dst = n
	}

	for name, dst := range map[string]*bool{
		"no_labels": &opts.NoLabels,
		"pinned":    &opts.Pinned,
		"refresh":   &opts.Refresh,
	} {
		if err := queryBool(q, name, dst); err != nil {
			return opts, err
		}
	}
	return opts, nil
}

// queryBool sets *dst from parameter name when present.
func queryBool(q url.Values, name string, dst *bool) error {
	v := q.Get(name)
	if v == "" {
		return nil
	}
	val, err := strconv.ParseBool(v)
	if err != nil {
		return errors.New(errors.ErrCodeInvalidInput, "%s: %q is not a boolean", name, v)
	}
	*dst = val
	return nil
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, errors.HTTPStatus(err), errorResponse{
		Error:   string(code),
		Message: errors.UserMessage(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
