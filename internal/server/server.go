// Package server exposes the layout pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz
//	GET  /version
//	GET  /metrics
//	POST /v1/layout
//	POST /v1/render/{format}
//	POST /v1/batch
//
// Errors are returned as {"code": "...", "message": "...", "item": "..."},
// where item names the offending input item when there is one.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/squaremap/pkg/observability"
	"github.com/matzehuels/squaremap/pkg/pipeline"
)

const shutdownTimeout = 10 * time.Second

// Server serves the HTTP API.
type Server struct {
	settings Settings
	logger   *log.Logger
	runner   *pipeline.Runner
	router   chi.Router
	counters *observability.Counters
}

// Option configures a Server.
type Option func(*Server)

// WithCounters serves c on /metrics. The caller registers c as hooks.
func WithCounters(c *observability.Counters) Option {
	return func(s *Server) { s.counters = c }
}

// New builds a server. A nil logger discards output.
func New(settings Settings, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if settings.BatchLimit < 1 {
		settings.BatchLimit = 1
	}
	s := &Server{
		settings: settings,
		logger:   logger,
		runner:   pipeline.NewRunner(logger),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Get("/metrics", s.handleMetrics)

	r.Route("/v1", func(r chi.Router) {
		r.Use(s.limitBody)
		if s.settings.RequestTimeout > 0 {
			r.Use(middleware.Timeout(s.settings.RequestTimeout))
		}
		r.Post("/layout", s.handleLayout)
		r.Post("/render/{format}", s.handleRender)
		r.Post("/batch", s.handleBatch)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusNotFound, errorResponse{Code: "NOT_FOUND", Message: "no route for " + r.URL.Path})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusMethodNotAllowed, errorResponse{Code: "METHOD_NOT_ALLOWED", Message: r.Method + " not allowed"})
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.settings.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", s.settings.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
