// Package server exposes the layout pipeline over HTTP.
//
// Routes:
//
//	GET  /health                               liveness probe
//	POST /api/layouts                          lay out a JSON Canvas body
//	GET  /api/layouts/{id}                     serialized diagram
//	GET  /api/layouts/{id}/render/{format}     rendered artifact
//
// Layouts are stored in the runner's cache under a random UUID, so a
// shared backend (redis, mongo) lets several instances serve the same ids.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/koljapluemer/canvasgrid/pkg/pipeline"
)

// maxBodySize limits uploaded canvases.
const maxBodySize = 10 << 20

// shutdownTimeout bounds graceful shutdown after the context ends.
const shutdownTimeout = 10 * time.Second

// Config configures a Server.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// Defaults seeds every request's pipeline options. Query parameters
	// override seed, max_attempts and purge.
	Defaults pipeline.Options

	// Logger receives request logs. Nil uses the default logger.
	Logger *log.Logger
}

// Server holds the chi router and the pipeline runner.
type Server struct {
	router   chi.Router
	runner   *pipeline.Runner
	defaults pipeline.Options
	addr     string
	logger   *log.Logger
}

// New creates a Server with all routes configured.
func New(runner *pipeline.Runner, cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner:   runner,
		defaults: cfg.Defaults,
		addr:     cfg.Addr,
		logger:   logger.WithPrefix("http"),
	}
	s.router = s.buildRouter()
	return s
}

// ServeHTTP delegates to the chi router, satisfying http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       2 * time.Minute,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", s.addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)

	r.Route("/api/layouts", func(r chi.Router) {
		r.Post("/", s.handleCreateLayout)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetLayout)
			r.Get("/render/{format}", s.handleRenderLayout)
		})
	})

	return r
}
