// Package server implements the treedraw HTTP API.
//
// The API exposes the drawing pipeline over HTTP so trees can be rendered
// without a local installation, and a drawing store so named drawings can
// be re-rendered later with different settings.
//
// # Endpoints
//
//	POST   /api/v1/render               render trees from request options
//	POST   /api/v1/layout               compute geometry only (JSON)
//	GET    /api/v1/backends             list available output formats
//	POST   /api/v1/drawings             save a named drawing
//	GET    /api/v1/drawings             list saved drawings
//	GET    /api/v1/drawings/{id}        fetch one drawing
//	DELETE /api/v1/drawings/{id}        delete a drawing
//	GET    /api/v1/drawings/{id}/render render a saved drawing
//	GET    /healthz                     liveness probe
//
// Render endpoints accept ?preview=svg to rasterize a DOT export through
// the embedded Graphviz engine; /drawings/{id}/render additionally accepts
// format, scale and refresh overrides.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/yzhernand/treedraw/pkg/observability"
	"github.com/yzhernand/treedraw/pkg/pipeline"
	"github.com/yzhernand/treedraw/pkg/store"
)

const (
	readTimeout     = 30 * time.Second
	writeTimeout    = 60 * time.Second
	shutdownTimeout = 10 * time.Second

	// maxBodyBytes bounds request bodies; tree documents are small.
	maxBodyBytes = 8 << 20
)

// Server serves the treedraw HTTP API.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
	http   *http.Server
}

// New creates a server listening on addr. The runner executes pipeline
// requests and st persists saved drawings; neither may be nil.
func New(addr string, runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner: runner,
		store:  st,
		logger: logger,
	}
	s.http = &http.Server{
		Addr:         addr,
		Handler:      s.routes(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}
	return s
}

// routes builds the chi router.
func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/render", s.handleRender)
		r.Post("/layout", s.handleLayout)
		r.Get("/backends", s.handleBackends)

		r.Route("/drawings", func(r chi.Router) {
			r.Post("/", s.handleSaveDrawing)
			r.Get("/", s.handleListDrawings)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetDrawing)
				r.Delete("/", s.handleDeleteDrawing)
				r.Get("/render", s.handleRenderDrawing)
			})
		})
	})

	return r
}

// observe is a middleware reporting requests to the logger and the
// observability hooks.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.Server().OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		elapsed := time.Since(start)
		observability.Server().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), elapsed)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", elapsed.Round(time.Millisecond))
	})
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.http.Addr)
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}

// Handler exposes the router, primarily for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
