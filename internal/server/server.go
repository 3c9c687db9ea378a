// Package server exposes the chat dispatcher over JSON HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spiffcs/refbot/internal/constants"
	"github.com/spiffcs/refbot/internal/log"
	"github.com/spiffcs/refbot/internal/service"
)

// Settings configures the HTTP listener.
type Settings struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server serves the dispatcher routes.
type Server struct {
	log        *slog.Logger
	httpServer *http.Server
}

// New creates a Server for svc.
func New(svc *service.Service, settings Settings) *Server {
	logger := log.Logger()

	return &Server{
		log: logger,
		httpServer: &http.Server{
			Addr:         settings.Addr,
			Handler:      NewRouter(svc, logger),
			ReadTimeout:  settings.ReadTimeout,
			WriteTimeout: settings.WriteTimeout,
		},
	}
}

// NewRouter builds the route tree for svc.
func NewRouter(svc *service.Service, logger *slog.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	h := newHandler(svc, logger)

	r.Get("/healthz", h.Health)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/messages", h.HandleMessage)
		r.Get("/channels/{channel}/{metric}", h.Metric)
		r.Delete("/channels/{channel}/{metric}", h.ForgetMetric)
		r.Route("/search", func(r chi.Router) {
			r.Get("/autocomplete", h.Autocomplete)
			r.Get("/{value}", h.Select)
		})
	})

	return r
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	const op = "server.Run"
	logger := s.log.With(slog.String("op", op))

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()
	return s.Stop(shutdownCtx)
}

// Stop shuts the server down, waiting for in-flight requests until ctx ends.
func (s *Server) Stop(ctx context.Context) error {
	const op = "server.Stop"
	s.log.With(slog.String("op", op)).Info("stopping HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// requestLogger logs one line per request with its id, status and latency.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				logger.Debug("request completed",
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Int("status", ww.Status()),
					slog.Int("bytes", ww.BytesWritten()),
					slog.Duration("duration", time.Since(start)),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
