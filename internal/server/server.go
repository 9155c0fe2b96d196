// Package server exposes report generation over HTTP. Every request is
// independent; the only shared state is the read-only report builder.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/cleared-dev/fundreport/internal/importer"
	"github.com/cleared-dev/fundreport/internal/report"
)

// Config controls the HTTP server.
type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	// MaxUploadBytes bounds the multipart body of one request.
	MaxUploadBytes int64
}

const (
	defaultShutdownTimeout = 10 * time.Second
	defaultMaxUploadBytes  = 32 << 20
)

// WebAPI serves the report endpoints.
type WebAPI struct {
	router *chi.Mux
	logger *zerolog.Logger
	server *http.Server
	config Config
}

// NewWebAPI wires the routes.
func NewWebAPI(logger zerolog.Logger, config Config, builder *report.Builder, registry *importer.Registry) *WebAPI {
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = defaultShutdownTimeout
	}
	if config.MaxUploadBytes <= 0 {
		config.MaxUploadBytes = defaultMaxUploadBytes
	}
	if registry == nil {
		registry = importer.DefaultRegistry()
	}

	h := &handler{builder: builder, registry: registry, maxUploadBytes: config.MaxUploadBytes}

	router := chi.NewRouter()
	router.Use(requestLogger(&logger))
	router.Use(middleware.Recoverer)

	router.Get("/healthz", h.health)
	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/reports", h.createReport)
	})

	return &WebAPI{
		router: router,
		logger: &logger,
		config: config,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Handler returns the HTTP handler, for tests and embedding.
func (w *WebAPI) Handler() http.Handler {
	return w.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (w *WebAPI) Run(ctx context.Context) error {
	serverErrors := make(chan error, 1)
	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		w.logger.Info().Msg("shutdown initiated")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), w.config.ShutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(shutdownCtx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}
		return err
	}
}
