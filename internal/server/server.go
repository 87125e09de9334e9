package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/dqscore/dqscore/internal/config"
	"github.com/dqscore/dqscore/internal/scoring"
)

// Server exposes the scoring engine over HTTP.
type Server struct {
	cfg      config.Server
	engine   *scoring.Engine
	weights  scoring.Weights
	router   *mux.Router
	registry *prometheus.Registry
	metrics  *httpMetrics
}

// New builds a server around the given engine. weights is the default
// weight map applied when a request carries none; nil means stock weights.
func New(cfg config.Server, engine *scoring.Engine, weights scoring.Weights) *Server {
	registry := prometheus.NewRegistry()
	s := &Server{
		cfg:      cfg,
		engine:   engine,
		weights:  weights,
		router:   mux.NewRouter(),
		registry: registry,
		metrics:  newHTTPMetrics(registry),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.router.PathPrefix("/api/v1").Subrouter()
	api.Use(s.loggingMiddleware, s.metricsMiddleware, s.bodyLimitMiddleware)

	api.HandleFunc("/scores", s.handleScores).Methods(http.MethodPost)
	api.HandleFunc("/dqs", s.handleDQS).Methods(http.MethodPost)
	api.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)

	s.router.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
}

// Handler returns the root handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled or SIGINT/SIGTERM arrives, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  time.Duration(s.cfg.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(s.cfg.WriteTimeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(s.cfg.ShutdownTimeoutSec)*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
