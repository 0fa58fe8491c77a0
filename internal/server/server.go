// Package server exposes a loaded review dataset as a read-only JSON API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/KaramelBytes/reviewlens/internal/analysis"
	"github.com/KaramelBytes/reviewlens/internal/dataset"
)

// Config controls the HTTP surface.
type Config struct {
	Addr           string
	RequestTimeout time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
	Options        analysis.Options
}

// Server serves one immutable dataset. Every request derives its own
// product view, so handlers share nothing mutable.
type Server struct {
	mux     *chi.Mux
	cfg     Config
	ds      *dataset.Dataset
	metrics *Metrics
	log     zerolog.Logger
}

// New builds the router with middleware and routes mounted.
func New(ds *dataset.Dataset, cfg Config, l zerolog.Logger) *Server {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 15 * time.Second
	}
	s := &Server{
		mux:     chi.NewRouter(),
		cfg:     cfg,
		ds:      ds,
		metrics: NewMetrics(),
		log:     l,
	}
	s.mux.Use(chimw.RealIP)
	s.mux.Use(chimw.RequestID)
	s.mux.Use(chimw.Recoverer)
	s.mux.Use(MetricsMiddleware(s.metrics))
	s.mux.Use(Logger(l))
	s.mux.Use(RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, s.metrics))
	s.mux.Use(Timeout(cfg.RequestTimeout))
	s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.mux }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.cfg.Addr).Int("reviews", s.ds.Len()).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		s.log.Info().Msg("server stopped")
		return nil
	}
}
