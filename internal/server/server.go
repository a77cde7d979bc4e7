package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/phuslu/log"

	"StockInsight/internal/config"
	"StockInsight/internal/loader"
	"StockInsight/internal/recorder"
	"StockInsight/internal/render"
)

// Server manages the HTTP server and routes.
type Server struct {
	cfg      *config.Config
	dataset  *loader.Dataset
	renderer *render.Renderer
	recorder recorder.Recorder
	logger   *log.Logger
	engine   *gin.Engine
	server   *http.Server
}

// New creates the dashboard server over the loaded dataset.
func New(cfg *config.Config, ds *loader.Dataset, rec recorder.Recorder, logger *log.Logger) (*Server, error) {
	s := &Server{
		cfg:      cfg,
		dataset:  ds,
		renderer: render.NewRenderer(cfg.Dashboard.ChartWidth, cfg.Dashboard.ChartHeight),
		recorder: rec,
		logger:   logger,
	}

	engine, err := s.setupRoutes()
	if err != nil {
		return nil, err
	}
	s.engine = engine

	s.server = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s, nil
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info().
		Str("address", s.server.Addr).
		Str("url", fmt.Sprintf("http://%s", s.server.Addr)).
		Msg("HTTP server starting")

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info().Msg("HTTP server stopped")
	return nil
}

// Handler returns the HTTP handler for testing.
func (s *Server) Handler() http.Handler {
	return s.engine
}
