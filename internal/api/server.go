// internal/api/server.go
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apihandler "github.com/cryptotrack/cryptotracker/internal/api/handler/api"
	"github.com/cryptotrack/cryptotracker/internal/api/handler/web"
	"github.com/cryptotrack/cryptotracker/internal/api/middleware"
	"github.com/cryptotrack/cryptotracker/internal/insight"
	"github.com/cryptotrack/cryptotracker/internal/metrics"
	"github.com/cryptotrack/cryptotracker/internal/storage/archive"
	"github.com/cryptotrack/cryptotracker/internal/tracker"
)

// Server represents the HTTP server for CryptoTracker
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	mux        *http.ServeMux
	handler    http.Handler
}

// Config holds server configuration
type Config struct {
	Host           string
	Port           int
	APIKey         string
	MetricsEnabled bool
	MetricsPath    string
	ArchiveBackend string
}

// Dependencies holds the services the server routes to. Insight and
// Archive are optional; their endpoints degrade when absent.
type Dependencies struct {
	Tracker *tracker.Service
	Insight insight.Provider
	Archive archive.Storage
	Metrics *metrics.Registry
}

// NewServer creates a new HTTP server
func NewServer(cfg Config, deps Dependencies, logger *zap.Logger) (*Server, error) {
	if deps.Tracker == nil {
		return nil, fmt.Errorf("tracker service is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	mux := http.NewServeMux()

	s := &Server{
		logger: logger,
		mux:    mux,
	}

	if err := s.setupRoutes(cfg, deps); err != nil {
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	// Request ID first so every downstream log line can carry it
	handler := http.Handler(mux)
	if deps.Metrics != nil {
		handler = metrics.HTTPMiddleware(deps.Metrics)(handler)
	}
	handler = middleware.RequestID()(handler)
	s.handler = handler

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(cfg Config, deps Dependencies) error {
	// Web UI routes
	webHandler, err := web.NewHandler(deps.Tracker, s.logger)
	if err != nil {
		return fmt.Errorf("creating web handler: %w", err)
	}
	s.mux.HandleFunc("GET /{$}", webHandler.Dashboard)

	// API routes
	auth := middleware.APIKeyAuth(cfg.APIKey)
	api := apihandler.NewHandler(deps.Tracker, s.logger)
	insightHandler := apihandler.NewInsightHandler(deps.Tracker, deps.Insight, s.logger)
	archiveHandler := apihandler.NewArchiveHandler(deps.Tracker, deps.Archive, cfg.ArchiveBackend, deps.Metrics, s.logger)

	s.mux.Handle("GET /api/v1/coins", auth(http.HandlerFunc(api.Coins)))
	s.mux.Handle("GET /api/v1/coins/{id}/history", auth(http.HandlerFunc(api.History)))
	s.mux.Handle("GET /api/v1/coins/{id}/summary", auth(http.HandlerFunc(api.Summary)))
	s.mux.Handle("GET /api/v1/coins/{id}/insight", auth(http.HandlerFunc(insightHandler.Insight)))
	s.mux.Handle("POST /api/v1/coins/{id}/archive", auth(http.HandlerFunc(archiveHandler.Archive)))

	s.mux.HandleFunc("GET /api/health", s.handleHealth)

	if cfg.MetricsEnabled && deps.Metrics != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		s.mux.Handle("GET "+path, promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))
	}

	return nil
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
