// Package server exposes one immutable analyzer over a read-only HTTP API.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"crypto-cluster-insights/internal/domain"
	"crypto-cluster-insights/internal/observability"
	"crypto-cluster-insights/internal/profile"
)

// Config holds server configuration.
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultConfig returns default server configuration.
func DefaultConfig() Config {
	return Config{
		Addr:         ":8080",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// Server serves profiles, summaries, comparisons, prompts, reports and ROI projections.
type Server struct {
	analyzer  *profile.Analyzer
	scenarios []domain.ROIScenario
	datasetID string
	started   time.Time
	log       zerolog.Logger

	router *mux.Router
	server *http.Server
}

// New creates a server over analyzer. Routes are registered immediately.
func New(analyzer *profile.Analyzer, cfg Config) *Server {
	s := &Server{
		analyzer:  analyzer,
		scenarios: profile.DefaultROIScenarios,
		started:   time.Now(),
		log:       zerolog.Nop(),
		router:    mux.NewRouter(),
	}
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return s
}

// WithLogger sets the request logger.
func (s *Server) WithLogger(log zerolog.Logger) *Server {
	s.log = log
	return s
}

// WithScenarios replaces the ROI scenarios. An empty slice keeps the defaults.
func (s *Server) WithScenarios(scenarios []domain.ROIScenario) *Server {
	if len(scenarios) > 0 {
		s.scenarios = scenarios
	}
	return s
}

// WithDatasetID labels the served dataset in /status.
func (s *Server) WithDatasetID(id string) *Server {
	s.datasetID = id
	return s
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	s.router.Use(s.requestIDMiddleware)
	s.router.Use(s.requestLoggingMiddleware)

	s.router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	s.router.Handle("/metrics", observability.Handler()).Methods(http.MethodGet)
	s.router.HandleFunc("/status", s.handleStatus).Methods(http.MethodGet)

	s.router.HandleFunc("/clusters", s.handleClusters).Methods(http.MethodGet)
	s.router.HandleFunc("/clusters/{id}", s.handleCluster).Methods(http.MethodGet)
	s.router.HandleFunc("/clusters/{id}/prompt", s.handlePrompt).Methods(http.MethodGet)
	s.router.HandleFunc("/summary", s.handleSummary).Methods(http.MethodGet)
	s.router.HandleFunc("/compare", s.handleCompare).Methods(http.MethodGet)
	s.router.HandleFunc("/report", s.handleReport).Methods(http.MethodGet)
	s.router.HandleFunc("/report.html", s.handleReportHTML).Methods(http.MethodGet)
	s.router.HandleFunc("/roi", s.handleROI).Methods(http.MethodGet)

	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, "endpoint_not_found", "The requested endpoint does not exist")
	})
	s.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusMethodNotAllowed, "method_not_allowed", "Only GET is supported")
	})
}

// Start serves until Shutdown. Returns nil after a graceful shutdown.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("starting HTTP server")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
