// Package http exposes the snow report service over HTTP: health and
// readiness probes, Prometheus metrics, and the read-only JSON API the
// dashboard consumes.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/snow-report-service/internal/domain"
	"github.com/couchcryptid/snow-report-service/internal/refresh"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// SnapshotProvider hands out the current snapshot, rebuilding it first when
// the cached one has expired.
type SnapshotProvider interface {
	ReadinessChecker
	Current(ctx context.Context) (*refresh.Snapshot, error)
}

// Server exposes health, readiness, metrics, and snow report API endpoints.
type Server struct {
	httpServer *http.Server
	snapshots  SnapshotProvider
	logger     *slog.Logger
}

// NewServer creates an HTTP server with probe, metrics, and /api/v1 routes.
func NewServer(addr string, snapshots SnapshotProvider, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		snapshots: snapshots,
		logger:    logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(snapshots))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /api/v1/conditions", s.handleConditions)
	mux.HandleFunc("GET /api/v1/trend", s.handleTrend)
	mux.HandleFunc("GET /api/v1/alert", s.handleAlert)
	mux.HandleFunc("GET /api/v1/resorts", s.handleResorts)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// conditionsResponse wraps the conditions table with the snapshot metadata
// the dashboard shows alongside it.
type conditionsResponse struct {
	Date       string                 `json:"date"`
	BuiltAt    time.Time              `json:"built_at"`
	Degraded   bool                   `json:"degraded"`
	Notices    []string               `json:"notices,omitempty"`
	Conditions []domain.ConditionsRow `json:"conditions"`
}

type trendResponse struct {
	Date    string                  `json:"date"`
	BuiltAt time.Time               `json:"built_at"`
	Points  []domain.DailySnowPoint `json:"points"`
}

type resortsResponse struct {
	Resorts []domain.ResortLocation `json:"resorts"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func (s *Server) handleConditions(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.currentSnapshot(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, conditionsResponse{
		Date:       snap.Date,
		BuiltAt:    snap.BuiltAt,
		Degraded:   snap.Degraded,
		Notices:    snap.Notices,
		Conditions: snap.Conditions,
	})
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.currentSnapshot(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, trendResponse{
		Date:    snap.Date,
		BuiltAt: snap.BuiltAt,
		Points:  snap.DailySnow,
	})
}

func (s *Server) handleAlert(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.currentSnapshot(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, snap.PowderAlert)
}

func (s *Server) handleResorts(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, resortsResponse{Resorts: domain.Locations()})
}

// currentSnapshot fetches the snapshot for a handler, answering 503 itself
// when the fetch fails. Snapshots degrade to defaults rather than error, so
// a failure here means the request context was cancelled mid-build.
func (s *Server) currentSnapshot(w http.ResponseWriter, r *http.Request) (*refresh.Snapshot, bool) {
	snap, err := s.snapshots.Current(r.Context())
	if err != nil {
		s.logger.Warn("snapshot fetch failed", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": "snapshot unavailable",
		})
		return nil, false
	}
	return snap, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort JSON response
}
