package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// ObservationSource provides the latest observation and the thresholds in force
type ObservationSource interface {
	Latest() (Observation, bool)
	Thresholds() Thresholds
}

// observationView adds the presentation lookups to an observation
type observationView struct {
	Observation
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

func newObservationView(obs Observation) observationView {
	return observationView{
		Observation: obs,
		Color:       categoryHexColors[obs.Category],
		Icon:        conditionIcons[obs.Condition],
	}
}

// Server exposes the latest observation, an ad-hoc decoder, metrics and a
// websocket stream over HTTP
type Server struct {
	httpServer *http.Server
	source     ObservationSource
	logger     *zap.Logger
}

// NewServer creates an HTTP server with its routes
func NewServer(addr string, source ObservationSource, hub *Hub, logger *zap.Logger) *Server {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	s := &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		source: source,
		logger: logger.Named("http"),
	}

	r.Get("/healthz", s.handleHealth)
	r.Get("/api/observation", s.handleObservation)
	r.Get("/api/decode", s.handleDecode)
	r.Handle("/metrics", promhttp.Handler())
	if hub != nil {
		r.Handle("/ws", hub)
	}

	return s
}

// Start begins listening. Returns nil after a graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("HTTP server starting", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the router, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleObservation(w http.ResponseWriter, _ *http.Request) {
	obs, ok := s.source.Latest()
	if !ok {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no observation yet"})
		return
	}
	writeJSON(w, http.StatusOK, newObservationView(obs))
}

func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	obs, err := Observe(r.URL.Query().Get("raw"), s.source.Thresholds())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, newObservationView(obs))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
