package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/ecooyster/prediction-service/internal/domain"
	"github.com/ecooyster/prediction-service/internal/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recommender produces the fail-soft recommendation text for one prediction.
type Recommender interface {
	Recommendations(ctx context.Context, in domain.PredictionInput, estimate float64) string
}

// Server exposes the prediction API plus health, metrics, and the static front-end.
type Server struct {
	httpServer  *http.Server
	recommender Recommender
	metrics     *observability.Metrics
	logger      *slog.Logger
}

// NewServer creates the API server. staticDir may be empty to disable
// front-end file serving.
func NewServer(addr, staticDir string, recommender Recommender, metrics *observability.Metrics, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second, // the predict handler waits on the LLM provider
			IdleTimeout:  60 * time.Second,
		},
		recommender: recommender,
		metrics:     metrics,
		logger:      logger,
	}

	mux.Handle("POST /api/predict", withCORS(http.HandlerFunc(s.handlePredict)))
	mux.Handle("GET /api/health", withCORS(http.HandlerFunc(s.handleHealth)))
	mux.HandleFunc("OPTIONS /api/", handlePreflight)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
	if staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	}

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

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// predictRequest keeps each field raw so the handler can distinguish an absent
// field from one that fails numeric coercion.
type predictRequest struct {
	Salinity         json.RawMessage `json:"salinity"`
	FarmingTechnique json.RawMessage `json:"farming_technique"`
	Typhoon          json.RawMessage `json:"typhoon"`
	Flood            json.RawMessage `json:"flood"`
	Temperature      json.RawMessage `json:"temperature"`
	Storms           json.RawMessage `json:"storms"`
	SevereEvents     json.RawMessage `json:"severe_events"`
}

type predictResponse struct {
	Success             bool    `json:"success"`
	PredictedProduction float64 `json:"predicted_production"`
	Recommendations     string  `json:"recommendations"`
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() {
		s.metrics.PredictDuration.Observe(time.Since(start).Seconds())
	}()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.serverError(w, err)
		return
	}

	// An absent body and an empty object both count as "no data"; a body with
	// unknown fields only falls through to the missing-field check below.
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		if len(bytes.TrimSpace(body)) == 0 {
			s.badRequest(w, "No data provided")
			return
		}
		s.serverError(w, err)
		return
	}
	if len(fields) == 0 {
		s.badRequest(w, "No data provided")
		return
	}

	var req predictRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.serverError(w, err)
		return
	}

	if missing(req.Salinity) || missing(req.FarmingTechnique) || missing(req.Typhoon) || missing(req.Flood) {
		s.badRequest(w, "Missing required fields")
		return
	}

	// Fields present but non-numeric are a 500, not a 400: only absence is
	// treated as a client validation error.
	input, err := coerceInput(req)
	if err != nil {
		s.serverError(w, err)
		return
	}

	estimate := domain.EstimateProduction(input.Salinity, input.Technique, input.TyphoonCount, input.FloodCount)
	s.metrics.EstimatedTons.Observe(estimate)

	recommendations := s.recommender.Recommendations(r.Context(), input, estimate)

	s.metrics.PredictRequests.WithLabelValues("success").Inc()
	s.logger.Info("prediction served",
		"salinity", input.Salinity,
		"technique", input.Technique,
		"estimate", estimate,
	)
	writeJSON(w, http.StatusOK, predictResponse{
		Success:             true,
		PredictedProduction: estimate,
		Recommendations:     recommendations,
	})
}

func (s *Server) badRequest(w http.ResponseWriter, msg string) {
	s.metrics.PredictRequests.WithLabelValues("bad_request").Inc()
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}

func (s *Server) serverError(w http.ResponseWriter, err error) {
	s.metrics.PredictRequests.WithLabelValues("error").Inc()
	s.logger.Error("predict request failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

// missing reports whether a raw field was absent or explicit JSON null.
func missing(raw json.RawMessage) bool {
	return raw == nil || string(raw) == "null"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response write
}

// withCORS allows the static front-end to call the API from any origin.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		setCORSHeaders(w)
		next.ServeHTTP(w, r)
	})
}

func handlePreflight(w http.ResponseWriter, _ *http.Request) {
	setCORSHeaders(w)
	w.WriteHeader(http.StatusNoContent)
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}
