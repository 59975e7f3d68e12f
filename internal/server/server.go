// Package server exposes the analysis engine over HTTP.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/haijima/clusters/internal/analysis"
	"github.com/haijima/clusters/internal/connectivity"
	"github.com/haijima/clusters/internal/graph"
	"github.com/lmittmann/tint"
)

const (
	maxBodyBytes = 16 << 20

	outcomeOK       = "ok"
	outcomeRejected = "rejected"
	outcomeFailed   = "failed"
)

type Handler struct {
	metrics *Metrics
	now     func() time.Time
}

func NewHandler(metrics *Metrics) *Handler {
	return &Handler{metrics: metrics, now: time.Now}
}

// NewRouter returns the full HTTP surface: analysis endpoints, health and metrics.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(h.metrics.countRequests)

	h.RegisterRoutes(r)
	r.Method(http.MethodGet, "/metrics", h.metrics.Handler())
	return r
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.Health)
	r.Post("/analyze", h.Analyze)
	r.Post("/compare", h.Compare)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": h.now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analysis.Request
	if !decode(w, r, &req) {
		return
	}
	algorithm := metricsLabel(req.Algorithm)

	res, err := analysis.Analyze(r.Context(), &req)
	if err != nil {
		h.metrics.observe(algorithm, outcome(err), 0)
		writeError(w, r, err)
		return
	}
	h.metrics.observe(algorithm, outcomeOK, time.Duration(res.Statistics.ExecutionTime))
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	var in graph.Input
	if !decode(w, r, &in) {
		return
	}

	res, err := analysis.Compare(r.Context(), &in)
	if err != nil {
		for _, name := range connectivity.Names() {
			h.metrics.observe(name, outcome(err), 0)
		}
		writeError(w, r, err)
		return
	}
	for name, timing := range res {
		h.metrics.observe(name, outcomeOK, timing.Elapsed)
	}
	writeJSON(w, http.StatusOK, res)
}

// metricsLabel maps a requested algorithm to a bounded label set.
func metricsLabel(algorithm string) string {
	if algorithm == "" {
		return connectivity.BFS
	}
	if !slices.Contains(connectivity.Names(), algorithm) {
		return "unknown"
	}
	return algorithm
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		slog.DebugContext(r.Context(), "invalid request body", tint.Err(err))
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body: " + err.Error()})
		return false
	}
	return true
}

func outcome(err error) string {
	if graph.IsInvalidInput(err) {
		return outcomeRejected
	}
	return outcomeFailed
}

// writeError reports client errors with 400 and everything else with 500.
// Neither carries a partial result.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if graph.IsInvalidInput(err) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	slog.ErrorContext(r.Context(), "analysis failed", "request_id", middleware.GetReqID(r.Context()), tint.Err(err))
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error", "message": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to write response", tint.Err(err))
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		slog.InfoContext(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"elapsed", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// ListenAndServe serves h on addr until ctx is done, then shuts down
// gracefully.
func ListenAndServe(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrapf(err, "listen on %s", addr)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		slog.Info("shutting down")
		return errors.Wrap(srv.Shutdown(shutdownCtx), "shutdown")
	}
}
