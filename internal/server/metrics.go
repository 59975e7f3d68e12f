package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors of one server on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	Analyses         *prometheus.CounterVec
	AnalysisDuration *prometheus.HistogramVec
	Requests         *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clusters",
			Name:      "analyses_total",
			Help:      "Number of analyses by algorithm and outcome.",
		}, []string{"algorithm", "outcome"}),
		AnalysisDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "clusters",
			Name:      "analysis_duration_seconds",
			Help:      "Time spent partitioning a graph.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"algorithm"}),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clusters",
			Name:      "http_requests_total",
			Help:      "Number of HTTP requests by route and status.",
		}, []string{"route", "status"}),
	}
	m.registry.MustRegister(m.Analyses, m.AnalysisDuration, m.Requests)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) observe(algorithm, outcome string, elapsed time.Duration) {
	m.Analyses.WithLabelValues(algorithm, outcome).Inc()
	if outcome == outcomeOK {
		m.AnalysisDuration.WithLabelValues(algorithm).Observe(elapsed.Seconds())
	}
}

// countRequests counts requests by their chi route pattern.
func (m *Metrics) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		m.Requests.WithLabelValues(route, strconv.Itoa(ww.Status())).Inc()
	})
}
