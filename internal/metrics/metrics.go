// Package metrics provides Prometheus instrumentation for the analytics engine.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// TradesIngested counts trade records accepted, partitioned by risk level.
	TradesIngested = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tradelens_trades_ingested_total",
		Help: "Total number of trade records ingested",
	}, []string{"risk_level"})

	// ReportsGenerated counts optimization reports served.
	ReportsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tradelens_reports_generated_total",
		Help: "Total number of optimization reports generated",
	})

	// ReportTradesAnalyzed observes the window size per report.
	ReportTradesAnalyzed = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tradelens_report_trades_analyzed",
		Help:    "Number of trades analyzed per optimization report",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
	})

	// SuggestionsEmitted counts advisory lines emitted, partitioned by rule.
	SuggestionsEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tradelens_suggestions_emitted_total",
		Help: "Advisory suggestions emitted in reports",
	}, []string{"rule"})

	// WebSocketClients tracks connected WebSocket clients.
	WebSocketClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tradelens_websocket_clients",
		Help: "Number of connected WebSocket clients",
	})

	// HTTPRequestsTotal counts HTTP requests by method, path, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tradelens_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration tracks request duration by method and path.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tradelens_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
	}, []string{"method", "path"})
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware returns an HTTP middleware that records request metrics.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w, status: 200}
		next.ServeHTTP(wrapped, r)
		duration := time.Since(start).Seconds()

		// Use the route pattern for the path label: raw paths carry user
		// ids and would mint one series per user.
		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}
		HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.status)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
