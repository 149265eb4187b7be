// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Evaluation metrics
	EvaluationsTotal *prometheus.CounterVec
	ChecksTotal      *prometheus.CounterVec
	StructuralErrors prometheus.Counter
	FallbackMargin   prometheus.Counter

	// Batch metrics
	BatchDuration prometheus.Histogram
	LastBatchSize prometheus.Gauge

	// Feed metrics
	FeedEnvelopesReceived prometheus.Counter
	FeedMessagesSkipped   prometheus.Counter
	FeedReconnects        prometheus.Counter
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "simm_challenger"
	}

	return &Metrics{
		EvaluationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "challenge",
			Name:      "evaluations_total",
			Help:      "Total number of trade evaluations by tier and overall status",
		}, []string{"tier", "status"}),
		ChecksTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "challenge",
			Name:      "checks_total",
			Help:      "Total number of individual checks by status",
		}, []string{"status"}),
		StructuralErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "challenge",
			Name:      "structural_errors_total",
			Help:      "Total number of trades rejected for schema or numeric-domain errors",
		}),
		FallbackMargin: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "challenge",
			Name:      "fallback_margin_total",
			Help:      "Cumulative schedule fallback margin assigned by circuit breakers",
		}),

		BatchDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "runner",
			Name:      "batch_duration_seconds",
			Help:      "Portfolio batch evaluation duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
		}),
		LastBatchSize: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "runner",
			Name:      "last_batch_size",
			Help:      "Number of envelopes in the most recent batch",
		}),

		FeedEnvelopesReceived: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "envelopes_received_total",
			Help:      "Total number of well-formed envelopes received from the primary result stream",
		}),
		FeedMessagesSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "messages_skipped_total",
			Help:      "Total number of malformed or incomplete feed messages skipped",
		}),
		FeedReconnects: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "reconnects_total",
			Help:      "Total number of feed reconnect attempts",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordEvaluation records one completed trade evaluation.
func RecordEvaluation(tier, status string) {
	DefaultMetrics.EvaluationsTotal.WithLabelValues(tier, status).Inc()
}

// RecordCheck records one completed check.
func RecordCheck(status string) {
	DefaultMetrics.ChecksTotal.WithLabelValues(status).Inc()
}

// RecordStructuralError records a trade rejected before evaluation.
func RecordStructuralError() {
	DefaultMetrics.StructuralErrors.Inc()
}

// RecordFallbackMargin accumulates schedule fallback margin.
func RecordFallbackMargin(amount float64) {
	DefaultMetrics.FallbackMargin.Add(amount)
}

// RecordBatch records one batch run.
func RecordBatch(size int, durationSeconds float64) {
	DefaultMetrics.LastBatchSize.Set(float64(size))
	DefaultMetrics.BatchDuration.Observe(durationSeconds)
}

// RecordFeedEnvelope increments the received envelope counter.
func RecordFeedEnvelope() {
	DefaultMetrics.FeedEnvelopesReceived.Inc()
}

// RecordFeedSkip increments the skipped message counter.
func RecordFeedSkip() {
	DefaultMetrics.FeedMessagesSkipped.Inc()
}

// RecordFeedReconnect increments the reconnect counter.
func RecordFeedReconnect() {
	DefaultMetrics.FeedReconnects.Inc()
}
