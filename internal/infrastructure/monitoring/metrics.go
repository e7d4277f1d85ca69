// Package monitoring provides Prometheus metrics collection for the
// planning and grocery pipelines.
package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Metrics handles Prometheus metrics collection
type Metrics struct {
	logger *zap.Logger

	// HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Business metrics
	plansCreatedTotal     *prometheus.CounterVec
	planVarietyScore      prometheus.Histogram
	groceryListsBuilt     *prometheus.CounterVec
	consolidationFallback prometheus.Counter
	enrichmentDuration    prometheus.Histogram
	streamEventsTotal     *prometheus.CounterVec

	// System metrics
	cacheOperations *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors.
func NewMetrics(logger *zap.Logger) *Metrics {
	return &Metrics{
		logger: logger,

		httpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		httpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status_code"},
		),

		plansCreatedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meal_plans_created_total",
				Help: "Total number of meal plans created, by outcome",
			},
			[]string{"outcome"},
		),
		planVarietyScore: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "meal_plan_variety_score",
				Help:    "Variety score (unique recipes / slots) of created plans",
				Buckets: prometheus.LinearBuckets(0, 0.1, 11),
			},
		),
		groceryListsBuilt: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "grocery_lists_built_total",
				Help: "Total number of grocery lists built from plans, by enrichment result",
			},
			[]string{"enriched"},
		),
		consolidationFallback: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "grocery_consolidation_fallback_total",
				Help: "Times enrichment failed and the deterministic merge was used",
			},
		),
		enrichmentDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "grocery_enrichment_duration_seconds",
				Help:    "Duration of enrichment service calls",
				Buckets: prometheus.DefBuckets,
			},
		),
		streamEventsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "plan_stream_events_total",
				Help: "Progress events emitted to streaming consumers, by type",
			},
			[]string{"type"},
		),

		cacheOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_operations_total",
				Help: "Cache operations by type and result",
			},
			[]string{"operation", "result"},
		),
	}
}

// RecordPlanCreated records one composed plan.
func (m *Metrics) RecordPlanCreated(outcome string, varietyScore float64) {
	m.plansCreatedTotal.WithLabelValues(outcome).Inc()
	m.planVarietyScore.Observe(varietyScore)
}

// RecordGroceryListBuilt records one built grocery list.
func (m *Metrics) RecordGroceryListBuilt(enriched bool) {
	m.groceryListsBuilt.WithLabelValues(strconv.FormatBool(enriched)).Inc()
}

// RecordConsolidationFallback records an enrichment failure that fell
// back to the deterministic merge.
func (m *Metrics) RecordConsolidationFallback() {
	m.consolidationFallback.Inc()
}

// RecordEnrichmentDuration records the latency of one enrichment call.
func (m *Metrics) RecordEnrichmentDuration(d time.Duration) {
	m.enrichmentDuration.Observe(d.Seconds())
}

// RecordStreamEvent records one emitted progress event.
func (m *Metrics) RecordStreamEvent(eventType string) {
	m.streamEventsTotal.WithLabelValues(eventType).Inc()
}

// RecordCacheOperation records one cache operation.
func (m *Metrics) RecordCacheOperation(operation, result string) {
	m.cacheOperations.WithLabelValues(operation, result).Inc()
}

// RecordHTTPRequest records one handled HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	code := strconv.Itoa(status)
	m.httpRequestsTotal.WithLabelValues(method, path, code).Inc()
	m.httpRequestDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())
}

// Handler returns the Prometheus scrape handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.Handler()
}
