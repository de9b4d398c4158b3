// Package metrics provides Prometheus metrics for the gigmatch service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recommendation outcomes used as label values.
const (
	OutcomeOK      = "ok"
	OutcomeEmpty   = "empty"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

// Default buckets: latencies in milliseconds, results as counts.
var (
	defaultLatencyBuckets = []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 1000}
	defaultResultBuckets  = []float64{0, 1, 2, 5, 10, 20, 50, 100}
)

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace      string
	subsystem      string
	latencyBuckets []float64
	resultBuckets  []float64
	constLabels    prometheus.Labels
	registry       prometheus.Registerer

	// Recommendation metrics
	recommendations       *prometheus.CounterVec
	recommendationLatency *prometheus.HistogramVec
	recommendationResults *prometheus.HistogramVec
	catalogRecords        *prometheus.GaugeVec
	catalogVocabulary     *prometheus.GaugeVec

	// Feedback metrics
	feedbackEvents     prometheus.Counter
	feedbackDuplicates prometheus.Counter
	feedbackRows       prometheus.Gauge
	savedRecords       prometheus.Gauge

	// Queue metrics
	queueSize              prometheus.Gauge
	queueCapacity          prometheus.Gauge
	queueUtilization       prometheus.Gauge
	queueEnqueued          prometheus.Counter
	queueDequeued          prometheus.Counter
	queueEnqueueErrors     prometheus.Counter
	queueProcessingLatency prometheus.Histogram

	// Worker metrics
	workerCount             prometheus.Gauge
	workerActiveCount       prometheus.Gauge
	workerIdleCount         prometheus.Gauge
	workerProcessingLatency prometheus.Histogram
	workerErrors            prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error metrics
	errorsByComponent *prometheus.CounterVec
	errorsByEndpoint  *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:      "gigmatch",
		subsystem:      "recommender",
		latencyBuckets: defaultLatencyBuckets,
		resultBuckets:  defaultResultBuckets,
		registry:       prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) histogram(name, help string) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
		Buckets: m.latencyBuckets,
	})
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.recommendations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "recommendations_total",
		Help:        "Recommendation requests by catalog and outcome",
		ConstLabels: m.constLabels,
	}, []string{"catalog", "outcome"})

	m.recommendationLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "recommendation_latency_milliseconds",
		Help:        "Time to filter, score and sort a catalog",
		ConstLabels: m.constLabels,
		Buckets:     m.latencyBuckets,
	}, []string{"catalog"})

	m.recommendationResults = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "recommendation_results",
		Help:        "Number of records returned per request",
		ConstLabels: m.constLabels,
		Buckets:     m.resultBuckets,
	}, []string{"catalog"})

	m.catalogRecords = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "catalog_records",
		Help:        "Records loaded per catalog",
		ConstLabels: m.constLabels,
	}, []string{"catalog"})

	m.catalogVocabulary = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "catalog_vocabulary_terms",
		Help:        "Distinct terms in the fitted text index per catalog",
		ConstLabels: m.constLabels,
	}, []string{"catalog"})

	m.feedbackEvents = m.counter("feedback_events_total", "Feedback ratings applied to the store")
	m.feedbackDuplicates = m.counter("feedback_duplicates_total", "Feedback events dropped as duplicates")
	m.feedbackRows = m.gauge("feedback_rows", "Distinct (user, record) ratings in the store")
	m.savedRecords = m.gauge("saved_records", "Records saved by users")

	m.queueSize = m.gauge("queue_size", "Current number of queued feedback events")
	m.queueCapacity = m.gauge("queue_capacity", "Maximum capacity of the feedback queue")
	m.queueUtilization = m.gauge("queue_utilization_ratio", "Queue utilization between 0 and 1")
	m.queueEnqueued = m.counter("queue_enqueued_total", "Events enqueued")
	m.queueDequeued = m.counter("queue_dequeued_total", "Events dequeued")
	m.queueEnqueueErrors = m.counter("queue_enqueue_errors_total", "Enqueue attempts rejected")
	m.queueProcessingLatency = m.histogram("queue_processing_latency_milliseconds", "Enqueue latency in milliseconds")

	m.workerCount = m.gauge("worker_count", "Configured feedback workers")
	m.workerActiveCount = m.gauge("worker_active_count", "Workers currently applying an event")
	m.workerIdleCount = m.gauge("worker_idle_count", "Workers waiting for events")
	m.workerProcessingLatency = m.histogram("worker_processing_latency_milliseconds", "Time to apply one event")
	m.workerErrors = m.counter("worker_errors_total", "Events the workers failed to apply")

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_requests_total",
		Help:        "Total number of HTTP requests by endpoint and method",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		ConstLabels: m.constLabels,
		Buckets:     m.latencyBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorsByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_by_component_total",
		Help:        "Errors by component and type",
		ConstLabels: m.constLabels,
	}, []string{"component", "error_type"})

	m.errorsByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_by_endpoint_total",
		Help:        "Errors by endpoint",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "Heap memory in use")
	m.systemGoroutineCount = m.gauge("system_goroutine_count", "Number of goroutines")
}

// RecordRecommendation counts a request and observes its latency and size.
func RecordRecommendation(catalog, outcome string, latencyMs float64, results int) {
	globalManager.recommendations.WithLabelValues(catalog, outcome).Inc()
	globalManager.recommendationLatency.WithLabelValues(catalog).Observe(latencyMs)
	globalManager.recommendationResults.WithLabelValues(catalog).Observe(float64(results))
}

// UpdateCatalog sets the record and vocabulary gauges of a catalog.
func UpdateCatalog(catalog string, records, vocabulary int) {
	globalManager.catalogRecords.WithLabelValues(catalog).Set(float64(records))
	globalManager.catalogVocabulary.WithLabelValues(catalog).Set(float64(vocabulary))
}

// RecordFeedbackApplied increments the applied feedback counter.
func RecordFeedbackApplied() {
	globalManager.feedbackEvents.Inc()
}

// RecordFeedbackDuplicate increments the duplicate feedback counter.
func RecordFeedbackDuplicate() {
	globalManager.feedbackDuplicates.Inc()
}

// UpdateFeedbackRows sets the number of stored ratings.
func UpdateFeedbackRows(rows int) {
	globalManager.feedbackRows.Set(float64(rows))
}

// UpdateSavedRecords sets the number of saved records.
func UpdateSavedRecords(count int) {
	globalManager.savedRecords.Set(float64(count))
}

// UpdateQueueSize sets the current queue depth.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// UpdateQueueUtilization sets queue utilization in [0,1].
func UpdateQueueUtilization(utilization float64) {
	globalManager.queueUtilization.Set(utilization)
}

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() {
	globalManager.queueEnqueued.Inc()
}

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() {
	globalManager.queueDequeued.Inc()
}

// RecordQueueEnqueueError increments the rejected enqueue counter.
func RecordQueueEnqueueError() {
	globalManager.queueEnqueueErrors.Inc()
}

// RecordQueueProcessingLatency records enqueue latency in milliseconds.
func RecordQueueProcessingLatency(latencyMs float64) {
	globalManager.queueProcessingLatency.Observe(latencyMs)
}

// UpdateWorkerCount sets the configured worker count.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// UpdateWorkerActiveCount sets the number of busy workers.
func UpdateWorkerActiveCount(count int) {
	globalManager.workerActiveCount.Set(float64(count))
}

// UpdateWorkerIdleCount sets the number of idle workers.
func UpdateWorkerIdleCount(count int) {
	globalManager.workerIdleCount.Set(float64(count))
}

// RecordWorkerProcessingLatency records per-event apply latency in milliseconds.
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerProcessingLatency.Observe(latencyMs)
}

// RecordWorkerError increments the worker error counter.
func RecordWorkerError() {
	globalManager.workerErrors.Inc()
}

// RecordHTTPRequest counts an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent counts an error raised inside a component.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint counts an error returned by an endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets heap usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine count.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
