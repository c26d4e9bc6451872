// Package metrics provides Prometheus metrics for the suburb map service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Dataset
	datasetRecords        prometheus.Gauge
	datasetSkipped        prometheus.Gauge
	datasetOutOfBounds    prometheus.Gauge
	datasetLoadDurationMs prometheus.Histogram

	// Pipeline
	selectionsResolved *prometheus.CounterVec
	selectionSize      prometheus.Histogram
	artifactsRendered  *prometheus.CounterVec
	renderLatency      *prometheus.HistogramVec
	renderErrors       *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// customRegistry keeps the default Go collectors out of /metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "socio",
		subsystem:        "dashboard",
		histogramBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		constLabels:      prometheus.Labels{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, Buckets: buckets, ConstLabels: m.constLabels}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.datasetRecords = auto.NewGauge(m.gaugeOpts("dataset_records", "Number of valid suburb records loaded"))
	m.datasetSkipped = auto.NewGauge(m.gaugeOpts("dataset_skipped_rows", "Number of malformed rows dropped at load"))
	m.datasetOutOfBounds = auto.NewGauge(m.gaugeOpts("dataset_out_of_bounds_records",
		"Records whose mapped latitude/longitude fall outside Australia"))
	m.datasetLoadDurationMs = auto.NewHistogram(m.histogramOpts("dataset_load_duration_milliseconds",
		"Workbook load time in milliseconds", m.histogramBuckets))

	m.selectionsResolved = auto.NewCounterVec(m.counterOpts("selections_resolved_total",
		"Selections resolved, by outcome (match, no_match)"), []string{"outcome"})
	m.selectionSize = auto.NewHistogram(m.histogramOpts("selection_view_size",
		"Number of records in resolved views", []float64{0, 1, 2, 5, 10, 25, 50, 100, 500}))
	m.artifactsRendered = auto.NewCounterVec(m.counterOpts("artifacts_rendered_total",
		"Rendered artifacts, by kind (chart, report)"), []string{"kind"})
	m.renderLatency = auto.NewHistogramVec(m.histogramOpts("render_latency_milliseconds",
		"Artifact render time in milliseconds", m.histogramBuckets), []string{"kind"})
	m.renderErrors = auto.NewCounterVec(m.counterOpts("render_errors_total",
		"Artifact render failures, by kind"), []string{"kind"})

	m.httpRequests = auto.NewCounterVec(m.counterOpts("http_requests_total",
		"Total number of HTTP requests by endpoint and method"), []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(m.histogramOpts("http_request_duration_milliseconds",
		"HTTP request duration in milliseconds", m.histogramBuckets), []string{"endpoint", "method", "status_code"})
	m.errorRateByType = auto.NewCounterVec(m.counterOpts("errors_by_type_total",
		"Errors by type and severity"), []string{"error_type", "severity"})
	m.errorRateByEndpoint = auto.NewCounterVec(m.counterOpts("errors_by_endpoint_total",
		"Errors by endpoint and method"), []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_bytes", "Heap bytes allocated"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutines", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts("system_gc_pause_milliseconds",
		"Average GC pause time in milliseconds", []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10}))
}

// RecordDatasetLoad publishes the outcome of a dataset load.
func RecordDatasetLoad(records, skipped, outOfBounds int, durationMs float64) {
	globalManager.datasetRecords.Set(float64(records))
	globalManager.datasetSkipped.Set(float64(skipped))
	globalManager.datasetOutOfBounds.Set(float64(outOfBounds))
	globalManager.datasetLoadDurationMs.Observe(durationMs)
}

// RecordSelection counts a resolved selection and its view size.
func RecordSelection(matched bool, size int) {
	outcome := "match"
	if !matched {
		outcome = "no_match"
	}
	globalManager.selectionsResolved.WithLabelValues(outcome).Inc()
	globalManager.selectionSize.Observe(float64(size))
}

// RecordRender counts a rendered artifact and its latency.
func RecordRender(kind string, latencyMs float64) {
	globalManager.artifactsRendered.WithLabelValues(kind).Inc()
	globalManager.renderLatency.WithLabelValues(kind).Observe(latencyMs)
}

// RecordRenderError counts a failed render.
func RecordRenderError(kind string) {
	globalManager.renderErrors.WithLabelValues(kind).Inc()
}

// RecordHTTPRequest counts an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes an HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByType counts an error by type and severity.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint counts an error by endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the heap usage gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime observes the average GC pause.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the registry backing /metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
