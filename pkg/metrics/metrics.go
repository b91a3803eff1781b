package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Snapshot metrics
	SnapshotRefreshesTotal   *prometheus.CounterVec
	SnapshotRefreshDuration  prometheus.Histogram
	SnapshotRefreshInFlight  prometheus.Gauge
	SnapshotRecordsFetched   *prometheus.CounterVec
	SnapshotMalformedRecords *prometheus.CounterVec
	SnapshotCacheLookups     *prometheus.CounterVec

	// Backend API metrics
	BackendAPICalls    *prometheus.CounterVec
	BackendAPIDuration *prometheus.HistogramVec
	BackendAPIFailures *prometheus.CounterVec

	// Pipeline metrics
	PipelineRunsTotal *prometheus.CounterVec
}

// creates the collectors on reg; nil means the default registerer
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
		),

		SnapshotRefreshesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "snapshot_refreshes_total",
				Help: "Total number of tracker snapshot refreshes",
			},
			[]string{"status"},
		),

		SnapshotRefreshDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "snapshot_refresh_duration_seconds",
				Help:    "Tracker snapshot refresh duration in seconds",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
		),

		SnapshotRefreshInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "snapshot_refreshes_in_flight",
				Help: "Number of snapshot refreshes currently running",
			},
		),

		SnapshotRecordsFetched: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "snapshot_records_fetched_total",
				Help: "Total number of records fetched into snapshots",
			},
			[]string{"collection"},
		),

		SnapshotMalformedRecords: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "snapshot_malformed_records_total",
				Help: "Total number of fetched records with an unparseable timestamp",
			},
			[]string{"collection"},
		),

		SnapshotCacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "snapshot_cache_lookups_total",
				Help: "Snapshot lookups by result",
			},
			[]string{"result"},
		),

		BackendAPICalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "backend_api_calls_total",
				Help: "Total number of tracker backend API calls",
			},
			[]string{"endpoint", "status"},
		),

		BackendAPIDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "backend_api_duration_seconds",
				Help:    "Tracker backend API call duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),

		BackendAPIFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "backend_api_failures_total",
				Help: "Total number of tracker backend API failures",
			},
			[]string{"endpoint", "error_type"},
		),

		PipelineRunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pipeline_runs_total",
				Help: "Total number of aggregation pipeline runs",
			},
			[]string{"operation"},
		),
	}
}

// HTTP request metrics
func (m *Metrics) RecordHTTPRequest(method, endpoint, statusCode string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// Snapshot refresh metrics
func (m *Metrics) RecordSnapshotRefresh(status string, duration time.Duration) {
	m.SnapshotRefreshesTotal.WithLabelValues(status).Inc()
	m.SnapshotRefreshDuration.Observe(duration.Seconds())
}

func (m *Metrics) RecordFetchedRecords(collection string, count int) {
	m.SnapshotRecordsFetched.WithLabelValues(collection).Add(float64(count))
}

func (m *Metrics) RecordMalformedRecords(collection string, count int) {
	m.SnapshotMalformedRecords.WithLabelValues(collection).Add(float64(count))
}

// hit, miss or stale
func (m *Metrics) RecordCacheLookup(result string) {
	m.SnapshotCacheLookups.WithLabelValues(result).Inc()
}

// Backend API call metrics
func (m *Metrics) RecordBackendAPICall(endpoint, status string, duration time.Duration) {
	m.BackendAPICalls.WithLabelValues(endpoint, status).Inc()
	m.BackendAPIDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// Backend API failure metrics
func (m *Metrics) RecordBackendAPIFailure(endpoint, errorType string) {
	m.BackendAPIFailures.WithLabelValues(endpoint, errorType).Inc()
}

func (m *Metrics) RecordPipelineRun(operation string) {
	m.PipelineRunsTotal.WithLabelValues(operation).Inc()
}

func (m *Metrics) IncSnapshotRefreshInFlight() {
	m.SnapshotRefreshInFlight.Inc()
}

func (m *Metrics) DecSnapshotRefreshInFlight() {
	m.SnapshotRefreshInFlight.Dec()
}

// HTTP requests in flight counter
func (m *Metrics) IncHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Inc()
}

// HTTP requests in flight counter
func (m *Metrics) DecHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Dec()
}
