package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appErrors "github.com/AliciaPky/Astar/pkg/errors"
)

// MetricsSnapshot aggregates counters for the JSON metrics endpoint.
type MetricsSnapshot struct {
	RequestsTotal            uint64    `json:"requestsTotal"`
	AverageRequestDurationMs float64   `json:"averageRequestDurationMs"`
	OperationsTotal          uint64    `json:"operationsTotal"`
	OperationsRejected       uint64    `json:"operationsRejected"`
	SavesTotal               uint64    `json:"savesTotal"`
	SaveFailures             uint64    `json:"saveFailures"`
	AverageSaveDurationMs    float64   `json:"averageSaveDurationMs"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generatedAt"`
}

// MetricsService encapsulates Prometheus instrumentation and provides lightweight snapshots for API consumption.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	operations      *prometheus.CounterVec
	saveDuration    prometheus.Observer
	saves           *prometheus.CounterVec

	requestCount         uint64
	requestDurationTotal uint64
	operationCount       uint64
	operationRejected    uint64
	saveCount            uint64
	saveFailures         uint64
	saveDurationTotal    uint64
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "registry_operations_total",
		Help: "Registry operations by name and outcome",
	}, []string{"operation", "outcome"})

	saveDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "registry_save_duration_seconds",
		Help:    "Duration of data file writes",
		Buckets: prometheus.DefBuckets,
	})

	saves := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "registry_saves_total",
		Help: "Data file writes by outcome",
	}, []string{"outcome"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, operations, saveDuration, saves, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:        registry,
		handler:         handler,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		operations:      operations,
		saveDuration:    saveDuration,
		saves:           saves,
	}
}

// Registry exposes the underlying Prometheus registry.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics and aggregates simple stats for snapshots.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddUint64(&m.requestDurationTotal, uint64(duration.Nanoseconds()))
}

// RecordOperation counts a registry operation. Failures are labelled with their error code.
func (m *MetricsService) RecordOperation(operation string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = appErrors.FromError(err).Code
		atomic.AddUint64(&m.operationRejected, 1)
	}
	m.operations.WithLabelValues(operation, outcome).Inc()
	atomic.AddUint64(&m.operationCount, 1)
}

// ObserveSave records a data file write.
func (m *MetricsService) ObserveSave(duration time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
		atomic.AddUint64(&m.saveFailures, 1)
	}
	m.saveDuration.Observe(duration.Seconds())
	m.saves.WithLabelValues(outcome).Inc()
	atomic.AddUint64(&m.saveCount, 1)
	atomic.AddUint64(&m.saveDurationTotal, uint64(duration.Nanoseconds()))
}

// Snapshot returns aggregated metrics suitable for the JSON endpoint.
func (m *MetricsService) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{}
	}
	requests := atomic.LoadUint64(&m.requestCount)
	reqDuration := atomic.LoadUint64(&m.requestDurationTotal)
	saves := atomic.LoadUint64(&m.saveCount)
	saveDuration := atomic.LoadUint64(&m.saveDurationTotal)

	var avgRequestMs float64
	if requests > 0 {
		avgRequestMs = float64(reqDuration) / float64(requests) / float64(time.Millisecond)
	}

	var avgSaveMs float64
	if saves > 0 {
		avgSaveMs = float64(saveDuration) / float64(saves) / float64(time.Millisecond)
	}

	return MetricsSnapshot{
		RequestsTotal:            requests,
		AverageRequestDurationMs: avgRequestMs,
		OperationsTotal:          atomic.LoadUint64(&m.operationCount),
		OperationsRejected:       atomic.LoadUint64(&m.operationRejected),
		SavesTotal:               saves,
		SaveFailures:             atomic.LoadUint64(&m.saveFailures),
		AverageSaveDurationMs:    avgSaveMs,
		Goroutines:               runtime.NumGoroutine(),
		GeneratedAt:              time.Now().UTC(),
	}
}
