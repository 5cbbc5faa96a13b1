package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/eduops/scheduling-api/internal/dto"
)

// MetricsService encapsulates Prometheus instrumentation for the HTTP
// surface and the scheduling engine, and provides lightweight snapshots
// for API consumption.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	cacheLatency    prometheus.Observer
	cacheHitRatio   prometheus.Gauge
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	assignTotal     prometheus.Counter
	calloutTotal    *prometheus.CounterVec
	bidsResolved    prometheus.Counter
	transfers       prometheus.Counter
	engineDuration  *prometheus.HistogramVec

	cacheHitCount        uint64
	cacheMissCount       uint64
	requestCount         uint64
	requestDurationTotal uint64
	assignedCount        uint64
	coveredCount         uint64
	uncoveredCount       uint64
	bidsResolvedCount    uint64
	transferCount        uint64
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

	cacheLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_latency_seconds",
		Help:    "Latency for cache operations",
		Buckets: prometheus.DefBuckets,
	})

	cacheHitRatio := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cache_hit_ratio",
		Help: "Ratio of cache hits to total cache lookups",
	})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Total cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Total cache misses",
	})

	assignTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scheduler_sessions_assigned_total",
		Help: "Sessions assigned a teacher by the engine",
	})

	calloutTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scheduler_callout_sessions_total",
		Help: "Call-out substitute search outcomes per session",
	}, []string{"outcome"})

	bidsResolved := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scheduler_bids_resolved_total",
		Help: "Bids turned into enrollments by bulk resolution",
	})

	transfers := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scheduler_transfers_total",
		Help: "Completed student transfers",
	})

	engineDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "scheduler_operation_duration_seconds",
		Help:    "Duration of engine operations",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, cacheLatency, cacheHitRatio,
		cacheHits, cacheMisses, assignTotal, calloutTotal, bidsResolved, transfers,
		engineDuration, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:        registry,
		handler:         handler,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		cacheLatency:    cacheLatency,
		cacheHitRatio:   cacheHitRatio,
		cacheHits:       cacheHits,
		cacheMisses:     cacheMisses,
		assignTotal:     assignTotal,
		calloutTotal:    calloutTotal,
		bidsResolved:    bidsResolved,
		transfers:       transfers,
		engineDuration:  engineDuration,
	}
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

// RecordCacheOperation records cache hit/miss metrics and updates hit ratio.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	if m.cacheLatency != nil {
		m.cacheLatency.Observe(duration.Seconds())
	}
	if hit {
		m.cacheHits.Inc()
		atomic.AddUint64(&m.cacheHitCount, 1)
	} else {
		m.cacheMisses.Inc()
		atomic.AddUint64(&m.cacheMissCount, 1)
	}
	hits := atomic.LoadUint64(&m.cacheHitCount)
	misses := atomic.LoadUint64(&m.cacheMissCount)
	total := hits + misses
	if total > 0 {
		m.cacheHitRatio.Set(float64(hits) / float64(total))
	}
}

// RecordAssignment counts sessions the engine assigned a teacher to.
func (m *MetricsService) RecordAssignment(count int) {
	if m == nil || count <= 0 {
		return
	}
	m.assignTotal.Add(float64(count))
	atomic.AddUint64(&m.assignedCount, uint64(count))
}

// RecordCallOut counts one substitute search outcome.
func (m *MetricsService) RecordCallOut(covered bool) {
	if m == nil {
		return
	}
	if covered {
		m.calloutTotal.WithLabelValues("reassigned").Inc()
		atomic.AddUint64(&m.coveredCount, 1)
	} else {
		m.calloutTotal.WithLabelValues("no_coverage").Inc()
		atomic.AddUint64(&m.uncoveredCount, 1)
	}
}

// RecordBidsResolved counts enrollments effected by bulk resolution.
func (m *MetricsService) RecordBidsResolved(count int) {
	if m == nil || count <= 0 {
		return
	}
	m.bidsResolved.Add(float64(count))
	atomic.AddUint64(&m.bidsResolvedCount, uint64(count))
}

// RecordTransfer counts one completed student transfer.
func (m *MetricsService) RecordTransfer() {
	if m == nil {
		return
	}
	m.transfers.Inc()
	atomic.AddUint64(&m.transferCount, 1)
}

// ObserveEngineOperation records timing for one engine operation.
func (m *MetricsService) ObserveEngineOperation(operation string, duration time.Duration) {
	if m == nil {
		return
	}
	m.engineDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// Snapshot returns aggregated metrics suitable for the stats endpoint.
func (m *MetricsService) Snapshot() dto.MetricsSnapshot {
	if m == nil {
		return dto.MetricsSnapshot{}
	}
	hits := atomic.LoadUint64(&m.cacheHitCount)
	misses := atomic.LoadUint64(&m.cacheMissCount)
	requests := atomic.LoadUint64(&m.requestCount)
	reqDuration := atomic.LoadUint64(&m.requestDurationTotal)

	var cacheRatio float64
	totalLookups := hits + misses
	if totalLookups > 0 {
		cacheRatio = float64(hits) / float64(totalLookups)
	}

	var avgRequestMs float64
	if requests > 0 {
		avgRequestMs = float64(reqDuration) / float64(requests) / float64(time.Millisecond)
	}

	return dto.MetricsSnapshot{
		RequestsTotal:            requests,
		AverageRequestDurationMs: avgRequestMs,
		CacheHitRatio:            cacheRatio,
		CacheHits:                hits,
		CacheMisses:              misses,
		SessionsAssigned:         atomic.LoadUint64(&m.assignedCount),
		CallOutsCovered:          atomic.LoadUint64(&m.coveredCount),
		CallOutsUncovered:        atomic.LoadUint64(&m.uncoveredCount),
		BidsResolved:             atomic.LoadUint64(&m.bidsResolvedCount),
		Transfers:                atomic.LoadUint64(&m.transferCount),
		Goroutines:               runtime.NumGoroutine(),
		GeneratedAt:              time.Now().UTC(),
	}
}
