// Package metrics defines the Prometheus collectors of the search gateway.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	// MetricsNamespace is the namespace for all gateway metrics.
	MetricsNamespace = "overheid"

	// MetricsSubsystem is the subsystem for search metrics.
	MetricsSubsystem = "search"
)

// Label values.
const (
	ResultOK       = "ok"
	ResultFallback = "fallback"
	ResultHit      = "hit"
	ResultMiss     = "miss"
	ResultError    = "error"
)

var latencyBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15}

// Metrics holds the gateway collectors. A nil *Metrics records nothing.
type Metrics struct {
	SearchesTotal           *prometheus.CounterVec
	UpstreamDurationSeconds *prometheus.HistogramVec
	RecordsExtractedTotal   *prometheus.CounterVec
	FacetsDroppedTotal      prometheus.Counter
	VocabularyCacheTotal    *prometheus.CounterVec

	HTTPRequestsTotal          *prometheus.CounterVec
	HTTPRequestDurationSeconds *prometheus.HistogramVec
}

// NewMetrics creates and registers all collectors on reg, or on the default
// registerer when reg is nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)
	m := &Metrics{}
	m.initSearchMetrics(factory)
	m.initHTTPMetrics(factory)
	return m
}

func (m *Metrics) initSearchMetrics(factory promauto.Factory) {
	m.SearchesTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Subsystem: MetricsSubsystem,
			Name:      "requests_total",
			Help:      "Search requests by outcome code",
		},
		[]string{"outcome"},
	)

	m.UpstreamDurationSeconds = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: MetricsNamespace,
			Subsystem: MetricsSubsystem,
			Name:      "upstream_duration_seconds",
			Help:      "Duration of SRU searchRetrieve calls",
			Buckets:   latencyBuckets,
		},
		[]string{"operation", "result"},
	)

	m.RecordsExtractedTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Subsystem: MetricsSubsystem,
			Name:      "records_extracted_total",
			Help:      "Records extracted, by ok or fallback",
		},
		[]string{"status"},
	)

	m.FacetsDroppedTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Subsystem: MetricsSubsystem,
			Name:      "facets_dropped_total",
			Help:      "Facets dropped for missing index or terms",
		},
	)

	m.VocabularyCacheTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Subsystem: MetricsSubsystem,
			Name:      "vocabulary_cache_total",
			Help:      "Vocabulary cache lookups by hit, miss or error",
		},
		[]string{"result"},
	)
}

func (m *Metrics) initHTTPMetrics(factory promauto.Factory) {
	m.HTTPRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	m.HTTPRequestDurationSeconds = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: MetricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   latencyBuckets,
		},
		[]string{"method", "path", "status"},
	)
}

// ObserveSearch counts a finished search by outcome ("ok" or an error code).
func (m *Metrics) ObserveSearch(outcome string) {
	if m == nil {
		return
	}
	m.SearchesTotal.WithLabelValues(outcome).Inc()
}

// ObserveUpstream records one SRU call.
func (m *Metrics) ObserveUpstream(operation, result string, d time.Duration) {
	if m == nil {
		return
	}
	m.UpstreamDurationSeconds.WithLabelValues(operation, result).Observe(d.Seconds())
}

// ObserveRecords counts extracted and fallback records of one page.
func (m *Metrics) ObserveRecords(ok, fallback int) {
	if m == nil {
		return
	}
	m.RecordsExtractedTotal.WithLabelValues(ResultOK).Add(float64(ok))
	m.RecordsExtractedTotal.WithLabelValues(ResultFallback).Add(float64(fallback))
}

// ObserveFacetsDropped counts dropped facets.
func (m *Metrics) ObserveFacetsDropped(n int) {
	if m == nil || n == 0 {
		return
	}
	m.FacetsDroppedTotal.Add(float64(n))
}

// ObserveCache counts a vocabulary cache lookup.
func (m *Metrics) ObserveCache(result string) {
	if m == nil {
		return
	}
	m.VocabularyCacheTotal.WithLabelValues(result).Inc()
}

// Middleware records request count and duration by route pattern.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if m == nil {
			return
		}
		path := c.FullPath()
		if path == "" {
			path = "unknown"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.HTTPRequestDurationSeconds.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}
