package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/overheid-search/internal/metrics"
)

func TestMetrics_Observe(t *testing.T) {
	t.Parallel()

	m := metrics.NewMetrics(prometheus.NewRegistry())

	m.ObserveSearch("ok")
	m.ObserveSearch("ok")
	m.ObserveSearch("TIMEOUT")
	m.ObserveRecords(19, 1)
	m.ObserveFacetsDropped(2)
	m.ObserveFacetsDropped(0)
	m.ObserveCache(metrics.ResultHit)
	m.ObserveUpstream("search", metrics.ResultOK, 120*time.Millisecond)

	assert.InDelta(t, 2, testutil.ToFloat64(m.SearchesTotal.WithLabelValues("ok")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.SearchesTotal.WithLabelValues("TIMEOUT")), 0)
	assert.InDelta(t, 19, testutil.ToFloat64(m.RecordsExtractedTotal.WithLabelValues(metrics.ResultOK)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.RecordsExtractedTotal.WithLabelValues(metrics.ResultFallback)), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.FacetsDroppedTotal), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.VocabularyCacheTotal.WithLabelValues(metrics.ResultHit)), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(m.UpstreamDurationSeconds))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	t.Parallel()

	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.ObserveSearch("ok")
		m.ObserveRecords(1, 1)
		m.ObserveFacetsDropped(1)
		m.ObserveCache(metrics.ResultMiss)
		m.ObserveUpstream("search", metrics.ResultError, time.Second)
	})
}

func TestMetrics_Middleware(t *testing.T) {
	t.Parallel()

	gin.SetMode(gin.TestMode)
	m := metrics.NewMetrics(prometheus.NewRegistry())

	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/api/v1/vocabularies/:index", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/api/v1/vocabularies/dt.type", "/api/v1/vocabularies/dt.creator", "/nope"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, http.NoBody))
	}

	assert.InDelta(t, 2, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/vocabularies/:index", "200")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "unknown", "404")), 0)
}
