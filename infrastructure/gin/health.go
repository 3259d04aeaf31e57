package gin

import (
	"context"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthStatus is the coarse state reported by /health.
type HealthStatus string

// Health states.
const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

const (
	healthCheckTimeout = 2 * time.Second
	bytesPerMB         = 1024 * 1024
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  HealthStatus           `json:"status"`
	Service string                 `json:"service"`
	Version string                 `json:"version"`
	Uptime  string                 `json:"uptime"`
	Checks  map[string]CheckResult `json:"checks,omitempty"`
}

// CheckResult is one dependency's state.
type CheckResult struct {
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
	Latency string       `json:"latency,omitempty"`
}

// HealthChecker probes a dependency.
type HealthChecker func(ctx context.Context) CheckResult

// HealthOptions configures RegisterHealthRoutes.
type HealthOptions struct {
	ServiceName    string
	ServiceVersion string
	Checks         map[string]HealthChecker
}

// MemoryHealth is the body of GET /health/memory.
type MemoryHealth struct {
	Timestamp    time.Time `json:"timestamp"`
	HeapAllocMB  float64   `json:"heap_alloc_mb"`
	HeapInuseMB  float64   `json:"heap_inuse_mb"`
	StackInuseMB float64   `json:"stack_inuse_mb"`
	NumGC        uint32    `json:"num_gc"`
	NumGoroutine int       `json:"num_goroutine"`
}

var startedAt = sync.OnceValue(time.Now)

// RegisterHealthRoutes adds GET /health, HEAD /health and GET /health/memory.
func RegisterHealthRoutes(router *gin.Engine, opts HealthOptions) {
	startedAt()

	router.GET("/health", healthHandler(opts))
	router.HEAD("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/health/memory", memoryHandler)
}

func healthHandler(opts HealthOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := HealthResponse{
			Status:  HealthStatusHealthy,
			Service: opts.ServiceName,
			Version: opts.ServiceVersion,
			Uptime:  time.Since(startedAt()).Round(time.Second).String(),
		}

		if len(opts.Checks) > 0 {
			ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
			defer cancel()

			resp.Checks = make(map[string]CheckResult, len(opts.Checks))
			for name, check := range opts.Checks {
				result := check(ctx)
				resp.Checks[name] = result
				resp.Status = worse(resp.Status, result.Status)
			}
		}

		status := http.StatusOK
		if resp.Status == HealthStatusUnhealthy {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, resp)
	}
}

func worse(a, b HealthStatus) HealthStatus {
	rank := map[HealthStatus]int{HealthStatusHealthy: 0, HealthStatusDegraded: 1, HealthStatusUnhealthy: 2}
	if rank[b] > rank[a] {
		return b
	}
	return a
}

func memoryHandler(c *gin.Context) {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)

	c.JSON(http.StatusOK, MemoryHealth{
		Timestamp:    time.Now().UTC(),
		HeapAllocMB:  float64(stats.Alloc) / bytesPerMB,
		HeapInuseMB:  float64(stats.HeapInuse) / bytesPerMB,
		StackInuseMB: float64(stats.StackInuse) / bytesPerMB,
		NumGC:        stats.NumGC,
		NumGoroutine: runtime.NumGoroutine(),
	})
}

// PingChecker adapts a ping function. A failing ping reports failStatus,
// so optional dependencies can degrade rather than fail the service.
func PingChecker(component string, failStatus HealthStatus, ping func(ctx context.Context) error) HealthChecker {
	return func(ctx context.Context) CheckResult {
		start := time.Now()
		err := ping(ctx)
		latency := time.Since(start).String()

		if err != nil {
			return CheckResult{Status: failStatus, Message: component + " unreachable: " + err.Error(), Latency: latency}
		}
		return CheckResult{Status: HealthStatusHealthy, Message: component + " OK", Latency: latency}
	}
}
