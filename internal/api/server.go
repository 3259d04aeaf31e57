package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	infragin "github.com/jonesrussell/overheid-search/infrastructure/gin"
	infralogger "github.com/jonesrussell/overheid-search/infrastructure/logger"
	"github.com/jonesrussell/overheid-search/internal/config"
	"github.com/jonesrussell/overheid-search/internal/metrics"
)

// ServerDeps are the collaborators NewServer wires into the router.
type ServerDeps struct {
	Handler *Handler
	Metrics *metrics.Metrics
	// MetricsHandler serves the Prometheus exposition; nil disables it.
	MetricsHandler http.Handler
	HealthChecks   map[string]infragin.HealthChecker
	Logger         infralogger.Logger
}

// NewServer creates a new HTTP server using the infrastructure gin package.
func NewServer(cfg *config.Config, deps ServerDeps) *infragin.Server {
	builder := infragin.NewServerBuilder(cfg.Service.Name, cfg.Service.Port).
		WithLogger(deps.Logger).
		WithDebug(cfg.Service.Debug).
		WithVersion(cfg.Service.Version).
		WithTimeouts(infragin.DefaultReadTimeout, infragin.DefaultWriteTimeout, infragin.DefaultIdleTimeout).
		WithCORS(cfg.GinCORS())

	for name, check := range deps.HealthChecks {
		builder = builder.WithHealthCheck(name, check)
	}

	return builder.
		WithRoutes(func(router *gin.Engine) {
			if deps.Metrics != nil {
				router.Use(deps.Metrics.Middleware())
			}
			SetupServiceRoutes(router, deps.Handler, cfg.Metrics.Path, deps.MetricsHandler)
		}).
		Build()
}
