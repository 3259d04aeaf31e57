package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupServiceRoutes configures service-specific API routes. Health routes
// are handled by the infrastructure gin package. metricsHandler may be nil.
func SetupServiceRoutes(router *gin.Engine, handler *Handler, metricsPath string, metricsHandler http.Handler) {
	if metricsHandler != nil {
		router.GET(metricsPath, gin.WrapH(metricsHandler))
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		search := v1.Group("/search")
		search.GET("", handler.Search)
		search.POST("", handler.Search)

		v1.GET("/cql", handler.Compile)
		v1.GET("/collections", handler.Collections)
		v1.GET("/vocabularies/:index", handler.Vocabulary)
	}
}
