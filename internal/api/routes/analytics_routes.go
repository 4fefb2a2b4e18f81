package routes

import (
	"github.com/Sachin1yadav/aitrendpromt/internal/api/handlers"
	"github.com/Sachin1yadav/aitrendpromt/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

// AnalyticsRoutes handles the setup of the event pipeline routes
type AnalyticsRoutes struct {
	handler *handlers.AnalyticsHandler
	checker middleware.CredentialChecker
}

// NewAnalyticsRoutes creates a new AnalyticsRoutes instance
func NewAnalyticsRoutes(handler *handlers.AnalyticsHandler, checker middleware.CredentialChecker) *AnalyticsRoutes {
	return &AnalyticsRoutes{
		handler: handler,
		checker: checker,
	}
}

// RegisterRoutes registers the analytics routes. Ingestion is public; the
// aggregation and raw-event views are admin only. None of these responses
// are cached, stats must reflect writes immediately.
func (r *AnalyticsRoutes) RegisterRoutes(router *gin.Engine) {
	analytics := router.Group("/api/analytics")

	analytics.POST("/track", r.handler.TrackEvent)

	protected := analytics.Group("")
	protected.Use(middleware.AdminAuth(r.checker))
	protected.GET("/stats", r.handler.GetStats)
	protected.GET("/recent", r.handler.GetRecentEvents)
}
