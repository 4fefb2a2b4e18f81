package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthResponse represents the health check response structure
type HealthResponse struct {
	Status    string            `json:"status" example:"healthy"`
	Timestamp time.Time         `json:"timestamp" example:"2025-04-17T02:00:00Z"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// DependencyCheck pings one backing service.
type DependencyCheck func(ctx context.Context) error

// CacheHealth exposes the cache connection state and its counters.
type CacheHealth interface {
	HealthCheck(ctx context.Context) error
	GetMetrics() map[string]int64
}

// SetupHealthRoutes registers health check endpoints. Liveness always answers;
// readiness pings every registered dependency; the cache endpoint reports the
// Redis connection together with hit and miss counters.
func SetupHealthRoutes(router *gin.Engine, checks map[string]DependencyCheck, cacheClient CacheHealth) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC(),
		})
	})

	router.GET("/health/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		status := "ready"
		code := http.StatusOK
		results := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				results[name] = err.Error()
				status = "not ready"
				code = http.StatusServiceUnavailable
			} else {
				results[name] = "ok"
			}
		}

		c.JSON(code, HealthResponse{
			Status:    status,
			Timestamp: time.Now().UTC(),
			Checks:    results,
		})
	})

	router.GET("/health/cache", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := cacheClient.HealthCheck(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now().UTC(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"metrics":   cacheClient.GetMetrics(),
			"timestamp": time.Now().UTC(),
		})
	})
}
