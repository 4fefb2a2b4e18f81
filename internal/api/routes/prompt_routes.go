package routes

import (
	"github.com/Sachin1yadav/aitrendpromt/internal/api/handlers"
	"github.com/Sachin1yadav/aitrendpromt/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

// PromptRoutes handles the setup of the public catalog routes
type PromptRoutes struct {
	handler *handlers.PromptHandler
}

// NewPromptRoutes creates a new PromptRoutes instance
func NewPromptRoutes(handler *handlers.PromptHandler) *PromptRoutes {
	return &PromptRoutes{handler: handler}
}

// RegisterRoutes registers the public read-only catalog routes.
func (r *PromptRoutes) RegisterRoutes(router *gin.Engine, cache *middleware.CacheMiddleware) {
	prompts := router.Group("/api/prompts")

	prompts.GET("", cache.CacheResponse(), r.handler.ListPrompts)
	prompts.GET("/slugs/all", cache.CacheResponse(), r.handler.ListSlugs)
	prompts.GET("/:slug", cache.CacheResponse(), r.handler.GetPromptBySlug)
}
