package routes

import (
	"github.com/Sachin1yadav/aitrendpromt/internal/api/handlers"
	"github.com/Sachin1yadav/aitrendpromt/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

// AdminRoutes handles the setup of the authenticated catalog write routes
type AdminRoutes struct {
	handler *handlers.AdminHandler
	checker middleware.CredentialChecker
}

// NewAdminRoutes creates a new AdminRoutes instance
func NewAdminRoutes(handler *handlers.AdminHandler, checker middleware.CredentialChecker) *AdminRoutes {
	return &AdminRoutes{
		handler: handler,
		checker: checker,
	}
}

// RegisterRoutes registers all admin routes. Every write invalidates the
// cached catalog responses.
func (r *AdminRoutes) RegisterRoutes(router *gin.Engine, cache *middleware.CacheMiddleware) {
	admin := router.Group("/api/admin/prompts")
	admin.Use(middleware.AdminAuth(r.checker))

	admin.GET("", r.handler.ListPrompts)
	admin.POST("", cache.CacheInvalidate("api:prompts*"), r.handler.CreatePrompt)
	admin.PUT("/:slug", cache.CacheInvalidate("api:prompts*"), r.handler.UpdatePrompt)
	admin.DELETE("/:slug", cache.CacheInvalidate("api:prompts*"), r.handler.DeletePrompt)
}
