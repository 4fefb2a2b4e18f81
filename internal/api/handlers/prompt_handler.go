package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Sachin1yadav/aitrendpromt/internal/api/dto"
	"github.com/Sachin1yadav/aitrendpromt/internal/domain/prompt"
	"github.com/gin-gonic/gin"
)

type PromptHandler struct {
	service prompt.Service
}

func NewPromptHandler(service prompt.Service) *PromptHandler {
	return &PromptHandler{service: service}
}

// ListPrompts godoc
// @Summary List prompts
// @Description List prompts with optional category, filter and search parameters
// @Tags prompts
// @Produce json
// @Param category query string false "Listing category" Enums(trending, new, archive)
// @Param primaryCategory query string false "Primary subject filter"
// @Param search query string false "Free-text search over title, description and tags"
// @Success 200 {object} dto.PromptListResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/prompts [get]
func (h *PromptHandler) ListPrompts(c *gin.Context) {
	var req dto.PromptFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	filter := prompt.ListFilter{
		Category:        req.Category,
		Search:          req.Search,
		PrimaryCategory: req.PrimaryCategory,
		Style:           splitCSV(req.Style),
		Pose:            splitCSV(req.Pose),
		Background:      splitCSV(req.Background),
		God:             req.God,
	}

	prompts, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to list prompts"})
		return
	}

	c.JSON(http.StatusOK, dto.PromptListResponse{
		Success: true,
		Count:   len(prompts),
		Data:    PromptsToResponse(prompts),
	})
}

// GetPromptBySlug godoc
// @Summary Get a prompt by slug
// @Tags prompts
// @Produce json
// @Param slug path string true "Prompt slug"
// @Success 200 {object} dto.PromptDetailResponse
// @Failure 404 {object} map[string]string "Prompt not found"
// @Router /api/prompts/{slug} [get]
func (h *PromptHandler) GetPromptBySlug(c *gin.Context) {
	p, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, prompt.ErrPromptNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Prompt not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to fetch prompt"})
		return
	}

	c.JSON(http.StatusOK, dto.PromptDetailResponse{Success: true, Data: *PromptToResponse(p)})
}

// ListSlugs godoc
// @Summary List every prompt slug
// @Description Returns all slugs, used by the frontend for static page generation
// @Tags prompts
// @Produce json
// @Success 200 {object} dto.SlugListResponse
// @Router /api/prompts/slugs/all [get]
func (h *PromptHandler) ListSlugs(c *gin.Context) {
	slugs, err := h.service.AllSlugs(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to list slugs"})
		return
	}

	c.JSON(http.StatusOK, dto.SlugListResponse{
		Success: true,
		Count:   len(slugs),
		Data:    slugs,
	})
}

func splitCSV(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
