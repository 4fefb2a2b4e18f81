package handlers

import (
	"errors"
	"net/http"

	"github.com/Sachin1yadav/aitrendpromt/internal/api/dto"
	"github.com/Sachin1yadav/aitrendpromt/internal/domain/prompt"
	"github.com/gin-gonic/gin"
)

// AdminHandler owns the authenticated write surface of the catalog.
type AdminHandler struct {
	service prompt.Service
}

func NewAdminHandler(service prompt.Service) *AdminHandler {
	return &AdminHandler{service: service}
}

// ListPrompts godoc
// @Summary List all prompts without filtering
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.PromptListResponse
// @Router /api/admin/prompts [get]
func (h *AdminHandler) ListPrompts(c *gin.Context) {
	prompts, err := h.service.List(c.Request.Context(), prompt.ListFilter{})
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

// CreatePrompt godoc
// @Summary Create a new prompt
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param prompt body dto.CreatePromptRequest true "Prompt creation request"
// @Success 201 {object} dto.PromptDetailResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 400 {object} map[string]string "Invalid payload or duplicate slug"
// @Router /api/admin/prompts [post]
func (h *AdminHandler) CreatePrompt(c *gin.Context) {
	var req dto.CreatePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	input := prompt.CreateInput{
		Slug:          req.Slug,
		Title:         req.Title,
		Description:   req.Description,
		Body:          req.Prompt,
		BestModel:     req.BestModel,
		ModelRatings:  req.ModelRatings,
		BeforeImage:   req.BeforeImage,
		AfterImage:    req.AfterImage,
		ExampleImages: req.ExampleImages,
		ImgShouldUse:  req.ImgShouldUse,
		Tags:          req.Tags,
		Category:      req.Category,
		Filters:       filterSetFromRequest(req.Filters),
	}

	p, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		h.writeError(c, err, "failed to create prompt")
		return
	}

	c.JSON(http.StatusCreated, dto.PromptDetailResponse{Success: true, Data: *PromptToResponse(p)})
}

// UpdatePrompt godoc
// @Summary Update an existing prompt
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Prompt slug"
// @Param prompt body dto.UpdatePromptRequest true "Fields to update"
// @Success 200 {object} dto.PromptDetailResponse
// @Failure 404 {object} map[string]string "Prompt not found"
// @Router /api/admin/prompts/{slug} [put]
func (h *AdminHandler) UpdatePrompt(c *gin.Context) {
	var req dto.UpdatePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	input := prompt.UpdateInput{
		Slug:        req.Slug,
		Title:       req.Title,
		Description: req.Description,
		Body:        req.Prompt,
		BestModel:   req.BestModel,
		BeforeImage: req.BeforeImage,
		AfterImage:  req.AfterImage,
		Category:    req.Category,
	}
	if req.ModelRatings != nil {
		input.ModelRatings = *req.ModelRatings
	}
	if req.ExampleImages != nil {
		input.ExampleImages = *req.ExampleImages
	}
	if req.ImgShouldUse != nil {
		input.ImgShouldUse = *req.ImgShouldUse
	}
	if req.Tags != nil {
		input.Tags = *req.Tags
	}
	if req.Filters != nil {
		filters := filterSetFromRequest(req.Filters)
		input.Filters = &filters
	}

	p, err := h.service.Update(c.Request.Context(), c.Param("slug"), input)
	if err != nil {
		h.writeError(c, err, "failed to update prompt")
		return
	}

	c.JSON(http.StatusOK, dto.PromptDetailResponse{Success: true, Data: *PromptToResponse(p)})
}

// DeletePrompt godoc
// @Summary Delete a prompt
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Prompt slug"
// @Success 200 {object} map[string]interface{} "Prompt deleted"
// @Failure 404 {object} map[string]string "Prompt not found"
// @Router /api/admin/prompts/{slug} [delete]
func (h *AdminHandler) DeletePrompt(c *gin.Context) {
	slug := prompt.NormalizeSlug(c.Param("slug"))
	if err := h.service.Delete(c.Request.Context(), slug); err != nil {
		h.writeError(c, err, "failed to delete prompt")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Prompt deleted", "slug": slug})
}

func (h *AdminHandler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, prompt.ErrPromptNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Prompt not found"})
	case errors.Is(err, prompt.ErrDuplicateSlug):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": prompt.ErrDuplicateSlug.Error()})
	case errors.Is(err, prompt.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fallback})
	}
}
