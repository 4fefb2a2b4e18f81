package dto

import (
	"time"

	"github.com/google/uuid"
)

// FilterSet mirrors the filter vocabulary stored on each prompt. Field names
// match the public JSON contract consumed by the frontend.
type FilterSet struct {
	PrimaryCategory string   `json:"primaryCategory,omitempty"`
	Style           []string `json:"style"`
	Pose            []string `json:"pose"`
	Background      []string `json:"background"`
	God             string   `json:"god,omitempty"`
}

type CreatePromptRequest struct {
	Title         string            `json:"title" binding:"required"`
	Slug          string            `json:"slug"`
	Description   string            `json:"description" binding:"required"`
	Prompt        string            `json:"prompt" binding:"required"`
	BeforeImage   string            `json:"beforeImage" binding:"required"`
	AfterImage    string            `json:"afterImage" binding:"required"`
	ExampleImages []string          `json:"exampleImages"`
	ImgShouldUse  []string          `json:"imgShouldUse"`
	BestModel     string            `json:"bestModel" binding:"required"`
	ModelRatings  map[string]string `json:"modelRatings"`
	Tags          []string          `json:"tags"`
	Category      string            `json:"category"`
	Filters       *FilterSet        `json:"filters"`
}

type UpdatePromptRequest struct {
	Title         *string            `json:"title,omitempty"`
	Slug          *string            `json:"slug,omitempty"`
	Description   *string            `json:"description,omitempty"`
	Prompt        *string            `json:"prompt,omitempty"`
	BeforeImage   *string            `json:"beforeImage,omitempty"`
	AfterImage    *string            `json:"afterImage,omitempty"`
	ExampleImages *[]string          `json:"exampleImages,omitempty"`
	ImgShouldUse  *[]string          `json:"imgShouldUse,omitempty"`
	BestModel     *string            `json:"bestModel,omitempty"`
	ModelRatings  *map[string]string `json:"modelRatings,omitempty"`
	Tags          *[]string          `json:"tags,omitempty"`
	Category      *string            `json:"category,omitempty"`
	Filters       *FilterSet         `json:"filters,omitempty"`
}

type PromptResponse struct {
	ID            uuid.UUID         `json:"id"`
	Title         string            `json:"title"`
	Slug          string            `json:"slug"`
	Description   string            `json:"description"`
	Prompt        string            `json:"prompt"`
	BeforeImage   string            `json:"beforeImage"`
	AfterImage    string            `json:"afterImage"`
	ExampleImages []string          `json:"exampleImages"`
	ImgShouldUse  []string          `json:"imgShouldUse"`
	BestModel     string            `json:"bestModel"`
	ModelRatings  map[string]string `json:"modelRatings"`
	Tags          []string          `json:"tags"`
	Category      string            `json:"category"`
	Filters       FilterSet         `json:"filters"`
	TrendRank     int               `json:"trendRank"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

type PromptListResponse struct {
	Success bool             `json:"success"`
	Count   int              `json:"count"`
	Data    []PromptResponse `json:"data"`
}

type PromptDetailResponse struct {
	Success bool           `json:"success"`
	Data    PromptResponse `json:"data"`
}

type SlugListResponse struct {
	Success bool     `json:"success"`
	Count   int      `json:"count"`
	Data    []string `json:"data"`
}

type PromptFilterRequest struct {
	Category        string `form:"category" example:"trending"`
	PrimaryCategory string `form:"primaryCategory" example:"couple"`
	Style           string `form:"style" example:"realistic"`
	Pose            string `form:"pose" example:"standing"`
	Background      string `form:"background" example:"studio"`
	God             string `form:"god" example:"krishna"`
	Search          string `form:"search" example:"wedding"`
}
