package handlers

import (
	"github.com/Sachin1yadav/aitrendpromt/internal/api/dto"
	"github.com/Sachin1yadav/aitrendpromt/internal/domain/prompt"
)

// Prompts
func PromptToResponse(p *prompt.Prompt) *dto.PromptResponse {
	if p == nil {
		return nil
	}
	return &dto.PromptResponse{
		ID:            p.ID,
		Title:         p.Title,
		Slug:          p.Slug,
		Description:   p.Description,
		Prompt:        p.Body,
		BeforeImage:   p.BeforeImage,
		AfterImage:    p.AfterImage,
		ExampleImages: p.ExampleImages,
		ImgShouldUse:  p.ImgShouldUse,
		BestModel:     p.BestModel,
		ModelRatings:  ratingsToStrings(p.ModelRatings),
		Tags:          p.Tags,
		Category:      string(p.Category),
		Filters:       filterSetToResponse(p.Filters),
		TrendRank:     p.TrendRank,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func PromptsToResponse(prompts []prompt.Prompt) []dto.PromptResponse {
	out := make([]dto.PromptResponse, 0, len(prompts))
	for i := range prompts {
		out = append(out, *PromptToResponse(&prompts[i]))
	}
	return out
}

func filterSetToResponse(f prompt.FilterSet) dto.FilterSet {
	return dto.FilterSet{
		PrimaryCategory: f.PrimaryCategory,
		Style:           f.Style,
		Pose:            f.Pose,
		Background:      f.Background,
		God:             f.God,
	}
}

func filterSetFromRequest(f *dto.FilterSet) prompt.FilterSet {
	if f == nil {
		return prompt.FilterSet{}
	}
	return prompt.FilterSet{
		PrimaryCategory: f.PrimaryCategory,
		Style:           f.Style,
		Pose:            f.Pose,
		Background:      f.Background,
		God:             f.God,
	}
}

func ratingsToStrings(ratings map[string]interface{}) map[string]string {
	out := make(map[string]string, len(ratings))
	for model, rating := range ratings {
		if s, ok := rating.(string); ok {
			out[model] = s
		}
	}
	return out
}
