package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type Service interface {
	List(ctx context.Context, filter ListFilter) ([]Prompt, error)
	GetBySlug(ctx context.Context, slug string) (*Prompt, error)
	AllSlugs(ctx context.Context) ([]string, error)
	Create(ctx context.Context, input CreateInput) (*Prompt, error)
	Update(ctx context.Context, slug string, input UpdateInput) (*Prompt, error)
	Delete(ctx context.Context, slug string) error
}

type CreateInput struct {
	Slug          string
	Title         string
	Description   string
	Body          string
	BestModel     string
	ModelRatings  map[string]string
	BeforeImage   string
	AfterImage    string
	ExampleImages []string
	ImgShouldUse  []string
	Tags          []string
	Category      string
	Filters       FilterSet
	TrendRank     int
}

// UpdateInput carries a partial update; nil fields are left untouched.
type UpdateInput struct {
	Slug          *string
	Title         *string
	Description   *string
	Body          *string
	BestModel     *string
	ModelRatings  map[string]string
	BeforeImage   *string
	AfterImage    *string
	ExampleImages []string
	ImgShouldUse  []string
	Tags          []string
	Category      *string
	Filters       *FilterSet
	TrendRank     *int
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]Prompt, error) {
	return s.repo.FindAll(ctx, filter)
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*Prompt, error) {
	if slug == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.FindBySlug(ctx, slug)
}

func (s *service) AllSlugs(ctx context.Context) ([]string, error) {
	return s.repo.AllSlugs(ctx)
}

func (s *service) Create(ctx context.Context, input CreateInput) (*Prompt, error) {
	if err := requireFields(input); err != nil {
		return nil, err
	}

	slug := input.Slug
	if slug == "" {
		slug = Slugify(input.Title)
	}

	p := &Prompt{
		ID:            uuid.New(),
		Slug:          NormalizeSlug(slug),
		Title:         strings.TrimSpace(input.Title),
		Description:   strings.TrimSpace(input.Description),
		Body:          strings.TrimSpace(input.Body),
		BestModel:     input.BestModel,
		ModelRatings:  ratingsToJSON(input.ModelRatings),
		BeforeImage:   input.BeforeImage,
		AfterImage:    input.AfterImage,
		ExampleImages: input.ExampleImages,
		ImgShouldUse:  input.ImgShouldUse,
		Tags:          input.Tags,
		Category:      Category(input.Category),
		Filters:       input.Filters,
		TrendRank:     input.TrendRank,
	}
	if p.Category == "" {
		p.Category = CategoryNew
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("prompt created", zap.String("slug", p.Slug))
	return p, nil
}

func (s *service) Update(ctx context.Context, slug string, input UpdateInput) (*Prompt, error) {
	p, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if input.Slug != nil {
		p.Slug = NormalizeSlug(*input.Slug)
	}
	if input.Title != nil {
		p.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		p.Description = strings.TrimSpace(*input.Description)
	}
	if input.Body != nil {
		p.Body = strings.TrimSpace(*input.Body)
	}
	if input.BestModel != nil {
		p.BestModel = *input.BestModel
	}
	if input.ModelRatings != nil {
		p.ModelRatings = ratingsToJSON(input.ModelRatings)
	}
	if input.BeforeImage != nil {
		p.BeforeImage = *input.BeforeImage
	}
	if input.AfterImage != nil {
		p.AfterImage = *input.AfterImage
	}
	if input.ExampleImages != nil {
		p.ExampleImages = input.ExampleImages
	}
	if input.ImgShouldUse != nil {
		p.ImgShouldUse = input.ImgShouldUse
	}
	if input.Tags != nil {
		p.Tags = input.Tags
	}
	if input.Category != nil {
		p.Category = Category(*input.Category)
	}
	if input.Filters != nil {
		p.Filters = *input.Filters
	}
	if input.TrendRank != nil {
		p.TrendRank = *input.TrendRank
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("prompt updated", zap.String("slug", p.Slug))
	return p, nil
}

func (s *service) Delete(ctx context.Context, slug string) error {
	if err := s.repo.Delete(ctx, slug); err != nil {
		return err
	}
	s.logger.Info("prompt deleted", zap.String("slug", NormalizeSlug(slug)))
	return nil
}

func requireFields(input CreateInput) error {
	required := []struct {
		name  string
		value string
	}{
		{"title", input.Title},
		{"description", input.Description},
		{"prompt", input.Body},
		{"beforeImage", input.BeforeImage},
		{"afterImage", input.AfterImage},
		{"bestModel", input.BestModel},
	}

	var missing []string
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", ErrInvalidInput, strings.Join(missing, ", "))
	}
	return nil
}

func ratingsToJSON(ratings map[string]string) datatypes.JSONMap {
	if ratings == nil {
		return nil
	}
	out := datatypes.JSONMap{}
	for model, rating := range ratings {
		out[strings.ToLower(model)] = rating
	}
	return out
}
