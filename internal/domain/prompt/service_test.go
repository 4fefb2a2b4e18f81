package prompt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeRepository keeps prompts in memory keyed by slug.
type fakeRepository struct {
	prompts map[string]*Prompt
	err     error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{prompts: make(map[string]*Prompt)}
}

func (r *fakeRepository) Create(ctx context.Context, p *Prompt) error {
	if r.err != nil {
		return r.err
	}
	if _, exists := r.prompts[p.Slug]; exists {
		return ErrDuplicateSlug
	}
	clone := *p
	r.prompts[p.Slug] = &clone
	return nil
}

func (r *fakeRepository) FindAll(ctx context.Context, filter ListFilter) ([]Prompt, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]Prompt, 0, len(r.prompts))
	for _, p := range r.prompts {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeRepository) FindBySlug(ctx context.Context, slug string) (*Prompt, error) {
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.prompts[NormalizeSlug(slug)]
	if !ok {
		return nil, ErrPromptNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *fakeRepository) AllSlugs(ctx context.Context) ([]string, error) {
	slugs := make([]string, 0, len(r.prompts))
	for slug := range r.prompts {
		slugs = append(slugs, slug)
	}
	return slugs, nil
}

func (r *fakeRepository) Update(ctx context.Context, p *Prompt) error {
	if r.err != nil {
		return r.err
	}
	r.prompts[p.Slug] = p
	return nil
}

func (r *fakeRepository) Delete(ctx context.Context, slug string) error {
	slug = NormalizeSlug(slug)
	if _, ok := r.prompts[slug]; !ok {
		return ErrPromptNotFound
	}
	delete(r.prompts, slug)
	return nil
}

func (r *fakeRepository) UpdateTrendRank(ctx context.Context, slug string, rank int) error {
	p, ok := r.prompts[NormalizeSlug(slug)]
	if !ok {
		return ErrPromptNotFound
	}
	p.TrendRank = rank
	return nil
}

func validCreateInput() CreateInput {
	return CreateInput{
		Title:       "Ghibli Couple Portrait",
		Description: "A dreamy couple portrait",
		Body:        "A couple in ghibli style, soft light",
		BestModel:   "ChatGPT",
		BeforeImage: "https://cdn.example.com/before.jpg",
		AfterImage:  "https://cdn.example.com/after.jpg",
	}
}

func TestServiceCreate(t *testing.T) {
	t.Run("derives slug from title when absent", func(t *testing.T) {
		repo := newFakeRepository()
		svc := NewService(repo, zap.NewNop())

		p, err := svc.Create(context.Background(), validCreateInput())
		require.NoError(t, err)
		assert.Equal(t, "ghibli-couple-portrait", p.Slug)
		assert.Equal(t, CategoryNew, p.Category)
	})

	t.Run("lowercases an explicit slug", func(t *testing.T) {
		repo := newFakeRepository()
		svc := NewService(repo, zap.NewNop())

		input := validCreateInput()
		input.Slug = "  My-PROMPT  "
		p, err := svc.Create(context.Background(), input)
		require.NoError(t, err)
		assert.Equal(t, "my-prompt", p.Slug)
	})

	t.Run("reports every missing required field", func(t *testing.T) {
		repo := newFakeRepository()
		svc := NewService(repo, zap.NewNop())

		_, err := svc.Create(context.Background(), CreateInput{Title: "Only a title"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Contains(t, err.Error(), "description")
		assert.Contains(t, err.Error(), "prompt")
		assert.Contains(t, err.Error(), "bestModel")
		assert.NotContains(t, err.Error(), "title")
	})

	t.Run("duplicate slug leaves the original untouched", func(t *testing.T) {
		repo := newFakeRepository()
		svc := NewService(repo, zap.NewNop())

		original, err := svc.Create(context.Background(), validCreateInput())
		require.NoError(t, err)

		second := validCreateInput()
		second.Description = "A different description"
		_, err = svc.Create(context.Background(), second)
		assert.ErrorIs(t, err, ErrDuplicateSlug)

		stored, err := svc.GetBySlug(context.Background(), original.Slug)
		require.NoError(t, err)
		assert.Equal(t, original.Description, stored.Description)
	})

	t.Run("model rating keys are lowercased", func(t *testing.T) {
		repo := newFakeRepository()
		svc := NewService(repo, zap.NewNop())

		input := validCreateInput()
		input.ModelRatings = map[string]string{"ChatGPT": "best", "Gemini": "good"}
		p, err := svc.Create(context.Background(), input)
		require.NoError(t, err)
		assert.Equal(t, "best", p.ModelRatings["chatgpt"])
		assert.Equal(t, "good", p.ModelRatings["gemini"])
	})
}

func TestServiceUpdate(t *testing.T) {
	t.Run("applies only the provided fields", func(t *testing.T) {
		repo := newFakeRepository()
		svc := NewService(repo, zap.NewNop())

		created, err := svc.Create(context.Background(), validCreateInput())
		require.NoError(t, err)

		newTitle := "Updated Title"
		updated, err := svc.Update(context.Background(), created.Slug, UpdateInput{Title: &newTitle})
		require.NoError(t, err)
		assert.Equal(t, "Updated Title", updated.Title)
		assert.Equal(t, created.Description, updated.Description)
		assert.Equal(t, created.Slug, updated.Slug)
	})

	t.Run("unknown slug returns not found", func(t *testing.T) {
		repo := newFakeRepository()
		svc := NewService(repo, zap.NewNop())

		title := "x"
		_, err := svc.Update(context.Background(), "missing", UpdateInput{Title: &title})
		assert.ErrorIs(t, err, ErrPromptNotFound)
	})
}

func TestServiceDelete(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, zap.NewNop())

	created, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.Slug))

	_, err = svc.GetBySlug(context.Background(), created.Slug)
	assert.ErrorIs(t, err, ErrPromptNotFound)

	assert.ErrorIs(t, svc.Delete(context.Background(), created.Slug), ErrPromptNotFound)
}

func TestServiceGetBySlug(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, zap.NewNop())

	created, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	p, err := svc.GetBySlug(context.Background(), "  GHIBLI-Couple-Portrait  ")
	require.NoError(t, err)
	assert.Equal(t, created.Slug, p.Slug)

	_, err = svc.GetBySlug(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
