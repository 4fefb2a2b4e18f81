package prompt

import (
	"context"
	"errors"

	"github.com/Sachin1yadav/aitrendpromt/internal/infrastructure/persistence/postgres/connection"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// uniqueViolation is the Postgres error code for duplicate key violations.
const uniqueViolation = "23505"

type Repository interface {
	Create(ctx context.Context, p *Prompt) error
	FindAll(ctx context.Context, filter ListFilter) ([]Prompt, error)
	FindBySlug(ctx context.Context, slug string) (*Prompt, error)
	AllSlugs(ctx context.Context) ([]string, error)
	Update(ctx context.Context, p *Prompt) error
	Delete(ctx context.Context, slug string) error
	UpdateTrendRank(ctx context.Context, slug string, rank int) error
}

type repository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Prompt) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return translateError(err)
	}
	return nil
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Prompt, error) {
	var prompts []Prompt

	query := r.db.WithContext(ctx).Model(&Prompt{})

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.PrimaryCategory != "" {
		query = query.Where("filters->>'primaryCategory' = ?", filter.PrimaryCategory)
	}
	if len(filter.Style) > 0 {
		query = query.Where("jsonb_exists_any(filters->'style', ?)", pq.Array(filter.Style))
	}
	if len(filter.Pose) > 0 {
		query = query.Where("jsonb_exists_any(filters->'pose', ?)", pq.Array(filter.Pose))
	}
	if len(filter.Background) > 0 {
		query = query.Where("jsonb_exists_any(filters->'background', ?)", pq.Array(filter.Background))
	}
	if filter.God != "" {
		query = query.Where("filters->>'god' = ?", filter.God)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"title ILIKE ? OR description ILIKE ? OR prompt ILIKE ? OR EXISTS (SELECT 1 FROM unnest(tags) AS t WHERE t ILIKE ?)",
			pattern, pattern, pattern, pattern,
		)
	}

	if err := query.Order("created_at DESC").Find(&prompts).Error; err != nil {
		return nil, err
	}
	return prompts, nil
}

func (r *repository) FindBySlug(ctx context.Context, slug string) (*Prompt, error) {
	var p Prompt
	result := r.db.WithContext(ctx).Where("slug = ?", NormalizeSlug(slug)).First(&p)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPromptNotFound
		}
		return nil, result.Error
	}
	return &p, nil
}

func (r *repository) AllSlugs(ctx context.Context) ([]string, error) {
	var slugs []string
	err := r.db.WithContext(ctx).
		Model(&Prompt{}).
		Order("created_at DESC").
		Pluck("slug", &slugs).Error
	if err != nil {
		return nil, err
	}
	return slugs, nil
}

func (r *repository) Update(ctx context.Context, p *Prompt) error {
	result := r.db.WithContext(ctx).Save(p)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPromptNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, slug string) error {
	result := r.db.WithContext(ctx).Where("slug = ?", NormalizeSlug(slug)).Delete(&Prompt{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPromptNotFound
	}
	return nil
}

func (r *repository) UpdateTrendRank(ctx context.Context, slug string, rank int) error {
	return r.db.WithContext(ctx).
		Model(&Prompt{}).
		Where("slug = ?", NormalizeSlug(slug)).
		Update("trend_rank", rank).Error
}

// translateError maps Postgres unique violations on the slug index to the
// domain duplicate error.
func translateError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		return ErrDuplicateSlug
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateSlug
	}
	return err
}
