package prompt

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Rating grades how well a given AI model renders a prompt.
type Rating string

const (
	RatingBest           Rating = "best"
	RatingGood           Rating = "good"
	RatingAverage        Rating = "average"
	RatingNotRecommended Rating = "not_recommended"
)

func (r Rating) IsValid() bool {
	switch r {
	case RatingBest, RatingGood, RatingAverage, RatingNotRecommended:
		return true
	}
	return false
}

// Category represents the listing bucket of a prompt.
type Category string

const (
	CategoryTrending Category = "trending"
	CategoryNew      Category = "new"
	CategoryArchive  Category = "archive"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryTrending, CategoryNew, CategoryArchive:
		return true
	}
	return false
}

// BestModels is the closed set of AI tool names a prompt can recommend.
var BestModels = []string{"ChatGPT", "Gemini", "Midjourney", "Leonardo"}

// Filter vocabularies. Values outside these sets are rejected on write.
var (
	PrimaryCategories = []string{"boy", "girl", "baby", "man", "woman", "with-god", "couple", "family", "pet", "cartoon-anime"}
	StyleFilters      = []string{"ghibli", "pixar", "anime", "disney", "3d-render", "realistic", "oil-painting", "watercolor"}
	PoseFilters       = []string{"portrait", "full-body", "cinematic", "festival", "temple", "street", "wedding", "travel"}
	BackgroundFilters = []string{"indian-temple", "heaven", "city", "village", "nature", "studio"}
	GodFilters        = []string{"krishna", "ram", "shiva", "hanuman", "jesus", "buddha", "sai-baba"}
)

func inVocabulary(vocab []string, value string) bool {
	for _, v := range vocab {
		if v == value {
			return true
		}
	}
	return false
}

// FilterSet is the filter sub-document attached to a prompt. God is only
// meaningful when PrimaryCategory is "with-god".
type FilterSet struct {
	PrimaryCategory string   `json:"primaryCategory,omitempty"`
	Style           []string `json:"style"`
	Pose            []string `json:"pose"`
	Background      []string `json:"background"`
	God             string   `json:"god,omitempty"`
}

// Prompt represents a catalogued AI image prompt with before/after imagery.
// Slug is the sole external identifier and is lowercased on every write path.
type Prompt struct {
	ID            uuid.UUID         `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Slug          string            `gorm:"size:255;not null;uniqueIndex"`
	Title         string            `gorm:"size:255;not null"`
	Description   string            `gorm:"type:text;not null"`
	Body          string            `gorm:"column:prompt;type:text;not null"`
	BestModel     string            `gorm:"size:50;not null"`
	ModelRatings  datatypes.JSONMap `gorm:"type:jsonb;default:'{}'"`
	BeforeImage   string            `gorm:"type:text;not null"`
	AfterImage    string            `gorm:"type:text;not null"`
	ExampleImages pq.StringArray    `gorm:"type:text[]"`
	ImgShouldUse  pq.StringArray    `gorm:"column:imgshoulduse;type:text[]"`
	Tags          pq.StringArray    `gorm:"type:text[]"`
	Category      Category          `gorm:"type:varchar(20);not null;default:'new';index"`
	Filters       FilterSet         `gorm:"type:jsonb;serializer:json;default:'{}'"`
	TrendRank     int               `gorm:"not null;default:0;index"`
	CreatedAt     time.Time         `gorm:"not null;default:current_timestamp;index"`
	UpdatedAt     time.Time         `gorm:"not null;default:current_timestamp;autoUpdateTime"`
}

func (Prompt) TableName() string {
	return "prompts"
}

// Domain errors
var (
	ErrPromptNotFound = errors.New("prompt not found")
	ErrDuplicateSlug  = errors.New("prompt with this slug already exists")
	ErrInvalidInput   = errors.New("invalid input")
)

var slugCleanup = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe slug from a title.
func Slugify(title string) string {
	slug := slugCleanup.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}

// NormalizeSlug lowercases and trims a slug. Applied on every write and lookup.
func NormalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}

// Validate checks required fields and enum membership.
func (p *Prompt) Validate() error {
	if p.Slug == "" || p.Title == "" || p.Description == "" || p.Body == "" {
		return ErrInvalidInput
	}
	if p.BeforeImage == "" || p.AfterImage == "" {
		return ErrInvalidInput
	}
	if !inVocabulary(BestModels, p.BestModel) {
		return ErrInvalidInput
	}
	if !p.Category.IsValid() {
		return ErrInvalidInput
	}
	for model, rating := range p.ModelRatings {
		s, ok := rating.(string)
		if !ok || !Rating(s).IsValid() {
			return errors.New("invalid rating for model " + model)
		}
	}
	if p.Filters.PrimaryCategory != "" && !inVocabulary(PrimaryCategories, p.Filters.PrimaryCategory) {
		return ErrInvalidInput
	}
	if p.Filters.God != "" && !inVocabulary(GodFilters, p.Filters.God) {
		return ErrInvalidInput
	}
	return nil
}

// BeforeCreate is called before inserting a new prompt record
func (p *Prompt) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.Slug = NormalizeSlug(p.Slug)
	if p.Category == "" {
		p.Category = CategoryNew
	}
	if p.ModelRatings == nil {
		p.ModelRatings = defaultModelRatings()
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	return p.Validate()
}

// BeforeUpdate is called before updating a prompt record
func (p *Prompt) BeforeUpdate(tx *gorm.DB) error {
	p.Slug = NormalizeSlug(p.Slug)
	p.UpdatedAt = time.Now()
	return p.Validate()
}

func defaultModelRatings() datatypes.JSONMap {
	ratings := datatypes.JSONMap{}
	for _, model := range BestModels {
		ratings[strings.ToLower(model)] = string(RatingAverage)
	}
	return ratings
}

// ListFilter holds the query parameters of the listing endpoint.
type ListFilter struct {
	Category        string
	Search          string
	PrimaryCategory string
	Style           []string
	Pose            []string
	Background      []string
	God             string
}
