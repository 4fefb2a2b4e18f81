package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func samplePrompt() *Prompt {
	return &Prompt{
		Title:       "Ghibli Couple Portrait",
		Description: "A dreamy couple standing in an indian temple courtyard at sunset",
		Tags:        []string{"couple", "romantic", "anime"},
		Filters: FilterSet{
			PrimaryCategory: "couple",
			Style:           []string{"ghibli"},
			Pose:            []string{"portrait"},
			Background:      []string{"indian-temple"},
		},
	}
}

func TestMatchesFilters(t *testing.T) {
	tests := []struct {
		name      string
		prompt    *Prompt
		selection Selection
		expected  bool
	}{
		{
			name:      "Empty selection matches everything",
			prompt:    samplePrompt(),
			selection: Selection{},
			expected:  true,
		},
		{
			name:      "Matching primary category",
			prompt:    samplePrompt(),
			selection: Selection{PrimaryCategory: "couple"},
			expected:  true,
		},
		{
			name:      "Primary category is strict with no text fallback",
			prompt:    samplePrompt(),
			selection: Selection{PrimaryCategory: "family"},
			expected:  false,
		},
		{
			name:      "Style matches the filter set",
			prompt:    samplePrompt(),
			selection: Selection{Style: []string{"ghibli"}},
			expected:  true,
		},
		{
			name:      "Style falls back to tags",
			prompt:    samplePrompt(),
			selection: Selection{Style: []string{"anime"}},
			expected:  true,
		},
		{
			name:      "Style falls back to the title",
			prompt:    samplePrompt(),
			selection: Selection{Style: []string{"Ghibli Couple"}},
			expected:  true,
		},
		{
			name:      "Unmatched style rejects",
			prompt:    samplePrompt(),
			selection: Selection{Style: []string{"pixar"}},
			expected:  false,
		},
		{
			name:      "Any selected style is enough",
			prompt:    samplePrompt(),
			selection: Selection{Style: []string{"pixar", "ghibli"}},
			expected:  true,
		},
		{
			name:      "Pose falls back to the description",
			prompt:    samplePrompt(),
			selection: Selection{Pose: []string{"standing"}},
			expected:  true,
		},
		{
			name:      "Background hyphen matches spaced description text",
			prompt:    samplePrompt(),
			selection: Selection{Background: []string{"indian-temple"}},
			expected:  true,
		},
		{
			name: "Background falls back to description with spaces",
			prompt: &Prompt{
				Description: "Portrait against an indian temple wall",
			},
			selection: Selection{Background: []string{"indian-temple"}},
			expected:  true,
		},
		{
			name:      "Combined selection requires every dimension",
			prompt:    samplePrompt(),
			selection: Selection{PrimaryCategory: "couple", Style: []string{"ghibli"}, Background: []string{"city"}},
			expected:  false,
		},
		{
			name: "God filter applies under with-god",
			prompt: &Prompt{
				Description: "Child blessed by the divine",
				Filters:     FilterSet{PrimaryCategory: "with-god", God: "krishna"},
			},
			selection: Selection{PrimaryCategory: "with-god", God: "krishna"},
			expected:  true,
		},
		{
			name: "God filter rejects a different god",
			prompt: &Prompt{
				Description: "Child blessed by the divine",
				Filters:     FilterSet{PrimaryCategory: "with-god", God: "krishna"},
			},
			selection: Selection{PrimaryCategory: "with-god", God: "shiva"},
			expected:  false,
		},
		{
			name: "God filter falls back to the description",
			prompt: &Prompt{
				Description: "Standing beside sai baba in a temple",
				Filters:     FilterSet{PrimaryCategory: "with-god"},
			},
			selection: Selection{PrimaryCategory: "with-god", God: "sai-baba"},
			expected:  true,
		},
		{
			name:      "God filter is ignored outside with-god",
			prompt:    samplePrompt(),
			selection: Selection{PrimaryCategory: "couple", God: "krishna"},
			expected:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MatchesFilters(tt.prompt, tt.selection))
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		expected string
	}{
		{"Simple title", "Ghibli Couple Portrait", "ghibli-couple-portrait"},
		{"Special characters collapse", "Baby & God: Krishna!", "baby-god-krishna"},
		{"Leading and trailing separators trimmed", "  --Hello World--  ", "hello-world"},
		{"Already a slug", "with-god", "with-god"},
		{"Digits survive", "Top 10 Prompts 2025", "top-10-prompts-2025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.title))
		})
	}
}

func TestNormalizeSlug(t *testing.T) {
	assert.Equal(t, "my-prompt", NormalizeSlug("  My-Prompt  "))
	assert.Equal(t, "", NormalizeSlug("   "))
}
