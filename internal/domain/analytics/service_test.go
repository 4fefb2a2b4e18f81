package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRepository struct {
	inserted  []*Event
	insertErr error

	total           uint64
	byType          []TypeCount
	topPages        []PageCount
	topPrompts      []PromptCount
	instagramClicks []LocationCount
	topReferrers    []ReferrerCount
	dailyCounts     []DailyCount
	recent          []Event

	dailySince time.Time
}

func (r *fakeRepository) Insert(ctx context.Context, event *Event) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, event)
	return nil
}

func (r *fakeRepository) TotalEvents(ctx context.Context, filter StatsFilter) (uint64, error) {
	return r.total, nil
}

func (r *fakeRepository) CountsByType(ctx context.Context, filter StatsFilter) ([]TypeCount, error) {
	return r.byType, nil
}

func (r *fakeRepository) TopPages(ctx context.Context, filter StatsFilter, limit uint64) ([]PageCount, error) {
	return r.topPages, nil
}

func (r *fakeRepository) TopPrompts(ctx context.Context, filter StatsFilter, limit uint64) ([]PromptCount, error) {
	return r.topPrompts, nil
}

func (r *fakeRepository) InstagramClicks(ctx context.Context, filter StatsFilter) ([]LocationCount, error) {
	return r.instagramClicks, nil
}

func (r *fakeRepository) TopReferrers(ctx context.Context, filter StatsFilter, limit uint64) ([]ReferrerCount, error) {
	return r.topReferrers, nil
}

func (r *fakeRepository) DailyCounts(ctx context.Context, filter StatsFilter, since time.Time) ([]DailyCount, error) {
	r.dailySince = since
	return r.dailyCounts, nil
}

func (r *fakeRepository) Recent(ctx context.Context, limit uint64) ([]Event, error) {
	if limit < uint64(len(r.recent)) {
		return r.recent[:limit], nil
	}
	return r.recent, nil
}

func (r *fakeRepository) PromptClicksSince(ctx context.Context, since time.Time, limit uint64) ([]PromptCount, error) {
	return r.topPrompts, nil
}

func newTestService(repo *fakeRepository, now time.Time) Service {
	svc := NewService(repo, zap.NewNop()).(*service)
	svc.now = func() time.Time { return now }
	return svc
}

func TestEventValidate(t *testing.T) {
	tests := []struct {
		name     string
		event    Event
		expected error
	}{
		{
			name:     "valid event",
			event:    Event{EventType: EventPageView, Page: "/prompts"},
			expected: nil,
		},
		{
			name:     "missing event type",
			event:    Event{Page: "/prompts"},
			expected: ErrMissingFields,
		},
		{
			name:     "missing page",
			event:    Event{EventType: EventPageView},
			expected: ErrMissingFields,
		},
		{
			name:     "unknown event type",
			event:    Event{EventType: "hover", Page: "/prompts"},
			expected: ErrUnknownEventType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.event.Validate()
			if tt.expected == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.expected)
			}
		})
	}
}

func TestServiceTrack(t *testing.T) {
	now := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)

	t.Run("stamps id and timestamp server side", func(t *testing.T) {
		repo := &fakeRepository{}
		svc := newTestService(repo, now)

		err := svc.Track(context.Background(), TrackInput{
			EventType: "prompt_click",
			Page:      "/prompts/ghibli-couple",
			UserAgent: "Mozilla/5.0",
			IPAddress: "198.51.100.7",
			EventData: EventData{PromptSlug: "ghibli-couple"},
		})
		require.NoError(t, err)
		require.Len(t, repo.inserted, 1)

		stored := repo.inserted[0]
		assert.NotEmpty(t, stored.EventID)
		assert.Equal(t, now, stored.Timestamp)
		assert.Equal(t, EventPromptClick, stored.EventType)
		assert.Equal(t, "ghibli-couple", stored.EventData.PromptSlug)
	})

	t.Run("rejects invalid events before storage", func(t *testing.T) {
		repo := &fakeRepository{}
		svc := newTestService(repo, now)

		err := svc.Track(context.Background(), TrackInput{EventType: "hover", Page: "/"})
		assert.ErrorIs(t, err, ErrUnknownEventType)
		assert.Empty(t, repo.inserted)
	})

	t.Run("propagates storage errors to the caller", func(t *testing.T) {
		repo := &fakeRepository{insertErr: errors.New("connection refused")}
		svc := newTestService(repo, now)

		err := svc.Track(context.Background(), TrackInput{EventType: "page_view", Page: "/"})
		assert.Error(t, err)
	})
}

func TestServiceStats(t *testing.T) {
	now := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)
	repo := &fakeRepository{
		total:  42,
		byType: []TypeCount{{EventType: "page_view", Count: 30}, {EventType: "prompt_click", Count: 12}},
		topPages: []PageCount{
			{Page: "/", Count: 20},
			{Page: "/prompts", Count: 10},
		},
		topPrompts:      []PromptCount{{Slug: "ghibli-couple", Title: "Ghibli Couple", Count: 8}},
		instagramClicks: []LocationCount{{Location: "footer", Count: 3}},
		topReferrers:    []ReferrerCount{{Referrer: "https://google.com", Count: 5}},
		dailyCounts:     []DailyCount{{Date: "2025-08-19", Count: 7}, {Date: "2025-08-20", Count: 9}},
	}
	svc := newTestService(repo, now)

	stats, err := svc.Stats(context.Background(), StatsFilter{})
	require.NoError(t, err)

	assert.Equal(t, uint64(42), stats.TotalEvents)
	assert.Len(t, stats.EventsByType, 2)
	assert.Equal(t, "/", stats.PageViews[0].Page)
	assert.Equal(t, "ghibli-couple", stats.TopPrompts[0].Slug)
	assert.Equal(t, uint64(3), stats.InstagramClicks[0].Count)
	assert.Equal(t, "https://google.com", stats.TopReferrers[0].Referrer)
	assert.Len(t, stats.DailyStats, 2)

	// The daily series always covers the trailing 30 days.
	assert.Equal(t, now.AddDate(0, 0, -30), repo.dailySince)
}

func TestServiceRecent(t *testing.T) {
	repo := &fakeRepository{recent: make([]Event, 60)}
	svc := NewService(repo, zap.NewNop())

	events, err := svc.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, events, 50)

	events, err = svc.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, events, 10)
}
