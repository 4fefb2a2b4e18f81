package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	topLimit       = 10
	dailyStatsDays = 30
)

type Service interface {
	Track(ctx context.Context, input TrackInput) error
	Stats(ctx context.Context, filter StatsFilter) (*Stats, error)
	Recent(ctx context.Context, limit uint64) ([]Event, error)
}

// TrackInput is a client-emitted event before server stamping. UserAgent and
// IPAddress come from request metadata, never from the request body.
type TrackInput struct {
	EventType string
	Page      string
	Referrer  *string
	EventData EventData
	SessionID string
	UserAgent string
	IPAddress string
}

type service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger, now: time.Now}
}

// Track validates and stores one event. Validation failures are returned so
// the handler can reject the request; the handler decides how storage
// failures surface (they must never reach the client as errors).
func (s *service) Track(ctx context.Context, input TrackInput) error {
	event := &Event{
		EventID:   uuid.New(),
		EventType: EventType(input.EventType),
		Page:      input.Page,
		Referrer:  input.Referrer,
		UserAgent: input.UserAgent,
		IPAddress: input.IPAddress,
		EventData: input.EventData,
		SessionID: input.SessionID,
		Timestamp: s.now().UTC(),
	}

	if err := event.Validate(); err != nil {
		return err
	}

	if err := s.repo.Insert(ctx, event); err != nil {
		return err
	}

	s.logger.Debug("event tracked",
		zap.String("event_type", input.EventType),
		zap.String("page", input.Page),
	)
	return nil
}

// Stats computes the full aggregation response in one call. The daily series
// always covers the trailing 30 days regardless of the requested window.
func (s *service) Stats(ctx context.Context, filter StatsFilter) (*Stats, error) {
	totalEvents, err := s.repo.TotalEvents(ctx, filter)
	if err != nil {
		return nil, err
	}

	eventsByType, err := s.repo.CountsByType(ctx, filter)
	if err != nil {
		return nil, err
	}

	pageViews, err := s.repo.TopPages(ctx, filter, topLimit)
	if err != nil {
		return nil, err
	}

	topPrompts, err := s.repo.TopPrompts(ctx, filter, topLimit)
	if err != nil {
		return nil, err
	}

	instagramClicks, err := s.repo.InstagramClicks(ctx, filter)
	if err != nil {
		return nil, err
	}

	topReferrers, err := s.repo.TopReferrers(ctx, filter, topLimit)
	if err != nil {
		return nil, err
	}

	since := s.now().UTC().AddDate(0, 0, -dailyStatsDays)
	dailyStats, err := s.repo.DailyCounts(ctx, filter, since)
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalEvents:     totalEvents,
		EventsByType:    eventsByType,
		PageViews:       pageViews,
		TopPrompts:      topPrompts,
		InstagramClicks: instagramClicks,
		TopReferrers:    topReferrers,
		DailyStats:      dailyStats,
	}, nil
}

func (s *service) Recent(ctx context.Context, limit uint64) ([]Event, error) {
	if limit == 0 {
		limit = 50
	}
	return s.repo.Recent(ctx, limit)
}
