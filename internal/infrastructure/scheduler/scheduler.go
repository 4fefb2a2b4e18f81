package scheduler

import (
	"context"
	"time"

	"github.com/Sachin1yadav/aitrendpromt/internal/domain/analytics"
	"github.com/Sachin1yadav/aitrendpromt/internal/domain/prompt"
	"github.com/Sachin1yadav/aitrendpromt/pkg/logger"
	"go.uber.org/zap"
)

const (
	trendWindowDays = 7
	trendTopN       = 50
)

// Scheduler recomputes catalog trend ranks from the click stream. Prompts
// with the most prompt_click events over the trailing window get the lowest
// (best) rank numbers; everything else is reset to zero.
type Scheduler struct {
	analyticsRepo analytics.Repository
	promptRepo    prompt.Repository
	logger        *logger.Logger

	done chan struct{}
}

func NewScheduler(analyticsRepo analytics.Repository, promptRepo prompt.Repository, logger *logger.Logger) *Scheduler {
	return &Scheduler{
		analyticsRepo: analyticsRepo,
		promptRepo:    promptRepo,
		logger:        logger,
		done:          make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	// Run immediately at startup
	s.runTrendRankUpdate()

	// Calculate time until next midnight
	now := time.Now()
	nextMidnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
	timeUntilMidnight := nextMidnight.Sub(now)

	s.logger.Info("Trend rank scheduler initialized",
		zap.Time("current_time", now),
		zap.Time("next_run", nextMidnight),
		zap.Duration("time_until_next_run", timeUntilMidnight),
	)

	go func() {
		timer := time.NewTimer(timeUntilMidnight)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-s.done:
			return
		}

		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			s.runTrendRankUpdate()
			select {
			case <-ticker.C:
			case <-s.done:
				return
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	close(s.done)
}

func (s *Scheduler) runTrendRankUpdate() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	startTime := time.Now()
	s.logger.Info("Starting trend rank update", zap.Time("start_time", startTime))

	since := startTime.UTC().AddDate(0, 0, -trendWindowDays)
	clicks, err := s.analyticsRepo.PromptClicksSince(ctx, since, trendTopN)
	if err != nil {
		s.logger.Error("Failed to load prompt click counts", zap.Error(err))
		return
	}

	ranked := make(map[string]bool, len(clicks))
	updated := 0
	for i, row := range clicks {
		if row.Slug == "" {
			continue
		}
		ranked[row.Slug] = true
		if err := s.promptRepo.UpdateTrendRank(ctx, row.Slug, i+1); err != nil {
			s.logger.Error("Failed to update trend rank",
				zap.String("slug", row.Slug),
				zap.Error(err),
			)
			continue
		}
		updated++
	}

	// Clear stale ranks on prompts that fell out of the window.
	slugs, err := s.promptRepo.AllSlugs(ctx)
	if err != nil {
		s.logger.Error("Failed to list slugs for rank reset", zap.Error(err))
	} else {
		for _, slug := range slugs {
			if ranked[slug] {
				continue
			}
			if err := s.promptRepo.UpdateTrendRank(ctx, slug, 0); err != nil {
				s.logger.Error("Failed to reset trend rank",
					zap.String("slug", slug),
					zap.Error(err),
				)
			}
		}
	}

	s.logger.Info("Completed trend rank update",
		zap.Int("ranked_prompts", updated),
		zap.Duration("duration", time.Since(startTime)),
	)
}
