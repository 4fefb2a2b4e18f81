package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Sachin1yadav/aitrendpromt/internal/infrastructure/persistence/clickhouse"
)

type Repository interface {
	Insert(ctx context.Context, event *Event) error
	TotalEvents(ctx context.Context, filter StatsFilter) (uint64, error)
	CountsByType(ctx context.Context, filter StatsFilter) ([]TypeCount, error)
	TopPages(ctx context.Context, filter StatsFilter, limit uint64) ([]PageCount, error)
	TopPrompts(ctx context.Context, filter StatsFilter, limit uint64) ([]PromptCount, error)
	InstagramClicks(ctx context.Context, filter StatsFilter) ([]LocationCount, error)
	TopReferrers(ctx context.Context, filter StatsFilter, limit uint64) ([]ReferrerCount, error)
	DailyCounts(ctx context.Context, filter StatsFilter, since time.Time) ([]DailyCount, error)
	Recent(ctx context.Context, limit uint64) ([]Event, error)
	PromptClicksSince(ctx context.Context, since time.Time, limit uint64) ([]PromptCount, error)
}

type repository struct {
	db *clickhouse.Client
}

func NewRepository(db *clickhouse.Client) Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, event *Event) error {
	const query = `
		INSERT INTO analytics_events (
			event_id, event_type, page, referrer, user_agent, ip_address,
			session_id, timestamp, prompt_slug, prompt_title, prompt_category,
			button_name, button_location, instagram_location, search_query,
			filter_type, filter_value, action_type, resource_type, page_name
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	batch, err := r.db.Conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare event insert: %w", err)
	}

	d := event.EventData
	if err := batch.Append(
		event.EventID,
		string(event.EventType),
		event.Page,
		event.Referrer,
		event.UserAgent,
		event.IPAddress,
		event.SessionID,
		event.Timestamp,
		d.PromptSlug,
		d.PromptTitle,
		d.PromptCategory,
		d.ButtonName,
		d.ButtonLocation,
		d.InstagramLocation,
		d.SearchQuery,
		d.FilterType,
		d.FilterValue,
		d.ActionType,
		d.ResourceType,
		d.PageName,
	); err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

// loopbackPatterns flags traffic originating from a developer machine.
var loopbackPatterns = []string{"localhost", "127.0.0.1", "::1"}

// whereClause builds the WHERE fragment shared by all aggregation queries.
// The localhost exclusion drops an event when any of referrer, ip_address or
// page indicates loopback origin, while keeping null referrers (direct
// traffic).
func whereClause(filter StatsFilter) (string, []interface{}) {
	conditions := []string{"1 = 1"}
	var args []interface{}

	if !filter.Start.IsZero() {
		conditions = append(conditions, "timestamp >= ?")
		args = append(args, filter.Start)
	}
	if !filter.End.IsZero() {
		conditions = append(conditions, "timestamp <= ?")
		args = append(args, filter.End)
	}
	if filter.EventType != "" {
		conditions = append(conditions, "event_type = ?")
		args = append(args, string(filter.EventType))
	}
	if filter.ExcludeLocalhost {
		patterns := fmt.Sprintf("['%s']", strings.Join(loopbackPatterns, "','"))
		conditions = append(conditions,
			fmt.Sprintf("(referrer IS NULL OR multiSearchAnyCaseInsensitive(referrer, %s) = 0)", patterns),
			fmt.Sprintf("multiSearchAnyCaseInsensitive(ip_address, %s) = 0", patterns),
			fmt.Sprintf("multiSearchAnyCaseInsensitive(page, %s) = 0", patterns),
		)
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}

func (r *repository) TotalEvents(ctx context.Context, filter StatsFilter) (uint64, error) {
	where, args := whereClause(filter)
	query := fmt.Sprintf(`SELECT count() FROM analytics_events %s`, where)

	var total uint64
	if err := r.db.Conn.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return total, nil
}

func (r *repository) CountsByType(ctx context.Context, filter StatsFilter) ([]TypeCount, error) {
	where, args := whereClause(filter)
	query := fmt.Sprintf(`
		SELECT event_type, count() AS event_count
		FROM analytics_events
		%s
		GROUP BY event_type
		ORDER BY event_count DESC, event_type ASC
	`, where)

	rows, err := r.db.Conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query counts by type: %w", err)
	}
	defer rows.Close()

	var results []TypeCount
	for rows.Next() {
		var tc TypeCount
		if err := rows.Scan(&tc.EventType, &tc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan type count: %w", err)
		}
		results = append(results, tc)
	}
	return results, rows.Err()
}

func (r *repository) TopPages(ctx context.Context, filter StatsFilter, limit uint64) ([]PageCount, error) {
	filter.EventType = EventPageView
	where, args := whereClause(filter)
	query := fmt.Sprintf(`
		SELECT page, count() AS view_count
		FROM analytics_events
		%s
		GROUP BY page
		ORDER BY view_count DESC, page ASC
		LIMIT ?
	`, where)
	args = append(args, limit)

	rows, err := r.db.Conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query top pages: %w", err)
	}
	defer rows.Close()

	var results []PageCount
	for rows.Next() {
		var pc PageCount
		if err := rows.Scan(&pc.Page, &pc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan page count: %w", err)
		}
		results = append(results, pc)
	}
	return results, rows.Err()
}

func (r *repository) TopPrompts(ctx context.Context, filter StatsFilter, limit uint64) ([]PromptCount, error) {
	filter.EventType = EventPromptClick
	where, args := whereClause(filter)
	query := fmt.Sprintf(`
		SELECT prompt_slug, any(prompt_title) AS title, count() AS click_count
		FROM analytics_events
		%s AND prompt_slug != ''
		GROUP BY prompt_slug
		ORDER BY click_count DESC, prompt_slug ASC
		LIMIT ?
	`, where)
	args = append(args, limit)

	rows, err := r.db.Conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query top prompts: %w", err)
	}
	defer rows.Close()

	var results []PromptCount
	for rows.Next() {
		var pc PromptCount
		if err := rows.Scan(&pc.Slug, &pc.Title, &pc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan prompt count: %w", err)
		}
		results = append(results, pc)
	}
	return results, rows.Err()
}

func (r *repository) InstagramClicks(ctx context.Context, filter StatsFilter) ([]LocationCount, error) {
	filter.EventType = EventInstagramClick
	where, args := whereClause(filter)
	query := fmt.Sprintf(`
		SELECT instagram_location, count() AS click_count
		FROM analytics_events
		%s
		GROUP BY instagram_location
		ORDER BY click_count DESC, instagram_location ASC
	`, where)

	rows, err := r.db.Conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query instagram clicks: %w", err)
	}
	defer rows.Close()

	var results []LocationCount
	for rows.Next() {
		var lc LocationCount
		if err := rows.Scan(&lc.Location, &lc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan location count: %w", err)
		}
		results = append(results, lc)
	}
	return results, rows.Err()
}

func (r *repository) TopReferrers(ctx context.Context, filter StatsFilter, limit uint64) ([]ReferrerCount, error) {
	where, args := whereClause(filter)
	query := fmt.Sprintf(`
		SELECT referrer, count() AS ref_count
		FROM analytics_events
		%s AND referrer IS NOT NULL
		GROUP BY referrer
		ORDER BY ref_count DESC, referrer ASC
		LIMIT ?
	`, where)
	args = append(args, limit)

	rows, err := r.db.Conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query top referrers: %w", err)
	}
	defer rows.Close()

	var results []ReferrerCount
	for rows.Next() {
		var referrer *string
		var count uint64
		if err := rows.Scan(&referrer, &count); err != nil {
			return nil, fmt.Errorf("failed to scan referrer count: %w", err)
		}
		if referrer == nil {
			continue
		}
		results = append(results, ReferrerCount{Referrer: *referrer, Count: count})
	}
	return results, rows.Err()
}

func (r *repository) DailyCounts(ctx context.Context, filter StatsFilter, since time.Time) ([]DailyCount, error) {
	where, args := whereClause(filter)
	query := fmt.Sprintf(`
		SELECT toDate(timestamp) AS day, count() AS event_count
		FROM analytics_events
		%s AND timestamp >= ?
		GROUP BY day
		ORDER BY day ASC
	`, where)
	args = append(args, since)

	rows, err := r.db.Conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily counts: %w", err)
	}
	defer rows.Close()

	var results []DailyCount
	for rows.Next() {
		var day time.Time
		var count uint64
		if err := rows.Scan(&day, &count); err != nil {
			return nil, fmt.Errorf("failed to scan daily count: %w", err)
		}
		results = append(results, DailyCount{Date: day.Format("2006-01-02"), Count: count})
	}
	return results, rows.Err()
}

func (r *repository) Recent(ctx context.Context, limit uint64) ([]Event, error) {
	const query = `
		SELECT
			event_id, event_type, page, referrer, user_agent, ip_address,
			session_id, timestamp, prompt_slug, prompt_title, prompt_category,
			button_name, button_location, instagram_location, search_query,
			filter_type, filter_value, action_type, resource_type, page_name
		FROM analytics_events
		ORDER BY timestamp DESC
		LIMIT ?
	`
	rows, err := r.db.Conn.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent events: %w", err)
	}
	defer rows.Close()

	var results []Event
	for rows.Next() {
		var e Event
		var eventType string
		if err := rows.Scan(
			&e.EventID, &eventType, &e.Page, &e.Referrer, &e.UserAgent, &e.IPAddress,
			&e.SessionID, &e.Timestamp,
			&e.EventData.PromptSlug, &e.EventData.PromptTitle, &e.EventData.PromptCategory,
			&e.EventData.ButtonName, &e.EventData.ButtonLocation, &e.EventData.InstagramLocation,
			&e.EventData.SearchQuery, &e.EventData.FilterType, &e.EventData.FilterValue,
			&e.EventData.ActionType, &e.EventData.ResourceType, &e.EventData.PageName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		e.EventType = EventType(eventType)
		results = append(results, e)
	}
	return results, rows.Err()
}

func (r *repository) PromptClicksSince(ctx context.Context, since time.Time, limit uint64) ([]PromptCount, error) {
	return r.TopPrompts(ctx, StatsFilter{Start: since}, limit)
}
