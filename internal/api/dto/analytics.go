package dto

import "github.com/Sachin1yadav/aitrendpromt/internal/domain/analytics"

// TrackEventRequest is the public ingestion payload. userAgent and ipAddress
// are intentionally absent; both are derived from the request itself.
type TrackEventRequest struct {
	EventType string              `json:"eventType"`
	Page      string              `json:"page"`
	Referrer  *string             `json:"referrer"`
	EventData analytics.EventData `json:"eventData"`
	SessionID string              `json:"sessionId"`
}

type TrackEventResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type StatsFilterRequest struct {
	StartDate        string `form:"startDate" example:"2025-08-01"`
	EndDate          string `form:"endDate" example:"2025-08-29"`
	EventType        string `form:"eventType" example:"prompt_click"`
	ExcludeLocalhost bool   `form:"excludeLocalhost" example:"true"`
}

type StatsResponse struct {
	Success bool             `json:"success"`
	Data    *analytics.Stats `json:"data"`
}

type RecentEventsRequest struct {
	Limit uint64 `form:"limit" example:"50"`
}

type RecentEventsResponse struct {
	Success bool              `json:"success"`
	Count   int               `json:"count"`
	Data    []analytics.Event `json:"data"`
}
