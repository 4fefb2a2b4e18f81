package analytics

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// EventType tags a recorded user interaction.
type EventType string

const (
	EventPageView       EventType = "page_view"
	EventPromptClick    EventType = "prompt_click"
	EventButtonClick    EventType = "button_click"
	EventInstagramClick EventType = "instagram_click"
	EventSearch         EventType = "search"
	EventFilterApply    EventType = "filter_apply"
	EventCopyPrompt     EventType = "copy_prompt"
	EventDownloadImage  EventType = "download_image"
)

// EventTypes lists every valid event type, for validation messages.
var EventTypes = []EventType{
	EventPageView,
	EventPromptClick,
	EventButtonClick,
	EventInstagramClick,
	EventSearch,
	EventFilterApply,
	EventCopyPrompt,
	EventDownloadImage,
}

func (t EventType) IsValid() bool {
	for _, valid := range EventTypes {
		if t == valid {
			return true
		}
	}
	return false
}

// EventData is the per-type payload of an event. Which fields are meaningful
// depends on the event type: prompt_click carries the prompt fields, search
// carries SearchQuery, instagram_click carries InstagramLocation, and so on.
// Unused fields stay empty and are stored as empty strings.
type EventData struct {
	PromptSlug        string `json:"promptSlug,omitempty"`
	PromptTitle       string `json:"promptTitle,omitempty"`
	PromptCategory    string `json:"promptCategory,omitempty"`
	ButtonName        string `json:"buttonName,omitempty"`
	ButtonLocation    string `json:"buttonLocation,omitempty"`
	InstagramLocation string `json:"instagramLocation,omitempty"`
	SearchQuery       string `json:"searchQuery,omitempty"`
	FilterType        string `json:"filterType,omitempty"`
	FilterValue       string `json:"filterValue,omitempty"`
	ActionType        string `json:"actionType,omitempty"`
	ResourceType      string `json:"resourceType,omitempty"`
	PageName          string `json:"pageName,omitempty"`
}

// Event is a single recorded interaction. Events are immutable once written;
// UserAgent, IPAddress and Timestamp are stamped server-side and never trusted
// from the client.
type Event struct {
	EventID   uuid.UUID `json:"eventId"`
	EventType EventType `json:"eventType"`
	Page      string    `json:"page"`
	Referrer  *string   `json:"referrer"`
	UserAgent string    `json:"userAgent"`
	IPAddress string    `json:"ipAddress"`
	EventData EventData `json:"eventData"`
	SessionID string    `json:"sessionId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Domain errors
var (
	ErrMissingFields    = errors.New("eventType and page are required")
	ErrUnknownEventType = errors.New("unknown event type")
)

// Validate enforces the ingestion contract: eventType and page are required
// and eventType must belong to the closed enum.
func (e *Event) Validate() error {
	if e.EventType == "" || e.Page == "" {
		return ErrMissingFields
	}
	if !e.EventType.IsValid() {
		return ErrUnknownEventType
	}
	return nil
}

// StatsFilter bounds an aggregation query. Zero times mean an open end.
type StatsFilter struct {
	Start            time.Time
	End              time.Time
	EventType        EventType
	ExcludeLocalhost bool
}

// Aggregation result rows.

type TypeCount struct {
	EventType string `json:"eventType"`
	Count     uint64 `json:"count"`
}

type PageCount struct {
	Page  string `json:"page"`
	Count uint64 `json:"count"`
}

type PromptCount struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
	Count uint64 `json:"count"`
}

type LocationCount struct {
	Location string `json:"location"`
	Count    uint64 `json:"count"`
}

type ReferrerCount struct {
	Referrer string `json:"referrer"`
	Count    uint64 `json:"count"`
}

type DailyCount struct {
	Date  string `json:"date"`
	Count uint64 `json:"count"`
}

// Stats is the one-shot aggregation response of the stats endpoint.
type Stats struct {
	TotalEvents     uint64          `json:"totalEvents"`
	EventsByType    []TypeCount     `json:"eventsByType"`
	PageViews       []PageCount     `json:"pageViews"`
	TopPrompts      []PromptCount   `json:"topPrompts"`
	InstagramClicks []LocationCount `json:"instagramClicks"`
	TopReferrers    []ReferrerCount `json:"topReferrers"`
	DailyStats      []DailyCount    `json:"dailyStats"`
}
