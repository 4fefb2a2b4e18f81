package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Sachin1yadav/aitrendpromt/internal/api/dto"
	"github.com/Sachin1yadav/aitrendpromt/internal/domain/analytics"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const statsDateLayout = "2006-01-02"

// parseStatsDate accepts either a full RFC3339 timestamp or a bare date.
// The second return reports whether only a date was given.
func parseStatsDate(value string) (time.Time, bool, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, false, nil
	}
	t, err := time.Parse(statsDateLayout, value)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}

type AnalyticsHandler struct {
	service     analytics.Service
	logger      *zap.Logger
	environment string
}

func NewAnalyticsHandler(service analytics.Service, logger *zap.Logger, environment string) *AnalyticsHandler {
	return &AnalyticsHandler{service: service, logger: logger, environment: environment}
}

// TrackEvent godoc
// @Summary Record an analytics event
// @Description Accepts a single interaction event. Storage failures are logged
// @Description but never surfaced as errors so a flaky pipeline cannot break the site.
// @Tags analytics
// @Accept json
// @Produce json
// @Param event body dto.TrackEventRequest true "Event payload"
// @Success 200 {object} dto.TrackEventResponse
// @Failure 400 {object} dto.TrackEventResponse "Invalid payload"
// @Router /api/analytics/track [post]
func (h *AnalyticsHandler) TrackEvent(c *gin.Context) {
	var req dto.TrackEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.TrackEventResponse{Success: false, Error: "invalid request body"})
		return
	}

	input := analytics.TrackInput{
		EventType: req.EventType,
		Page:      req.Page,
		Referrer:  req.Referrer,
		EventData: req.EventData,
		SessionID: req.SessionID,
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	}

	err := h.service.Track(c.Request.Context(), input)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, dto.TrackEventResponse{Success: true, Message: "Event recorded"})
	case errors.Is(err, analytics.ErrMissingFields):
		c.JSON(http.StatusBadRequest, dto.TrackEventResponse{Success: false, Error: analytics.ErrMissingFields.Error()})
	case errors.Is(err, analytics.ErrUnknownEventType):
		c.JSON(http.StatusBadRequest, dto.TrackEventResponse{
			Success: false,
			Error:   fmt.Sprintf("unknown event type %q, valid types: %v", req.EventType, analytics.EventTypes),
		})
	default:
		// Storage failures must not bubble up to the client.
		h.logger.Error("failed to store analytics event",
			zap.Error(err),
			zap.String("event_type", req.EventType),
			zap.String("page", req.Page),
		)
		resp := dto.TrackEventResponse{Success: true, Message: "Event received"}
		if h.environment != "production" {
			resp.Message = fmt.Sprintf("Event received, storage failed: %v", err)
		}
		c.JSON(http.StatusOK, resp)
	}
}

// GetStats godoc
// @Summary Aggregated analytics statistics
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param startDate query string false "Window start (RFC3339 or YYYY-MM-DD)"
// @Param endDate query string false "Window end, inclusive when date-only (RFC3339 or YYYY-MM-DD)"
// @Param eventType query string false "Restrict to one event type"
// @Param excludeLocalhost query bool false "Drop loopback traffic"
// @Success 200 {object} dto.StatsResponse
// @Router /api/analytics/stats [get]
func (h *AnalyticsHandler) GetStats(c *gin.Context) {
	var req dto.StatsFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	filter := analytics.StatsFilter{
		EventType:        analytics.EventType(req.EventType),
		ExcludeLocalhost: req.ExcludeLocalhost,
	}
	if req.EventType != "" && !filter.EventType.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "unknown event type"})
		return
	}
	if req.StartDate != "" {
		start, _, err := parseStatsDate(req.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "startDate must be RFC3339 or YYYY-MM-DD"})
			return
		}
		filter.Start = start
	}
	if req.EndDate != "" {
		end, dateOnly, err := parseStatsDate(req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "endDate must be RFC3339 or YYYY-MM-DD"})
			return
		}
		// A date-only end is inclusive, extend it to the last instant of the day.
		if dateOnly {
			end = end.Add(24*time.Hour - time.Nanosecond)
		}
		filter.End = end
	}

	stats, err := h.service.Stats(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("failed to compute analytics stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to compute stats"})
		return
	}

	c.JSON(http.StatusOK, dto.StatsResponse{Success: true, Data: stats})
}

// GetRecentEvents godoc
// @Summary Most recent raw events
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum number of events" default(50)
// @Success 200 {object} dto.RecentEventsResponse
// @Router /api/analytics/recent [get]
func (h *AnalyticsHandler) GetRecentEvents(c *gin.Context) {
	var req dto.RecentEventsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	events, err := h.service.Recent(c.Request.Context(), req.Limit)
	if err != nil {
		h.logger.Error("failed to fetch recent events", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to fetch events"})
		return
	}

	c.JSON(http.StatusOK, dto.RecentEventsResponse{
		Success: true,
		Count:   len(events),
		Data:    events,
	})
}
