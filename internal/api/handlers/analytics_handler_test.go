package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Sachin1yadav/aitrendpromt/internal/domain/analytics"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAnalyticsService struct {
	trackErr   error
	tracked    []analytics.TrackInput
	stats      *analytics.Stats
	statsErr   error
	lastFilter analytics.StatsFilter
}

func (s *fakeAnalyticsService) Track(ctx context.Context, input analytics.TrackInput) error {
	if s.trackErr != nil {
		return s.trackErr
	}
	s.tracked = append(s.tracked, input)
	return nil
}

func (s *fakeAnalyticsService) Stats(ctx context.Context, filter analytics.StatsFilter) (*analytics.Stats, error) {
	s.lastFilter = filter
	if s.statsErr != nil {
		return nil, s.statsErr
	}
	return s.stats, nil
}

func (s *fakeAnalyticsService) Recent(ctx context.Context, limit uint64) ([]analytics.Event, error) {
	return nil, nil
}

func newAnalyticsRouter(svc analytics.Service, mode string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewAnalyticsHandler(svc, zap.NewNop(), mode)
	router.POST("/api/analytics/track", handler.TrackEvent)
	router.GET("/api/analytics/stats", handler.GetStats)
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestTrackEvent(t *testing.T) {
	t.Run("accepts a valid event", func(t *testing.T) {
		svc := &fakeAnalyticsService{}
		router := newAnalyticsRouter(svc, "development")

		w := postJSON(router, "/api/analytics/track", `{"eventType":"page_view","page":"/prompts"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"success":true`)
		require.Len(t, svc.tracked, 1)
		assert.Equal(t, "page_view", svc.tracked[0].EventType)
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		svc := &fakeAnalyticsService{trackErr: analytics.ErrMissingFields}
		router := newAnalyticsRouter(svc, "development")

		w := postJSON(router, "/api/analytics/track", `{"page":"/prompts"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "required")
	})

	t.Run("rejects an unknown event type with the valid list", func(t *testing.T) {
		svc := &fakeAnalyticsService{trackErr: analytics.ErrUnknownEventType}
		router := newAnalyticsRouter(svc, "development")

		w := postJSON(router, "/api/analytics/track", `{"eventType":"hover","page":"/prompts"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "page_view")
	})

	t.Run("storage failure still returns success", func(t *testing.T) {
		svc := &fakeAnalyticsService{trackErr: errors.New("clickhouse down")}
		router := newAnalyticsRouter(svc, "development")

		w := postJSON(router, "/api/analytics/track", `{"eventType":"page_view","page":"/prompts"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"success":true`)
		assert.Contains(t, w.Body.String(), "storage failed")
	})

	t.Run("storage failure detail is hidden in production", func(t *testing.T) {
		svc := &fakeAnalyticsService{trackErr: errors.New("clickhouse down")}
		router := newAnalyticsRouter(svc, "production")

		w := postJSON(router, "/api/analytics/track", `{"eventType":"page_view","page":"/prompts"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "clickhouse")
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		svc := &fakeAnalyticsService{}
		router := newAnalyticsRouter(svc, "development")

		w := postJSON(router, "/api/analytics/track", `{"eventType":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetStats(t *testing.T) {
	t.Run("returns the aggregation payload", func(t *testing.T) {
		svc := &fakeAnalyticsService{stats: &analytics.Stats{TotalEvents: 7}}
		router := newAnalyticsRouter(svc, "development")

		req := httptest.NewRequest(http.MethodGet, "/api/analytics/stats", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"totalEvents":7`)
	})

	t.Run("accepts timestamp and date-only windows", func(t *testing.T) {
		svc := &fakeAnalyticsService{stats: &analytics.Stats{}}
		router := newAnalyticsRouter(svc, "development")

		req := httptest.NewRequest(http.MethodGet,
			"/api/analytics/stats?startDate=2025-08-01T12:30:00Z&endDate=2025-08-20", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, time.Date(2025, 8, 1, 12, 30, 0, 0, time.UTC), svc.lastFilter.Start)
		// A date-only end covers the whole day.
		assert.Equal(t, time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC).Add(24*time.Hour-time.Nanosecond), svc.lastFilter.End)
	})

	t.Run("rejects a malformed date", func(t *testing.T) {
		svc := &fakeAnalyticsService{stats: &analytics.Stats{}}
		router := newAnalyticsRouter(svc, "development")

		req := httptest.NewRequest(http.MethodGet, "/api/analytics/stats?startDate=20-08-2025", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects an unknown event type filter", func(t *testing.T) {
		svc := &fakeAnalyticsService{stats: &analytics.Stats{}}
		router := newAnalyticsRouter(svc, "development")

		req := httptest.NewRequest(http.MethodGet, "/api/analytics/stats?eventType=hover", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
