// Package client is a small Go consumer for the aitrendpromt API. Reads are
// cached in memory and degrade gracefully: a failed refresh falls back to a
// stale cached response before giving up, so a flaky backend renders an older
// catalog instead of an empty page.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	defaultTimeout = 10 * time.Second
	trackTimeout   = 5 * time.Second

	listMaxAge   = 2 * time.Minute
	detailMaxAge = 5 * time.Minute
	slugsMaxAge  = time.Hour
)

// Prompt mirrors the catalog's public JSON shape.
type Prompt struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Slug          string            `json:"slug"`
	Description   string            `json:"description"`
	Prompt        string            `json:"prompt"`
	BeforeImage   string            `json:"beforeImage"`
	AfterImage    string            `json:"afterImage"`
	ExampleImages []string          `json:"exampleImages"`
	ImgShouldUse  []string          `json:"imgShouldUse"`
	BestModel     string            `json:"bestModel"`
	ModelRatings  map[string]string `json:"modelRatings"`
	Tags          []string          `json:"tags"`
	Category      string            `json:"category"`
	Filters       FilterSet         `json:"filters"`
	TrendRank     int               `json:"trendRank"`
}

type FilterSet struct {
	PrimaryCategory string   `json:"primaryCategory,omitempty"`
	Style           []string `json:"style"`
	Pose            []string `json:"pose"`
	Background      []string `json:"background"`
	God             string   `json:"god,omitempty"`
}

// ListOptions narrows a catalog listing. Zero values are omitted from the
// query string.
type ListOptions struct {
	Category        string
	PrimaryCategory string
	Style           []string
	Pose            []string
	Background      []string
	God             string
	Search          string
}

// TrackEvent is a fire-and-forget analytics event.
type TrackEvent struct {
	EventType string            `json:"eventType"`
	Page      string            `json:"page"`
	Referrer  *string           `json:"referrer,omitempty"`
	EventData map[string]string `json:"eventData,omitempty"`
	SessionID string            `json:"sessionId,omitempty"`
}

type promptListEnvelope struct {
	Success bool     `json:"success"`
	Count   int      `json:"count"`
	Data    []Prompt `json:"data"`
}

type promptDetailEnvelope struct {
	Success bool   `json:"success"`
	Data    Prompt `json:"data"`
}

type slugListEnvelope struct {
	Success bool     `json:"success"`
	Count   int      `json:"count"`
	Data    []string `json:"data"`
}

type Client struct {
	baseURL     string
	adminSecret string
	httpClient  *http.Client
	cache       *fetchCache
	logger      *logrus.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithAdminSecret enables the admin write helpers.
func WithAdminSecret(secret string) Option {
	return func(c *Client) { c.adminSecret = secret }
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger replaces the default logger.
func WithLogger(l *logrus.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func New(baseURL string, opts ...Option) *Client {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		cache:      newFetchCache(),
		logger:     l,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Close stops the cache sweeper.
func (c *Client) Close() {
	c.cache.close()
}

// Prompts lists catalog prompts. On failure it returns an empty slice so
// callers can render without error handling.
func (c *Client) Prompts(ctx context.Context, opts ListOptions) []Prompt {
	path := "/api/prompts"
	if q := opts.encode(); q != "" {
		path += "?" + q
	}

	var envelope promptListEnvelope
	if err := c.getJSON(ctx, path, listMaxAge, &envelope); err != nil {
		c.logger.WithError(err).WithField("path", path).Warn("prompt listing unavailable")
		return []Prompt{}
	}
	return envelope.Data
}

// PromptBySlug fetches one prompt. It returns nil when the prompt does not
// exist or the backend is unreachable.
func (c *Client) PromptBySlug(ctx context.Context, slug string) *Prompt {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return nil
	}
	path := "/api/prompts/" + url.PathEscape(slug)

	var envelope promptDetailEnvelope
	if err := c.getJSON(ctx, path, detailMaxAge, &envelope); err != nil {
		c.logger.WithError(err).WithField("slug", slug).Warn("prompt detail unavailable")
		return nil
	}
	return &envelope.Data
}

// Slugs lists every prompt slug, for static page generation. On failure it
// returns an empty slice.
func (c *Client) Slugs(ctx context.Context) []string {
	var envelope slugListEnvelope
	if err := c.getJSON(ctx, "/api/prompts/slugs/all", slugsMaxAge, &envelope); err != nil {
		c.logger.WithError(err).Warn("slug listing unavailable")
		return []string{}
	}
	return envelope.Data
}

// Track sends an analytics event without blocking the caller. Failures are
// logged and dropped; tracking must never affect page rendering.
func (c *Client) Track(event TrackEvent) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), trackTimeout)
		defer cancel()

		body, err := json.Marshal(event)
		if err != nil {
			c.logger.WithError(err).Debug("failed to encode track event")
			return
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/analytics/track", bytes.NewReader(body))
		if err != nil {
			c.logger.WithError(err).Debug("failed to build track request")
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.logger.WithError(err).Debug("track request failed")
			return
		}
		defer resp.Body.Close()
		io.Copy(io.Discard, resp.Body)
	}()
}

// CreatePrompt creates a catalog entry through the admin API.
func (c *Client) CreatePrompt(ctx context.Context, input Prompt) (*Prompt, error) {
	var envelope promptDetailEnvelope
	if err := c.doAdmin(ctx, http.MethodPost, "/api/admin/prompts", input, &envelope); err != nil {
		return nil, err
	}
	c.cache.clear()
	return &envelope.Data, nil
}

// UpdatePrompt updates a catalog entry through the admin API.
func (c *Client) UpdatePrompt(ctx context.Context, slug string, input Prompt) (*Prompt, error) {
	var envelope promptDetailEnvelope
	path := "/api/admin/prompts/" + url.PathEscape(strings.ToLower(slug))
	if err := c.doAdmin(ctx, http.MethodPut, path, input, &envelope); err != nil {
		return nil, err
	}
	c.cache.clear()
	return &envelope.Data, nil
}

// DeletePrompt removes a catalog entry through the admin API.
func (c *Client) DeletePrompt(ctx context.Context, slug string) error {
	path := "/api/admin/prompts/" + url.PathEscape(strings.ToLower(slug))
	if err := c.doAdmin(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return err
	}
	c.cache.clear()
	return nil
}

// getJSON serves from cache when fresh, refreshes with retry otherwise, and
// falls back to a stale cached copy when the refresh fails.
func (c *Client) getJSON(ctx context.Context, path string, maxAge time.Duration, out interface{}) error {
	key := c.baseURL + path

	if cached, ok := c.cache.get(key); ok {
		return json.Unmarshal(cached, out)
	}

	var body []byte
	err := doWithRetry(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, key, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			io.Copy(io.Discard, resp.Body)
			return &httpStatusError{status: resp.StatusCode, url: key}
		}

		body, err = io.ReadAll(resp.Body)
		return err
	})
	if err != nil {
		if stale, ok := c.cache.getStale(key); ok {
			c.logger.WithError(err).WithField("path", path).Info("serving stale cached response")
			return json.Unmarshal(stale, out)
		}
		return err
	}

	c.cache.set(key, body, maxAge)
	return json.Unmarshal(body, out)
}

func (c *Client) doAdmin(ctx context.Context, method, path string, payload, out interface{}) error {
	if c.adminSecret == "" {
		return fmt.Errorf("admin secret not configured")
	}

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.adminSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("admin request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (o ListOptions) encode() string {
	values := url.Values{}
	if o.Category != "" {
		values.Set("category", o.Category)
	}
	if o.PrimaryCategory != "" {
		values.Set("primaryCategory", o.PrimaryCategory)
	}
	if len(o.Style) > 0 {
		values.Set("style", strings.Join(o.Style, ","))
	}
	if len(o.Pose) > 0 {
		values.Set("pose", strings.Join(o.Pose, ","))
	}
	if len(o.Background) > 0 {
		values.Set("background", strings.Join(o.Background, ","))
	}
	if o.God != "" {
		values.Set("god", o.God)
	}
	if o.Search != "" {
		values.Set("search", o.Search)
	}
	return values.Encode()
}
