// Package hubapi is the typed HTTP client for the family hub, the remote
// service that owns all dashboard data. The client returns well-formed
// records or an error; it never repairs malformed payloads.
package hubapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/lomoval/famboard/internal/model"
)

var (
	ErrUnauthorized = errors.New("hub rejected credentials")
	ErrNotFound     = errors.New("hub resource not found")
)

type Config struct {
	BaseURL        string
	Token          string
	TimeoutSeconds int
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

func New(config Config) *Client {
	timeout := time.Duration(config.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(strings.TrimSpace(config.BaseURL), "/"),
		token:      strings.TrimSpace(config.Token),
	}
}

// Events returns every event visible to the authenticated user, in the
// order the hub serves them. That order is preserved all the way through
// filtering and rendering.
func (c *Client) Events(ctx context.Context) ([]model.CalendarEvent, error) {
	var out []model.CalendarEvent
	if err := c.do(ctx, http.MethodGet, "/api/v1/events", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Families(ctx context.Context) ([]model.FamilySummary, error) {
	var out []model.FamilySummary
	if err := c.do(ctx, http.MethodGet, "/api/v1/families", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) FamilyMembers(ctx context.Context, familyID string) ([]model.FamilyMember, error) {
	var out []model.FamilyMember
	path := "/api/v1/families/" + url.PathEscape(familyID) + "/members"
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Availability fetches the hub's availability matrix for one family. The
// hub computes conflicts and per-slot statuses; the dashboard only groups
// the slots for display.
func (c *Client) Availability(ctx context.Context, familyID string, start, end time.Time, granularityMinutes int) ([]model.AvailabilitySlot, error) {
	q := url.Values{}
	q.Set("startDate", start.Format(time.RFC3339))
	q.Set("endDate", end.Format(time.RFC3339))
	q.Set("granularityMinutes", strconv.Itoa(granularityMinutes))
	path := "/api/v1/families/" + url.PathEscape(familyID) + "/availability?" + q.Encode()

	var out []model.AvailabilitySlot
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateEvent(ctx context.Context, e model.CalendarEvent) (model.CalendarEvent, error) {
	var out model.CalendarEvent
	if err := c.do(ctx, http.MethodPost, "/api/v1/events", e, &out); err != nil {
		return model.CalendarEvent{}, err
	}
	return out, nil
}

func (c *Client) UpdateEvent(ctx context.Context, id string, e model.CalendarEvent) error {
	return c.do(ctx, http.MethodPut, "/api/v1/events/"+url.PathEscape(id), e, nil)
}

func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/events/"+url.PathEscape(id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("hub request %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 300:
		return fmt.Errorf("hub returned %d for %s %s", resp.StatusCode, method, path)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode hub response: %w", err)
	}
	return nil
}
