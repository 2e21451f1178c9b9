// Package hevy is a minimal client for the Hevy public API.
package hevy

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/claude/hevy2notion/internal/models"
)

// DefaultBaseURL is the Hevy API host.
const DefaultBaseURL = "https://api.hevyapp.com"

// StatusError is returned when Hevy answers with a non-200 status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("hevy: status %d: %s", e.StatusCode, e.Body)
}

// Client calls the Hevy API with an api-key header.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a Client. An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// LatestWorkouts fetches the first page of workouts with a page size of one,
// which holds the most recently logged workout.
func (c *Client) LatestWorkouts(ctx context.Context) (*models.WorkoutsPage, error) {
	params := url.Values{}
	params.Set("page", "1")
	params.Set("pageSize", "1")

	body, err := c.get(ctx, "/v1/workouts", params)
	if err != nil {
		return nil, err
	}

	var page models.WorkoutsPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("hevy: decode workouts: %w", err)
	}
	return &page, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("hevy: create request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("hevy: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("hevy: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
