// Package notion writes page properties and block children through the
// Notion REST API.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/claude/hevy2notion/internal/models"
)

const (
	// DefaultBaseURL is the Notion API host.
	DefaultBaseURL = "https://api.notion.com"
	// DefaultVersion is the Notion-Version header sent with every request.
	DefaultVersion = "2022-02-22"
)

// StatusError is returned when Notion answers with a non-200 status.
// Code and Message come from the Notion error object when the body has one.
type StatusError struct {
	StatusCode int
	Code       string
	Message    string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("notion: status %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("notion: status %d: %s", e.StatusCode, e.Body)
}

// Client calls the Notion API with a bearer integration token.
type Client struct {
	baseURL    string
	token      string
	version    string
	httpClient *http.Client
}

// NewClient creates a Client. Empty baseURL or version select the defaults.
func NewClient(baseURL, token, version string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if version == "" {
		version = DefaultVersion
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		version:    version,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// UpdatePageProperties sets properties on a page (or database row).
func (c *Client) UpdatePageProperties(ctx context.Context, pageID string, update models.PageUpdate) error {
	return c.patch(ctx, "/v1/pages/"+pageID, update)
}

// AppendBlockChildren appends blocks to the end of a block's (or page's)
// children.
func (c *Client) AppendBlockChildren(ctx context.Context, blockID string, children models.BlockChildren) error {
	return c.patch(ctx, "/v1/blocks/"+blockID+"/children", children)
}

func (c *Client) patch(ctx context.Context, path string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("notion: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("notion: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Notion-Version", c.version)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("notion: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return statusError(resp.StatusCode, body)
	}
	return nil
}

func statusError(code int, body []byte) *StatusError {
	se := &StatusError{StatusCode: code, Body: string(body)}
	var ne models.NotionError
	if err := json.Unmarshal(body, &ne); err == nil && ne.Object == "error" {
		se.Code = ne.Code
		se.Message = ne.Message
	}
	return se
}
