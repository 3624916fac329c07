// Package publish creates draft posts on Beehiiv, the optional secondary
// sink of the digest.
package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.beehiiv.com"

type Client struct {
	http          *http.Client
	apiKey        string
	publicationID string
	baseURL       string
}

func NewClient(apiKey, publicationID string) *Client {
	return &Client{
		http:          &http.Client{Timeout: 30 * time.Second},
		apiKey:        apiKey,
		publicationID: publicationID,
		baseURL:       defaultBaseURL,
	}
}

// NewClientWithBaseURL exists for tests against httptest servers.
func NewClientWithBaseURL(apiKey, publicationID, baseURL string) *Client {
	c := NewClient(apiKey, publicationID)
	c.baseURL = baseURL
	return c
}

type draftPayload struct {
	Title string `json:"title"`
	Web   struct {
		Body string `json:"body"`
	} `json:"web"`
	Status string `json:"status"`
}

// CreateDraft posts the digest as a draft; publishing stays a manual step in
// the Beehiiv panel.
func (c *Client) CreateDraft(ctx context.Context, title, htmlBody string) error {
	var payload draftPayload
	payload.Title = title
	payload.Web.Body = htmlBody
	payload.Status = "draft"

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal draft payload: %w", err)
	}

	url := fmt.Sprintf("%s/v2/publications/%s/posts", c.baseURL, c.publicationID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("beehiiv request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("beehiiv API error: status %d: %s", resp.StatusCode, detail)
	}
	return nil
}
