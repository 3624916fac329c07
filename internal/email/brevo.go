// Package email delivers the rendered newsletter through the Brevo
// transactional API and resolves recipients per run mode.
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/saudenews/radar/internal/config"
)

const defaultBaseURL = "https://api.brevo.com"

// contactsPageSize is Brevo's maximum page size for the contacts endpoint.
const contactsPageSize = 500

type Client struct {
	http    *http.Client
	apiKey  string
	baseURL string
}

func NewClient(apiKey string) *Client {
	return &Client{
		http:    &http.Client{Timeout: 20 * time.Second},
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
	}
}

// NewClientWithBaseURL exists for tests against httptest servers.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	c := NewClient(apiKey)
	c.baseURL = baseURL
	return c
}

// Message is one transactional send.
type Message struct {
	SenderEmail string
	SenderName  string
	To          []string
	Subject     string
	HTML        string
}

type sendPayload struct {
	Sender struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	} `json:"sender"`
	To          []recipient `json:"to"`
	Subject     string      `json:"subject"`
	HTMLContent string      `json:"htmlContent"`
}

type recipient struct {
	Email string `json:"email"`
}

// Send posts the message to /v3/smtp/email. A non-2xx response is an error:
// a digest that was curated but not delivered must fail the run.
func (c *Client) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return fmt.Errorf("no recipients")
	}

	var payload sendPayload
	payload.Sender.Email = msg.SenderEmail
	payload.Sender.Name = msg.SenderName
	payload.Subject = msg.Subject
	payload.HTMLContent = msg.HTML
	for _, e := range msg.To {
		payload.To = append(payload.To, recipient{Email: e})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v3/smtp/email", bytes.NewReader(body))
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("brevo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("brevo API error: status %d: %s", resp.StatusCode, detail)
	}
	return nil
}

type contactsPage struct {
	Contacts []struct {
		Email string `json:"email"`
	} `json:"contacts"`
	Count int `json:"count"`
}

// ListContacts expands a Brevo contact list into concrete addresses, walking
// the paginated /v3/contacts/lists/{id}/contacts endpoint.
func (c *Client) ListContacts(ctx context.Context, listID int) ([]string, error) {
	var emails []string
	for offset := 0; ; offset += contactsPageSize {
		url := fmt.Sprintf("%s/v3/contacts/lists/%d/contacts?limit=%d&offset=%d",
			c.baseURL, listID, contactsPageSize, offset)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		c.setHeaders(req)

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("brevo contacts request: %w", err)
		}

		var page contactsPage
		err = json.NewDecoder(resp.Body).Decode(&page)
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("brevo contacts API error: status %d", resp.StatusCode)
		}
		if err != nil {
			return nil, fmt.Errorf("decode contacts page: %w", err)
		}

		for _, contact := range page.Contacts {
			if contact.Email != "" {
				emails = append(emails, contact.Email)
			}
		}
		if len(page.Contacts) < contactsPageSize || len(emails) >= page.Count {
			break
		}
	}
	return emails, nil
}

// ResolveRecipients picks the recipient list for the run mode: production
// uses the configured list (expanding a Brevo contact list when set), any
// other mode is a manual test run targeting the small manual list.
func ResolveRecipients(ctx context.Context, cfg *config.Config, c *Client) ([]string, error) {
	if cfg.IsProd() {
		if cfg.BrevoListID > 0 {
			emails, err := c.ListContacts(ctx, cfg.BrevoListID)
			if err != nil {
				return nil, fmt.Errorf("expand list %d: %w", cfg.BrevoListID, err)
			}
			if len(emails) == 0 {
				return nil, fmt.Errorf("brevo list %d resolved to zero contacts", cfg.BrevoListID)
			}
			return emails, nil
		}
		return cfg.ToEmails, nil
	}

	if len(cfg.ToEmailsManual) > 0 {
		return cfg.ToEmailsManual, nil
	}
	return cfg.ToEmails, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("accept", "application/json")
	req.Header.Set("api-key", c.apiKey)
}
