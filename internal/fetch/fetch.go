// Package fetch is the HTTP transport behind the curation pipeline: homepage
// and article-page GETs plus feed parsing, with a per-host politeness
// interval and a run-scoped page cache.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/saudenews/radar/internal/cache"
	"github.com/saudenews/radar/internal/news"
	"github.com/saudenews/radar/internal/ratelimit"
	"github.com/saudenews/radar/internal/rss"
	"github.com/saudenews/radar/internal/scraper"
)

const userAgent = "Mozilla/5.0 (compatible; SaudeNewsBot/1.0)"

// maxBodyBytes bounds how much of an article page is read for date scanning.
const maxBodyBytes = 2 << 20

type Client struct {
	http        *http.Client
	feeds       *rss.Parser
	pages       *cache.Cache
	limiter     *ratelimit.PerHost
	blockedText []string
}

var _ news.Fetcher = (*Client)(nil)

// Options configure the transport client.
type Options struct {
	Timeout      time.Duration
	HostInterval time.Duration
	// BlockedAnchorText filters navigation chrome in homepage scrapes.
	BlockedAnchorText []string
}

func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	httpClient := &http.Client{Timeout: opts.Timeout}
	return &Client{
		http:        httpClient,
		feeds:       rss.NewParser(httpClient),
		pages:       cache.New(time.Hour), // outlives any single run
		limiter:     ratelimit.NewPerHost(opts.HostInterval),
		blockedText: opts.BlockedAnchorText,
	}
}

// Feed downloads and parses an RSS/Atom feed.
func (c *Client) Feed(ctx context.Context, feedURL string) ([]news.Candidate, error) {
	if err := c.wait(ctx, feedURL); err != nil {
		return nil, err
	}
	return c.feeds.Fetch(ctx, feedURL)
}

// Links scrapes a homepage for candidate anchors.
func (c *Client) Links(ctx context.Context, pageURL string) ([]news.Candidate, error) {
	body, err := c.Page(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	links, err := scraper.ExtractLinks(body, pageURL, c.blockedText)
	if err != nil {
		return nil, err
	}
	cands := make([]news.Candidate, 0, len(links))
	for _, l := range links {
		cands = append(cands, news.Candidate{Title: l.Text, URL: l.URL})
	}
	return cands, nil
}

// Page GETs a URL and returns the body as text. Bodies are cached for the
// rest of the run, so repeated date-extraction fetches cost one request.
func (c *Client) Page(ctx context.Context, pageURL string) (string, error) {
	if body, ok := c.pages.Get(pageURL); ok {
		return body, nil
	}

	if err := c.wait(ctx, pageURL); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("get %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("get %s: status %d", pageURL, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", pageURL, err)
	}

	body := string(raw)
	c.pages.Set(pageURL, body)
	return body, nil
}

func (c *Client) wait(ctx context.Context, rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return err
	}
	return c.limiter.Wait(ctx, u.Host)
}
