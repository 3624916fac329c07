// Package rss parses RSS/Atom feeds into pipeline candidates.
package rss

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/saudenews/radar/internal/news"
)

// Parser wraps gofeed with the shared HTTP client so feed downloads respect
// the same timeout as everything else.
type Parser struct {
	parser *gofeed.Parser
}

func NewParser(client *http.Client) *Parser {
	p := gofeed.NewParser()
	p.Client = client
	p.UserAgent = "SaudeNewsBot/1.0"
	return &Parser{parser: p}
}

// Fetch downloads and parses one feed. Entries carry the publish timestamp
// when the feed provides one; summaries come through raw and are cleaned by
// the curation pipeline.
func (p *Parser) Fetch(ctx context.Context, url string) ([]news.Candidate, error) {
	feed, err := p.parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", url, err)
	}

	items := make([]news.Candidate, 0, len(feed.Items))
	for _, item := range feed.Items {
		var published time.Time
		if item.PublishedParsed != nil {
			published = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			published = *item.UpdatedParsed
		}

		items = append(items, news.Candidate{
			Title:     item.Title,
			URL:       item.Link,
			Summary:   item.Description,
			Published: published,
		})
	}
	return items, nil
}
