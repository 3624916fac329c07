// Package scraper turns a raw homepage into candidate article anchors.
package scraper

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Link is one candidate anchor: visible text plus the resolved absolute URL.
type Link struct {
	Text string
	URL  string
}

// MinTextLen is the primary defense against menu and navigation anchors:
// real headlines are long, chrome links are short.
const MinTextLen = 35

// ExtractLinks parses raw HTML and collects (text, absolute URL) pairs in
// first-seen order. Anchor text is the concatenation of the anchor's text
// nodes with whitespace collapsed. Anchors shorter than MinTextLen or whose
// text matches a block phrase are dropped. No deduplication happens here;
// that is the pipeline's job. Broken markup never raises: goquery parses
// whatever structure it can.
func ExtractLinks(htmlBody, baseURL string, blockedText []string) ([]Link, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlBody))
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}

	var links []Link
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || href == "" {
			return
		}

		text := strings.Join(strings.Fields(s.Text()), " ")
		if len([]rune(text)) < MinTextLen {
			return
		}
		if matchesBlocked(text, blockedText) {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		abs := base.ResolveReference(ref)
		if abs.Scheme != "http" && abs.Scheme != "https" {
			return
		}

		links = append(links, Link{Text: text, URL: abs.String()})
	})

	return links, nil
}

func matchesBlocked(text string, blocked []string) bool {
	lowered := strings.ToLower(text)
	for _, b := range blocked {
		if b != "" && strings.Contains(lowered, b) {
			return true
		}
	}
	return false
}
