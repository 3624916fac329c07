// Package news implements the curation engine of the Saúde News digest:
// relevance classification, scoring, date resolution, URL normalization and
// the per-source/per-section quota pipeline.
package news

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

// Article is one candidate news item. The pipeline fills Score and Published;
// once an article lands in a section list it is never mutated again.
type Article struct {
	Title      string
	URL        string
	Summary    string
	SourceName string
	Section    string
	Score      float64
	Published  time.Time // zero when no date could be resolved
}

// HasDate reports whether a publish date was resolved for the article.
func (a Article) HasDate() bool {
	return !a.Published.IsZero()
}

// Section is a topical bucket of the digest.
type Section struct {
	ID         string `yaml:"id"`
	Label      string `yaml:"label"`
	Subtitle   string `yaml:"subtitle"`
	MaxItems   int    `yaml:"max_items"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Source is a configured origin of candidate articles. FeedURL wins over URL
// when both are set; URL alone means the homepage is scraped for anchors.
type Source struct {
	Name        string `yaml:"name"`
	Section     string `yaml:"section"`
	URL         string `yaml:"url"`
	FeedURL     string `yaml:"feed_url"`
	MaxArticles int    `yaml:"max_articles"`
	MaxAgeDays  int    `yaml:"max_age_days"` // overrides the section window when > 0
	HealthFocus bool   `yaml:"health_focus"`
}

// Digest is the final curated artifact: ranked articles per section plus a
// cross-section top list. A URL appears at most once anywhere in the digest.
type Digest struct {
	Date     time.Time
	Sections map[string][]Article
	Top      []Article
}

// Total returns the number of curated articles across all sections.
func (d *Digest) Total() int {
	n := 0
	for _, list := range d.Sections {
		n += len(list)
	}
	return n
}

var reTags = regexp.MustCompile(`<[^>]*>`)

// CleanSummary strips HTML tags from a feed summary, collapses whitespace and
// truncates to ~260 characters for display.
func CleanSummary(s string) string {
	s = reTags.ReplaceAllString(s, " ")
	s = strings.Join(strings.Fields(s), " ")

	const maxLen = 260
	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return s
}

// NormalizeTitle lowers the title and strips every non-letter/non-digit rune,
// producing the key used for per-section duplicate suppression.
func NormalizeTitle(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
