package news

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/saudenews/radar/internal/metrics"
)

// Candidate is a raw item handed over by the fetch transport, before any
// curation decision.
type Candidate struct {
	Title     string
	URL       string
	Summary   string
	Published time.Time // from feed metadata when available
}

// Fetcher is the transport collaborator. The pipeline only consumes its
// output; failures are recovered per source and never abort the run.
type Fetcher interface {
	// Feed downloads and parses an RSS/Atom feed.
	Feed(ctx context.Context, url string) ([]Candidate, error)
	// Links scrapes a homepage for candidate article anchors.
	Links(ctx context.Context, url string) ([]Candidate, error)
	// Page returns the raw HTML of an article page, for date extraction.
	Page(ctx context.Context, url string) (string, error)
}

// Pipeline runs one curation pass: per-source fetch, filter and cap, then a
// single-threaded merge enforcing global URL dedupe, per-section title dedupe
// and section quotas. Fetches run in a bounded pool; every curation decision
// happens after the join, so the outcome is deterministic for a fixed set of
// fetch results.
type Pipeline struct {
	Fetcher Fetcher
	Rules   *Ruleset
	Catalog *Catalog

	// Now is the reference date for freshness windows; zero means wall clock.
	Now time.Time

	// AcceptUndated treats unresolved publish dates as recent. The other
	// deployments of this digest rejected undated candidates; both policies
	// exist, so this one is explicit configuration.
	AcceptUndated bool

	// FetchBodyForDates pulls the article page when title and URL carry no
	// date. Only applies to homepage-scraped candidates.
	FetchBodyForDates bool

	Concurrency int
	TopCount    int
	Log         *slog.Logger
	Metrics     *metrics.Metrics
}

const (
	defaultSourceCap  = 3
	defaultWindowDays = 1
	defaultTopCount   = 5
)

// Run executes the pipeline. It always returns a digest; sources that failed
// simply contribute nothing.
func (p *Pipeline) Run(ctx context.Context) *Digest {
	now := p.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	results := make([][]Article, len(p.Catalog.Sources))

	g, gctx := errgroup.WithContext(ctx)
	limit := p.Concurrency
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)

	for i, src := range p.Catalog.Sources {
		i, src := i, src
		g.Go(func() error {
			results[i] = p.collectSource(gctx, src, now)
			return nil
		})
	}
	// Workers never return errors; Wait is a join barrier.
	_ = g.Wait()

	return p.merge(results, now)
}

// collectSource fetches, filters, scores and caps the candidates of a single
// source. It returns an immutable slice; all sharing happens after the join.
func (p *Pipeline) collectSource(ctx context.Context, src Source, now time.Time) []Article {
	log := p.logger().With("source", src.Name)
	m := p.metrics()

	var (
		cands      []Candidate
		err        error
		fromScrape bool
	)
	if src.FeedURL != "" {
		cands, err = p.Fetcher.Feed(ctx, src.FeedURL)
	} else {
		cands, err = p.Fetcher.Links(ctx, src.URL)
		fromScrape = true
	}
	if err != nil {
		log.Warn("source fetch failed, contributing zero candidates", "error", err)
		m.AddSourceFailed()
		return nil
	}
	m.AddSourceFetched()
	m.AddCandidates(len(cands))

	window := src.MaxAgeDays
	if window <= 0 {
		if sec, ok := p.Catalog.SectionByID(src.Section); ok && sec.MaxAgeDays > 0 {
			window = sec.MaxAgeDays
		} else {
			window = defaultWindowDays
		}
	}

	var accepted []Article
	for _, c := range cands {
		title := strings.TrimSpace(c.Title)
		if title == "" || c.URL == "" {
			continue
		}

		u := NormalizeURL(c.URL)
		if p.blockedURL(u) || p.blockedTitle(title) {
			continue
		}

		text := title
		if c.Summary != "" {
			text += " " + c.Summary
		}
		if !p.Rules.IsRelevant(src.Section, text, src.HealthFocus) {
			m.AddRejectedIrrelevant()
			continue
		}

		pub := c.Published
		if pub.IsZero() {
			pub, _ = ResolveDate(title, u, "")
		}
		if pub.IsZero() && fromScrape && p.FetchBodyForDates {
			if body, perr := p.Fetcher.Page(ctx, u); perr == nil {
				pub, _ = ResolveDate("", "", body)
			}
		}
		if !p.freshEnough(pub, now, window) {
			m.AddRejectedStale()
			continue
		}

		art := Article{
			Title:      title,
			URL:        u,
			Summary:    CleanSummary(c.Summary),
			SourceName: src.Name,
			Section:    src.Section,
			Published:  pub,
		}
		art.Score = p.Rules.Score(art)
		accepted = append(accepted, art)
	}

	sortArticles(accepted)

	maxPerSource := src.MaxArticles
	if maxPerSource <= 0 {
		maxPerSource = defaultSourceCap
	}
	if len(accepted) > maxPerSource {
		accepted = accepted[:maxPerSource]
	}

	log.Debug("source collected", "candidates", len(cands), "accepted", len(accepted))
	return accepted
}

// merge is the single-threaded reduction that keeps dedupe deterministic:
// per-source lists are consumed in source-catalog order, first accepted wins.
func (p *Pipeline) merge(results [][]Article, now time.Time) *Digest {
	m := p.metrics()

	digest := &Digest{
		Date:     now,
		Sections: make(map[string][]Article, len(p.Catalog.Sections)),
	}

	seenURL := make(map[string]struct{})
	seenTitle := make(map[string]map[string]struct{})

	for _, list := range results {
		for _, a := range list {
			if _, dup := seenURL[a.URL]; dup {
				m.AddDuplicateFiltered()
				continue
			}
			nt := NormalizeTitle(a.Title)
			if seenTitle[a.Section] == nil {
				seenTitle[a.Section] = make(map[string]struct{})
			}
			if _, dup := seenTitle[a.Section][nt]; dup {
				m.AddDuplicateFiltered()
				continue
			}
			seenURL[a.URL] = struct{}{}
			seenTitle[a.Section][nt] = struct{}{}
			digest.Sections[a.Section] = append(digest.Sections[a.Section], a)
		}
	}

	var all []Article
	for _, sec := range p.Catalog.Sections {
		list := digest.Sections[sec.ID]
		sortArticles(list)
		if len(list) > sec.MaxItems {
			list = list[:sec.MaxItems]
		}
		digest.Sections[sec.ID] = list
		all = append(all, list...)
	}

	sortArticles(all)
	top := p.TopCount
	if top <= 0 {
		top = defaultTopCount
	}
	if len(all) > top {
		all = all[:top]
	}
	digest.Top = all

	m.AddArticlesCurated(digest.Total())
	return digest
}

// freshEnough applies the section/source freshness window against the run's
// reference date. Dates are compared at day precision.
func (p *Pipeline) freshEnough(pub, now time.Time, windowDays int) bool {
	if pub.IsZero() {
		return p.AcceptUndated
	}
	today := truncateDay(now)
	pubDay := truncateDay(pub)
	age := int(today.Sub(pubDay).Hours() / 24)
	return age <= windowDays
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (p *Pipeline) blockedURL(u string) bool {
	return containsAny(strings.ToLower(u), p.Rules.BlockedURLParts)
}

func (p *Pipeline) blockedTitle(title string) bool {
	return containsAny(strings.ToLower(title), p.Rules.BlockedTitles)
}

// sortArticles orders by score descending, title ascending, which makes every
// truncation and dedupe decision reproducible.
func sortArticles(list []Article) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Score != list[j].Score {
			return list[i].Score > list[j].Score
		}
		return list[i].Title < list[j].Title
	})
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Log != nil {
		return p.Log
	}
	return slog.Default()
}

func (p *Pipeline) metrics() *metrics.Metrics {
	if p.Metrics != nil {
		return p.Metrics
	}
	return metrics.Global
}
