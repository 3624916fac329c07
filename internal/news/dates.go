package news

import (
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// A dateStrategy extracts a calendar date from a text fragment. Strategies
// are pure and independently testable; ResolveDate tries them in priority
// order and the first valid hit wins.
type dateStrategy func(string) (time.Time, bool)

var textStrategies = []dateStrategy{
	dateDotMonth,   // 2.dez.2025 / 14.Jan.2024
	dateNumericDot, // 08.12.2025
	dateISO,        // 2025-12-08
	datePTLong,     // 8 de dezembro de 2025
	dateENLong,     // December 8, 2025
}

// ResolveDate extracts a best-effort publish date from the article title, the
// URL path and, when available, the fetched HTML body. The zero time plus
// false means unknown; the caller decides what unknown dates mean (the
// pipeline's accept-undated policy).
func ResolveDate(title, rawURL, htmlBody string) (time.Time, bool) {
	if d, ok := dateFromText(title); ok {
		return d, true
	}
	if d, ok := dateFromURL(rawURL); ok {
		return d, true
	}
	if htmlBody != "" {
		if d, ok := dateFromMeta(htmlBody); ok {
			return d, true
		}
		if d, ok := dateFromText(htmlBody); ok {
			return d, true
		}
	}
	return time.Time{}, false
}

func dateFromText(text string) (time.Time, bool) {
	if text == "" {
		return time.Time{}, false
	}
	text = strings.ToLower(text)
	for _, try := range textStrategies {
		if d, ok := try(text); ok {
			return d, true
		}
	}
	return time.Time{}, false
}

var reURLDate = regexp.MustCompile(`/(20\d{2})/(\d{1,2})/(\d{1,2})(?:/|$)`)

func dateFromURL(rawURL string) (time.Time, bool) {
	for _, m := range reURLDate.FindAllStringSubmatch(rawURL, -1) {
		if d, ok := makeDate(atoi(m[1]), atoi(m[2]), atoi(m[3])); ok {
			return d, true
		}
	}
	return time.Time{}, false
}

// Meta tags commonly carrying the publish timestamp, in priority order.
var metaSelectors = []string{
	`meta[property="article:published_time"]`,
	`meta[name="date"]`,
	`meta[name="datePublished"]`,
	`meta[itemprop="datePublished"]`,
}

func dateFromMeta(htmlBody string) (time.Time, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlBody))
	if err != nil {
		return time.Time{}, false
	}
	for _, sel := range metaSelectors {
		content, exists := doc.Find(sel).First().Attr("content")
		if !exists {
			continue
		}
		if d, ok := dateISO(content); ok {
			return d, true
		}
	}
	return time.Time{}, false
}

// --- text pattern strategies ---

var reDotMonth = regexp.MustCompile(`(\d{1,2})\.\s*([\p{L}]+)\.?\s*(\d{4})`)

func dateDotMonth(text string) (time.Time, bool) {
	for _, m := range reDotMonth.FindAllStringSubmatch(text, -1) {
		month, ok := monthByName(m[2])
		if !ok {
			continue
		}
		if d, ok := makeDate(atoi(m[3]), int(month), atoi(m[1])); ok {
			return d, true
		}
	}
	return time.Time{}, false
}

var reNumericDot = regexp.MustCompile(`(\d{1,2})\.(\d{1,2})\.(\d{4})`)

func dateNumericDot(text string) (time.Time, bool) {
	for _, m := range reNumericDot.FindAllStringSubmatch(text, -1) {
		if d, ok := makeDate(atoi(m[3]), atoi(m[2]), atoi(m[1])); ok {
			return d, true
		}
	}
	return time.Time{}, false
}

var reISO = regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`)

func dateISO(text string) (time.Time, bool) {
	for _, m := range reISO.FindAllStringSubmatch(text, -1) {
		if d, ok := makeDate(atoi(m[1]), atoi(m[2]), atoi(m[3])); ok {
			return d, true
		}
	}
	return time.Time{}, false
}

var rePTLong = regexp.MustCompile(`(\d{1,2})\s+de\s+([\p{L}]+)\s+de\s+(\d{4})`)

func datePTLong(text string) (time.Time, bool) {
	for _, m := range rePTLong.FindAllStringSubmatch(text, -1) {
		month, ok := monthByName(m[2])
		if !ok {
			continue
		}
		if d, ok := makeDate(atoi(m[3]), int(month), atoi(m[1])); ok {
			return d, true
		}
	}
	return time.Time{}, false
}

var reENLong = regexp.MustCompile(`([\p{L}]+)\.?\s+(\d{1,2}),\s*(\d{4})`)

func dateENLong(text string) (time.Time, bool) {
	for _, m := range reENLong.FindAllStringSubmatch(text, -1) {
		month, ok := monthByName(m[1])
		if !ok {
			continue
		}
		if d, ok := makeDate(atoi(m[3]), int(month), atoi(m[2])); ok {
			return d, true
		}
	}
	return time.Time{}, false
}

// monthNames covers Portuguese and English, abbreviated and full.
var monthNames = map[string]time.Month{
	"jan": time.January, "janeiro": time.January, "january": time.January,
	"fev": time.February, "fevereiro": time.February,
	"feb": time.February, "february": time.February,
	"mar": time.March, "março": time.March, "marco": time.March, "march": time.March,
	"abr": time.April, "abril": time.April, "apr": time.April, "april": time.April,
	"mai": time.May, "maio": time.May, "may": time.May,
	"jun": time.June, "junho": time.June, "june": time.June,
	"jul": time.July, "julho": time.July, "july": time.July,
	"ago": time.August, "agosto": time.August, "aug": time.August, "august": time.August,
	"set": time.September, "setembro": time.September,
	"sep": time.September, "sept": time.September, "september": time.September,
	"out": time.October, "outubro": time.October, "oct": time.October, "october": time.October,
	"nov": time.November, "novembro": time.November, "november": time.November,
	"dez": time.December, "dezembro": time.December, "dec": time.December, "december": time.December,
}

func monthByName(name string) (time.Month, bool) {
	m, ok := monthNames[strings.ToLower(strings.TrimSuffix(name, "."))]
	return m, ok
}

// makeDate builds a UTC date and rejects calendar-invalid combinations such
// as day 31 in a 30-day month (time.Date would silently roll them over).
func makeDate(year, month, day int) (time.Time, bool) {
	if year < 1990 || year > 2100 || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || d.Month() != time.Month(month) || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}
