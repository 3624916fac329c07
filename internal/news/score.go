package news

import (
	"net/url"
	"strings"
)

// Score computes the ranking weight of an accepted article. It is a pure
// function of (title, url, source, section): higher means more prominent in
// the section and in the cross-section top list.
func (r *Ruleset) Score(a Article) float64 {
	title := strings.ToLower(a.Title)
	score := 0.0

	// One point per distinct positive keyword present in the title.
	for _, k := range r.positiveFor(a.Section) {
		if k != "" && strings.Contains(title, k) {
			score += 1.0
		}
	}

	// Theme boosts are additive and cumulative across themes.
	for _, b := range r.Boosts {
		if containsAny(title, b.Terms) {
			score += b.Weight
		}
	}

	// Strategic business moves outrank ribbon-cuttings and award ceremonies.
	if containsAny(title, r.StrategicTerms) {
		score += r.StrategicWeight
	}
	if containsAny(title, r.EventTerms) {
		score -= r.EventPenalty
	}

	if domainMatches(a.URL, r.ReputableDomains) {
		score += r.ReputableWeight
	}

	for _, s := range r.TechSections {
		if a.Section == s {
			score += r.TechWeight
			break
		}
	}

	return score
}

func domainMatches(rawURL string, domains []string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return false
	}
	host := strings.ToLower(strings.TrimPrefix(u.Host, "www."))
	for _, d := range domains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}
