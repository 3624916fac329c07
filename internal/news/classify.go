package news

import "strings"

// IsRelevant decides whether an article belongs in the digest.
//
// Order matters and is fixed: the strategic-entity allow-list accepts outright;
// a negative keyword vetoes before any positive keyword is considered; finally
// at least one positive keyword (section list, or the default list) is
// required. Sources that are not health-focused must also show a generic
// health keyword, otherwise broad-coverage outlets flood the digest with
// business stories that merely sound adjacent.
func (r *Ruleset) IsRelevant(section, text string, healthFocused bool) bool {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return false
	}

	if containsAny(text, r.Entities) {
		return true
	}

	if containsAny(text, r.Negative) {
		return false
	}

	if !containsAny(text, r.positiveFor(section)) {
		return false
	}

	if !healthFocused && !containsAny(text, r.Health) {
		return false
	}

	return true
}
