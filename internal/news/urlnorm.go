package news

import (
	"net/url"
	"strings"
)

// Query parameters that only identify the click, not the article.
var trackingParams = []string{
	"utm_source", "utm_medium", "utm_campaign", "utm_term", "utm_content",
	"utm_id", "fbclid", "gclid", "igshid", "mc_cid", "mc_eid",
}

// NormalizeURL rewrites an article URL to its canonical form: AMP proxy
// wrappers are unwrapped back to the origin, tracking parameters and
// fragments are dropped, the host is lower-cased. Unparseable input is
// returned trimmed but otherwise untouched.
func NormalizeURL(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}

	// AMP proxies carry the canonical target in a url= parameter.
	if target := u.Query().Get("url"); target != "" {
		if t, err := url.Parse(target); err == nil && t.Scheme != "" && t.Host != "" {
			return NormalizeURL(target)
		}
	}

	if isAMPHost(u.Host) {
		if unwrapped, ok := unwrapAMPPath(u); ok {
			return NormalizeURL(unwrapped)
		}
	}

	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.Path = dropAMPSegments(u.Path)

	q := u.Query()
	for _, p := range trackingParams {
		q.Del(p)
	}
	u.RawQuery = q.Encode()

	return u.String()
}

func isAMPHost(host string) bool {
	host = strings.ToLower(host)
	return host == "cdn.ampproject.org" || strings.HasSuffix(host, ".cdn.ampproject.org")
}

// unwrapAMPPath turns /c/s/example.com/path (or /c/, /v/, /wp/) into
// https://example.com/path. The s segment marks an https origin.
func unwrapAMPPath(u *url.URL) (string, bool) {
	parts := strings.Split(strings.TrimPrefix(u.Path, "/"), "/")
	if len(parts) < 2 {
		return "", false
	}
	switch parts[0] {
	case "c", "v", "wp":
	default:
		return "", false
	}
	parts = parts[1:]
	scheme := "http"
	if parts[0] == "s" {
		scheme = "https"
		parts = parts[1:]
	}
	if len(parts) == 0 || parts[0] == "" {
		return "", false
	}
	host := parts[0]
	rest := strings.Join(parts[1:], "/")
	out := scheme + "://" + host
	if rest != "" {
		out += "/" + rest
	}
	if u.RawQuery != "" {
		out += "?" + u.RawQuery
	}
	return out, true
}

func dropAMPSegments(path string) string {
	if !strings.Contains(strings.ToLower(path), "amp") {
		return path
	}
	segs := strings.Split(path, "/")
	kept := segs[:0]
	for _, s := range segs {
		if strings.EqualFold(s, "amp") {
			continue
		}
		kept = append(kept, s)
	}
	return strings.Join(kept, "/")
}
