package util

import (
	"net/url"
	"sort"
	"strings"
)

// query parameters that only carry tracking context, never identity
var trackingParams = map[string]bool{
	"utm_source":   true,
	"utm_medium":   true,
	"utm_campaign": true,
	"utm_term":     true,
	"utm_content":  true,
	"fbclid":       true,
	"gclid":        true,
	"ref":          true,
	"refid":        true,
	"trackingid":   true,
	"trk":          true,
}

// NormalizeURL canonicalizes a job URL for dedup comparison: tracking
// params and the fragment are dropped, trailing path slashes removed,
// and the remaining query re-encoded with sorted keys so parameter
// order never changes the identity. Idempotent.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.Path = strings.TrimRight(u.Path, "/")

	q := u.Query()
	for k := range q {
		if trackingParams[strings.ToLower(k)] {
			q.Del(k)
		}
	}
	if len(q) == 0 {
		u.RawQuery = ""
	} else {
		// Encode sorts keys; sort values too for a fully deterministic form.
		for k, vals := range q {
			sort.Strings(vals)
			q[k] = vals
		}
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// AbsURL resolves a possibly relative href against a base URL.
func AbsURL(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	h, err := url.Parse(href)
	if err != nil {
		return href
	}
	return b.ResolveReference(h).String()
}
