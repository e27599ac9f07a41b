// Package slug derives canonical URL-safe identifiers from source URLs.
package slug

import (
	"net/url"
	"strings"
)

// Derive extracts the final non-empty path segment of a link as its slug,
// e.g. "https://example.substack.com/p/lorem-testsum" -> "lorem-testsum".
// Malformed links fall back to a plain split after stripping any query
// string. Returns "" only when no non-empty segment exists; callers must
// treat such items as unaddressable by slug.
func Derive(link string) string {
	if u, err := url.Parse(link); err == nil && (u.Scheme != "" || u.Host != "") {
		return lastSegment(u.Path)
	}

	raw, _, _ := strings.Cut(link, "?")
	return lastSegment(raw)
}

func lastSegment(path string) string {
	parts := strings.Split(path, "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] != "" {
			return parts[i]
		}
	}
	return ""
}
