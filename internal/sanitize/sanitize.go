// Package sanitize cleans HTML-entity-encoded text fragments coming out of
// the syndicated feed so they are safe to display and excerpt.
package sanitize

import (
	"html"
	"regexp"
	"strings"
)

var (
	tagRe = regexp.MustCompile(`<[^>]+>`)

	// Truncated entities left behind when encoded text is cut at a fixed
	// offset, e.g. "Caf&#233" or "5 &amp" (common in Substack RSS excerpts)
	danglingDecRe   = regexp.MustCompile(`&#[0-9]{1,7}$`)
	danglingHexRe   = regexp.MustCompile(`&#x[0-9a-fA-F]{1,6}$`)
	danglingNamedRe = regexp.MustCompile(`&[a-zA-Z]{1,20}$`)

	controlRe = regexp.MustCompile("[\\x00-\\x1f\\x7f]")
)

// Decode resolves named and numeric (decimal and hex) character entities
// to their literal characters. Total: any input yields a string.
func Decode(input string) string {
	if input == "" {
		return ""
	}
	return html.UnescapeString(input)
}

// CleanExcerpt prepares a naively truncated, entity-encoded fragment for
// display: it drops a trailing incomplete entity, decodes the rest, and
// strips control characters that render as replacement glyphs.
func CleanExcerpt(input string) string {
	if input == "" {
		return ""
	}

	cleaned := danglingDecRe.ReplaceAllString(input, "")
	cleaned = danglingHexRe.ReplaceAllString(cleaned, "")
	cleaned = danglingNamedRe.ReplaceAllString(cleaned, "")

	decoded := Decode(cleaned)

	return controlRe.ReplaceAllString(decoded, "")
}

// StripTags removes HTML tags, leaving the raw (still entity-encoded) text.
func StripTags(input string) string {
	return strings.TrimSpace(tagRe.ReplaceAllString(input, ""))
}

// Excerpt derives a display-safe plain-text preview from an HTML fragment.
// The raw encoded text is cut so the cut can land mid-entity; CleanExcerpt
// repairs that. When the stripped text reaches the limit an ellipsis marks
// the truncation, and the marker counts toward the limit, so the result
// never exceeds limit runes.
func Excerpt(htmlFragment string, limit int) string {
	plain := StripTags(htmlFragment)

	runes := []rune(plain)
	if len(runes) < limit {
		return CleanExcerpt(plain)
	}

	return CleanExcerpt(string(runes[:limit-1])) + "…"
}
