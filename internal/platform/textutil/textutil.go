// Package textutil provides defensive text, number, date and link helpers
// for values taken from the loosely-typed report document.
//
// The package handles:
//   - ASCII sanitization of free text before it reaches markup
//   - Best-effort numeric coercion with caller-supplied defaults
//   - Source name normalization
//   - Clickable link synthesis with a web-search fallback
//   - Multi-format timestamp parsing that never fails loudly
package textutil

import (
	"net/url"
	"strings"
)

// UnknownSource is the sentinel for a missing or blank source name.
const UnknownSource = "Unknown"

const (
	searchURLPrefix = "https://www.google.com/search?q="
	ellipsis        = "..."
)

// CleanText drops every character outside printable ASCII, keeping newline
// and tab, and trims surrounding whitespace.
func CleanText(s string) string {
	if s == "" {
		return ""
	}

	var sb strings.Builder

	sb.Grow(len(s))

	for _, r := range s {
		if r < 128 && (r >= 32 || r == '\n' || r == '\t') {
			sb.WriteRune(r)
		}
	}

	return strings.TrimSpace(sb.String())
}

// NormalizeSource cleans a source name, substituting UnknownSource when empty.
func NormalizeSource(s string) string {
	if name := CleanText(s); name != "" {
		return name
	}

	return UnknownSource
}

// MakeClickableURL returns rawURL when it is an absolute http(s) URL and a
// web-search URL for the title otherwise, so every link is navigable.
func MakeClickableURL(rawURL, title string) string {
	cleaned := CleanText(rawURL)
	if strings.HasPrefix(cleaned, "http://") || strings.HasPrefix(cleaned, "https://") {
		return cleaned
	}

	return searchURLPrefix + url.QueryEscape(CleanText(title))
}

// Truncate cuts s to at most maxRunes runes.
func Truncate(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}

	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}

	return string(runes[:maxRunes])
}

// TruncateEllipsis cuts s to maxRunes runes, ending with "..." when it had to cut.
func TruncateEllipsis(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}

	if maxRunes <= len(ellipsis) {
		return Truncate(s, maxRunes)
	}

	return string(runes[:maxRunes-len(ellipsis)]) + ellipsis
}

// FirstNonEmpty returns the first argument that is not empty after cleaning.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if c := CleanText(v); c != "" {
			return c
		}
	}

	return ""
}
