package textutil

import (
	"strings"
	"time"
)

const (
	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
	runAtLayout    = "02 Jan 2006, 15:04"
)

// isoLayouts are tried in order after a space separator has been normalized to "T".
// Fractional seconds are accepted by time.Parse after the seconds field.
var isoLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02T15",
	layoutDate,
}

// ParseDateTime parses ISO-8601 timestamps (trailing Z is UTC), then falls back
// to "YYYY-MM-DD HH:MM:SS" and "YYYY-MM-DD" prefixes. Naive timestamps are UTC.
// It reports false for anything else.
func ParseDateTime(value string) (time.Time, bool) {
	text := strings.TrimSpace(value)
	if text == "" {
		return time.Time{}, false
	}

	iso := text
	if len(iso) > len(layoutDate) && iso[len(layoutDate)] == ' ' {
		iso = iso[:len(layoutDate)] + "T" + iso[len(layoutDate)+1:]
	}

	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, iso); err == nil {
			return t, true
		}
	}

	for _, layout := range []string{layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, prefix(text, len(layout))); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// DateOf returns the calendar day of t, in t's own location, as midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses value with ParseDateTime and keeps only the calendar day.
func ParseDate(value string) (time.Time, bool) {
	t, ok := ParseDateTime(value)
	if !ok {
		return time.Time{}, false
	}

	return DateOf(t), true
}

// FormatRunAt renders a report run timestamp for display, or "-" when absent.
func FormatRunAt(value string) string {
	t, ok := ParseDateTime(value)
	if !ok {
		return "-"
	}

	return t.Format(runAtLayout)
}

func prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}

	return s[:n]
}
