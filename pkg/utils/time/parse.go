// ABOUTME: Time parsing utilities for flexible date/time parsing
// ABOUTME: Handles the ISO-8601 and RFC-822 variants found in Atom, OPDS and RSS documents

package time

import (
	"strings"
	"time"
)

// RSSLayout is the RFC-822 style layout used for pubDate values
const RSSLayout = "Mon, 02 Jan 2006 15:04:05 -0700"

// isoFormats are tried in order for Atom/OPDS timestamps. Fractional seconds
// are accepted by every layout that has a seconds field.
var isoFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05-07",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Common time formats found in RSS feeds
var rssFormats = []string{
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	time.RFC822Z,
	time.RFC822,
	"02 Jan 2006 15:04:05 -0700",
	"02 Jan 2006 15:04:05 MST",
}

// ParseISO parses an ISO-8601 timestamp with or without a colon in the offset
func ParseISO(timeStr string) (time.Time, bool) {
	return parseWith(isoFormats, timeStr)
}

// ParseFlexibleTime attempts to parse a time string using the ISO and RSS formats
func ParseFlexibleTime(timeStr string) time.Time {
	if t, ok := ParseISO(timeStr); ok {
		return t
	}
	if t, ok := parseWith(rssFormats, timeStr); ok {
		return t
	}
	return time.Time{}
}

// ParseWithDefault attempts to parse a time string, returning a default if parsing fails
func ParseWithDefault(timeStr string, defaultTime time.Time) time.Time {
	if parsed := ParseFlexibleTime(timeStr); !parsed.IsZero() {
		return parsed
	}
	return defaultTime
}

// FormatRSS renders t in the RFC-822 style used by RSS pubDate
func FormatRSS(t time.Time) string {
	return t.Format(RSSLayout)
}

func parseWith(formats []string, timeStr string) (time.Time, bool) {
	timeStr = strings.TrimSpace(timeStr)
	if timeStr == "" {
		return time.Time{}, false
	}

	for _, format := range formats {
		if t, err := time.Parse(format, timeStr); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}
