package core

import (
	"fmt"
	"strings"
	"time"
)

// RFC 2822 date layouts, with and without the optional weekday and seconds.
// Zone names are rewritten to numeric offsets before parsing.
var rfc2822Layouts = []string{
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04 -0700",
	"2 Jan 2006 15:04 -0700",
}

// rfc2822Zones are the zone names RFC 2822 allows, as numeric offsets.
var rfc2822Zones = map[string]string{
	"GMT": "+0000",
	"UT":  "+0000",
	"UTC": "+0000",
	"EST": "-0500",
	"EDT": "-0400",
	"CST": "-0600",
	"CDT": "-0500",
	"MST": "-0700",
	"MDT": "-0600",
	"PST": "-0800",
	"PDT": "-0700",
}

// ParseRFC2822 parses a feed publication date such as
// "Wed, 29 Mar 2023 21:30:05 GMT". Dates with a zero offset are returned in
// time.UTC; other offsets keep a fixed zone. Unknown zone names are rejected.
func ParseRFC2822(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	normalized, ok := numericZone(s)
	if !ok {
		return time.Time{}, fmt.Errorf("not an RFC 2822 date: %q", s)
	}
	for _, layout := range rfc2822Layouts {
		t, err := time.ParseInLocation(layout, normalized, time.UTC)
		if err != nil {
			continue
		}
		if _, offset := t.Zone(); offset == 0 {
			t = t.UTC()
		}
		return t, nil
	}
	return time.Time{}, fmt.Errorf("not an RFC 2822 date: %q", s)
}

// numericZone replaces a trailing zone name with its offset. It reports
// false for a zone name RFC 2822 does not define.
func numericZone(s string) (string, bool) {
	i := strings.LastIndexByte(s, ' ')
	if i < 0 {
		return s, true
	}
	zone := s[i+1:]
	if zone == "" || zone[0] == '+' || zone[0] == '-' {
		return s, true
	}
	offset, ok := rfc2822Zones[strings.ToUpper(zone)]
	if !ok {
		return "", false
	}
	return s[:i+1] + offset, true
}

// ParseNaiveISO8601 parses an ISO 8601 timestamp without a zone, such as
// "2023-04-26T02:40:03". The wall clock is kept as-is in time.UTC.
func ParseNaiveISO8601(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02T15:04:05.999999999", "2006-01-02 15:04:05.999999999"} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("not a zone-less ISO 8601 timestamp: %q", s)
}

// ParseAwareISO8601 parses a zone-aware ISO 8601 timestamp such as
// "2023-04-26T02:40:03.919027Z". A "Z" or "+00:00" suffix yields time.UTC.
func ParseAwareISO8601(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("not a zone-aware ISO 8601 timestamp: %q", s)
	}
	if _, offset := t.Zone(); offset == 0 {
		t = t.UTC()
	}
	return t, nil
}
