// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"strings"
	"time"
)

// dateLayouts are tried in order. Year-only and year-month values resolve to
// the first day of the period.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
	"2006-01",
	"2006",
	"2006 Jan 2",
	"2006 Jan",
	"Jan 2 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

// ParseDate parses a publish_time value into a calendar date in UTC,
// dropping any time of day. It reports false for unparsable values.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}
