package model

import (
	"errors"
	"strings"
	"time"
)

// timeLayouts are the timestamp shapes collectors actually emit: RFC 3339,
// zone-less ISO-8601, and bare dates.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ErrUnparsableTime is returned when none of the accepted layouts match.
var ErrUnparsableTime = errors.New("unparsable timestamp")

// ParseTime parses an ISO-8601-ish timestamp string. Callers are expected to
// substitute a conservative default on error rather than failing (see the
// scorer's and validator's recency handling).
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrUnparsableTime
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrUnparsableTime
}
