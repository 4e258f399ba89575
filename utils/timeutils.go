package utils

import (
	"time"
)

// Iso8601Now returns the current time in ISO8601 format
func Iso8601Now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// Iso8601 formats t as RFC3339 in UTC. The zero time yields "".
func Iso8601(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// Iso8601FromUnixSeconds converts Unix timestamp to ISO8601 format
func Iso8601FromUnixSeconds(sec int64) string {
	return time.Unix(sec, 0).UTC().Format(time.RFC3339)
}

// ValidUntil returns the RFC3339 time one refresh interval after base.
func ValidUntil(base time.Time, interval time.Duration) string {
	if base.IsZero() || interval <= 0 {
		return ""
	}
	return base.Add(interval).UTC().Format(time.RFC3339)
}
