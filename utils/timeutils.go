package utils

import (
	"time"
)

// Iso8601Layout is the UTC millisecond layout used for every timestamp the
// API publishes.
const Iso8601Layout = "2006-01-02T15:04:05.000Z"

// Iso8601 formats t in UTC with millisecond precision.
func Iso8601(t time.Time) string {
	return t.UTC().Format(Iso8601Layout)
}

// Iso8601Now returns the current time in ISO8601 format
func Iso8601Now() string {
	return Iso8601(time.Now())
}
