// Package utils provides utility functions for the application.
package utils

import (
	"time"
)

// InterviewDateLayout is the wire format for interview scheduling timestamps.
const InterviewDateLayout = "2006-01-02 15:04"

// UTCNow returns the current time in UTC
func UTCNow() time.Time {
	return time.Now().UTC()
}

// UTCNowPtr returns a pointer to the current time in UTC
func UTCNowPtr() *time.Time {
	now := UTCNow()
	return &now
}

// UTCNowRFC3339 returns the current UTC time in RFC3339 format
func UTCNowRFC3339() string {
	return UTCNow().Format(time.RFC3339)
}
