package utils

import "time"

// Validation bounds shared by the DTO layer and the entity layer.
const (
	UsernameMinLength = 4
	UsernameMaxLength = 20

	PasswordMinLength = 8
	PasswordMaxLength = 50
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (1 hour)
	CORSMaxAge = 3600
)

// Admin query constants
const (
	// RecentLimit is how many records the "recent" admin views return
	RecentLimit = 10

	// PendingCountCacheTTL bounds staleness of the cached pending counters
	PendingCountCacheTTL = 30 * time.Second
)

// Redis cache keys for the admin dashboard pending counters
const (
	EducationPendingCountCacheKey = "pending_count:education_inquiries"
	PartnerPendingCountCacheKey   = "pending_count:partner_applications"
)

// SessionTokenPrefix is prepended to the user id to build the placeholder
// login token. Not a credential.
const SessionTokenPrefix = "temporary_session_"
