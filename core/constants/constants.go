package constants

import "time"

// Context keys
const (
	ContextTokenData = "token_data"
)

// Timeouts
const (
	DefaultTimeout        = 30 * time.Second
	DefaultRequestTimeout = 10 * time.Second
)

// Database pool settings
const (
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
)

// Redis key prefixes
const (
	RedisKeyTokenBlacklist = "token:blacklist:"
	RedisKeyBestTimeCache  = "besttime:"
)

// Token scopes
const (
	ScopeTokenAccess  = "access"
	ScopeTokenRefresh = "refresh"
)

// Scheduling engine defaults
const (
	DefaultWorkingHoursStart = 9
	DefaultWorkingHoursEnd   = 17
	DefaultSleepingStart     = 23
	DefaultSleepingEnd       = 7

	DefaultMeetingDurationMinutes = 60
	DefaultMaxSuggestions         = 5

	// Candidate slots are only generated between these host-local hours
	CandidateDayStartHour = 7
	CandidateDayEndHour   = 22
)

// Booking defaults
const (
	DefaultSlotDurationMinutes = 30
	DefaultMinNoticeHours      = 24
	DefaultMaxDaysAhead        = 60
)
