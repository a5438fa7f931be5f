package constants

import (
	"fmt"
	"time"
)

// Redis cache keys and TTLs for the Matchday application.
// Pattern: matchday:{module}:{operation}:{identifier}:{params?}

const (
	CACHE_PREFIX = "matchday"
)

// Cache TTL durations
const (
	TTL_SEMI_STATIC_MEDIUM = 2 * time.Hour // event details
	TTL_SEMI_STATIC_SHORT  = 1 * time.Hour // event listings
)

// Event cache keys
const (
	CACHE_KEY_EVENTS_LIST  = CACHE_PREFIX + ":events:list"         // + :page:X:limit:Y
	CACHE_KEY_EVENT_DETAIL = CACHE_PREFIX + ":events:detail:uuid:" // + event-id
)

// Event cache TTLs
const (
	TTL_EVENT_LIST   = TTL_SEMI_STATIC_SHORT
	TTL_EVENT_DETAIL = TTL_SEMI_STATIC_MEDIUM
)

// Invalidation patterns (used with DeletePattern)
const (
	PATTERN_INVALIDATE_EVENT_ALL = CACHE_PREFIX + ":events:*"
)

func BuildEventDetailKey(eventID string) string {
	return CACHE_KEY_EVENT_DETAIL + eventID
}

func BuildEventListKey(page, limit int, search string) string {
	key := CACHE_KEY_EVENTS_LIST + fmt.Sprintf(":page:%d:limit:%d", page, limit)
	if search != "" {
		key += ":search:" + search
	}
	return key
}
