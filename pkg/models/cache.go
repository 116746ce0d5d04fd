package models

import "time"

// CachedResponse stores one prior question/answer pair. Question is held in
// normalized form (lower-cased, trimmed) and is unique within the cache:
// putting the same normalized question again overwrites the entry in place.
type CachedResponse struct {
	Question  string    `json:"question"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the entry has passed its expiry at the given time.
func (c CachedResponse) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// CacheStats reports response cache performance metrics.
type CacheStats struct {
	Entries int64 `json:"entries"`
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
}
