// Package cache implements the chatbot response cache: question/answer
// pairs with expiry, persisted as one JSON blob through a pluggable Store.
package cache

import (
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/esil-events/chatbot/pkg/models"
)

// DefaultTTL is how long an entry stays valid unless configured otherwise.
const DefaultTTL = 7 * 24 * time.Hour

// fuzzyThreshold is the minimum similarity score accepted by the fuzzy
// match. The score divides the overlap by the query token count, not the
// union, so a short query can match a longer cached question.
const fuzzyThreshold = 0.7

// fuzzyMinTokenLen is the exclusive lower bound on token length for fuzzy
// matching. Only words longer than this count as significant.
const fuzzyMinTokenLen = 3

// Cache stores prior question/response pairs keyed by normalized question.
// Store failures are absorbed: an unreadable or corrupt blob behaves like
// an empty cache and is never surfaced to the caller.
type Cache struct {
	store  Store
	ttl    time.Duration
	log    zerolog.Logger
	mu     sync.Mutex
	hits   atomic.Int64
	misses atomic.Int64
}

// New creates a Cache on top of the given blob store.
func New(store Store, ttl time.Duration, log zerolog.Logger) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{store: store, ttl: ttl, log: log}
}

// Get returns the cached response for a question, or "" and false on a
// miss. Expired entries found along the way are purged and the purge is
// persisted before matching. Exact normalized-string match is tried first,
// then the fuzzy match.
func (c *Cache) Get(question string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := c.load()
	live := entries[:0]
	now := time.Now()
	for _, e := range entries {
		if !e.Expired(now) {
			live = append(live, e)
		}
	}
	if len(live) != len(entries) {
		c.save(live)
	}

	q := Normalize(question)
	for _, e := range live {
		if e.Question == q {
			c.hits.Add(1)
			return e.Response, true
		}
	}

	if resp, ok := fuzzyMatch(q, live); ok {
		c.hits.Add(1)
		return resp, true
	}

	c.misses.Add(1)
	return "", false
}

// Put stores a response under the normalized question and persists
// immediately. An entry with the same normalized question is overwritten
// in place rather than appended.
func (c *Cache) Put(question, response string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	entry := models.CachedResponse{
		Question:  Normalize(question),
		Response:  response,
		Timestamp: now,
		ExpiresAt: now.Add(c.ttl),
	}

	entries := c.load()
	replaced := false
	for i := range entries {
		if entries[i].Question == entry.Question {
			entries[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, entry)
	}
	c.save(entries)
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.save([]models.CachedResponse{})
}

// Stats returns entry count and hit/miss counters.
func (c *Cache) Stats() models.CacheStats {
	c.mu.Lock()
	entries := c.load()
	c.mu.Unlock()
	return models.CacheStats{
		Entries: int64(len(entries)),
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
	}
}

// Normalize produces the cache's matching key: lower-cased, trimmed text.
func Normalize(question string) string {
	return strings.ToLower(strings.TrimSpace(question))
}

// load reads and decodes the blob. Any failure degrades to an empty cache.
func (c *Cache) load() []models.CachedResponse {
	blob, err := c.store.Load()
	if err != nil {
		if !errors.Is(err, ErrEmpty) {
			c.log.Warn().Err(err).Msg("cache load failed, treating as empty")
		}
		return nil
	}
	var entries []models.CachedResponse
	if err := json.Unmarshal(blob, &entries); err != nil {
		c.log.Warn().Err(err).Msg("cache blob corrupt, treating as empty")
		return nil
	}
	return entries
}

// save encodes and persists the entries. Failures are logged only.
func (c *Cache) save(entries []models.CachedResponse) {
	blob, err := json.Marshal(entries)
	if err != nil {
		c.log.Warn().Err(err).Msg("cache encode failed")
		return
	}
	if err := c.store.Save(blob); err != nil {
		c.log.Warn().Err(err).Msg("cache save failed")
	}
}

// fuzzyMatch scans entries for the best approximate match of the
// normalized query. Score = |query tokens ∩ entry tokens| / |query tokens|
// over words longer than fuzzyMinTokenLen. Among candidates at or above
// the threshold, the most recent Timestamp wins; ties have no further
// ordering defined.
func fuzzyMatch(q string, entries []models.CachedResponse) (string, bool) {
	qTokens := significantTokens(q)
	if len(qTokens) == 0 {
		return "", false
	}

	var (
		best      models.CachedResponse
		bestFound bool
	)
	for _, e := range entries {
		eTokens := significantTokens(e.Question)
		overlap := 0
		for tok := range qTokens {
			if eTokens[tok] {
				overlap++
			}
		}
		score := float64(overlap) / float64(len(qTokens))
		if score < fuzzyThreshold {
			continue
		}
		if !bestFound || e.Timestamp.After(best.Timestamp) {
			best = e
			bestFound = true
		}
	}
	if !bestFound {
		return "", false
	}
	return best.Response, true
}

// significantTokens splits text into the set of words longer than
// fuzzyMinTokenLen.
func significantTokens(text string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(text) {
		if len([]rune(tok)) > fuzzyMinTokenLen {
			set[tok] = true
		}
	}
	return set
}
