package leaderboard

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/petalworks/gardencore/internal/domain"
)

// CacheSchemaVersion is the current version of the cached ranking shape
// Increment this when the cached data structure changes to auto-invalidate old entries
const CacheSchemaVersion = "1.0"

// cachedRankings wraps a ranked view with version metadata for invalidation
type cachedRankings struct {
	Version    string                `json:"version"`
	Entries    []domain.RankingEntry `json:"entries"`
	ComputedAt time.Time             `json:"computed_at"`
}

// rankingCache is a short-TTL in-memory cache of ranked views so snapshot
// polling does not recompute the walk on every request
type rankingCache struct {
	lru *expirable.LRU[domain.RankingCategory, *cachedRankings]
}

func newRankingCache(size int, ttl time.Duration) *rankingCache {
	return &rankingCache{
		lru: expirable.NewLRU[domain.RankingCategory, *cachedRankings](size, nil, ttl),
	}
}

// Get returns the cached view if present and version-compatible
func (c *rankingCache) Get(category domain.RankingCategory) ([]domain.RankingEntry, bool) {
	entry, found := c.lru.Get(category)
	if !found {
		return nil, false
	}
	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(category)
		return nil, false
	}
	return entry.Entries, true
}

// Set stores a view with the current schema version
func (c *rankingCache) Set(category domain.RankingCategory, entries []domain.RankingEntry, computedAt time.Time) {
	c.lru.Add(category, &cachedRankings{
		Version:    CacheSchemaVersion,
		Entries:    entries,
		ComputedAt: computedAt,
	})
}

// Invalidate drops every cached view; called when the underlying scores change
func (c *rankingCache) Invalidate() {
	c.lru.Purge()
}
