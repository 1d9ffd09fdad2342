package cache

import (
	"strings"
	"time"
)

const defaultScoreTTL = time.Minute

// MatchScoreCache stores hot-path matching score lookups.
type MatchScoreCache interface {
	GetScore(component, contractorID, eventID string) (float64, bool)
	SetScore(component, contractorID, eventID string, score float64)
}

type matchScoreCache struct {
	scores Cache[string, float64]
	ttl    time.Duration
}

// NewMatchScoreCache returns an in-memory cache for engine scores.
// A ttl of zero falls back to the default.
func NewMatchScoreCache(ttl time.Duration) MatchScoreCache {
	if ttl <= 0 {
		ttl = defaultScoreTTL
	}
	return &matchScoreCache{
		scores: NewTTLCache[string, float64](),
		ttl:    ttl,
	}
}

func (c *matchScoreCache) GetScore(component, contractorID, eventID string) (float64, bool) {
	return c.scores.Get(cacheKey(component, contractorID, eventID))
}

func (c *matchScoreCache) SetScore(component, contractorID, eventID string, score float64) {
	c.scores.Set(cacheKey(component, contractorID, eventID), score, c.ttl)
}

func cacheKey(parts ...string) string {
	return strings.Join(parts, ":")
}
