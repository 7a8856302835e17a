// Package cache memoizes read-side views keyed by a content hash of the entry
// collection.
package cache

import (
	"fmt"
	"time"

	"github.com/zeromicro/go-zero/core/collection"

	"github.com/shubh-37/journal-companion/internal/models"
)

const (
	defaultTTL   = 10 * time.Minute
	defaultLimit = 64
)

// TrendCache stores trend series per (collection digest, anchor date).
type TrendCache struct {
	store *collection.Cache
}

// NewTrendCache builds a cache whose items expire after ttl.
func NewTrendCache(ttl time.Duration) (*TrendCache, error) {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	store, err := collection.NewCache(ttl, collection.WithLimit(defaultLimit), collection.WithName("journal-trends"))
	if err != nil {
		return nil, fmt.Errorf("failed to create trend cache: %w", err)
	}
	return &TrendCache{store: store}, nil
}

// Series returns the cached series for entries and anchor, computing and
// storing it with compute on a miss.
func (c *TrendCache) Series(entries []models.JournalEntry, anchor string, compute func() (models.TrendSeries, error)) (models.TrendSeries, error) {
	digest, err := Digest(entries)
	if err != nil {
		return compute()
	}
	key := digest + ":" + anchor
	val, err := c.store.Take(key, func() (any, error) {
		return compute()
	})
	if err != nil {
		return models.TrendSeries{}, err
	}
	series, ok := val.(models.TrendSeries)
	if !ok {
		return compute()
	}
	return series, nil
}
