package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
)

// opTimeout bounds each cache operation so a slow Redis never stalls a listing call.
const opTimeout = 2 * time.Second

// Facet cache keys. One key per store-wide distinct-value lookup used by
// filter normalization.
const (
	FacetBrands     = "facet:brands"
	FacetCategories = "facet:categories"
	FacetSizes      = "facet:sizes"
	facetPriceRange = "facet:price_range"
)

// priceRangeEntry is the cached form of the store-wide price range.
type priceRangeEntry struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// FacetCache caches store-wide distinct values (brands, categories, size
// names, price range) so filter normalization does not hit the database on
// every listing call. Entries expire after a fixed TTL; staleness up to the
// TTL is acceptable because the catalog changes only via bulk import.
type FacetCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewFacetCache creates a FacetCache backed by the given Redis client.
func NewFacetCache(redis *RedisClient, ttl time.Duration) *FacetCache {
	return &FacetCache{redis: redis, ttl: ttl}
}

// GetStrings returns a cached string list and whether it was present.
func (c *FacetCache) GetStrings(key string) ([]string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	raw, err := c.redis.Get(ctx, key)
	if err != nil {
		return nil, false
	}
	var vals []string
	if err := json.Unmarshal([]byte(raw), &vals); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("facet cache entry corrupt, ignoring")
		return nil, false
	}
	return vals, true
}

// SetStrings stores a string list under key. Failures are logged and swallowed;
// the cache is an optimization, not a source of truth.
func (c *FacetCache) SetStrings(key string, vals []string) {
	raw, err := json.Marshal(vals)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := c.redis.Set(ctx, key, string(raw), c.ttl); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("facet cache set failed")
	}
}

// GetPriceRange returns the cached store-wide price range and whether it was present.
func (c *FacetCache) GetPriceRange() (min, max int, ok bool) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	raw, err := c.redis.Get(ctx, facetPriceRange)
	if err != nil {
		return 0, 0, false
	}
	var entry priceRangeEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return 0, 0, false
	}
	return entry.Min, entry.Max, true
}

// SetPriceRange stores the store-wide price range.
func (c *FacetCache) SetPriceRange(min, max int) {
	raw, err := json.Marshal(priceRangeEntry{Min: min, Max: max})
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := c.redis.Set(ctx, facetPriceRange, string(raw), c.ttl); err != nil {
		log.Debug().Err(err).Msg("facet cache set failed")
	}
}

// Invalidate drops all facet keys. Called after bulk import.
func (c *FacetCache) Invalidate() error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	return c.redis.Delete(ctx, FacetBrands, FacetCategories, FacetSizes, facetPriceRange)
}
