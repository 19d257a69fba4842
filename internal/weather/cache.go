package weather

import (
	"math"
	"sync"
	"time"

	"github.com/couchcryptid/vessel-risk-service/internal/domain"
)

// CacheResult classifies a cache lookup for metrics.
type CacheResult string

const (
	CacheHit     CacheResult = "hit"
	CacheMiss    CacheResult = "miss"
	CacheExpired CacheResult = "expired"
)

// Once the map grows past this, Put sweeps expired entries. Keeps the cache
// bounded without a background janitor.
const cacheSweepThreshold = 4096

// cellKey identifies a 0.01 degree grid cell, roughly 1 km of latitude.
// Weather does not change meaningfully at finer resolution.
type cellKey struct {
	lat int32
	lon int32
}

func keyFor(lat, lon float64) cellKey {
	return cellKey{
		lat: int32(math.Round(lat * 100)),
		lon: int32(math.Round(lon * 100)),
	}
}

type cacheEntry struct {
	obs     domain.WeatherObservation
	expires time.Time
}

// Cache memoizes observations per grid cell with a TTL. Expired entries are
// dropped lazily on access.
type Cache struct {
	ttl     time.Duration
	mu      sync.Mutex
	entries map[cellKey]cacheEntry
}

// NewCache creates a cache holding observations for ttl.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[cellKey]cacheEntry),
	}
}

// Lookup returns the cached observation for the cell containing the
// position. An expired entry is deleted and reported as CacheExpired.
func (c *Cache) Lookup(lat, lon float64) (domain.WeatherObservation, CacheResult) {
	key := keyFor(lat, lon)

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return domain.WeatherObservation{}, CacheMiss
	}
	if clock.Now().After(e.expires) {
		delete(c.entries, key)
		return domain.WeatherObservation{}, CacheExpired
	}
	return e.obs, CacheHit
}

// Put stores an observation for the cell containing the position.
func (c *Cache) Put(lat, lon float64, obs domain.WeatherObservation) {
	key := keyFor(lat, lon)

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= cacheSweepThreshold {
		now := clock.Now()
		for k, e := range c.entries {
			if now.After(e.expires) {
				delete(c.entries, k)
			}
		}
	}
	c.entries[key] = cacheEntry{obs: obs, expires: clock.Now().Add(c.ttl)}
}

// Len reports the number of stored entries, expired ones included until the
// next sweep touches them.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
