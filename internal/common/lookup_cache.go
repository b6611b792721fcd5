package common

import (
	"time"

	"flight-ops/dispatch/internal/metrics"

	"github.com/patrickmn/go-cache"
)

// LookupCache memoizes reference-data lookups in process memory
type LookupCache struct {
	name    string
	cache   *cache.Cache
	metrics *metrics.MetricsRegistry
}

// NewLookupCache creates a named cache. m may be nil.
func NewLookupCache(name string, defaultExpirationSeconds, cleanUpIntervalSeconds int, m *metrics.MetricsRegistry) *LookupCache {
	defaultExpiration := time.Duration(defaultExpirationSeconds) * time.Second
	cleanUpInterval := time.Duration(cleanUpIntervalSeconds) * time.Second
	return &LookupCache{
		name:    name,
		cache:   cache.New(defaultExpiration, cleanUpInterval),
		metrics: m,
	}
}

func (lc *LookupCache) Get(key string) (interface{}, bool) {
	val, found := lc.cache.Get(key)
	if lc.metrics != nil {
		if found {
			lc.metrics.CacheHitsTotal.WithLabelValues(lc.name).Inc()
		} else {
			lc.metrics.CacheMissesTotal.WithLabelValues(lc.name).Inc()
		}
	}
	return val, found
}

// Set stores value under the cache's default expiration
func (lc *LookupCache) Set(key string, value interface{}) {
	lc.cache.SetDefault(key, value)
}

func (lc *LookupCache) Delete(key string) {
	lc.cache.Delete(key)
}

// Flush drops every entry
func (lc *LookupCache) Flush() {
	lc.cache.Flush()
}

// GetOrLoad returns the cached value for key or stores what loader returns.
// A nil value from loader (record absent) is not cached.
func (lc *LookupCache) GetOrLoad(key string, loader func() (interface{}, error)) (interface{}, error) {
	if val, found := lc.Get(key); found {
		return val, nil
	}

	val, err := loader()
	if err != nil {
		return nil, err
	}

	if val != nil {
		lc.Set(key, val)
	}
	return val, nil
}
