package services

import (
	"context"

	"flight-ops/dispatch/internal/common"
	"flight-ops/dispatch/internal/db/repositories"
	"flight-ops/dispatch/internal/models/gorm"
)

// AirportCache memoizes airport lookups made while validating flights.
// A nil *AirportCache reads straight through to the repository.
type AirportCache struct {
	cache *common.LookupCache
}

func NewAirportCache(cache *common.LookupCache) *AirportCache {
	return &AirportCache{cache: cache}
}

// Get returns the airport for code through repo, or nil if it does not exist
func (c *AirportCache) Get(ctx context.Context, repo *repositories.Repository, code string) (*gorm.Airport, error) {
	if c == nil || c.cache == nil {
		return repo.Airports.GetByCode(ctx, code)
	}

	val, err := c.cache.GetOrLoad(code, func() (interface{}, error) {
		airport, err := repo.Airports.GetByCode(ctx, code)
		if err != nil || airport == nil {
			return nil, err
		}
		return airport, nil
	})
	if err != nil || val == nil {
		return nil, err
	}
	return val.(*gorm.Airport), nil
}

// Invalidate drops code after an update or delete
func (c *AirportCache) Invalidate(code string) {
	if c == nil || c.cache == nil {
		return
	}
	c.cache.Delete(code)
}
