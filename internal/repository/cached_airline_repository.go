package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/alixtron0/tour-backoffice/internal/cache"
	"github.com/alixtron0/tour-backoffice/internal/domain"
)

const (
	// Cache key prefixes
	airlineDetailKeyPrefix = "airline:detail:"
	airlineCodeKeyPrefix   = "airline:code:"
	airlineListKey         = "airline:list"

	// Default TTL for airline caches
	airlineCacheTTL = 5 * time.Minute
)

// CachedAirlineRepository wraps AirlineRepository with Redis caching.
// Airlines are read on almost every screen but change rarely, so they
// are the one entity worth a cache layer. All cache writes are best
// effort. A Redis failure never fails the request.
type CachedAirlineRepository struct {
	repo  AirlineRepository
	cache *cache.Client
}

// NewCachedAirlineRepository creates a new CachedAirlineRepository
func NewCachedAirlineRepository(repo AirlineRepository, cache *cache.Client) *CachedAirlineRepository {
	return &CachedAirlineRepository{
		repo:  repo,
		cache: cache,
	}
}

// Create creates a new airline and invalidates the list cache
func (r *CachedAirlineRepository) Create(ctx context.Context, airline *domain.Airline) error {
	if err := r.repo.Create(ctx, airline); err != nil {
		return err
	}
	r.cache.Del(ctx, airlineListKey)
	return nil
}

// GetByID retrieves an airline by ID with caching
func (r *CachedAirlineRepository) GetByID(ctx context.Context, id string) (*domain.Airline, error) {
	cacheKey := airlineDetailKeyPrefix + id
	cached, err := r.cache.Get(ctx, cacheKey).Result()
	if err == nil && cached != "" {
		var airline domain.Airline
		if err := json.Unmarshal([]byte(cached), &airline); err == nil {
			return &airline, nil
		}
	}

	airline, err := r.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if airline == nil {
		return nil, nil
	}

	r.cacheAirline(ctx, cacheKey, airline)
	return airline, nil
}

// GetByCode retrieves an airline by IATA code with caching
func (r *CachedAirlineRepository) GetByCode(ctx context.Context, code string) (*domain.Airline, error) {
	cacheKey := airlineCodeKeyPrefix + code
	cached, err := r.cache.Get(ctx, cacheKey).Result()
	if err == nil && cached != "" {
		var airline domain.Airline
		if err := json.Unmarshal([]byte(cached), &airline); err == nil {
			return &airline, nil
		}
	}

	airline, err := r.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if airline == nil {
		return nil, nil
	}

	r.cacheAirline(ctx, cacheKey, airline)
	r.cacheAirline(ctx, airlineDetailKeyPrefix+airline.ID, airline)
	return airline, nil
}

// List retrieves all airlines with caching
func (r *CachedAirlineRepository) List(ctx context.Context) ([]*domain.Airline, error) {
	cached, err := r.cache.Get(ctx, airlineListKey).Result()
	if err == nil && cached != "" {
		var airlines []*domain.Airline
		if err := json.Unmarshal([]byte(cached), &airlines); err == nil {
			return airlines, nil
		}
	}

	airlines, err := r.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(airlines); err == nil {
		r.cache.Set(ctx, airlineListKey, data, airlineCacheTTL)
	}
	return airlines, nil
}

// Update updates an airline and invalidates its caches
func (r *CachedAirlineRepository) Update(ctx context.Context, airline *domain.Airline) error {
	if err := r.repo.Update(ctx, airline); err != nil {
		return err
	}
	r.invalidate(ctx, airline)
	return nil
}

// Delete deletes an airline and invalidates its caches
func (r *CachedAirlineRepository) Delete(ctx context.Context, id string) error {
	airline, _ := r.repo.GetByID(ctx, id)
	if err := r.repo.Delete(ctx, id); err != nil {
		return err
	}
	if airline != nil {
		r.invalidate(ctx, airline)
	} else {
		r.cache.Del(ctx, airlineDetailKeyPrefix+id, airlineListKey)
	}
	return nil
}

func (r *CachedAirlineRepository) cacheAirline(ctx context.Context, key string, airline *domain.Airline) {
	data, err := json.Marshal(airline)
	if err != nil {
		return
	}
	r.cache.Set(ctx, key, data, airlineCacheTTL)
}

func (r *CachedAirlineRepository) invalidate(ctx context.Context, airline *domain.Airline) {
	r.cache.Del(ctx,
		airlineDetailKeyPrefix+airline.ID,
		airlineCodeKeyPrefix+airline.Code,
		airlineListKey,
	)
}
