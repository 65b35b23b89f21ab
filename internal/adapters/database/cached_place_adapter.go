package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vacationvibes/places-backend/internal/domain/entities"
	"github.com/vacationvibes/places-backend/internal/domain/providers"
	"github.com/vacationvibes/places-backend/internal/domain/repositories"
	"github.com/vacationvibes/places-backend/internal/infrastructure/observability"
)

// Cache TTLs (in seconds)
const (
	placeByIDTTL  = 300 // 5 minutes for single place
	placesListTTL = 180 // 3 minutes for lists
)

// CachedPlaceAdapter wraps a PlaceRepository with read-through caching for
// the catalog reads. Feed candidate queries and tag statistics pass through
// uncached: they are per-user or per-request and the feed layer caches its
// own results.
type CachedPlaceAdapter struct {
	adapter repositories.PlaceRepository
	cache   providers.CacheProvider
}

// NewCachedPlaceAdapter creates a new cached place adapter
func NewCachedPlaceAdapter(adapter repositories.PlaceRepository, cache providers.CacheProvider) repositories.PlaceRepository {
	return &CachedPlaceAdapter{
		adapter: adapter,
		cache:   cache,
	}
}

func placeCacheKey(id string) string {
	return fmt.Sprintf("place:%s", id)
}

func placesListCacheKey(filter repositories.PlaceFilter) string {
	return fmt.Sprintf("places:list:%d:%d", filter.Limit, filter.Offset)
}

// Create creates the place and invalidates list caches
func (a *CachedPlaceAdapter) Create(ctx context.Context, place *entities.Place) error {
	if err := a.adapter.Create(ctx, place); err != nil {
		return err
	}

	go func() {
		bgCtx := context.Background()
		if err := a.cache.DeletePattern(bgCtx, "places:list:*"); err != nil {
			observability.GetLogger().Warn().Err(err).Msg("failed to invalidate place list caches")
		}
	}()

	return nil
}

// GetByID retrieves a place by ID with caching
func (a *CachedPlaceAdapter) GetByID(ctx context.Context, id string) (*entities.Place, error) {
	cacheKey := placeCacheKey(id)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var place entities.Place
		if err := json.Unmarshal(cached, &place); err == nil {
			return &place, nil
		}
		// Corrupt cache entry, fall through to the database
		observability.GetLogger().Warn().Str("place_id", id).Err(err).Msg("failed to unmarshal cached place")
	}

	place, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Update cache asynchronously to avoid blocking the response
	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(place); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, placeByIDTTL); err != nil {
				observability.GetLogger().Warn().Str("place_id", id).Err(err).Msg("failed to cache place")
			}
		}
	}()

	return place, nil
}

// List retrieves places with caching
func (a *CachedPlaceAdapter) List(ctx context.Context, filter repositories.PlaceFilter) ([]*entities.Place, error) {
	cacheKey := placesListCacheKey(filter)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var places []*entities.Place
		if err := json.Unmarshal(cached, &places); err == nil {
			return places, nil
		}
	}

	places, err := a.adapter.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(places); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, placesListTTL); err != nil {
				observability.GetLogger().Warn().Err(err).Msg("failed to cache place list")
			}
		}
	}()

	return places, nil
}

// CountPlaces passes through to the underlying adapter
func (a *CachedPlaceAdapter) CountPlaces(ctx context.Context) (int, error) {
	return a.adapter.CountPlaces(ctx)
}

// TagDocumentFrequency passes through to the underlying adapter
func (a *CachedPlaceAdapter) TagDocumentFrequency(ctx context.Context, excludedTags []string) (map[string]int, error) {
	return a.adapter.TagDocumentFrequency(ctx, excludedTags)
}

// FeedByRating passes through to the underlying adapter
func (a *CachedPlaceAdapter) FeedByRating(ctx context.Context, userID string, ignoreIDs []string, limit int) ([]*entities.Place, error) {
	return a.adapter.FeedByRating(ctx, userID, ignoreIDs, limit)
}

// FeedByRelevance passes through to the underlying adapter
func (a *CachedPlaceAdapter) FeedByRelevance(ctx context.Context, userID string, ignoreIDs []string, tagScores []entities.TagScore, limit int) ([]*entities.Place, error) {
	return a.adapter.FeedByRelevance(ctx, userID, ignoreIDs, tagScores, limit)
}
