package services

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
	"time"

	"github.com/vacationvibes/places-backend/internal/domain/entities"
	"github.com/vacationvibes/places-backend/internal/domain/providers"
	"github.com/vacationvibes/places-backend/internal/domain/repositories"
	"github.com/vacationvibes/places-backend/internal/infrastructure/observability"
	"github.com/vacationvibes/places-backend/pkg/config"
)

// FeedService assembles a user's recommendation feed. It picks a ranking
// strategy from the user's reaction history, delegates candidate selection to
// the place repository, and keeps a short-lived per-user cache in front of
// the whole pipeline.
type FeedService struct {
	reactionRepo repositories.ReactionRepository
	placeRepo    repositories.PlaceRepository
	preferences  *PreferenceService
	cache        providers.CacheProvider
	feedCfg      config.FeedConfig
	metrics      *observability.Metrics
}

// NewFeedService creates a new feed service. cache and metrics may be nil.
func NewFeedService(
	reactionRepo repositories.ReactionRepository,
	placeRepo repositories.PlaceRepository,
	preferences *PreferenceService,
	cache providers.CacheProvider,
	feedCfg config.FeedConfig,
	metrics *observability.Metrics,
) *FeedService {
	return &FeedService{
		reactionRepo: reactionRepo,
		placeRepo:    placeRepo,
		preferences:  preferences,
		cache:        cache,
		feedCfg:      feedCfg,
		metrics:      metrics,
	}
}

// GetFeed returns one page of recommendations for the user. Places the user
// already reacted to and places in ignoreIDs never appear.
//
// Users with fewer reactions than the cold-start threshold get the global
// top-rated page. Warm users get places ranked against their preferred tags;
// if their history nets out to no positive preference, they fall back to the
// top-rated page as well.
func (s *FeedService) GetFeed(ctx context.Context, userID string, ignoreIDs []string) (*entities.Feed, error) {
	ctx, span := observability.StartSpan(ctx, "FeedService.GetFeed")
	defer span.End()

	logger := observability.LoggerFromContext(ctx)
	cacheKey := s.feedCacheKey(userID, ignoreIDs)

	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var feed entities.Feed
			if err := json.Unmarshal(data, &feed); err == nil {
				logger.Debug().Str("user_id", userID).Msg("Feed served from cache")
				return &feed, nil
			}
		}
	}

	feed, err := s.buildFeed(ctx, userID, ignoreIDs)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	observability.RecordFeedState(ctx, s.metrics, string(feed.State))
	logger.Info().
		Str("user_id", userID).
		Str("state", string(feed.State)).
		Int("places", len(feed.Places)).
		Msg("Feed assembled")

	if s.cache != nil {
		go func() {
			cacheCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			data, err := json.Marshal(feed)
			if err != nil {
				return
			}
			if err := s.cache.Set(cacheCtx, cacheKey, data, s.feedCfg.CacheTTLSeconds); err != nil {
				observability.GetLogger().Warn().Err(err).Str("user_id", userID).Msg("Failed to cache feed")
			}
		}()
	}

	return feed, nil
}

func (s *FeedService) buildFeed(ctx context.Context, userID string, ignoreIDs []string) (*entities.Feed, error) {
	count, err := s.reactionRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if count < s.feedCfg.ColdStartThreshold {
		places, err := s.placeRepo.FeedByRating(ctx, userID, ignoreIDs, s.feedCfg.PageLimit)
		if err != nil {
			return nil, err
		}
		return &entities.Feed{State: entities.FeedStateColdStart, Places: places}, nil
	}

	tagScores, err := s.preferences.PreferredTags(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(tagScores) == 0 {
		places, err := s.placeRepo.FeedByRating(ctx, userID, ignoreIDs, s.feedCfg.PageLimit)
		if err != nil {
			return nil, err
		}
		return &entities.Feed{State: entities.FeedStateWarmFallback, Places: places}, nil
	}

	places, err := s.placeRepo.FeedByRelevance(ctx, userID, ignoreIDs, tagScores, s.feedCfg.PageLimit)
	if err != nil {
		return nil, err
	}
	return &entities.Feed{State: entities.FeedStateWarmScored, Places: places}, nil
}

// feedCacheKey derives a stable cache key from the user and the ignore list.
// The ignore list is order-insensitive, so it is sorted before hashing.
func (s *FeedService) feedCacheKey(userID string, ignoreIDs []string) string {
	if len(ignoreIDs) == 0 {
		return fmt.Sprintf("feed:%s:all", userID)
	}

	sorted := make([]string, len(ignoreIDs))
	copy(sorted, ignoreIDs)
	sort.Strings(sorted)

	h := fnv.New64a()
	h.Write([]byte(strings.Join(sorted, ",")))
	return fmt.Sprintf("feed:%s:%x", userID, h.Sum64())
}
