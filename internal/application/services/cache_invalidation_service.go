package services

import (
	"context"
	"fmt"
	"time"

	"github.com/vacationvibes/places-backend/internal/domain/entities"
	"github.com/vacationvibes/places-backend/internal/domain/providers"
	"github.com/vacationvibes/places-backend/internal/infrastructure/observability"
)

// CacheInvalidationService drops per-user feed caches when reactions arrive.
// A reaction changes both the user's exclusion set and (potentially) their
// tag preferences, so every cached feed page for that user is stale the
// moment the reaction lands.
type CacheInvalidationService struct {
	cache    providers.CacheProvider
	eventBus providers.EventBus
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewCacheInvalidationService creates a new cache invalidation service
func NewCacheInvalidationService(cache providers.CacheProvider, eventBus providers.EventBus) *CacheInvalidationService {
	ctx, cancel := context.WithCancel(context.Background())
	return &CacheInvalidationService{
		cache:    cache,
		eventBus: eventBus,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start begins listening for reaction events and invalidating feed caches
func (s *CacheInvalidationService) Start() error {
	eventChan, err := s.eventBus.Subscribe(s.ctx, providers.EventChannelReactions)
	if err != nil {
		return fmt.Errorf("failed to subscribe to reaction events: %w", err)
	}

	go s.processEvents(eventChan)
	observability.GetLogger().Info().Msg("Cache invalidation service started")
	return nil
}

// Stop stops the cache invalidation service
func (s *CacheInvalidationService) Stop() {
	s.cancel()
	observability.GetLogger().Info().Msg("Cache invalidation service stopped")
}

func (s *CacheInvalidationService) processEvents(eventChan <-chan *entities.ReactionEvent) {
	for {
		select {
		case <-s.ctx.Done():
			return
		case event := <-eventChan:
			if event == nil {
				continue
			}
			s.handleEvent(event)
		}
	}
}

func (s *CacheInvalidationService) handleEvent(event *entities.ReactionEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.InvalidateUserFeed(ctx, event.UserID); err != nil {
		observability.GetLogger().Warn().
			Err(err).
			Str("user_id", event.UserID).
			Str("event_id", event.ID).
			Msg("Failed to invalidate feed cache")
	}
}

// InvalidateUserFeed drops every cached feed page for the user. Catalog
// caches are left alone; their short TTLs expire naturally.
func (s *CacheInvalidationService) InvalidateUserFeed(ctx context.Context, userID string) error {
	pattern := fmt.Sprintf("feed:%s:*", userID)
	if err := s.cache.DeletePattern(ctx, pattern); err != nil {
		return fmt.Errorf("failed to invalidate feed cache: %w", err)
	}
	return nil
}
