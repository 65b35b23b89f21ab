package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vacationvibes/places-backend/internal/application/services"
	"github.com/vacationvibes/places-backend/internal/domain/entities"
	"github.com/vacationvibes/places-backend/internal/domain/providers"
)

func TestCacheInvalidationService_Start(t *testing.T) {
	cache := newFakeCache()
	bus := newFakeEventBus()
	service := services.NewCacheInvalidationService(cache, bus)

	require.NoError(t, service.Start())
	defer service.Stop()

	assert.Equal(t, 1, bus.subscriberCount())
}

func TestCacheInvalidationService_ReactionDropsUserFeed(t *testing.T) {
	cache := newFakeCache()
	bus := newFakeEventBus()
	service := services.NewCacheInvalidationService(cache, bus)

	require.NoError(t, service.Start())
	defer service.Stop()

	ctx := context.Background()
	require.NoError(t, cache.Set(ctx, "feed:u1:all", []byte("stale"), 60))
	require.NoError(t, cache.Set(ctx, "feed:u1:8f2a", []byte("stale"), 60))
	require.NoError(t, cache.Set(ctx, "feed:u2:all", []byte("fresh"), 60))

	event := entities.NewReactionEvent("u1", "p1", entities.ReactionLike)
	require.NoError(t, bus.Publish(ctx, providers.EventChannelReactions, event))

	assert.Eventually(t, func() bool {
		return !cache.has("feed:u1:all") && !cache.has("feed:u1:8f2a")
	}, time.Second, 10*time.Millisecond)

	// Other users' feeds are untouched.
	assert.True(t, cache.has("feed:u2:all"))
}

func TestCacheInvalidationService_InvalidateUserFeed(t *testing.T) {
	cache := newFakeCache()
	service := services.NewCacheInvalidationService(cache, newFakeEventBus())

	ctx := context.Background()
	require.NoError(t, cache.Set(ctx, "feed:u1:all", []byte("stale"), 60))

	require.NoError(t, service.InvalidateUserFeed(ctx, "u1"))

	assert.False(t, cache.has("feed:u1:all"))
	assert.Len(t, cache.deletedKeys(), 1)
}
