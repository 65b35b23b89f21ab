package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vacationvibes/places-backend/internal/application/services"
	"github.com/vacationvibes/places-backend/internal/domain/entities"
	apperrors "github.com/vacationvibes/places-backend/pkg/errors"
)

func TestReactionService_Create(t *testing.T) {
	repo := &fakeReactionRepo{}
	bus := newFakeEventBus()
	service := services.NewReactionService(repo, bus)

	reaction, err := service.Create(context.Background(), "u1", "p1", entities.ReactionLike)

	require.NoError(t, err)
	assert.NotEmpty(t, reaction.ID)
	assert.Equal(t, "u1", reaction.UserID)
	assert.Equal(t, "p1", reaction.PlaceID)
	assert.Equal(t, entities.ReactionLike, reaction.Reaction)
	require.Len(t, repo.created, 1)

	assert.Eventually(t, func() bool {
		events := bus.publishedEvents()
		return len(events) == 1 && events[0].UserID == "u1" && events[0].PlaceID == "p1"
	}, time.Second, 10*time.Millisecond)
}

func TestReactionService_Create_InvalidPolarity(t *testing.T) {
	service := services.NewReactionService(&fakeReactionRepo{}, nil)

	_, err := service.Create(context.Background(), "u1", "p1", "meh")

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestReactionService_Create_UnknownPlace(t *testing.T) {
	repo := &fakeReactionRepo{createErr: apperrors.NewInvalidReferenceError("this place does not exist")}
	service := services.NewReactionService(repo, nil)

	_, err := service.Create(context.Background(), "u1", "ghost", entities.ReactionDislike)

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInvalidReference))
}

func TestReactionService_Create_DuplicatesAllowed(t *testing.T) {
	repo := &fakeReactionRepo{}
	service := services.NewReactionService(repo, nil)

	_, err := service.Create(context.Background(), "u1", "p1", entities.ReactionLike)
	require.NoError(t, err)
	_, err = service.Create(context.Background(), "u1", "p1", entities.ReactionLike)
	require.NoError(t, err)

	assert.Len(t, repo.created, 2)
}

func TestReactionService_ListByUser_Validation(t *testing.T) {
	service := services.NewReactionService(&fakeReactionRepo{}, nil)

	_, err := service.ListByUser(context.Background(), "u1", -1, 10)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	_, err = service.ListByUser(context.Background(), "u1", 0, 101)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestReactionService_ListByUser(t *testing.T) {
	repo := &fakeReactionRepo{
		reactions: []*entities.Reaction{
			{ID: "r1", PlaceID: "p1", Reaction: entities.ReactionLike, Place: &entities.Place{ID: "p1"}},
		},
	}
	service := services.NewReactionService(repo, nil)

	reactions, err := service.ListByUser(context.Background(), "u1", 0, 0)

	require.NoError(t, err)
	require.Len(t, reactions, 1)
	assert.NotNil(t, reactions[0].Place)
}
