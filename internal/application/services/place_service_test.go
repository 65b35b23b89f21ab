package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vacationvibes/places-backend/internal/application/services"
	"github.com/vacationvibes/places-backend/internal/domain/entities"
	"github.com/vacationvibes/places-backend/internal/domain/repositories"
	apperrors "github.com/vacationvibes/places-backend/pkg/errors"
)

// fakeSearchRepo is an in-memory PlaceSearchRepository for tests
type fakeSearchRepo struct {
	indexed []*entities.Place
	results []*entities.Place

	indexErr error
}

func (f *fakeSearchRepo) Search(ctx context.Context, params repositories.SearchParams) ([]*entities.Place, error) {
	return f.results, nil
}

func (f *fakeSearchRepo) Index(ctx context.Context, place *entities.Place) error {
	if f.indexErr != nil {
		return f.indexErr
	}
	f.indexed = append(f.indexed, place)
	return nil
}

func (f *fakeSearchRepo) Delete(ctx context.Context, id string) error {
	return nil
}

func TestPlaceService_Create_IndexesPlace(t *testing.T) {
	placeRepo := &fakePlaceRepo{}
	searchRepo := &fakeSearchRepo{}
	service := services.NewPlaceService(placeRepo, searchRepo)

	place := &entities.Place{
		ProviderPlaceID: "ChIJabc",
		Name:            "Old Town Museum",
	}

	require.NoError(t, service.Create(context.Background(), place))

	assert.NotEmpty(t, place.ID)
	assert.False(t, place.CreatedAt.IsZero())
	assert.Len(t, searchRepo.indexed, 1)

	stored, err := service.GetByID(context.Background(), place.ID)
	require.NoError(t, err)
	assert.Equal(t, "Old Town Museum", stored.Name)
}

func TestPlaceService_Create_IndexFailureIsNotFatal(t *testing.T) {
	searchRepo := &fakeSearchRepo{indexErr: assert.AnError}
	service := services.NewPlaceService(&fakePlaceRepo{}, searchRepo)

	err := service.Create(context.Background(), &entities.Place{
		ProviderPlaceID: "ChIJabc",
		Name:            "Old Town Museum",
	})

	assert.NoError(t, err)
}

func TestPlaceService_Create_Validation(t *testing.T) {
	service := services.NewPlaceService(&fakePlaceRepo{}, nil)

	err := service.Create(context.Background(), &entities.Place{ProviderPlaceID: "ChIJabc"})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	err = service.Create(context.Background(), &entities.Place{Name: "No Provider ID"})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestPlaceService_Search(t *testing.T) {
	searchRepo := &fakeSearchRepo{results: []*entities.Place{{ID: "p1"}}}
	service := services.NewPlaceService(&fakePlaceRepo{}, searchRepo)

	results, err := service.Search(context.Background(), repositories.SearchParams{Query: "museum", Limit: 10})

	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestPlaceService_Search_NoEngine(t *testing.T) {
	service := services.NewPlaceService(&fakePlaceRepo{}, nil)

	_, err := service.Search(context.Background(), repositories.SearchParams{Query: "museum"})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnavailable))

	_, err = service.Search(context.Background(), repositories.SearchParams{Query: "  "})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}
