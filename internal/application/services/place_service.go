package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vacationvibes/places-backend/internal/domain/entities"
	"github.com/vacationvibes/places-backend/internal/domain/repositories"
	"github.com/vacationvibes/places-backend/internal/infrastructure/observability"
	apperrors "github.com/vacationvibes/places-backend/pkg/errors"
)

// PlaceService handles business logic for the place catalog
type PlaceService struct {
	repo       repositories.PlaceRepository
	searchRepo repositories.PlaceSearchRepository
}

// NewPlaceService creates a new place service. searchRepo may be nil when no
// search engine is configured.
func NewPlaceService(repo repositories.PlaceRepository, searchRepo repositories.PlaceSearchRepository) *PlaceService {
	return &PlaceService{
		repo:       repo,
		searchRepo: searchRepo,
	}
}

// Create stores a new place and indexes it. Indexing failures are logged and
// swallowed; the index catches up on the next reindex run.
func (s *PlaceService) Create(ctx context.Context, place *entities.Place) error {
	ctx, span := observability.StartSpan(ctx, "PlaceService.Create")
	defer span.End()

	if strings.TrimSpace(place.Name) == "" {
		return apperrors.NewValidationError("place name is required")
	}
	if strings.TrimSpace(place.ProviderPlaceID) == "" {
		return apperrors.NewValidationError("place_id is required")
	}

	if place.ID == "" {
		place.ID = uuid.New().String()
	}
	if place.CreatedAt.IsZero() {
		place.CreatedAt = time.Now().UTC()
	}

	if err := s.repo.Create(ctx, place); err != nil {
		observability.RecordError(span, err)
		return err
	}

	if s.searchRepo != nil {
		if err := s.searchRepo.Index(ctx, place); err != nil {
			observability.LoggerFromContext(ctx).Warn().
				Err(err).
				Str("place_id", place.ID).
				Msg("Failed to index place")
		}
	}

	return nil
}

// GetByID retrieves a place by ID
func (s *PlaceService) GetByID(ctx context.Context, id string) (*entities.Place, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves places with pagination
func (s *PlaceService) List(ctx context.Context, filter repositories.PlaceFilter) ([]*entities.Place, error) {
	return s.repo.List(ctx, filter)
}

// Search searches places by free text via the search engine
func (s *PlaceService) Search(ctx context.Context, params repositories.SearchParams) ([]*entities.Place, error) {
	if strings.TrimSpace(params.Query) == "" {
		return nil, apperrors.NewValidationError("search query is required")
	}
	if s.searchRepo == nil {
		return nil, apperrors.NewUnavailableError("search is not configured", nil)
	}
	return s.searchRepo.Search(ctx, params)
}
