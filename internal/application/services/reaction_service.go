package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vacationvibes/places-backend/internal/domain/entities"
	"github.com/vacationvibes/places-backend/internal/domain/providers"
	"github.com/vacationvibes/places-backend/internal/domain/repositories"
	"github.com/vacationvibes/places-backend/internal/infrastructure/observability"
	apperrors "github.com/vacationvibes/places-backend/pkg/errors"
)

// maxReactionPageSize caps the reaction history page size.
const maxReactionPageSize = 100

// ReactionService handles business logic for reactions
type ReactionService struct {
	repo     repositories.ReactionRepository
	eventBus providers.EventBus
}

// NewReactionService creates a new reaction service. eventBus may be nil.
func NewReactionService(repo repositories.ReactionRepository, eventBus providers.EventBus) *ReactionService {
	return &ReactionService{
		repo:     repo,
		eventBus: eventBus,
	}
}

// Create records a user's reaction to a place and announces it on the event
// bus so cached feeds for the user get dropped. Reacting to the same place
// twice is allowed; every reaction is a separate row.
func (s *ReactionService) Create(ctx context.Context, userID, placeID string, polarity entities.ReactionPolarity) (*entities.Reaction, error) {
	ctx, span := observability.StartSpan(ctx, "ReactionService.Create")
	defer span.End()

	if !polarity.Valid() {
		return nil, apperrors.NewValidationError("reaction must be 'like' or 'dislike'")
	}
	if placeID == "" {
		return nil, apperrors.NewValidationError("place_id is required")
	}

	reaction := &entities.Reaction{
		ID:        uuid.New().String(),
		UserID:    userID,
		PlaceID:   placeID,
		Reaction:  polarity,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, reaction); err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	if s.eventBus != nil {
		event := entities.NewReactionEvent(userID, placeID, polarity)
		go func() {
			pubCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			if err := s.eventBus.Publish(pubCtx, providers.EventChannelReactions, event); err != nil {
				observability.GetLogger().Warn().
					Err(err).
					Str("user_id", userID).
					Str("place_id", placeID).
					Msg("Failed to publish reaction event")
			}
		}()
	}

	return reaction, nil
}

// ListByUser returns the user's reaction history, newest first, with each
// reaction's place materialized.
func (s *ReactionService) ListByUser(ctx context.Context, userID string, offset, limit int) ([]*entities.Reaction, error) {
	if offset < 0 {
		return nil, apperrors.NewValidationError("offset must not be negative")
	}
	if limit > maxReactionPageSize {
		return nil, apperrors.NewValidationError("limit must not exceed 100")
	}
	if limit <= 0 {
		limit = maxReactionPageSize
	}

	return s.repo.ListByUser(ctx, userID, offset, limit)
}
