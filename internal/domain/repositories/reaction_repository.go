package repositories

import (
	"context"

	"github.com/vacationvibes/places-backend/internal/domain/entities"
)

// ReactionRepository defines the reaction side of the feed engine's store
// boundary.
type ReactionRepository interface {
	// Create appends a reaction row. Referencing a nonexistent place fails
	// with an INVALID_REFERENCE error and persists nothing.
	Create(ctx context.Context, reaction *entities.Reaction) error

	// CountByUser returns the user's total reaction count
	CountByUser(ctx context.Context, userID string) (int, error)

	// WeightedTagPreference returns the user's net sentiment per tag:
	// likeWeight per like and dislikeWeight per dislike, summed over the
	// tags of each reacted place, excluding excludedTags entirely.
	WeightedTagPreference(ctx context.Context, userID string, excludedTags []string, likeWeight, dislikeWeight float64) (map[string]float64, error)

	// ListByUser returns the user's reactions newest first, with each
	// reaction's place (tags and images included) materialized.
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]*entities.Reaction, error)
}
