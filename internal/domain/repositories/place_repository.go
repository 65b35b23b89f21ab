package repositories

import (
	"context"

	"github.com/vacationvibes/places-backend/internal/domain/entities"
)

// PlaceRepository defines the catalog side of the feed engine's store
// boundary. All reads return fully materialized data; nothing here triggers
// implicit I/O on field access.
type PlaceRepository interface {
	// Create creates a new place with its tags and images
	Create(ctx context.Context, place *entities.Place) error

	// GetByID retrieves a place with tags and images materialized
	GetByID(ctx context.Context, id string) (*entities.Place, error)

	// List retrieves places with pagination
	List(ctx context.Context, filter PlaceFilter) ([]*entities.Place, error)

	// CountPlaces returns the total number of catalog places
	CountPlaces(ctx context.Context) (int, error)

	// TagDocumentFrequency returns, per non-excluded tag, the number of
	// catalog places carrying that tag
	TagDocumentFrequency(ctx context.Context, excludedTags []string) (map[string]int, error)

	// FeedByRating returns candidate places the user has never reacted to
	// and that are not in ignoreIDs, ordered by rating descending with
	// unrated places last
	FeedByRating(ctx context.Context, userID string, ignoreIDs []string, limit int) ([]*entities.Place, error)

	// FeedByRelevance returns candidate places carrying at least one scored
	// tag, excluding reacted and ignored places, ordered by the sum of the
	// matched tags' scores descending, then rating descending (unrated last)
	FeedByRelevance(ctx context.Context, userID string, ignoreIDs []string, tagScores []entities.TagScore, limit int) ([]*entities.Place, error)
}

// PlaceSearchRepository defines full-text place search (e.g. Typesense)
type PlaceSearchRepository interface {
	// Search searches places by free text
	Search(ctx context.Context, params SearchParams) ([]*entities.Place, error)

	// Index indexes a place
	Index(ctx context.Context, place *entities.Place) error

	// Delete removes a place from the index
	Delete(ctx context.Context, id string) error
}

// PlaceFilter defines filters for listing places
type PlaceFilter struct {
	Limit  int
	Offset int
}

// SearchParams defines parameters for place search
type SearchParams struct {
	Query  string
	Limit  int
	Offset int
}
