package repositories

import (
	"context"

	"github.com/vacationvibes/places-backend/internal/domain/entities"
)

// CommentRepository defines the interface for comment persistence
type CommentRepository interface {
	// Create creates a new comment. Referencing a nonexistent place fails
	// with an INVALID_REFERENCE error.
	Create(ctx context.Context, comment *entities.Comment) error

	// GetByID retrieves a comment by ID
	GetByID(ctx context.Context, id string) (*entities.Comment, error)

	// ListByPlace returns a place's comments newest first
	ListByPlace(ctx context.Context, placeID string, offset, limit int) ([]*entities.Comment, error)

	// Delete deletes a comment
	Delete(ctx context.Context, id string) error
}
