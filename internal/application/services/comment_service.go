package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vacationvibes/places-backend/internal/domain/entities"
	"github.com/vacationvibes/places-backend/internal/domain/repositories"
	apperrors "github.com/vacationvibes/places-backend/pkg/errors"
)

const maxCommentLength = 2000

// CommentService handles business logic for place comments
type CommentService struct {
	repo repositories.CommentRepository
}

// NewCommentService creates a new comment service
func NewCommentService(repo repositories.CommentRepository) *CommentService {
	return &CommentService{repo: repo}
}

// Create adds a comment to a place
func (s *CommentService) Create(ctx context.Context, userID, placeID, text string) (*entities.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.NewValidationError("comment text is required")
	}
	if len(text) > maxCommentLength {
		return nil, apperrors.NewValidationError("comment text is too long")
	}
	if placeID == "" {
		return nil, apperrors.NewValidationError("place_id is required")
	}

	comment := &entities.Comment{
		ID:        uuid.New().String(),
		UserID:    userID,
		PlaceID:   placeID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListByPlace returns a place's comments newest first
func (s *CommentService) ListByPlace(ctx context.Context, placeID string, offset, limit int) ([]*entities.Comment, error) {
	if offset < 0 {
		return nil, apperrors.NewValidationError("offset must not be negative")
	}
	if limit <= 0 || limit > maxReactionPageSize {
		limit = 20
	}
	return s.repo.ListByPlace(ctx, placeID, offset, limit)
}

// Delete removes a comment. Only the comment's author may delete it.
func (s *CommentService) Delete(ctx context.Context, userID, commentID string) error {
	comment, err := s.repo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		return apperrors.NewUnauthorizedError("comment belongs to another user")
	}
	return s.repo.Delete(ctx, commentID)
}
