package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
	"github.com/vacationvibes/places-backend/internal/domain/entities"
	"github.com/vacationvibes/places-backend/internal/domain/repositories"
	"github.com/vacationvibes/places-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/vacationvibes/places-backend/pkg/errors"
)

// CommentAdapter implements comment persistence in Postgres.
type CommentAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCommentAdapter creates a new comment adapter.
func NewCommentAdapter(client *postgres.Client) repositories.CommentRepository {
	return &CommentAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a comment record.
func (a *CommentAdapter) Create(ctx context.Context, comment *entities.Comment) error {
	if comment == nil {
		return apperrors.NewInternalError("comment is nil", fmt.Errorf("comment is nil"))
	}

	record := goqu.Record{
		"id":         comment.ID,
		"user_id":    comment.UserID,
		"place_id":   comment.PlaceID,
		"text":       comment.Text,
		"created_at": comment.CreatedAt,
	}

	query, args, err := a.db.Insert("comments").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build comment insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgForeignKeyViolation {
			return apperrors.NewInvalidReferenceError("this place does not exist")
		}
		return storeError("failed to create comment", err)
	}

	return nil
}

// GetByID retrieves a comment by ID
func (a *CommentAdapter) GetByID(ctx context.Context, id string) (*entities.Comment, error) {
	query, args, err := a.db.Select(
		"id", "user_id", "place_id", "text", "created_at",
	).From("comments").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build comment query", err)
	}

	comment := &entities.Comment{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&comment.ID,
		&comment.UserID,
		&comment.PlaceID,
		&comment.Text,
		&comment.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("comment with id %s not found", id))
	}
	if err != nil {
		return nil, storeError("failed to get comment", err)
	}

	return comment, nil
}

// ListByPlace returns a place's comments newest first
func (a *CommentAdapter) ListByPlace(ctx context.Context, placeID string, offset, limit int) ([]*entities.Comment, error) {
	ds := a.db.Select(
		"id", "user_id", "place_id", "text", "created_at",
	).From("comments").
		Where(goqu.Ex{"place_id": placeID}).
		Order(goqu.I("created_at").Desc())

	if limit > 0 {
		ds = ds.Limit(uint(limit))
	}
	if offset > 0 {
		ds = ds.Offset(uint(offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build comment list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeError("failed to list comments", err)
	}
	defer rows.Close()

	comments := []*entities.Comment{}
	for rows.Next() {
		comment := &entities.Comment{}
		err := rows.Scan(
			&comment.ID,
			&comment.UserID,
			&comment.PlaceID,
			&comment.Text,
			&comment.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan comment", err)
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating comments", err)
	}

	return comments, nil
}

// Delete deletes a comment
func (a *CommentAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("comments").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build comment delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return storeError("failed to delete comment", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("comment with id %s not found", id))
	}

	return nil
}
