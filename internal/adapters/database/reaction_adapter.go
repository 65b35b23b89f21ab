package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
	"github.com/vacationvibes/places-backend/internal/domain/entities"
	"github.com/vacationvibes/places-backend/internal/domain/repositories"
	"github.com/vacationvibes/places-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/vacationvibes/places-backend/pkg/errors"
)

// pgForeignKeyViolation is the Postgres error code for FK violations
const pgForeignKeyViolation = "23503"

// ReactionAdapter implements reaction persistence in Postgres.
type ReactionAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewReactionAdapter creates a new reaction adapter.
func NewReactionAdapter(client *postgres.Client) repositories.ReactionRepository {
	return &ReactionAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create appends a reaction row. A foreign key violation on place_id means
// the referenced place does not exist and surfaces as INVALID_REFERENCE.
func (a *ReactionAdapter) Create(ctx context.Context, reaction *entities.Reaction) error {
	if reaction == nil {
		return apperrors.NewInternalError("reaction is nil", fmt.Errorf("reaction is nil"))
	}

	record := goqu.Record{
		"id":         reaction.ID,
		"user_id":    reaction.UserID,
		"place_id":   reaction.PlaceID,
		"reaction":   string(reaction.Reaction),
		"created_at": reaction.CreatedAt,
	}

	query, args, err := a.db.Insert("reactions").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build reaction insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgForeignKeyViolation {
			return apperrors.NewInvalidReferenceError("this place does not exist")
		}
		return storeError("failed to create reaction", err)
	}

	return nil
}

// CountByUser returns the user's total reaction count
func (a *ReactionAdapter) CountByUser(ctx context.Context, userID string) (int, error) {
	query, args, err := a.db.Select(goqu.COUNT("*")).
		From("reactions").
		Where(goqu.Ex{"user_id": userID}).
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build reaction count query", err)
	}

	var count int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, storeError("failed to count reactions", err)
	}

	return count, nil
}

// WeightedTagPreference aggregates the user's net sentiment per tag. Each
// like contributes likeWeight and each dislike dislikeWeight to every
// non-excluded tag of the reacted place.
func (a *ReactionAdapter) WeightedTagPreference(ctx context.Context, userID string, excludedTags []string, likeWeight, dislikeWeight float64) (map[string]float64, error) {
	query := `
		SELECT pt.type,
			SUM(CASE r.reaction
				WHEN 'like' THEN $2::float8
				WHEN 'dislike' THEN $3::float8
				ELSE 0
			END) AS preference
		FROM reactions r
		JOIN place_types pt ON pt.place_id = r.place_id
		WHERE r.user_id = $1 AND NOT (pt.type = ANY($4))
		GROUP BY pt.type
	`

	rows, err := a.client.DB().QueryContext(ctx, query,
		userID, likeWeight, dislikeWeight, pq.Array(stringSlice(excludedTags)))
	if err != nil {
		return nil, storeError("failed to query weighted tag preference", err)
	}
	defer rows.Close()

	preferences := make(map[string]float64)
	for rows.Next() {
		var tag string
		var preference float64
		if err := rows.Scan(&tag, &preference); err != nil {
			return nil, apperrors.NewInternalError("failed to scan tag preference", err)
		}
		preferences[tag] = preference
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating tag preferences", err)
	}

	return preferences, nil
}

// ListByUser returns the user's reactions newest first with each place
// materialized.
func (a *ReactionAdapter) ListByUser(ctx context.Context, userID string, offset, limit int) ([]*entities.Reaction, error) {
	query := `
		SELECT r.id, r.user_id, r.place_id, r.reaction, r.created_at,
			p.id, p.place_id, p.name, p.latitude, p.longitude, p.rating, p.created_at
		FROM reactions r
		JOIN places p ON p.id = r.place_id
		WHERE r.user_id = $1
		ORDER BY r.created_at DESC
		OFFSET $2 LIMIT $3
	`

	rows, err := a.client.DB().QueryContext(ctx, query, userID, offset, limit)
	if err != nil {
		return nil, storeError("failed to list reactions", err)
	}
	defer rows.Close()

	reactions := []*entities.Reaction{}
	placesByID := make(map[string]*entities.Place)
	for rows.Next() {
		reaction := &entities.Reaction{}
		place := &entities.Place{}
		var rating sql.NullFloat64
		var polarity string

		err := rows.Scan(
			&reaction.ID,
			&reaction.UserID,
			&reaction.PlaceID,
			&polarity,
			&reaction.CreatedAt,
			&place.ID,
			&place.ProviderPlaceID,
			&place.Name,
			&place.Location.Latitude,
			&place.Location.Longitude,
			&rating,
			&place.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan reaction", err)
		}

		reaction.Reaction = entities.ReactionPolarity(polarity)
		if rating.Valid {
			place.Rating = &rating.Float64
		}

		// Reactions on the same place share one materialized Place
		if existing, ok := placesByID[place.ID]; ok {
			place = existing
		} else {
			placesByID[place.ID] = place
		}
		reaction.Place = place
		reactions = append(reactions, reaction)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating reactions", err)
	}

	if len(placesByID) > 0 {
		places := make([]*entities.Place, 0, len(placesByID))
		for _, p := range placesByID {
			places = append(places, p)
		}
		loader := &PlaceAdapter{client: a.client, db: a.db}
		if err := loader.loadAssociations(ctx, places); err != nil {
			return nil, err
		}
	}

	return reactions, nil
}

// storeError classifies a database error: connectivity failures surface as
// UNAVAILABLE so callers can decide on retry policy, everything else is
// INTERNAL.
func storeError(message string, err error) error {
	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) || errors.As(err, &netErr) {
		return apperrors.NewUnavailableError(message, err)
	}
	return apperrors.NewInternalError(message, err)
}
