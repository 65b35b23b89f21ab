package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
	"github.com/vacationvibes/places-backend/internal/domain/entities"
	"github.com/vacationvibes/places-backend/internal/domain/repositories"
	"github.com/vacationvibes/places-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/vacationvibes/places-backend/pkg/errors"
)

// PlaceAdapter implements the PlaceRepository interface
type PlaceAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewPlaceAdapter creates a new place adapter
func NewPlaceAdapter(client *postgres.Client) repositories.PlaceRepository {
	return &PlaceAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new place with its tags and images
func (a *PlaceAdapter) Create(ctx context.Context, place *entities.Place) error {
	if place == nil {
		return apperrors.NewInternalError("place is nil", fmt.Errorf("place is nil"))
	}

	record := goqu.Record{
		"id":         place.ID,
		"place_id":   place.ProviderPlaceID,
		"name":       place.Name,
		"latitude":   place.Location.Latitude,
		"longitude":  place.Location.Longitude,
		"rating":     ratingValue(place.Rating),
		"created_at": place.CreatedAt,
	}

	query, args, err := a.db.Insert("places").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build place insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return storeError("failed to create place", err)
	}

	if len(place.Types) > 0 {
		rows := make([]goqu.Record, 0, len(place.Types))
		for _, t := range place.Types {
			rows = append(rows, goqu.Record{"place_id": place.ID, "type": t.Type})
		}
		query, args, err := a.db.Insert("place_types").Rows(rows).ToSQL()
		if err != nil {
			return apperrors.NewInternalError("failed to build place types insert query", err)
		}
		if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
			return storeError("failed to create place types", err)
		}
	}

	if len(place.Images) > 0 {
		rows := make([]goqu.Record, 0, len(place.Images))
		for _, img := range place.Images {
			rows = append(rows, goqu.Record{"place_id": place.ID, "image_url": img.ImageURL})
		}
		query, args, err := a.db.Insert("place_images").Rows(rows).ToSQL()
		if err != nil {
			return apperrors.NewInternalError("failed to build place images insert query", err)
		}
		if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
			return storeError("failed to create place images", err)
		}
	}

	return nil
}

// GetByID retrieves a place by ID with tags and images materialized
func (a *PlaceAdapter) GetByID(ctx context.Context, id string) (*entities.Place, error) {
	query, args, err := a.db.Select(
		"id", "place_id", "name", "latitude", "longitude", "rating", "created_at",
	).From("places").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build place query", err)
	}

	place, err := scanPlace(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("place with id %s not found", id))
	}
	if err != nil {
		return nil, storeError("failed to get place", err)
	}

	if err := a.loadAssociations(ctx, []*entities.Place{place}); err != nil {
		return nil, err
	}

	return place, nil
}

// List retrieves places with pagination, newest first
func (a *PlaceAdapter) List(ctx context.Context, filter repositories.PlaceFilter) ([]*entities.Place, error) {
	ds := a.db.Select(
		"id", "place_id", "name", "latitude", "longitude", "rating", "created_at",
	).From("places").
		Order(goqu.I("created_at").Desc())

	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build place list query", err)
	}

	places, err := a.queryPlaces(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	if err := a.loadAssociations(ctx, places); err != nil {
		return nil, err
	}

	return places, nil
}

// CountPlaces returns the total number of catalog places
func (a *PlaceAdapter) CountPlaces(ctx context.Context) (int, error) {
	var count int
	err := a.client.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM places`).Scan(&count)
	if err != nil {
		return 0, storeError("failed to count places", err)
	}
	return count, nil
}

// TagDocumentFrequency returns, per non-excluded tag, how many places carry it
func (a *PlaceAdapter) TagDocumentFrequency(ctx context.Context, excludedTags []string) (map[string]int, error) {
	query := `
		SELECT pt.type, COUNT(DISTINCT pt.place_id)
		FROM place_types pt
		WHERE NOT (pt.type = ANY($1))
		GROUP BY pt.type
	`

	rows, err := a.client.DB().QueryContext(ctx, query, pq.Array(stringSlice(excludedTags)))
	if err != nil {
		return nil, storeError("failed to query tag document frequency", err)
	}
	defer rows.Close()

	frequencies := make(map[string]int)
	for rows.Next() {
		var tag string
		var count int
		if err := rows.Scan(&tag, &count); err != nil {
			return nil, apperrors.NewInternalError("failed to scan tag frequency", err)
		}
		frequencies[tag] = count
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating tag frequencies", err)
	}

	return frequencies, nil
}

// FeedByRating returns unseen, non-ignored places ordered by rating
// descending with unrated places last.
func (a *PlaceAdapter) FeedByRating(ctx context.Context, userID string, ignoreIDs []string, limit int) ([]*entities.Place, error) {
	query := `
		SELECT p.id, p.place_id, p.name, p.latitude, p.longitude, p.rating, p.created_at
		FROM places p
		WHERE NOT EXISTS (
			SELECT 1 FROM reactions r WHERE r.place_id = p.id AND r.user_id = $1
		)
		AND NOT (p.id = ANY($2))
		ORDER BY p.rating DESC NULLS LAST, p.created_at DESC
		LIMIT $3
	`

	places, err := a.queryPlaces(ctx, query, userID, pq.Array(stringSlice(ignoreIDs)), limit)
	if err != nil {
		return nil, err
	}

	if err := a.loadAssociations(ctx, places); err != nil {
		return nil, err
	}

	return places, nil
}

// FeedByRelevance returns unseen, non-ignored places carrying at least one
// scored tag, ordered by the summed scores of the matched tags, then rating.
// The per-tag scores are joined in as an inline VALUES list so the ordering
// happens in a single query.
func (a *PlaceAdapter) FeedByRelevance(ctx context.Context, userID string, ignoreIDs []string, tagScores []entities.TagScore, limit int) ([]*entities.Place, error) {
	if len(tagScores) == 0 {
		return []*entities.Place{}, nil
	}

	valueRows := make([]string, 0, len(tagScores))
	args := []interface{}{userID, pq.Array(stringSlice(ignoreIDs)), limit}
	argIndex := len(args) + 1
	for _, ts := range tagScores {
		valueRows = append(valueRows, fmt.Sprintf("($%d::text, $%d::float8)", argIndex, argIndex+1))
		args = append(args, ts.Tag, ts.Score)
		argIndex += 2
	}

	query := fmt.Sprintf(`
		SELECT p.id, p.place_id, p.name, p.latitude, p.longitude, p.rating, p.created_at
		FROM places p
		JOIN place_types pt ON pt.place_id = p.id
		JOIN (VALUES %s) AS pref(type, score) ON pref.type = pt.type
		WHERE NOT EXISTS (
			SELECT 1 FROM reactions r WHERE r.place_id = p.id AND r.user_id = $1
		)
		AND NOT (p.id = ANY($2))
		GROUP BY p.id, p.place_id, p.name, p.latitude, p.longitude, p.rating, p.created_at
		ORDER BY SUM(pref.score) DESC, p.rating DESC NULLS LAST, p.created_at DESC
		LIMIT $3
	`, strings.Join(valueRows, ", "))

	places, err := a.queryPlaces(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	if err := a.loadAssociations(ctx, places); err != nil {
		return nil, err
	}

	return places, nil
}

func (a *PlaceAdapter) queryPlaces(ctx context.Context, query string, args ...interface{}) ([]*entities.Place, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeError("failed to query places", err)
	}
	defer rows.Close()

	places := []*entities.Place{}
	for rows.Next() {
		place, err := scanPlace(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan place", err)
		}
		places = append(places, place)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating places", err)
	}

	return places, nil
}

// loadAssociations materializes tags and images for the given places in two
// batch queries, keyed by place id.
func (a *PlaceAdapter) loadAssociations(ctx context.Context, places []*entities.Place) error {
	if len(places) == 0 {
		return nil
	}

	index := make(map[string]*entities.Place, len(places))
	ids := make([]string, 0, len(places))
	for _, p := range places {
		p.Types = []entities.PlaceType{}
		p.Images = []entities.PlaceImage{}
		index[p.ID] = p
		ids = append(ids, p.ID)
	}

	typeRows, err := a.client.DB().QueryContext(ctx,
		`SELECT place_id, type FROM place_types WHERE place_id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return storeError("failed to query place types", err)
	}
	defer typeRows.Close()

	for typeRows.Next() {
		var placeID, tag string
		if err := typeRows.Scan(&placeID, &tag); err != nil {
			return apperrors.NewInternalError("failed to scan place type", err)
		}
		if p, ok := index[placeID]; ok {
			p.Types = append(p.Types, entities.PlaceType{Type: tag})
		}
	}
	if err := typeRows.Err(); err != nil {
		return apperrors.NewInternalError("error iterating place types", err)
	}

	imageRows, err := a.client.DB().QueryContext(ctx,
		`SELECT place_id, image_url FROM place_images WHERE place_id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return storeError("failed to query place images", err)
	}
	defer imageRows.Close()

	for imageRows.Next() {
		var placeID, imageURL string
		if err := imageRows.Scan(&placeID, &imageURL); err != nil {
			return apperrors.NewInternalError("failed to scan place image", err)
		}
		if p, ok := index[placeID]; ok {
			p.Images = append(p.Images, entities.PlaceImage{ImageURL: imageURL})
		}
	}
	if err := imageRows.Err(); err != nil {
		return apperrors.NewInternalError("error iterating place images", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPlace(row rowScanner) (*entities.Place, error) {
	place := &entities.Place{}
	var rating sql.NullFloat64

	err := row.Scan(
		&place.ID,
		&place.ProviderPlaceID,
		&place.Name,
		&place.Location.Latitude,
		&place.Location.Longitude,
		&rating,
		&place.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if rating.Valid {
		place.Rating = &rating.Float64
	}

	return place, nil
}

func ratingValue(rating *float64) interface{} {
	if rating == nil {
		return nil
	}
	return *rating
}

// stringSlice normalizes nil to an empty slice so pq.Array always binds a
// valid text[] parameter.
func stringSlice(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
