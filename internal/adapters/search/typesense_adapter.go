package search

import (
	"context"
	"fmt"
	"time"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"
	"github.com/vacationvibes/places-backend/internal/domain/entities"
	"github.com/vacationvibes/places-backend/internal/domain/repositories"
	tsclient "github.com/vacationvibes/places-backend/internal/infrastructure/clients/typesense"
)

// TypesenseAdapter implements place search using Typesense
type TypesenseAdapter struct {
	client *tsclient.Client
}

// Ensure TypesenseAdapter implements PlaceSearchRepository
var _ repositories.PlaceSearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// InitSchema ensures the places collection exists
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	_, err := a.client.Client().Collection(tsclient.PlacesCollection).Retrieve(ctx)
	if err == nil {
		return nil // Collection exists
	}

	schema := &api.CollectionSchema{
		Name: tsclient.PlacesCollection,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "place_id", Type: "string"},
			{Name: "name", Type: "string"},
			{Name: "types", Type: "string[]", Facet: pointer.True()},
			{Name: "location", Type: "geopoint"},
			{Name: "rating", Type: "float", Optional: pointer.True()},
			{Name: "created_at", Type: "int64"},
		},
		DefaultSortingField: pointer.String("created_at"),
	}

	_, err = a.client.Client().Collections().Create(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create typesense collection: %w", err)
	}

	return nil
}

// Index upserts a place into the search index
func (a *TypesenseAdapter) Index(ctx context.Context, place *entities.Place) error {
	document := map[string]interface{}{
		"id":         place.ID,
		"place_id":   place.ProviderPlaceID,
		"name":       place.Name,
		"types":      buildIndexTags(place),
		"location":   []float64{place.Location.Latitude, place.Location.Longitude},
		"created_at": place.CreatedAt.Unix(),
	}
	if place.Rating != nil {
		document["rating"] = *place.Rating
	}

	_, err := a.client.Client().Collection(tsclient.PlacesCollection).Documents().Upsert(ctx, document)
	if err != nil {
		return fmt.Errorf("failed to index place: %w", err)
	}

	return nil
}

// Delete removes a place from the index
func (a *TypesenseAdapter) Delete(ctx context.Context, id string) error {
	_, err := a.client.Client().Collection(tsclient.PlacesCollection).Document(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete place from index: %w", err)
	}
	return nil
}

// Search searches places by free text, matching on name and type tags
func (a *TypesenseAdapter) Search(ctx context.Context, params repositories.SearchParams) ([]*entities.Place, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 10
	}

	searchParams := &api.SearchCollectionParams{
		Q:       pointer.String(params.Query),
		QueryBy: pointer.String("name,types"),
		Page:    pointer.Int(params.Offset/limit + 1),
		PerPage: pointer.Int(limit),
	}

	result, err := a.client.Client().Collection(tsclient.PlacesCollection).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search places: %w", err)
	}

	places := []*entities.Place{}
	if result.Hits == nil {
		return places, nil
	}

	for _, hit := range *result.Hits {
		doc := *hit.Document
		places = append(places, documentToPlace(doc))
	}

	return places, nil
}

// documentToPlace reconstructs a place entity from a Typesense document.
// Typesense hands back map[string]interface{}, so every field is cast
// defensively; images never make it into the index and stay empty.
func documentToPlace(doc map[string]interface{}) *entities.Place {
	place := &entities.Place{}

	if val, ok := doc["id"].(string); ok {
		place.ID = val
	}
	if val, ok := doc["place_id"].(string); ok {
		place.ProviderPlaceID = val
	}
	if val, ok := doc["name"].(string); ok {
		place.Name = val
	}
	if val, ok := doc["rating"].(float64); ok {
		rating := val
		place.Rating = &rating
	}
	if val, ok := doc["created_at"].(float64); ok {
		place.CreatedAt = time.Unix(int64(val), 0).UTC()
	}

	if loc, ok := doc["location"].([]interface{}); ok && len(loc) == 2 {
		if lat, ok := loc[0].(float64); ok {
			place.Location.Latitude = lat
		}
		if lon, ok := loc[1].(float64); ok {
			place.Location.Longitude = lon
		}
	}

	if rawTypes, ok := doc["types"].([]interface{}); ok {
		for _, rt := range rawTypes {
			if name, ok := rt.(string); ok {
				place.Types = append(place.Types, entities.PlaceType{Type: name})
			}
		}
	}

	return place
}
