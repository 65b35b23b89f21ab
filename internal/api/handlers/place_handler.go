package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/vacationvibes/places-backend/internal/application/services"
	"github.com/vacationvibes/places-backend/internal/domain/entities"
	"github.com/vacationvibes/places-backend/internal/domain/repositories"
)

// PlaceHandler handles place catalog HTTP requests
type PlaceHandler struct {
	places *services.PlaceService
}

// NewPlaceHandler creates a new place handler
func NewPlaceHandler(places *services.PlaceService) *PlaceHandler {
	return &PlaceHandler{places: places}
}

type createPlaceRequest struct {
	PlaceID   string   `json:"place_id"`
	Name      string   `json:"name"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Rating    *float64 `json:"rating"`
	Types     []string `json:"types"`
	Images    []string `json:"images"`
}

// CreatePlace handles POST /api/places
func (h *PlaceHandler) CreatePlace(w http.ResponseWriter, r *http.Request) {
	var req createPlaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	place := &entities.Place{
		ProviderPlaceID: req.PlaceID,
		Name:            req.Name,
		Location:        entities.Location{Latitude: req.Latitude, Longitude: req.Longitude},
		Rating:          req.Rating,
	}
	for _, t := range req.Types {
		place.Types = append(place.Types, entities.PlaceType{Type: t})
	}
	for _, url := range req.Images {
		place.Images = append(place.Images, entities.PlaceImage{ImageURL: url})
	}

	if err := h.places.Create(r.Context(), place); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, place)
}

// GetPlace handles GET /api/places/{id}
func (h *PlaceHandler) GetPlace(w http.ResponseWriter, r *http.Request) {
	placeID := r.PathValue("id")
	if placeID == "" {
		respondWithError(w, http.StatusBadRequest, "place ID is required")
		return
	}

	place, err := h.places.GetByID(r.Context(), placeID)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, place)
}

// ListPlaces handles GET /api/places?limit=&offset=
func (h *PlaceHandler) ListPlaces(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseIntParam(r, "limit", 30)
	if !ok || limit <= 0 {
		respondWithError(w, http.StatusBadRequest, "limit must be a positive integer")
		return
	}
	offset, ok := parseIntParam(r, "offset", 0)
	if !ok || offset < 0 {
		respondWithError(w, http.StatusBadRequest, "offset must not be negative")
		return
	}

	places, err := h.places.List(r.Context(), repositories.PlaceFilter{Limit: limit, Offset: offset})
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"places": places,
		"count":  len(places),
	})
}

// SearchPlaces handles GET /api/places/search?q=&limit=
func (h *PlaceHandler) SearchPlaces(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseIntParam(r, "limit", 10)
	if !ok || limit <= 0 {
		respondWithError(w, http.StatusBadRequest, "limit must be a positive integer")
		return
	}
	offset, ok := parseIntParam(r, "offset", 0)
	if !ok || offset < 0 {
		respondWithError(w, http.StatusBadRequest, "offset must not be negative")
		return
	}

	places, err := h.places.Search(r.Context(), repositories.SearchParams{
		Query:  r.URL.Query().Get("q"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"places": places,
		"count":  len(places),
	})
}
