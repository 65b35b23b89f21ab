package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/vacationvibes/places-backend/internal/api/middleware"
	"github.com/vacationvibes/places-backend/internal/application/services"
	"github.com/vacationvibes/places-backend/internal/domain/entities"
)

// ReactionHandler handles reaction endpoints
type ReactionHandler struct {
	reactions *services.ReactionService
}

// NewReactionHandler creates a new reaction handler
func NewReactionHandler(reactions *services.ReactionService) *ReactionHandler {
	return &ReactionHandler{reactions: reactions}
}

type createReactionRequest struct {
	PlaceID  string `json:"place_id"`
	Reaction string `json:"reaction"`
}

// CreateReaction handles POST /place/reaction
func (h *ReactionHandler) CreateReaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req createReactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reaction, err := h.reactions.Create(r.Context(), userID, req.PlaceID, entities.ReactionPolarity(req.Reaction))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, reaction)
}

// ListReactions handles GET /place/reactions?offset=&limit=
func (h *ReactionHandler) ListReactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	offset, ok := parseIntParam(r, "offset", 0)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "offset must be an integer")
		return
	}
	limit, ok := parseIntParam(r, "limit", 0)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "limit must be an integer")
		return
	}

	reactions, err := h.reactions.ListByUser(r.Context(), userID, offset, limit)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"reactions": reactions,
		"count":     len(reactions),
	})
}

func parseIntParam(r *http.Request, name string, defaultValue int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return value, true
}
