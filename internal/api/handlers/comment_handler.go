package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/vacationvibes/places-backend/internal/api/middleware"
	"github.com/vacationvibes/places-backend/internal/application/services"
)

// CommentHandler handles place comment endpoints
type CommentHandler struct {
	comments *services.CommentService
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(comments *services.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

type createCommentRequest struct {
	Text string `json:"text"`
}

// CreateComment handles POST /place/{id}/comments
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	placeID := r.PathValue("id")
	if placeID == "" {
		respondWithError(w, http.StatusBadRequest, "place ID is required")
		return
	}

	var req createCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	comment, err := h.comments.Create(r.Context(), userID, placeID, req.Text)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, comment)
}

// ListComments handles GET /place/{id}/comments?offset=&limit=
func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	placeID := r.PathValue("id")
	if placeID == "" {
		respondWithError(w, http.StatusBadRequest, "place ID is required")
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

	comments, err := h.comments.ListByPlace(r.Context(), placeID, offset, limit)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"comments": comments,
		"count":    len(comments),
	})
}

// DeleteComment handles DELETE /place/comments/{id}
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	commentID := r.PathValue("id")
	if commentID == "" {
		respondWithError(w, http.StatusBadRequest, "comment ID is required")
		return
	}

	if err := h.comments.Delete(r.Context(), userID, commentID); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
