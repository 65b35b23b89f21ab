package handlers

import (
	"net/http"
	"strings"

	"github.com/vacationvibes/places-backend/internal/api/middleware"
	"github.com/vacationvibes/places-backend/internal/application/services"
)

// FeedHandler handles the personalized feed endpoint
type FeedHandler struct {
	feed *services.FeedService
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(feed *services.FeedService) *FeedHandler {
	return &FeedHandler{feed: feed}
}

// GetFeed handles GET /place/feed?ignore=id1,id2
func (h *FeedHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	ignoreIDs := parseIgnoreParam(r.URL.Query()["ignore"])

	feed, err := h.feed.GetFeed(r.Context(), userID, ignoreIDs)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, feed)
}

// parseIgnoreParam accepts both repeated ignore params and comma-separated
// lists, so ?ignore=a,b and ?ignore=a&ignore=b are equivalent.
func parseIgnoreParam(values []string) []string {
	var ids []string
	for _, value := range values {
		for _, id := range strings.Split(value, ",") {
			id = strings.TrimSpace(id)
			if id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids
}
