package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vacationvibes/places-backend/internal/api/handlers"
	"github.com/vacationvibes/places-backend/internal/api/middleware"
	"github.com/vacationvibes/places-backend/internal/domain/entities"
)

func TestFeedHandler_GetFeed(t *testing.T) {
	placeRepo := &stubPlaceRepo{feed: []*entities.Place{{ID: "p1", Name: "Old Town Museum"}}}
	handler := handlers.NewFeedHandler(newTestFeedService(&stubReactionRepo{count: 3}, placeRepo))

	req := httptest.NewRequest("GET", "/place/feed", nil)
	req = req.WithContext(middleware.ContextWithUserID(req.Context(), "u1"))
	w := httptest.NewRecorder()

	handler.GetFeed(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var feed entities.Feed
	require.NoError(t, json.NewDecoder(w.Body).Decode(&feed))
	assert.Equal(t, entities.FeedStateColdStart, feed.State)
	require.Len(t, feed.Places, 1)
	assert.Equal(t, "p1", feed.Places[0].ID)
}

func TestFeedHandler_GetFeed_IgnoreParam(t *testing.T) {
	placeRepo := &stubPlaceRepo{}
	handler := handlers.NewFeedHandler(newTestFeedService(&stubReactionRepo{count: 3}, placeRepo))

	req := httptest.NewRequest("GET", "/place/feed?ignore=p1,p2&ignore=p3", nil)
	req = req.WithContext(middleware.ContextWithUserID(req.Context(), "u1"))
	w := httptest.NewRecorder()

	handler.GetFeed(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"p1", "p2", "p3"}, placeRepo.lastIgnoreIDs)
}

func TestFeedHandler_GetFeed_Unauthenticated(t *testing.T) {
	handler := handlers.NewFeedHandler(newTestFeedService(&stubReactionRepo{}, &stubPlaceRepo{}))

	req := httptest.NewRequest("GET", "/place/feed", nil)
	w := httptest.NewRecorder()

	handler.GetFeed(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
