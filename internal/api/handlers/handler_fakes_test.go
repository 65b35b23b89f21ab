package handlers_test

import (
	"context"
	"time"

	"github.com/vacationvibes/places-backend/internal/application/services"
	"github.com/vacationvibes/places-backend/internal/domain/entities"
	"github.com/vacationvibes/places-backend/internal/domain/repositories"
	"github.com/vacationvibes/places-backend/pkg/config"
	apperrors "github.com/vacationvibes/places-backend/pkg/errors"
)

func testFeedConfig() config.FeedConfig {
	return config.FeedConfig{
		ColdStartThreshold: 50,
		LikeWeight:         1.0,
		DislikeWeight:      -0.5,
		TopTagCount:        5,
		PageLimit:          10,
		CacheTTLSeconds:    60,
	}
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{JWTSecret: "test-secret", TokenExpiry: time.Hour}
}

// stubReactionRepo backs handler tests with canned data
type stubReactionRepo struct {
	count     int
	reactions []*entities.Reaction
	created   []*entities.Reaction
	createErr error
}

func (s *stubReactionRepo) Create(ctx context.Context, reaction *entities.Reaction) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, reaction)
	return nil
}

func (s *stubReactionRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	return s.count, nil
}

func (s *stubReactionRepo) WeightedTagPreference(ctx context.Context, userID string, excludedTags []string, likeWeight, dislikeWeight float64) (map[string]float64, error) {
	return nil, nil
}

func (s *stubReactionRepo) ListByUser(ctx context.Context, userID string, offset, limit int) ([]*entities.Reaction, error) {
	return s.reactions, nil
}

// stubPlaceRepo backs handler tests with canned data
type stubPlaceRepo struct {
	feed          []*entities.Place
	places        map[string]*entities.Place
	lastIgnoreIDs []string
}

func (s *stubPlaceRepo) Create(ctx context.Context, place *entities.Place) error {
	if s.places == nil {
		s.places = make(map[string]*entities.Place)
	}
	s.places[place.ID] = place
	return nil
}

func (s *stubPlaceRepo) GetByID(ctx context.Context, id string) (*entities.Place, error) {
	if place, ok := s.places[id]; ok {
		return place, nil
	}
	return nil, apperrors.NewNotFoundError("place not found")
}

func (s *stubPlaceRepo) List(ctx context.Context, filter repositories.PlaceFilter) ([]*entities.Place, error) {
	result := make([]*entities.Place, 0, len(s.places))
	for _, place := range s.places {
		result = append(result, place)
	}
	return result, nil
}

func (s *stubPlaceRepo) CountPlaces(ctx context.Context) (int, error) {
	return len(s.places), nil
}

func (s *stubPlaceRepo) TagDocumentFrequency(ctx context.Context, excludedTags []string) (map[string]int, error) {
	return nil, nil
}

func (s *stubPlaceRepo) FeedByRating(ctx context.Context, userID string, ignoreIDs []string, limit int) ([]*entities.Place, error) {
	s.lastIgnoreIDs = ignoreIDs
	return s.feed, nil
}

func (s *stubPlaceRepo) FeedByRelevance(ctx context.Context, userID string, ignoreIDs []string, tagScores []entities.TagScore, limit int) ([]*entities.Place, error) {
	s.lastIgnoreIDs = ignoreIDs
	return s.feed, nil
}

// stubUserRepo backs auth handler tests
type stubUserRepo struct {
	users map[string]*entities.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*entities.User)}
}

func (s *stubUserRepo) Create(ctx context.Context, user *entities.User) error {
	s.users[user.ID] = user
	return nil
}

func (s *stubUserRepo) GetByID(ctx context.Context, id string) (*entities.User, error) {
	if user, ok := s.users[id]; ok {
		return user, nil
	}
	return nil, apperrors.NewNotFoundError("user not found")
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperrors.NewNotFoundError("user not found")
}

func (s *stubUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := s.GetByEmail(ctx, email)
	return err == nil, nil
}

func newTestFeedService(reactionRepo *stubReactionRepo, placeRepo *stubPlaceRepo) *services.FeedService {
	prefs := services.NewPreferenceService(reactionRepo, placeRepo, testFeedConfig())
	return services.NewFeedService(reactionRepo, placeRepo, prefs, nil, testFeedConfig(), nil)
}
