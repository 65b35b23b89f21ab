package services_test

import (
	"context"
	"path"
	"sync"

	"github.com/vacationvibes/places-backend/internal/domain/entities"
	"github.com/vacationvibes/places-backend/internal/domain/repositories"
	apperrors "github.com/vacationvibes/places-backend/pkg/errors"
)

// fakeReactionRepo is an in-memory ReactionRepository for tests
type fakeReactionRepo struct {
	count     int
	weights   map[string]float64
	reactions []*entities.Reaction
	created   []*entities.Reaction

	lastExcludedTags  []string
	lastLikeWeight    float64
	lastDislikeWeight float64

	createErr error
}

func (f *fakeReactionRepo) Create(ctx context.Context, reaction *entities.Reaction) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, reaction)
	return nil
}

func (f *fakeReactionRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	return f.count, nil
}

func (f *fakeReactionRepo) WeightedTagPreference(ctx context.Context, userID string, excludedTags []string, likeWeight, dislikeWeight float64) (map[string]float64, error) {
	f.lastExcludedTags = excludedTags
	f.lastLikeWeight = likeWeight
	f.lastDislikeWeight = dislikeWeight
	return f.weights, nil
}

func (f *fakeReactionRepo) ListByUser(ctx context.Context, userID string, offset, limit int) ([]*entities.Reaction, error) {
	return f.reactions, nil
}

// fakePlaceRepo is an in-memory PlaceRepository for tests
type fakePlaceRepo struct {
	total         int
	docFreq       map[string]int
	ratingFeed    []*entities.Place
	relevanceFeed []*entities.Place
	places        map[string]*entities.Place

	ratingCalls    int
	relevanceCalls int
	lastIgnoreIDs  []string
	lastTagScores  []entities.TagScore
	lastLimit      int
}

func (f *fakePlaceRepo) Create(ctx context.Context, place *entities.Place) error {
	if f.places == nil {
		f.places = make(map[string]*entities.Place)
	}
	f.places[place.ID] = place
	return nil
}

func (f *fakePlaceRepo) GetByID(ctx context.Context, id string) (*entities.Place, error) {
	if place, ok := f.places[id]; ok {
		return place, nil
	}
	return nil, apperrors.NewNotFoundError("place not found")
}

func (f *fakePlaceRepo) List(ctx context.Context, filter repositories.PlaceFilter) ([]*entities.Place, error) {
	result := make([]*entities.Place, 0, len(f.places))
	for _, place := range f.places {
		result = append(result, place)
	}
	return result, nil
}

func (f *fakePlaceRepo) CountPlaces(ctx context.Context) (int, error) {
	return f.total, nil
}

func (f *fakePlaceRepo) TagDocumentFrequency(ctx context.Context, excludedTags []string) (map[string]int, error) {
	return f.docFreq, nil
}

func (f *fakePlaceRepo) FeedByRating(ctx context.Context, userID string, ignoreIDs []string, limit int) ([]*entities.Place, error) {
	f.ratingCalls++
	f.lastIgnoreIDs = ignoreIDs
	f.lastLimit = limit
	return f.ratingFeed, nil
}

func (f *fakePlaceRepo) FeedByRelevance(ctx context.Context, userID string, ignoreIDs []string, tagScores []entities.TagScore, limit int) ([]*entities.Place, error) {
	f.relevanceCalls++
	f.lastIgnoreIDs = ignoreIDs
	f.lastTagScores = tagScores
	f.lastLimit = limit
	return f.relevanceFeed, nil
}

// fakeCache is an in-memory CacheProvider with glob-aware DeletePattern
type fakeCache struct {
	mu      sync.RWMutex
	data    map[string][]byte
	deleted []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (c *fakeCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if val, ok := c.data[key]; ok {
		return val, nil
	}
	return nil, apperrors.NewNotFoundError("key not found")
}

func (c *fakeCache) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	c.deleted = append(c.deleted, key)
	return nil
}

func (c *fakeCache) DeletePattern(ctx context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.data {
		if ok, _ := path.Match(pattern, key); ok {
			delete(c.data, key)
			c.deleted = append(c.deleted, key)
		}
	}
	return nil
}

func (c *fakeCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.data[key]
	return ok, nil
}

func (c *fakeCache) deletedKeys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.deleted...)
}

func (c *fakeCache) has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.data[key]
	return ok
}

// fakeEventBus is an in-memory EventBus for tests
type fakeEventBus struct {
	mu          sync.Mutex
	subscribers map[string][]chan *entities.ReactionEvent
	published   []*entities.ReactionEvent
}

func newFakeEventBus() *fakeEventBus {
	return &fakeEventBus{subscribers: make(map[string][]chan *entities.ReactionEvent)}
}

func (b *fakeEventBus) Publish(ctx context.Context, channel string, event *entities.ReactionEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = append(b.published, event)
	for _, ch := range b.subscribers[channel] {
		select {
		case ch <- event:
		default:
		}
	}
	return nil
}

func (b *fakeEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.ReactionEvent, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := make(chan *entities.ReactionEvent, 10)
	b.subscribers[channel] = append(b.subscribers[channel], ch)
	return ch, nil
}

func (b *fakeEventBus) Unsubscribe(ctx context.Context, channel string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subscribers[channel] {
		close(ch)
	}
	delete(b.subscribers, channel)
	return nil
}

func (b *fakeEventBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, channels := range b.subscribers {
		for _, ch := range channels {
			close(ch)
		}
	}
	b.subscribers = make(map[string][]chan *entities.ReactionEvent)
	return nil
}

func (b *fakeEventBus) publishedEvents() []*entities.ReactionEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*entities.ReactionEvent(nil), b.published...)
}

func (b *fakeEventBus) subscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subscribers)
}

// fakeUserRepo is an in-memory UserRepository for tests
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entities.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entities.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		return user, nil
	}
	return nil, apperrors.NewNotFoundError("user not found")
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperrors.NewNotFoundError("user not found")
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if err != nil {
		return false, nil
	}
	return true, nil
}

// fakeCommentRepo is an in-memory CommentRepository for tests
type fakeCommentRepo struct {
	mu       sync.Mutex
	comments map[string]*entities.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[string]*entities.Comment)}
}

func (r *fakeCommentRepo) Create(ctx context.Context, comment *entities.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.comments[comment.ID] = comment
	return nil
}

func (r *fakeCommentRepo) GetByID(ctx context.Context, id string) (*entities.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if comment, ok := r.comments[id]; ok {
		return comment, nil
	}
	return nil, apperrors.NewNotFoundError("comment not found")
}

func (r *fakeCommentRepo) ListByPlace(ctx context.Context, placeID string, offset, limit int) ([]*entities.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*entities.Comment, 0)
	for _, comment := range r.comments {
		if comment.PlaceID == placeID {
			result = append(result, comment)
		}
	}
	return result, nil
}

func (r *fakeCommentRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.comments[id]; !ok {
		return apperrors.NewNotFoundError("comment not found")
	}
	delete(r.comments, id)
	return nil
}
