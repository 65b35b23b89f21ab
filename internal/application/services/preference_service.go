package services

import (
	"context"
	"math"
	"sort"

	"github.com/vacationvibes/places-backend/internal/domain/entities"
	"github.com/vacationvibes/places-backend/internal/domain/repositories"
	"github.com/vacationvibes/places-backend/internal/infrastructure/observability"
	"github.com/vacationvibes/places-backend/pkg/config"
)

// PreferenceService derives a user's scored tag preferences from their
// reaction history. Scores are computed fresh on every call; nothing here is
// persisted or cached.
type PreferenceService struct {
	reactionRepo repositories.ReactionRepository
	placeRepo    repositories.PlaceRepository
	feedCfg      config.FeedConfig
}

// NewPreferenceService creates a new preference service
func NewPreferenceService(reactionRepo repositories.ReactionRepository, placeRepo repositories.PlaceRepository, feedCfg config.FeedConfig) *PreferenceService {
	return &PreferenceService{
		reactionRepo: reactionRepo,
		placeRepo:    placeRepo,
		feedCfg:      feedCfg,
	}
}

// PreferredTags returns the user's top preferred tags, strongest first.
//
// Each tag's raw weight is the net of the user's reactions over places
// carrying that tag (likes count for, dislikes against). The raw weight is
// then scaled by the tag's inverse document frequency, ln(total/df), so that
// rare tags carry more signal than ubiquitous ones. Tags absent from the
// catalog are skipped; only strictly positive scores survive.
func (s *PreferenceService) PreferredTags(ctx context.Context, userID string) ([]entities.TagScore, error) {
	ctx, span := observability.StartSpan(ctx, "PreferenceService.PreferredTags")
	defer span.End()

	weights, err := s.reactionRepo.WeightedTagPreference(ctx, userID, config.DenylistedTags, s.feedCfg.LikeWeight, s.feedCfg.DislikeWeight)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}
	if len(weights) == 0 {
		return []entities.TagScore{}, nil
	}

	total, err := s.placeRepo.CountPlaces(ctx)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}
	if total == 0 {
		return []entities.TagScore{}, nil
	}

	docFreq, err := s.placeRepo.TagDocumentFrequency(ctx, config.DenylistedTags)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	scores := make([]entities.TagScore, 0, len(weights))
	for tag, weight := range weights {
		df := docFreq[tag]
		if df == 0 {
			// Tag appears in the user's history but no catalog place carries
			// it anymore; there is nothing such a score could rank.
			continue
		}
		score := weight * math.Log(float64(total)/float64(df))
		if score <= 0 {
			continue
		}
		scores = append(scores, entities.TagScore{Tag: tag, Score: score})
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].Tag < scores[j].Tag
	})

	if len(scores) > s.feedCfg.TopTagCount {
		scores = scores[:s.feedCfg.TopTagCount]
	}
	return scores, nil
}
