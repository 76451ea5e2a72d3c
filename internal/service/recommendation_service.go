package service

import (
	"context"

	"resonate/internal/cache"
	"resonate/internal/featureflags"
	"resonate/internal/models"
	"resonate/internal/observability"
	"resonate/internal/repository"
)

// RecommendationLimit is the fixed size of a recommendation response.
const RecommendationLimit = 10

// RecommendationService ranks audio content for a user. Signed-in users with
// listening history get category-filtered results; everyone else gets the
// global popularity chart.
type RecommendationService struct {
	audioRepo  repository.AudioRepository
	historySvc *HistoryService
	flags      *featureflags.Manager
}

// NewRecommendationService returns a new RecommendationService.
func NewRecommendationService(audioRepo repository.AudioRepository, historySvc *HistoryService, flags *featureflags.Manager) *RecommendationService {
	return &RecommendationService{
		audioRepo:  audioRepo,
		historySvc: historySvc,
		flags:      flags,
	}
}

// Recommend returns up to RecommendationLimit audio summaries ordered by
// popularity. userID 0 means anonymous. A user whose history covers no
// categories falls back to the unfiltered chart rather than an empty page.
func (s *RecommendationService) Recommend(ctx context.Context, userID uint) ([]models.AudioSummary, error) {
	span, ctx := observability.NewSpan(ctx, "recommendation.recommend")
	defer span.End()

	var categories []string

	if userID != 0 && s.flags.EnabledDefault(featureflags.FlagPersonalizedRecommendations, userID, true) {
		prefs, err := s.historySvc.PreferredCategories(ctx, userID)
		if err != nil {
			span.SetError(err)
			return nil, err
		}
		categories = prefs
	}

	mode := "global"
	if len(categories) > 0 {
		mode = "personalized"
	}
	observability.RecommendationRequests.WithLabelValues(mode).Inc()

	// The anonymous chart is identical for every visitor, so it is the one
	// recommendation response worth caching.
	if userID == 0 {
		summaries := []models.AudioSummary{}
		err := cache.Aside(ctx, cache.AnonFeedKey, &summaries, cache.AnonFeedTTL, func() error {
			fetched, fetchErr := s.fetch(ctx, nil)
			if fetchErr != nil {
				return fetchErr
			}
			summaries = fetched
			return nil
		})
		if err != nil {
			return nil, err
		}
		return summaries, nil
	}

	return s.fetch(ctx, categories)
}

func (s *RecommendationService) fetch(ctx context.Context, categories []string) ([]models.AudioSummary, error) {
	audios, err := s.audioRepo.TopByPopularity(ctx, categories, RecommendationLimit)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.AudioSummary, 0, len(audios))
	for i := range audios {
		summaries = append(summaries, audios[i].Summary())
	}
	return summaries, nil
}
