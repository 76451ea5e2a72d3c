package service

import (
	"context"
	"testing"

	"resonate/internal/featureflags"
	"resonate/internal/models"
)

type audioRepoStub struct {
	createFn          func(context.Context, *models.Audio) error
	getByIDFn         func(context.Context, uint) (*models.Audio, error)
	listByOwnerFn     func(context.Context, uint, int, int) ([]models.Audio, error)
	topByPopularityFn func(context.Context, []string, int) ([]models.Audio, error)
}

func (s *audioRepoStub) Create(ctx context.Context, audio *models.Audio) error {
	return s.createFn(ctx, audio)
}
func (s *audioRepoStub) GetByID(ctx context.Context, id uint) (*models.Audio, error) {
	return s.getByIDFn(ctx, id)
}
func (s *audioRepoStub) ListByOwner(ctx context.Context, ownerID uint, limit, offset int) ([]models.Audio, error) {
	return s.listByOwnerFn(ctx, ownerID, limit, offset)
}
func (s *audioRepoStub) TopByPopularity(ctx context.Context, categories []string, limit int) ([]models.Audio, error) {
	return s.topByPopularityFn(ctx, categories, limit)
}

type historyRepoStub struct {
	appendFn             func(context.Context, *models.HistoryEntry) error
	listByUserFn         func(context.Context, uint, int, int) ([]models.HistoryEntry, error)
	distinctCategoriesFn func(context.Context, uint) ([]string, error)
	distinctAudioIDsFn   func(context.Context, uint) ([]uint, error)
}

func (s *historyRepoStub) Append(ctx context.Context, entry *models.HistoryEntry) error {
	return s.appendFn(ctx, entry)
}
func (s *historyRepoStub) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.HistoryEntry, error) {
	return s.listByUserFn(ctx, userID, limit, offset)
}
func (s *historyRepoStub) DistinctCategories(ctx context.Context, userID uint) ([]string, error) {
	return s.distinctCategoriesFn(ctx, userID)
}
func (s *historyRepoStub) DistinctAudioIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.distinctAudioIDsFn(ctx, userID)
}

func noopAudioRepo() *audioRepoStub {
	return &audioRepoStub{
		createFn:  func(context.Context, *models.Audio) error { return nil },
		getByIDFn: func(context.Context, uint) (*models.Audio, error) { return &models.Audio{}, nil },
		listByOwnerFn: func(context.Context, uint, int, int) ([]models.Audio, error) {
			return nil, nil
		},
		topByPopularityFn: func(context.Context, []string, int) ([]models.Audio, error) {
			return nil, nil
		},
	}
}

func noopHistoryRepo() *historyRepoStub {
	return &historyRepoStub{
		appendFn: func(context.Context, *models.HistoryEntry) error { return nil },
		listByUserFn: func(context.Context, uint, int, int) ([]models.HistoryEntry, error) {
			return nil, nil
		},
		distinctCategoriesFn: func(context.Context, uint) ([]string, error) { return nil, nil },
		distinctAudioIDsFn:   func(context.Context, uint) ([]uint, error) { return nil, nil },
	}
}

func TestRecommendationPersonalizedCategories(t *testing.T) {
	var gotCategories []string
	var gotLimit int

	audios := noopAudioRepo()
	audios.topByPopularityFn = func(_ context.Context, categories []string, limit int) ([]models.Audio, error) {
		gotCategories, gotLimit = categories, limit
		return []models.Audio{{ID: 1, Owner: models.User{ID: 2}}}, nil
	}
	history := noopHistoryRepo()
	history.distinctCategoriesFn = func(context.Context, uint) ([]string, error) {
		return []string{"Music", "Tech"}, nil
	}

	svc := NewRecommendationService(audios, NewHistoryService(history, audios), featureflags.NewManager(""))
	result, err := svc.Recommend(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(result))
	}
	if gotLimit != RecommendationLimit {
		t.Fatalf("expected limit %d, got %d", RecommendationLimit, gotLimit)
	}
	if len(gotCategories) != 2 || gotCategories[0] != "Music" || gotCategories[1] != "Tech" {
		t.Fatalf("expected history categories, got %v", gotCategories)
	}
}

func TestRecommendationEmptyHistoryFallsBackToGlobal(t *testing.T) {
	var gotCategories []string

	audios := noopAudioRepo()
	audios.topByPopularityFn = func(_ context.Context, categories []string, _ int) ([]models.Audio, error) {
		gotCategories = categories
		return nil, nil
	}

	svc := NewRecommendationService(audios, NewHistoryService(noopHistoryRepo(), audios), featureflags.NewManager(""))
	if _, err := svc.Recommend(context.Background(), 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gotCategories) != 0 {
		t.Fatalf("expected unfiltered query, got categories %v", gotCategories)
	}
}

func TestRecommendationAnonymousSkipsHistory(t *testing.T) {
	history := noopHistoryRepo()
	history.distinctCategoriesFn = func(context.Context, uint) ([]string, error) {
		t.Fatal("anonymous request must not read history")
		return nil, nil
	}

	audios := noopAudioRepo()
	audios.topByPopularityFn = func(_ context.Context, categories []string, _ int) ([]models.Audio, error) {
		if len(categories) != 0 {
			t.Fatalf("expected unfiltered query, got %v", categories)
		}
		return []models.Audio{{ID: 3}}, nil
	}

	svc := NewRecommendationService(audios, NewHistoryService(history, audios), featureflags.NewManager(""))
	result, err := svc.Recommend(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 1 || result[0].ID != 3 {
		t.Fatalf("unexpected result: %#v", result)
	}
}

func TestRecommendationFlagDisablesPersonalization(t *testing.T) {
	history := noopHistoryRepo()
	history.distinctCategoriesFn = func(context.Context, uint) ([]string, error) {
		t.Fatal("personalization disabled, history must not be read")
		return nil, nil
	}

	var gotCategories []string
	audios := noopAudioRepo()
	audios.topByPopularityFn = func(_ context.Context, categories []string, _ int) ([]models.Audio, error) {
		gotCategories = categories
		return nil, nil
	}

	flags := featureflags.NewManager("personalized_recommendations=off")
	svc := NewRecommendationService(audios, NewHistoryService(history, audios), flags)
	if _, err := svc.Recommend(context.Background(), 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gotCategories) != 0 {
		t.Fatalf("expected global feed, got categories %v", gotCategories)
	}
}

func TestRecommendationProjectsOwnerSummary(t *testing.T) {
	audios := noopAudioRepo()
	audios.topByPopularityFn = func(context.Context, []string, int) ([]models.Audio, error) {
		return []models.Audio{{
			ID:       9,
			Title:    "Deep Dive",
			Category: "Tech",
			Owner:    models.User{ID: 4, Name: "Ada", Email: "ada@example.com"},
		}}, nil
	}

	svc := NewRecommendationService(audios, NewHistoryService(noopHistoryRepo(), audios), featureflags.NewManager(""))
	result, err := svc.Recommend(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	owner := result[0].Owner
	if owner.ID != 4 || owner.Name != "Ada" {
		t.Fatalf("unexpected owner projection: %#v", owner)
	}
}
