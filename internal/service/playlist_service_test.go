package service

import (
	"context"
	"math/rand"
	"testing"

	"resonate/internal/featureflags"
	"resonate/internal/models"
)

type playlistRepoStub struct {
	upsertFn              func(context.Context, uint, string, []uint, models.PlaylistVisibility) (*models.Playlist, error)
	findByOwnerAndTitleFn func(context.Context, uint, string) (*models.Playlist, error)
	listPublicByOwnerFn   func(context.Context, uint, int, int) ([]models.Playlist, error)
}

func (s *playlistRepoStub) Upsert(ctx context.Context, ownerID uint, title string, audioIDs []uint, visibility models.PlaylistVisibility) (*models.Playlist, error) {
	return s.upsertFn(ctx, ownerID, title, audioIDs, visibility)
}
func (s *playlistRepoStub) FindByOwnerAndTitle(ctx context.Context, ownerID uint, title string) (*models.Playlist, error) {
	return s.findByOwnerAndTitleFn(ctx, ownerID, title)
}
func (s *playlistRepoStub) ListPublicByOwner(ctx context.Context, ownerID uint, limit, offset int) ([]models.Playlist, error) {
	return s.listPublicByOwnerFn(ctx, ownerID, limit, offset)
}

type curatedRepoStub struct {
	listByTitlesFn func(context.Context, []string) ([]models.CuratedPlaylist, error)
	createFn       func(context.Context, *models.CuratedPlaylist) error
}

func (s *curatedRepoStub) ListByTitles(ctx context.Context, titles []string) ([]models.CuratedPlaylist, error) {
	return s.listByTitlesFn(ctx, titles)
}
func (s *curatedRepoStub) Create(ctx context.Context, playlist *models.CuratedPlaylist) error {
	return s.createFn(ctx, playlist)
}

func noopPlaylistRepo() *playlistRepoStub {
	return &playlistRepoStub{
		upsertFn: func(_ context.Context, _ uint, title string, ids []uint, v models.PlaylistVisibility) (*models.Playlist, error) {
			return &models.Playlist{Title: title, Visibility: v}, nil
		},
		findByOwnerAndTitleFn: func(context.Context, uint, string) (*models.Playlist, error) {
			return nil, nil
		},
		listPublicByOwnerFn: func(context.Context, uint, int, int) ([]models.Playlist, error) {
			return nil, nil
		},
	}
}

func noopCuratedRepo() *curatedRepoStub {
	return &curatedRepoStub{
		listByTitlesFn: func(context.Context, []string) ([]models.CuratedPlaylist, error) { return nil, nil },
		createFn:       func(context.Context, *models.CuratedPlaylist) error { return nil },
	}
}

func newPlaylistService(playlists *playlistRepoStub, curated *curatedRepoStub, history *historyRepoStub, seedVal int64) *PlaylistService {
	return NewPlaylistService(
		playlists,
		curated,
		NewHistoryService(history, noopAudioRepo()),
		featureflags.NewManager(""),
		rand.New(rand.NewSource(seedVal)),
	)
}

func manyAudioIDs(n int) []uint {
	ids := make([]uint, n)
	for i := range ids {
		ids[i] = uint(i + 1)
	}
	return ids
}

func TestPlaylistMixKeepsAllWhenUnderCap(t *testing.T) {
	history := noopHistoryRepo()
	history.distinctAudioIDsFn = func(context.Context, uint) ([]uint, error) {
		return []uint{1, 2, 3, 4, 5}, nil
	}

	var upserted []uint
	playlists := noopPlaylistRepo()
	playlists.upsertFn = func(_ context.Context, _ uint, title string, ids []uint, v models.PlaylistVisibility) (*models.Playlist, error) {
		if title != models.MixPlaylistTitle {
			t.Fatalf("expected mix title %q, got %q", models.MixPlaylistTitle, title)
		}
		if v != models.PlaylistVisibilityAuto {
			t.Fatalf("expected auto visibility, got %q", v)
		}
		upserted = ids
		return &models.Playlist{Title: title}, nil
	}

	svc := newPlaylistService(playlists, noopCuratedRepo(), history, 1)
	if _, err := svc.GenerateForUser(context.Background(), 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(upserted) != 5 {
		t.Fatalf("expected all 5 ids sampled, got %d", len(upserted))
	}
	seen := make(map[uint]bool)
	for _, id := range upserted {
		if seen[id] {
			t.Fatalf("duplicate id %d in sample", id)
		}
		seen[id] = true
	}
}

func TestPlaylistMixCapsAtTwenty(t *testing.T) {
	history := noopHistoryRepo()
	history.distinctAudioIDsFn = func(context.Context, uint) ([]uint, error) {
		return manyAudioIDs(60), nil
	}

	var upserted []uint
	playlists := noopPlaylistRepo()
	playlists.upsertFn = func(_ context.Context, _ uint, _ string, ids []uint, _ models.PlaylistVisibility) (*models.Playlist, error) {
		upserted = ids
		return &models.Playlist{}, nil
	}

	svc := newPlaylistService(playlists, noopCuratedRepo(), history, 1)
	if _, err := svc.GenerateForUser(context.Background(), 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(upserted) != MixSampleSize {
		t.Fatalf("expected %d ids, got %d", MixSampleSize, len(upserted))
	}
	seen := make(map[uint]bool)
	for _, id := range upserted {
		if seen[id] {
			t.Fatalf("duplicate id %d in sample", id)
		}
		seen[id] = true
	}
}

func TestPlaylistSamplingIsDeterministicPerSeed(t *testing.T) {
	history := noopHistoryRepo()
	history.distinctAudioIDsFn = func(context.Context, uint) ([]uint, error) {
		return manyAudioIDs(40), nil
	}

	run := func(seedVal int64) []uint {
		var upserted []uint
		playlists := noopPlaylistRepo()
		playlists.upsertFn = func(_ context.Context, _ uint, _ string, ids []uint, _ models.PlaylistVisibility) (*models.Playlist, error) {
			upserted = ids
			return &models.Playlist{}, nil
		}
		svc := newPlaylistService(playlists, noopCuratedRepo(), history, seedVal)
		if _, err := svc.GenerateForUser(context.Background(), 7); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return upserted
	}

	first := run(42)
	second := run(42)
	if len(first) != len(second) {
		t.Fatalf("sample sizes differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("samples diverge at %d: %v vs %v", i, first, second)
		}
	}
}

func TestPlaylistEmptyHistorySkipsMix(t *testing.T) {
	playlists := noopPlaylistRepo()
	playlists.upsertFn = func(context.Context, uint, string, []uint, models.PlaylistVisibility) (*models.Playlist, error) {
		t.Fatal("mix must not be written for a user without history")
		return nil, nil
	}

	svc := newPlaylistService(playlists, noopCuratedRepo(), noopHistoryRepo(), 1)
	summaries, err := svc.GenerateForUser(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summaries) != 0 {
		t.Fatalf("expected empty response, got %#v", summaries)
	}
}

func TestPlaylistCuratedSampleCappedAtFour(t *testing.T) {
	catalog := make([]models.CuratedPlaylist, 9)
	for i := range catalog {
		catalog[i] = models.CuratedPlaylist{ID: uint(i + 1), Title: "Catalog"}
	}
	curated := noopCuratedRepo()
	curated.listByTitlesFn = func(context.Context, []string) ([]models.CuratedPlaylist, error) {
		return catalog, nil
	}

	svc := newPlaylistService(noopPlaylistRepo(), curated, noopHistoryRepo(), 1)
	summaries, err := svc.GenerateForUser(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summaries) != CuratedSampleSize {
		t.Fatalf("expected %d curated picks, got %d", CuratedSampleSize, len(summaries))
	}
}

func TestPlaylistCuratedUnmatchedTitlesYieldNothing(t *testing.T) {
	history := noopHistoryRepo()
	history.distinctCategoriesFn = func(context.Context, uint) ([]string, error) {
		return []string{"Obscure"}, nil
	}

	curated := noopCuratedRepo()
	curated.listByTitlesFn = func(_ context.Context, titles []string) ([]models.CuratedPlaylist, error) {
		if len(titles) != 1 || titles[0] != "Obscure" {
			t.Fatalf("expected taste-matched titles, got %v", titles)
		}
		return nil, nil
	}

	svc := newPlaylistService(noopPlaylistRepo(), curated, history, 1)
	summaries, err := svc.GenerateForUser(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summaries) != 0 {
		t.Fatalf("expected no curated picks for unmatched titles, got %#v", summaries)
	}
}

func TestPlaylistResponseIncludesExistingMix(t *testing.T) {
	playlists := noopPlaylistRepo()
	playlists.findByOwnerAndTitleFn = func(context.Context, uint, string) (*models.Playlist, error) {
		return &models.Playlist{
			ID:         11,
			Title:      models.MixPlaylistTitle,
			Visibility: models.PlaylistVisibilityAuto,
			Items:      []models.PlaylistItem{{AudioID: 1}, {AudioID: 2}},
		}, nil
	}

	svc := newPlaylistService(playlists, noopCuratedRepo(), noopHistoryRepo(), 1)
	summaries, err := svc.GenerateForUser(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	last := summaries[len(summaries)-1]
	if last.ID != 11 || last.Title != models.MixPlaylistTitle || last.ItemsCount != 2 {
		t.Fatalf("expected mix summary last, got %#v", last)
	}
}

func TestPlaylistCuratedFlagOff(t *testing.T) {
	curated := noopCuratedRepo()
	curated.listByTitlesFn = func(context.Context, []string) ([]models.CuratedPlaylist, error) {
		t.Fatal("curated catalog must not be read when the flag is off")
		return nil, nil
	}

	svc := NewPlaylistService(
		noopPlaylistRepo(),
		curated,
		NewHistoryService(noopHistoryRepo(), noopAudioRepo()),
		featureflags.NewManager("curated_suggestions=off"),
		rand.New(rand.NewSource(1)),
	)
	summaries, err := svc.GenerateForUser(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summaries) != 0 {
		t.Fatalf("expected empty response, got %#v", summaries)
	}
}
