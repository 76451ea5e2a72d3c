package service

import (
	"context"
	"math/rand"
	"sync"

	"resonate/internal/featureflags"
	"resonate/internal/models"
	"resonate/internal/observability"
	"resonate/internal/repository"
)

const (
	// MixSampleSize caps the personal mix at 20 tracks.
	MixSampleSize = 20
	// CuratedSampleSize caps the curated suggestions at 4 playlists.
	CuratedSampleSize = 4
)

// PlaylistService maintains each user's auto-generated mix and picks curated
// playlist suggestions. Randomness is injected so generation is
// reproducible under test.
type PlaylistService struct {
	playlistRepo repository.PlaylistRepository
	curatedRepo  repository.CuratedPlaylistRepository
	historySvc   *HistoryService
	flags        *featureflags.Manager

	mu  sync.Mutex
	rng *rand.Rand
}

// NewPlaylistService returns a new PlaylistService using the given random
// source for sampling.
func NewPlaylistService(
	playlistRepo repository.PlaylistRepository,
	curatedRepo repository.CuratedPlaylistRepository,
	historySvc *HistoryService,
	flags *featureflags.Manager,
	rng *rand.Rand,
) *PlaylistService {
	return &PlaylistService{
		playlistRepo: playlistRepo,
		curatedRepo:  curatedRepo,
		historySvc:   historySvc,
		flags:        flags,
		rng:          rng,
	}
}

// GenerateForUser refreshes the user's mix from their listening history and
// returns curated suggestions plus, when one exists, the mix itself. A user
// with no history keeps any previously generated mix untouched.
func (s *PlaylistService) GenerateForUser(ctx context.Context, userID uint) ([]models.PlaylistSummary, error) {
	span, ctx := observability.NewSpan(ctx, "playlist.generate")
	defer span.End()

	played, err := s.historySvc.PlayedAudioIDs(ctx, userID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	if len(played) > 0 {
		sampled := s.sampleIDs(played, MixSampleSize)
		if _, err := s.playlistRepo.Upsert(ctx, userID, models.MixPlaylistTitle, sampled, models.PlaylistVisibilityAuto); err != nil {
			return nil, err
		}
		observability.PlaylistGenerations.WithLabelValues("updated").Inc()
	} else {
		observability.PlaylistGenerations.WithLabelValues("skipped").Inc()
	}

	summaries := []models.PlaylistSummary{}

	if s.flags.EnabledDefault(featureflags.FlagCuratedSuggestions, userID, true) {
		categories, err := s.historySvc.PreferredCategories(ctx, userID)
		if err != nil {
			return nil, err
		}

		// A user with no inferred taste samples from the whole catalog;
		// inferred titles that match nothing yield no suggestions.
		curated, err := s.curatedRepo.ListByTitles(ctx, categories)
		if err != nil {
			return nil, err
		}

		for _, pick := range s.sampleCurated(curated, CuratedSampleSize) {
			summaries = append(summaries, models.PlaylistSummary{
				ID:         pick.ID,
				Title:      pick.Title,
				ItemsCount: len(pick.Items),
				Visibility: models.PlaylistVisibilityPublic,
			})
		}
	}

	mix, err := s.playlistRepo.FindByOwnerAndTitle(ctx, userID, models.MixPlaylistTitle)
	if err != nil {
		return nil, err
	}
	if mix != nil {
		summaries = append(summaries, models.PlaylistSummary{
			ID:         mix.ID,
			Title:      mix.Title,
			ItemsCount: len(mix.Items),
			Visibility: mix.Visibility,
		})
	}

	return summaries, nil
}

// PublicByOwner returns one page of the owner's public playlists as
// summaries.
func (s *PlaylistService) PublicByOwner(ctx context.Context, ownerID uint, limit, page int) ([]models.PlaylistSummary, error) {
	limit, offset, err := normalizePage(limit, page)
	if err != nil {
		return nil, err
	}

	playlists, err := s.playlistRepo.ListPublicByOwner(ctx, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.PlaylistSummary, 0, len(playlists))
	for i := range playlists {
		summaries = append(summaries, models.PlaylistSummary{
			ID:         playlists[i].ID,
			Title:      playlists[i].Title,
			ItemsCount: len(playlists[i].Items),
			Visibility: playlists[i].Visibility,
		})
	}
	return summaries, nil
}

// sampleIDs picks up to n ids uniformly without replacement. With n or fewer
// candidates every candidate is kept, in randomized order.
func (s *PlaylistService) sampleIDs(ids []uint, n int) []uint {
	s.mu.Lock()
	defer s.mu.Unlock()

	shuffled := make([]uint, len(ids))
	copy(shuffled, ids)
	s.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if len(shuffled) > n {
		shuffled = shuffled[:n]
	}
	return shuffled
}

func (s *PlaylistService) sampleCurated(playlists []models.CuratedPlaylist, n int) []models.CuratedPlaylist {
	s.mu.Lock()
	defer s.mu.Unlock()

	shuffled := make([]models.CuratedPlaylist, len(playlists))
	copy(shuffled, playlists)
	s.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if len(shuffled) > n {
		shuffled = shuffled[:n]
	}
	return shuffled
}
