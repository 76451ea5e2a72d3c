package service

import (
	"context"
	"time"

	"resonate/internal/models"
	"resonate/internal/repository"
)

// HistoryService records listening events and derives taste signals from
// them for the recommendation and playlist engines.
type HistoryService struct {
	historyRepo repository.HistoryRepository
	audioRepo   repository.AudioRepository
}

// RecordHistoryInput carries the fields of one listening event.
type RecordHistoryInput struct {
	OwnerID  uint
	AudioID  uint
	Progress float64
	PlayedAt time.Time
}

// NewHistoryService returns a new HistoryService.
func NewHistoryService(historyRepo repository.HistoryRepository, audioRepo repository.AudioRepository) *HistoryService {
	return &HistoryService{
		historyRepo: historyRepo,
		audioRepo:   audioRepo,
	}
}

// Record appends one listening event. The audio's category is snapshotted
// onto the entry at write time so later category edits do not rewrite a
// user's taste profile.
func (s *HistoryService) Record(ctx context.Context, in RecordHistoryInput) (*models.HistoryEntry, error) {
	if in.OwnerID == 0 || in.AudioID == 0 {
		return nil, models.NewValidationError("History entry requires owner and audio")
	}
	if in.Progress < 0 {
		return nil, models.NewValidationError("Progress cannot be negative")
	}

	audio, err := s.audioRepo.GetByID(ctx, in.AudioID)
	if err != nil {
		return nil, err
	}

	playedAt := in.PlayedAt
	if playedAt.IsZero() {
		playedAt = time.Now()
	}

	entry := &models.HistoryEntry{
		OwnerID:  in.OwnerID,
		AudioID:  audio.ID,
		Category: audio.Category,
		Progress: in.Progress,
		PlayedAt: playedAt,
	}
	if err := s.historyRepo.Append(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Recent returns one page of the user's listening history, newest first.
func (s *HistoryService) Recent(ctx context.Context, userID uint, limit, page int) ([]models.HistoryEntry, error) {
	limit, offset, err := normalizePage(limit, page)
	if err != nil {
		return nil, err
	}
	return s.historyRepo.ListByUser(ctx, userID, limit, offset)
}

// PreferredCategories returns the distinct categories the user has listened
// to. An empty result means the user has no usable taste signal yet.
func (s *HistoryService) PreferredCategories(ctx context.Context, userID uint) ([]string, error) {
	return s.historyRepo.DistinctCategories(ctx, userID)
}

// PlayedAudioIDs returns the distinct set of audios in the user's history.
func (s *HistoryService) PlayedAudioIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.historyRepo.DistinctAudioIDs(ctx, userID)
}
