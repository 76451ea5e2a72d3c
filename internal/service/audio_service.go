package service

import (
	"context"
	"strings"

	"resonate/internal/models"
	"resonate/internal/repository"
)

// AudioService provides upload catalog business logic.
type AudioService struct {
	audioRepo repository.AudioRepository
}

// CreateAudioInput carries the fields of a new upload.
type CreateAudioInput struct {
	OwnerID  uint
	Title    string
	About    string
	Category string
	File     string
	Poster   string
}

// NewAudioService returns a new AudioService.
func NewAudioService(audioRepo repository.AudioRepository) *AudioService {
	return &AudioService{audioRepo: audioRepo}
}

// Create registers a new upload.
func (s *AudioService) Create(ctx context.Context, in CreateAudioInput) (*models.Audio, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Category = strings.TrimSpace(in.Category)

	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if in.Category == "" {
		return nil, models.NewValidationError("Category is required")
	}
	if in.File == "" {
		return nil, models.NewValidationError("Audio file is required")
	}

	audio := &models.Audio{
		OwnerID:  in.OwnerID,
		Title:    in.Title,
		About:    in.About,
		Category: in.Category,
		File:     in.File,
		Poster:   in.Poster,
	}
	if err := s.audioRepo.Create(ctx, audio); err != nil {
		return nil, err
	}
	// Reload with the owner profile so the response projection is complete.
	return s.audioRepo.GetByID(ctx, audio.ID)
}

// Uploads returns one page of the owner's uploads, newest first.
func (s *AudioService) Uploads(ctx context.Context, ownerID uint, limit, page int) ([]models.Audio, error) {
	limit, offset, err := normalizePage(limit, page)
	if err != nil {
		return nil, err
	}
	return s.audioRepo.ListByOwner(ctx, ownerID, limit, offset)
}
