package repository

import (
	"context"
	"errors"
	"time"

	"resonate/internal/models"
	"resonate/internal/observability"

	"gorm.io/gorm"
)

// AudioRepository defines persistence operations for audio content.
type AudioRepository interface {
	Create(ctx context.Context, audio *models.Audio) error
	GetByID(ctx context.Context, id uint) (*models.Audio, error)
	ListByOwner(ctx context.Context, ownerID uint, limit, offset int) ([]models.Audio, error)
	TopByPopularity(ctx context.Context, categories []string, limit int) ([]models.Audio, error)
}

type audioRepository struct {
	db *gorm.DB
}

// NewAudioRepository creates a new audio repository
func NewAudioRepository(db *gorm.DB) AudioRepository {
	return &audioRepository{db: db}
}

func (r *audioRepository) Create(ctx context.Context, audio *models.Audio) error {
	if err := r.db.WithContext(ctx).Create(audio).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *audioRepository) GetByID(ctx context.Context, id uint) (*models.Audio, error) {
	var audio models.Audio
	if err := readDB(r.db).WithContext(ctx).Preload("Owner").First(&audio, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Audio", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &audio, nil
}

// ListByOwner returns the owner's uploads, newest first, with the owner
// profile preloaded for the response projection.
func (r *audioRepository) ListByOwner(ctx context.Context, ownerID uint, limit, offset int) ([]models.Audio, error) {
	audios := []models.Audio{}

	if err := readDB(r.db).WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Preload("Owner").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&audios).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	return audios, nil
}

// TopByPopularity ranks audios by likes count. A non-empty category set
// narrows the selection; ties break on id so pages are deterministic.
func (r *audioRepository) TopByPopularity(ctx context.Context, categories []string, limit int) ([]models.Audio, error) {
	defer observability.ObserveQuery("top_by_popularity", "audios", time.Now())

	audios := []models.Audio{}

	q := readDB(r.db).WithContext(ctx).
		Preload("Owner").
		Order("likes_count DESC, id ASC").
		Limit(limit)

	if len(categories) > 0 {
		q = q.Where("category IN ?", categories)
	}

	if err := q.Find(&audios).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	return audios, nil
}
