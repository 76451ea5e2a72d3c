package repository

import (
	"context"

	"resonate/internal/models"

	"gorm.io/gorm"
)

// HistoryRepository defines persistence operations for listening history.
// Entries are append-only; the engine reads them back only in aggregate.
type HistoryRepository interface {
	Append(ctx context.Context, entry *models.HistoryEntry) error
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.HistoryEntry, error)
	DistinctCategories(ctx context.Context, userID uint) ([]string, error)
	DistinctAudioIDs(ctx context.Context, userID uint) ([]uint, error)
}

type historyRepository struct {
	db *gorm.DB
}

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) Append(ctx context.Context, entry *models.HistoryEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *historyRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.HistoryEntry, error) {
	entries := []models.HistoryEntry{}
	if err := readDB(r.db).WithContext(ctx).
		Where("owner_id = ?", userID).
		Order("played_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return entries, nil
}

// DistinctCategories returns every category the user has ever played,
// deduplicated in SQL so memory stays bounded by distinct values.
func (r *historyRepository) DistinctCategories(ctx context.Context, userID uint) ([]string, error) {
	categories := []string{}
	if err := readDB(r.db).WithContext(ctx).
		Model(&models.HistoryEntry{}).
		Where("owner_id = ?", userID).
		Distinct().
		Order("category ASC").
		Pluck("category", &categories).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return categories, nil
}

// DistinctAudioIDs returns the distinct set of audios the user has played,
// the source set for mix sampling.
func (r *historyRepository) DistinctAudioIDs(ctx context.Context, userID uint) ([]uint, error) {
	ids := []uint{}
	if err := readDB(r.db).WithContext(ctx).
		Model(&models.HistoryEntry{}).
		Where("owner_id = ?", userID).
		Distinct().
		Order("audio_id ASC").
		Pluck("audio_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}
