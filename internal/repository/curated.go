package repository

import (
	"context"

	"resonate/internal/models"

	"gorm.io/gorm"
)

// CuratedPlaylistRepository defines read operations over the editorial
// playlist catalog.
type CuratedPlaylistRepository interface {
	ListByTitles(ctx context.Context, titles []string) ([]models.CuratedPlaylist, error)
	Create(ctx context.Context, playlist *models.CuratedPlaylist) error
}

type curatedPlaylistRepository struct {
	db *gorm.DB
}

// NewCuratedPlaylistRepository creates a new curated playlist repository
func NewCuratedPlaylistRepository(db *gorm.DB) CuratedPlaylistRepository {
	return &curatedPlaylistRepository{db: db}
}

// ListByTitles returns curated playlists whose title matches one of the given
// values. An empty title set falls back to the whole catalog.
func (r *curatedPlaylistRepository) ListByTitles(ctx context.Context, titles []string) ([]models.CuratedPlaylist, error) {
	if len(titles) == 0 {
		return r.listAll(ctx)
	}

	playlists := []models.CuratedPlaylist{}
	if err := readDB(r.db).WithContext(ctx).
		Where("title IN ?", titles).
		Preload("Items").
		Order("id ASC").
		Find(&playlists).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return playlists, nil
}

func (r *curatedPlaylistRepository) listAll(ctx context.Context) ([]models.CuratedPlaylist, error) {
	playlists := []models.CuratedPlaylist{}
	if err := readDB(r.db).WithContext(ctx).
		Preload("Items").
		Order("id ASC").
		Find(&playlists).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return playlists, nil
}

func (r *curatedPlaylistRepository) Create(ctx context.Context, playlist *models.CuratedPlaylist) error {
	if err := r.db.WithContext(ctx).Create(playlist).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
