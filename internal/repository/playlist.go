package repository

import (
	"context"
	"errors"

	"resonate/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlaylistRepository defines persistence operations for playlists.
type PlaylistRepository interface {
	Upsert(ctx context.Context, ownerID uint, title string, audioIDs []uint, visibility models.PlaylistVisibility) (*models.Playlist, error)
	FindByOwnerAndTitle(ctx context.Context, ownerID uint, title string) (*models.Playlist, error)
	ListPublicByOwner(ctx context.Context, ownerID uint, limit, offset int) ([]models.Playlist, error)
}

type playlistRepository struct {
	db *gorm.DB
}

// NewPlaylistRepository creates a new playlist repository
func NewPlaylistRepository(db *gorm.DB) PlaylistRepository {
	return &playlistRepository{db: db}
}

// Upsert creates or overwrites the (owner, title) playlist with the given
// items, in one transaction so readers never observe a half-replaced item
// list. The (owner_id, title) unique index keeps the playlist a singleton
// even when two generations race.
func (r *playlistRepository) Upsert(ctx context.Context, ownerID uint, title string, audioIDs []uint, visibility models.PlaylistVisibility) (*models.Playlist, error) {
	var playlist models.Playlist

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("owner_id = ? AND title = ?", ownerID, title).First(&playlist).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			playlist = models.Playlist{
				OwnerID:    ownerID,
				Title:      title,
				Visibility: visibility,
				ShareToken: uuid.NewString(),
			}
			if createErr := tx.Create(&playlist).Error; createErr != nil {
				if isUniqueConstraintError(createErr) {
					return models.NewConflictError("Concurrent playlist generation, please retry")
				}
				return models.NewInternalError(createErr)
			}
		case err != nil:
			return models.NewInternalError(err)
		default:
			if updErr := tx.Model(&playlist).Update("visibility", visibility).Error; updErr != nil {
				return models.NewInternalError(updErr)
			}
			if delErr := tx.Where("playlist_id = ?", playlist.ID).Delete(&models.PlaylistItem{}).Error; delErr != nil {
				return models.NewInternalError(delErr)
			}
		}

		items := make([]models.PlaylistItem, 0, len(audioIDs))
		for i, audioID := range audioIDs {
			items = append(items, models.PlaylistItem{
				PlaylistID: playlist.ID,
				AudioID:    audioID,
				Position:   i,
			})
		}
		if len(items) > 0 {
			if insErr := tx.Create(&items).Error; insErr != nil {
				return models.NewInternalError(insErr)
			}
		}
		playlist.Items = items
		playlist.Visibility = visibility
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &playlist, nil
}

// FindByOwnerAndTitle returns the playlist with items preloaded, or
// (nil, nil) when absent.
func (r *playlistRepository) FindByOwnerAndTitle(ctx context.Context, ownerID uint, title string) (*models.Playlist, error) {
	var playlist models.Playlist
	if err := readDB(r.db).WithContext(ctx).
		Where("owner_id = ? AND title = ?", ownerID, title).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&playlist).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &playlist, nil
}

func (r *playlistRepository) ListPublicByOwner(ctx context.Context, ownerID uint, limit, offset int) ([]models.Playlist, error) {
	playlists := []models.Playlist{}
	if err := readDB(r.db).WithContext(ctx).
		Where("owner_id = ? AND visibility = ?", ownerID, models.PlaylistVisibilityPublic).
		Preload("Items").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&playlists).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return playlists, nil
}
