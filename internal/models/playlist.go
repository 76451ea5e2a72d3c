package models

import (
	"time"

	"gorm.io/gorm"
)

// PlaylistVisibility controls who can see a playlist.
type PlaylistVisibility string

const (
	// PlaylistVisibilityPublic is visible on the owner's public profile.
	PlaylistVisibilityPublic PlaylistVisibility = "public"
	// PlaylistVisibilityPrivate is visible to the owner only.
	PlaylistVisibilityPrivate PlaylistVisibility = "private"
	// PlaylistVisibilityAuto marks engine-generated playlists.
	PlaylistVisibilityAuto PlaylistVisibility = "auto"
)

// MixPlaylistTitle is the fixed title of the per-user generated mix.
// The (owner_id, title) unique index makes the mix a singleton per owner.
const MixPlaylistTitle = "Mix20"

// Playlist is an ordered collection of audios owned by a user.
type Playlist struct {
	ID         uint               `gorm:"primaryKey" json:"id"`
	OwnerID    uint               `gorm:"not null;uniqueIndex:idx_playlist_owner_title" json:"owner_id"`
	Title      string             `gorm:"not null;uniqueIndex:idx_playlist_owner_title" json:"title"`
	Visibility PlaylistVisibility `gorm:"type:varchar(20);default:'private';index" json:"visibility"`
	ShareToken string             `gorm:"index" json:"share_token,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
	DeletedAt  gorm.DeletedAt     `gorm:"index" json:"-"`

	Items []PlaylistItem `gorm:"foreignKey:PlaylistID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// TableName specifies the table name for GORM
func (Playlist) TableName() string {
	return "playlists"
}

// PlaylistItem places one audio at a position inside a playlist.
type PlaylistItem struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	PlaylistID uint `gorm:"not null;index;uniqueIndex:idx_playlist_item" json:"playlist_id"`
	AudioID    uint `gorm:"not null;uniqueIndex:idx_playlist_item" json:"audio_id"`
	Position   int  `gorm:"not null" json:"position"`
}

// TableName specifies the table name for GORM
func (PlaylistItem) TableName() string {
	return "playlist_items"
}

// PlaylistSummary is the listing projection for playlists (own mix,
// public lists and curated lists all share it).
type PlaylistSummary struct {
	ID         uint               `json:"id"`
	Title      string             `json:"title"`
	ItemsCount int                `json:"itemsCount"`
	Visibility PlaylistVisibility `json:"visibility,omitempty"`
}
