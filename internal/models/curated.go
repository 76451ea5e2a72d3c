package models

import "time"

// CuratedPlaylist is an editorially assembled playlist. Its title doubles
// as a category tag so generated suggestions can be matched to inferred
// taste. Read-only to the engine; maintained by an external curation job.
type CuratedPlaylist struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null;index" json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items []CuratedPlaylistItem `gorm:"foreignKey:PlaylistID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// TableName specifies the table name for GORM
func (CuratedPlaylist) TableName() string {
	return "curated_playlists"
}

// CuratedPlaylistItem pins one audio inside a curated playlist.
type CuratedPlaylistItem struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	PlaylistID uint `gorm:"not null;index" json:"playlist_id"`
	AudioID    uint `gorm:"not null" json:"audio_id"`
	Position   int  `gorm:"not null" json:"position"`
}

// TableName specifies the table name for GORM
func (CuratedPlaylistItem) TableName() string {
	return "curated_playlist_items"
}
