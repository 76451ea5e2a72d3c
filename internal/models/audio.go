package models

import (
	"time"

	"gorm.io/gorm"
)

// Audio represents an uploaded audio item (episode or track). Category is
// the tag used both for browsing and as the taste signal for
// recommendations. LikesCount is the denormalized popularity score.
type Audio struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Title      string         `gorm:"not null" json:"title"`
	About      string         `json:"about"`
	Category   string         `gorm:"index;not null" json:"category"`
	File       string         `gorm:"not null" json:"file"`
	Poster     string         `json:"poster"`
	OwnerID    uint           `gorm:"not null;index" json:"owner_id"`
	LikesCount int64          `gorm:"default:0;index" json:"likes_count"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Owner User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

// TableName specifies the table name for GORM
func (Audio) TableName() string {
	return "audios"
}

// AudioSummary is the recommendation/upload projection with the owner
// profile inlined.
type AudioSummary struct {
	ID       uint        `json:"id"`
	Title    string      `json:"title"`
	Category string      `json:"category,omitempty"`
	About    string      `json:"about"`
	File     string      `json:"file"`
	Poster   string      `json:"poster,omitempty"`
	Date     time.Time   `json:"date,omitempty"`
	Owner    UserSummary `json:"owner"`
}

// Summary projects the audio with its preloaded owner.
func (a *Audio) Summary() AudioSummary {
	return AudioSummary{
		ID:       a.ID,
		Title:    a.Title,
		Category: a.Category,
		About:    a.About,
		File:     a.File,
		Poster:   a.Poster,
		Date:     a.CreatedAt,
		Owner:    UserSummary{ID: a.Owner.ID, Name: a.Owner.Name},
	}
}
