package models

import "time"

// HistoryEntry is one play event in a user's listening history. Category is
// snapshotted from the audio at play time so taste inference survives later
// re-tagging. Append-only; the engine only ever reads it back in aggregate.
type HistoryEntry struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	OwnerID  uint      `gorm:"not null;index" json:"owner_id"`
	AudioID  uint      `gorm:"not null;index" json:"audio_id"`
	Category string    `gorm:"not null" json:"category"`
	Progress float64   `json:"progress"`
	PlayedAt time.Time `gorm:"not null;index" json:"played_at"`

	Owner User  `gorm:"foreignKey:OwnerID" json:"-"`
	Audio Audio `gorm:"foreignKey:AudioID" json:"-"`
}

// TableName specifies the table name for GORM
func (HistoryEntry) TableName() string {
	return "history_entries"
}
