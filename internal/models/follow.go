package models

import "time"

// FollowStatus is the outcome of a follow toggle.
type FollowStatus string

const (
	// FollowStatusAdded indicates the toggle created the follow edge.
	FollowStatusAdded FollowStatus = "added"
	// FollowStatusRemoved indicates the toggle removed the follow edge.
	FollowStatusRemoved FollowStatus = "removed"
)

// Follow is a single directed edge of the follow graph: the follower
// follows the followee. One row carries both adjacency views (the
// followee's followers and the follower's followings are the same edge),
// so the graph cannot drift out of symmetry. The unique pair index keeps
// set semantics under concurrent toggles.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follow_edge" json:"follower_id"`
	FolloweeID uint      `gorm:"not null;uniqueIndex:idx_follow_edge;index" json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`

	// Relationships
	Follower User `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Followee User `gorm:"foreignKey:FolloweeID" json:"followee,omitempty"`
}

// TableName specifies the table name for GORM
func (Follow) TableName() string {
	return "follows"
}
