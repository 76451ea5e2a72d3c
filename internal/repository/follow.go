package repository

import (
	"context"
	"errors"
	"time"

	"resonate/internal/models"
	"resonate/internal/observability"

	"gorm.io/gorm"
)

// FollowRepository defines persistence operations for the follow graph.
type FollowRepository interface {
	Toggle(ctx context.Context, followerID, followeeID uint) (models.FollowStatus, error)
	Exists(ctx context.Context, followerID, followeeID uint) (bool, error)
	PageFollowers(ctx context.Context, userID uint, limit, offset int) ([]models.UserSummary, error)
	PageFollowings(ctx context.Context, userID uint, limit, offset int) ([]models.UserSummary, error)
	CountFollowers(ctx context.Context, userID uint) (int64, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Toggle flips the follow edge between two users and reports which way it
// flipped. The read and the write run in one transaction so concurrent
// toggles on the same edge serialize instead of double-inserting; the unique
// pair index backstops the race and surfaces as a conflict.
func (r *followRepository) Toggle(ctx context.Context, followerID, followeeID uint) (models.FollowStatus, error) {
	defer observability.ObserveQuery("toggle", "follows", time.Now())

	var status models.FollowStatus

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var edge models.Follow
		err := tx.Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
			First(&edge).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if createErr := tx.Create(&models.Follow{
				FollowerID: followerID,
				FolloweeID: followeeID,
			}).Error; createErr != nil {
				if isUniqueConstraintError(createErr) {
					return models.NewConflictError("Concurrent follow toggle, please retry")
				}
				return models.NewInternalError(createErr)
			}
			status = models.FollowStatusAdded
			return nil
		case err != nil:
			return models.NewInternalError(err)
		default:
			if delErr := tx.Delete(&models.Follow{}, edge.ID).Error; delErr != nil {
				return models.NewInternalError(delErr)
			}
			status = models.FollowStatusRemoved
			return nil
		}
	})

	if err != nil {
		return "", err
	}
	return status, nil
}

func (r *followRepository) Exists(ctx context.Context, followerID, followeeID uint) (bool, error) {
	var count int64
	if err := readDB(r.db).WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// PageFollowers returns profile summaries of users following userID,
// ordered by edge insertion order (follows.id) for stable pagination.
func (r *followRepository) PageFollowers(ctx context.Context, userID uint, limit, offset int) ([]models.UserSummary, error) {
	summaries := []models.UserSummary{}

	if err := readDB(r.db).WithContext(ctx).
		Table("users").
		Select("users.id", "users.name", "users.avatar").
		Joins("JOIN follows f ON f.follower_id = users.id").
		Where("f.followee_id = ?", userID).
		Order("f.id ASC").
		Limit(limit).
		Offset(offset).
		Scan(&summaries).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	return summaries, nil
}

// PageFollowings returns profile summaries of users that userID follows.
func (r *followRepository) PageFollowings(ctx context.Context, userID uint, limit, offset int) ([]models.UserSummary, error) {
	summaries := []models.UserSummary{}

	if err := readDB(r.db).WithContext(ctx).
		Table("users").
		Select("users.id", "users.name", "users.avatar").
		Joins("JOIN follows f ON f.followee_id = users.id").
		Where("f.follower_id = ?", userID).
		Order("f.id ASC").
		Limit(limit).
		Offset(offset).
		Scan(&summaries).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	return summaries, nil
}

func (r *followRepository) CountFollowers(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := readDB(r.db).WithContext(ctx).
		Model(&models.Follow{}).
		Where("followee_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
