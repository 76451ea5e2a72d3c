// Package service implements the business logic layer of the application.
package service

import (
	"context"

	"resonate/internal/cache"
	"resonate/internal/models"
	"resonate/internal/observability"
	"resonate/internal/repository"
)

const (
	// DefaultPageLimit applies when a listing request omits the limit.
	DefaultPageLimit = 20
	// MaxPageLimit caps a single listing page.
	MaxPageLimit = 100
)

// FollowService provides follow-graph business logic.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewFollowService returns a new FollowService.
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Toggle flips the follow relationship from userID toward profileID and
// reports whether the edge was added or removed.
func (s *FollowService) Toggle(ctx context.Context, userID, profileID uint) (models.FollowStatus, error) {
	if userID == profileID {
		return "", models.NewValidationError("Cannot follow yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, profileID); err != nil {
		return "", err
	}

	status, err := s.followRepo.Toggle(ctx, userID, profileID)
	if err != nil {
		return "", err
	}

	observability.FollowToggles.WithLabelValues(string(status)).Inc()
	// The target's cached profile card embeds a follower count.
	cache.Invalidate(ctx, cache.ProfileKey(profileID))
	return status, nil
}

// Followers returns one page of the profile's followers. An unknown profile
// and an empty window both read as an empty page; callers that care whether
// the profile exists check separately. Pages are stable under concurrent
// graph mutation in the sense that a single page is one consistent read;
// callers paging across mutations may see an edge move.
func (s *FollowService) Followers(ctx context.Context, profileID uint, limit, page int) ([]models.UserSummary, error) {
	limit, offset, err := normalizePage(limit, page)
	if err != nil {
		return nil, err
	}
	return s.followRepo.PageFollowers(ctx, profileID, limit, offset)
}

// Followings returns one page of profiles the user follows. As with
// Followers, an unknown profile reads as an empty page.
func (s *FollowService) Followings(ctx context.Context, profileID uint, limit, page int) ([]models.UserSummary, error) {
	limit, offset, err := normalizePage(limit, page)
	if err != nil {
		return nil, err
	}
	return s.followRepo.PageFollowings(ctx, profileID, limit, offset)
}

// IsFollowing reports whether userID currently follows profileID.
func (s *FollowService) IsFollowing(ctx context.Context, userID, profileID uint) (bool, error) {
	return s.followRepo.Exists(ctx, userID, profileID)
}

// PublicProfile returns the profile card shown to other users: name, avatar
// and the follower count. The card is cached briefly and invalidated on
// toggles against the profile.
func (s *FollowService) PublicProfile(ctx context.Context, profileID uint) (*models.PublicProfile, error) {
	var profile models.PublicProfile

	err := cache.Aside(ctx, cache.ProfileKey(profileID), &profile, cache.ProfileTTL, func() error {
		user, err := s.userRepo.GetByID(ctx, profileID)
		if err != nil {
			return err
		}

		followers, err := s.followRepo.CountFollowers(ctx, profileID)
		if err != nil {
			return err
		}

		profile = models.PublicProfile{
			ID:        user.ID,
			Name:      user.Name,
			Followers: followers,
			Avatar:    user.Avatar,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// normalizePage turns (limit, page) request values into (limit, offset).
// Zero values take the defaults; negatives are rejected.
func normalizePage(limit, page int) (int, int, error) {
	if limit < 0 || page < 0 {
		return 0, 0, models.NewValidationError("Invalid pagination query")
	}
	if limit == 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return limit, page * limit, nil
}
