package server

import (
	"resonate/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ToggleFollow handles POST /api/profile/update-follower/:profileId.
// It flips the follow edge from the caller toward the profile and reports
// whether the follow was added or removed.
func (s *Server) ToggleFollow(c *fiber.Ctx) error {
	profileID, err := s.parseID(c, "profileId")
	if err != nil {
		return nil
	}

	status, err := s.followService.Toggle(c.Context(), s.currentUserID(c), profileID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"status": status})
}

// IsFollowing handles GET /api/profile/is-following/:profileId
func (s *Server) IsFollowing(c *fiber.Ctx) error {
	profileID, err := s.parseID(c, "profileId")
	if err != nil {
		return nil
	}

	following, err := s.followService.IsFollowing(c.Context(), s.currentUserID(c), profileID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"status": following})
}

// GetMyFollowers handles GET /api/profile/followers
func (s *Server) GetMyFollowers(c *fiber.Ctx) error {
	p, err := s.parsePagination(c)
	if err != nil {
		return nil
	}

	followers, err := s.followService.Followers(c.Context(), s.currentUserID(c), p.Limit, p.Page)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"followers": followers})
}

// GetMyFollowings handles GET /api/profile/followings
func (s *Server) GetMyFollowings(c *fiber.Ctx) error {
	p, err := s.parsePagination(c)
	if err != nil {
		return nil
	}

	followings, err := s.followService.Followings(c.Context(), s.currentUserID(c), p.Limit, p.Page)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"followings": followings})
}

// GetPublicFollowers handles GET /api/profile/followers/:profileId
func (s *Server) GetPublicFollowers(c *fiber.Ctx) error {
	profileID, err := s.parseID(c, "profileId")
	if err != nil {
		return nil
	}
	p, err := s.parsePagination(c)
	if err != nil {
		return nil
	}

	followers, err := s.followService.Followers(c.Context(), profileID, p.Limit, p.Page)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"followers": followers})
}

// GetPublicProfile handles GET /api/profile/info/:profileId
func (s *Server) GetPublicProfile(c *fiber.Ctx) error {
	profileID, err := s.parseID(c, "profileId")
	if err != nil {
		return nil
	}

	profile, err := s.followService.PublicProfile(c.Context(), profileID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"profile": profile})
}

// GetMyUploads handles GET /api/profile/uploads
func (s *Server) GetMyUploads(c *fiber.Ctx) error {
	return s.respondUploads(c, s.currentUserID(c))
}

// GetPublicUploads handles GET /api/profile/uploads/:profileId
func (s *Server) GetPublicUploads(c *fiber.Ctx) error {
	profileID, err := s.parseID(c, "profileId")
	if err != nil {
		return nil
	}
	return s.respondUploads(c, profileID)
}

func (s *Server) respondUploads(c *fiber.Ctx, ownerID uint) error {
	p, err := s.parsePagination(c)
	if err != nil {
		return nil
	}

	audios, err := s.audioService.Uploads(c.Context(), ownerID, p.Limit, p.Page)
	if err != nil {
		return respondServiceError(c, err)
	}

	summaries := make([]models.AudioSummary, 0, len(audios))
	for i := range audios {
		summaries = append(summaries, audios[i].Summary())
	}
	return c.JSON(fiber.Map{"audios": summaries})
}

// GetPublicPlaylists handles GET /api/profile/playlist/:profileId
func (s *Server) GetPublicPlaylists(c *fiber.Ctx) error {
	profileID, err := s.parseID(c, "profileId")
	if err != nil {
		return nil
	}
	p, err := s.parsePagination(c)
	if err != nil {
		return nil
	}

	playlists, err := s.playlistService.PublicByOwner(c.Context(), profileID, p.Limit, p.Page)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"playlist": playlists})
}
