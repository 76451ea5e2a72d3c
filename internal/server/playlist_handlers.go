package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetAutoGeneratedPlaylist handles GET /api/profile/auto-generated-playlist.
// Each call refreshes the caller's mix from their listening history and
// returns curated suggestions plus the mix, when one exists.
func (s *Server) GetAutoGeneratedPlaylist(c *fiber.Ctx) error {
	playlists, err := s.playlistService.GenerateForUser(c.Context(), s.currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"playlist": playlists})
}
