package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetRecommended handles GET /api/profile/recommended.
// Anonymous callers get the global popularity chart; authenticated callers
// with listening history get results filtered to their categories.
func (s *Server) GetRecommended(c *fiber.Ctx) error {
	audios, err := s.recommendationService.Recommend(c.Context(), s.optionalUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"audios": audios})
}
