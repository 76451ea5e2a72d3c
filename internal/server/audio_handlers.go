package server

import (
	"resonate/internal/models"
	"resonate/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateAudio handles POST /api/audio
func (s *Server) CreateAudio(c *fiber.Ctx) error {
	var req struct {
		Title    string `json:"title"`
		About    string `json:"about"`
		Category string `json:"category"`
		File     string `json:"file"`
		Poster   string `json:"poster"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	audio, err := s.audioService.Create(c.Context(), service.CreateAudioInput{
		OwnerID:  s.currentUserID(c),
		Title:    req.Title,
		About:    req.About,
		Category: req.Category,
		File:     req.File,
		Poster:   req.Poster,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"audio": audio.Summary()})
}
