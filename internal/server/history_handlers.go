package server

import (
	"time"

	"resonate/internal/models"
	"resonate/internal/service"

	"github.com/gofiber/fiber/v2"
)

// RecordHistory handles POST /api/history
func (s *Server) RecordHistory(c *fiber.Ctx) error {
	var req struct {
		Audio    uint      `json:"audio"`
		Progress float64   `json:"progress"`
		Date     time.Time `json:"date"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	entry, err := s.historyService.Record(c.Context(), service.RecordHistoryInput{
		OwnerID:  s.currentUserID(c),
		AudioID:  req.Audio,
		Progress: req.Progress,
		PlayedAt: req.Date,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"history": entry})
}

// GetHistory handles GET /api/history
func (s *Server) GetHistory(c *fiber.Ctx) error {
	p, err := s.parsePagination(c)
	if err != nil {
		return nil
	}

	entries, err := s.historyService.Recent(c.Context(), s.currentUserID(c), p.Limit, p.Page)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"history": entries})
}
