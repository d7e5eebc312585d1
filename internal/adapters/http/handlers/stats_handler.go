package handlers

import (
	"libraryhub/internal/core/services"
	"libraryhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// StatsHandler handles the staff overview endpoint
type StatsHandler struct {
	statsService *services.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService *services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// Overview handles the staff dashboard
// @Summary Library overview
// @Description Library-wide counters and the best-rated books
// @Tags Stats
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /stats/overview [get]
func (h *StatsHandler) Overview(c *fiber.Ctx) error {
	overview, err := h.statsService.GetOverview(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to build overview")
	}

	return response.Success(c, "Overview retrieved successfully", overview)
}
