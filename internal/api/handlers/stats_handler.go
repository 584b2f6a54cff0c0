package handlers

import (
	"pennywise/internal/service"
	"pennywise/internal/stats"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type StatsHandler struct {
	statsService *service.StatsService
	logger       *zap.Logger
}

func NewStatsHandler(statsService *service.StatsService, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
		logger:       logger,
	}
}

// Summary godoc
// @Summary Dashboard summary
// @Description Totals, category breakdown, top categories and daily series over a rolling window
// @Tags stats
// @Produce json
// @Param range query string false "week, month or year (default month)"
// @Success 200 {object} dto.StatsSummaryResponse
// @Security BearerAuth
// @Router /api/v1/stats/summary [get]
func (h *StatsHandler) Summary(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	resp, err := h.statsService.Summary(c.Context(), uid, stats.Range(c.Query("range")))
	if err != nil {
		h.logger.Error("Stats summary failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build summary",
		})
	}

	return c.JSON(resp)
}
