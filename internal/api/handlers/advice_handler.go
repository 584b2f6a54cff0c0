package handlers

import (
	"errors"

	"pennywise/internal/dto"
	"pennywise/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AdviceHandler struct {
	adviceService *service.AdviceService
	logger        *zap.Logger
}

func NewAdviceHandler(adviceService *service.AdviceService, logger *zap.Logger) *AdviceHandler {
	return &AdviceHandler{
		adviceService: adviceService,
		logger:        logger,
	}
}

// GetAdvice godoc
// @Summary Get financial advice
// @Description Generate a structured financial tip for a free-form question
// @Tags advice
// @Accept json
// @Produce json
// @Param request body dto.AdviceRequest true "Advice request"
// @Success 200 {object} advice.Tip
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/advice [post]
func (h *AdviceHandler) GetAdvice(c *fiber.Ctx) error {
	if _, err := userID(c); err != nil {
		return err
	}

	var req dto.AdviceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	tip, err := h.adviceService.GetAdvice(c.Context(), req.Query)
	if err != nil {
		if errors.Is(err, service.ErrEmptyQuery) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Query must not be empty",
			})
		}
		h.logger.Error("Advice generation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate advice",
		})
	}

	return c.JSON(tip)
}

// SuggestCategory godoc
// @Summary Suggest a category for a transaction name
// @Tags advice
// @Accept json
// @Produce json
// @Param request body dto.SuggestCategoryRequest true "Suggestion request"
// @Success 200 {object} dto.SuggestCategoryResponse
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/advice/suggest-category [post]
func (h *AdviceHandler) SuggestCategory(c *fiber.Ctx) error {
	if _, err := userID(c); err != nil {
		return err
	}

	var req dto.SuggestCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	category, err := h.adviceService.SuggestCategory(c.Context(), req.Name)
	if err != nil {
		if errors.Is(err, service.ErrEmptyQuery) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Transaction name must not be empty",
			})
		}
		h.logger.Error("Category suggestion failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to suggest category",
		})
	}

	return c.JSON(dto.SuggestCategoryResponse{Category: category})
}
