package handlers

import (
	"errors"

	"pennywise/internal/dto"
	"pennywise/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type SettingsHandler struct {
	settingsService *service.SettingsService
	logger          *zap.Logger
}

func NewSettingsHandler(settingsService *service.SettingsService, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		logger:          logger,
	}
}

// GetCurrency godoc
// @Summary Get currency settings
// @Description The user's selected currency plus the catalog of available ones
// @Tags settings
// @Produce json
// @Success 200 {object} dto.CurrencySettingsResponse
// @Security BearerAuth
// @Router /api/v1/settings/currency [get]
func (h *SettingsHandler) GetCurrency(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	resp, err := h.settingsService.GetCurrency(c.Context(), uid)
	if err != nil {
		h.logger.Error("Currency settings load failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load currency settings",
		})
	}

	return c.JSON(resp)
}

// SetCurrency godoc
// @Summary Set the display currency
// @Tags settings
// @Accept json
// @Produce json
// @Param request body dto.UpdateCurrencyRequest true "Currency selection"
// @Success 200 {object} dto.CurrencySettingsResponse
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/settings/currency [put]
func (h *SettingsHandler) SetCurrency(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateCurrencyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.settingsService.SetCurrency(c.Context(), uid, req.Code)
	if err != nil {
		if errors.Is(err, service.ErrUnknownCurrency) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unknown currency code",
			})
		}
		h.logger.Error("Currency update failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update currency",
		})
	}

	return c.JSON(resp)
}
