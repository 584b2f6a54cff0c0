package handlers

import (
	"errors"

	"pennywise/internal/dto"
	"pennywise/internal/models"
	"pennywise/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BudgetHandler struct {
	budgetService *service.BudgetService
	logger        *zap.Logger
}

func NewBudgetHandler(budgetService *service.BudgetService, logger *zap.Logger) *BudgetHandler {
	return &BudgetHandler{
		budgetService: budgetService,
		logger:        logger,
	}
}

// Create godoc
// @Summary Create a budget
// @Tags budgets
// @Accept json
// @Produce json
// @Param request body dto.BudgetRequest true "Budget"
// @Success 201 {object} dto.BudgetResponse
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/budgets [post]
func (h *BudgetHandler) Create(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	var req dto.BudgetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.budgetService.Create(c.Context(), uid, &req)
	if err != nil {
		if isBudgetValidationError(err) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		h.logger.Error("Budget create failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create budget",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List godoc
// @Summary List budgets
// @Description List the user's budgets with current-month spending progress
// @Tags budgets
// @Produce json
// @Success 200 {array} dto.BudgetResponse
// @Security BearerAuth
// @Router /api/v1/budgets [get]
func (h *BudgetHandler) List(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	resp, err := h.budgetService.List(c.Context(), uid)
	if err != nil {
		h.logger.Error("Budget list failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list budgets",
		})
	}

	return c.JSON(resp)
}

// Get godoc
// @Summary Get a budget
// @Tags budgets
// @Produce json
// @Param id path string true "Budget id"
// @Success 200 {object} dto.BudgetResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/budgets/{id} [get]
func (h *BudgetHandler) Get(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid budget id",
		})
	}

	resp, err := h.budgetService.GetByID(c.Context(), uid, id)
	if err != nil {
		if errors.Is(err, service.ErrBudgetNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Budget not found",
			})
		}
		h.logger.Error("Budget get failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load budget",
		})
	}

	return c.JSON(resp)
}

// Update godoc
// @Summary Update a budget
// @Tags budgets
// @Accept json
// @Produce json
// @Param id path string true "Budget id"
// @Param request body dto.BudgetRequest true "Budget"
// @Success 200 {object} dto.BudgetResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/budgets/{id} [put]
func (h *BudgetHandler) Update(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid budget id",
		})
	}

	var req dto.BudgetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.budgetService.Update(c.Context(), uid, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBudgetNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Budget not found",
			})
		case isBudgetValidationError(err):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		h.logger.Error("Budget update failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update budget",
		})
	}

	return c.JSON(resp)
}

// Delete godoc
// @Summary Delete a budget
// @Tags budgets
// @Param id path string true "Budget id"
// @Success 204
// @Security BearerAuth
// @Router /api/v1/budgets/{id} [delete]
func (h *BudgetHandler) Delete(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid budget id",
		})
	}

	if err := h.budgetService.Delete(c.Context(), uid, id); err != nil {
		h.logger.Error("Budget delete failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete budget",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func isBudgetValidationError(err error) bool {
	return errors.Is(err, models.ErrInvalidBudgetAmount) ||
		errors.Is(err, models.ErrMissingBudgetName) ||
		errors.Is(err, models.ErrMissingBudgetCategory)
}
