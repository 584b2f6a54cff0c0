package dto

import (
	"time"

	"pennywise/internal/models"
	"pennywise/internal/stats"
)

type BudgetRequest struct {
	Name     string     `json:"name"`
	Category string     `json:"category"`
	Amount   FlexAmount `json:"amount"`
}

type BudgetResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	Amount         float64 `json:"amount"`
	Spent          float64 `json:"spent"`
	Remaining      float64 `json:"remaining"`
	Progress       float64 `json:"progress"`
	LastCalculated string  `json:"last_calculated,omitempty"`
	CreatedAt      string  `json:"created_at"`
}

func NewBudgetResponse(b *models.Budget, report stats.BudgetReport) BudgetResponse {
	resp := BudgetResponse{
		ID:        b.ID.String(),
		Name:      b.Name,
		Category:  b.Category,
		Amount:    b.Amount,
		Spent:     report.Spent,
		Remaining: report.Remaining,
		Progress:  report.Progress,
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
	}
	if !report.LastCalculated.IsZero() {
		resp.LastCalculated = report.LastCalculated.Format(time.RFC3339)
	}
	return resp
}
