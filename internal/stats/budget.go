package stats

import (
	"strings"
	"time"

	"pennywise/internal/models"
)

// BudgetReport is the derived state of one budget for the current
// calendar month. Progress is unclamped: 1.5 means 50% overspent.
// Callers clamp to 1 for progress bars but keep the raw value for
// "overspent by X" messaging.
type BudgetReport struct {
	Spent          float64   `json:"spent"`
	Remaining      float64   `json:"remaining"`
	Progress       float64   `json:"progress"`
	LastCalculated time.Time `json:"last_calculated"`
}

// ReportBudget computes spent/remaining/progress for one budget from
// the transaction list. Spent counts expense transactions in the
// current calendar month whose category matches case-insensitively.
// A non-positive ceiling yields progress 0 rather than dividing by
// zero.
func ReportBudget(b models.Budget, txs []models.Transaction, now time.Time) BudgetReport {
	monthStart, monthEnd := CalendarMonth(now)

	var spent float64
	for _, tx := range txs {
		if tx.Type != models.TypeExpense {
			continue
		}
		if !strings.EqualFold(tx.Category, b.Category) {
			continue
		}
		if tx.Date.Before(monthStart) || tx.Date.After(monthEnd) {
			continue
		}
		spent += safeAmount(tx.Amount)
	}

	report := BudgetReport{
		Spent:          spent,
		Remaining:      b.Amount - spent,
		LastCalculated: now,
	}
	if b.Amount > 0 {
		report.Progress = spent / b.Amount
	}
	return report
}
