package stats

import (
	"math"
	"testing"
	"time"

	"pennywise/internal/models"
)

func TestReportBudget(t *testing.T) {
	now := time.Date(2025, time.January, 20, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		budget        models.Budget
		txs           []models.Transaction
		wantSpent     float64
		wantRemaining float64
		wantProgress  float64
	}{
		{
			name:   "overspent budget keeps unclamped progress",
			budget: models.Budget{Category: "Food", Amount: 200},
			txs: []models.Transaction{
				tx(models.TypeExpense, 300, "Food", date(2025, time.January, 10)),
			},
			wantSpent:     300,
			wantRemaining: -100,
			wantProgress:  1.5,
		},
		{
			name:   "category match is case-insensitive",
			budget: models.Budget{Category: "food", Amount: 100},
			txs: []models.Transaction{
				tx(models.TypeExpense, 30, "FOOD", date(2025, time.January, 5)),
				tx(models.TypeExpense, 20, "Food", date(2025, time.January, 6)),
			},
			wantSpent:     50,
			wantRemaining: 50,
			wantProgress:  0.5,
		},
		{
			name:   "only current calendar month counts",
			budget: models.Budget{Category: "food", Amount: 100},
			txs: []models.Transaction{
				tx(models.TypeExpense, 40, "food", date(2025, time.January, 15)),
				tx(models.TypeExpense, 99, "food", date(2024, time.December, 31)),
				tx(models.TypeExpense, 99, "food", date(2025, time.February, 1)),
			},
			wantSpent:     40,
			wantRemaining: 60,
			wantProgress:  0.4,
		},
		{
			name:   "income never counts as spend",
			budget: models.Budget{Category: "salary", Amount: 100},
			txs: []models.Transaction{
				tx(models.TypeIncome, 1000, "salary", date(2025, time.January, 5)),
			},
			wantSpent:     0,
			wantRemaining: 100,
			wantProgress:  0,
		},
		{
			name:   "non-positive ceiling yields zero progress, not a division by zero",
			budget: models.Budget{Category: "food", Amount: 0},
			txs: []models.Transaction{
				tx(models.TypeExpense, 50, "food", date(2025, time.January, 5)),
			},
			wantSpent:     50,
			wantRemaining: -50,
			wantProgress:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReportBudget(tt.budget, tt.txs, now)
			if got.Spent != tt.wantSpent {
				t.Errorf("Spent = %v, want %v", got.Spent, tt.wantSpent)
			}
			if got.Remaining != tt.wantRemaining {
				t.Errorf("Remaining = %v, want %v", got.Remaining, tt.wantRemaining)
			}
			if got.Progress != tt.wantProgress {
				t.Errorf("Progress = %v, want %v", got.Progress, tt.wantProgress)
			}
			if math.IsNaN(got.Progress) || math.IsInf(got.Progress, 0) {
				t.Errorf("Progress must always be finite, got %v", got.Progress)
			}
			if !got.LastCalculated.Equal(now) {
				t.Errorf("LastCalculated = %v, want %v", got.LastCalculated, now)
			}
			if tt.budget.Amount > 0 {
				if diff := math.Abs(got.Spent + got.Remaining - tt.budget.Amount); diff > 1e-9 {
					t.Errorf("spent + remaining != amount (diff %v)", diff)
				}
			}
		})
	}
}
