// Package stats is the aggregation engine: pure functions turning a
// transaction snapshot into financial summaries. No I/O, inputs are
// never mutated, so every function is safe to call re-entrantly over a
// snapshot of the in-memory lists.
package stats

import (
	"math"
	"sort"
	"time"

	"pennywise/internal/models"
)

// dayKeyFormat keys the daily series by UTC calendar day.
const dayKeyFormat = "2006-01-02"

type Summary struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}

type DayTotals struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// Totals sums income and expense over the whole list. A malformed
// amount (NaN or infinite) contributes zero instead of aborting the
// scan, so one bad record never blanks the summary. No rounding is
// applied here; callers round at format time.
func Totals(txs []models.Transaction) Summary {
	var s Summary
	for _, tx := range txs {
		amount := safeAmount(tx.Amount)
		if tx.Type == models.TypeIncome {
			s.Income += amount
		} else {
			s.Expense += amount
		}
	}
	s.Balance = s.Income - s.Expense
	return s
}

// CategoryBreakdown sums expense amounts per category over the
// inclusive window [from, to]. Keys are case-sensitive as stored;
// callers normalize case for display. The result is never truncated;
// top-N views are the caller's job (see TopCategories).
func CategoryBreakdown(txs []models.Transaction, from, to time.Time) map[string]float64 {
	breakdown := make(map[string]float64)
	for _, tx := range txs {
		if tx.Type != models.TypeExpense {
			continue
		}
		if tx.Date.Before(from) || tx.Date.After(to) {
			continue
		}
		breakdown[tx.Category] += safeAmount(tx.Amount)
	}
	return breakdown
}

// DailySeries buckets every transaction into its UTC calendar day.
// Days without transactions are absent; callers zero-fill when
// rendering a fixed-length series.
func DailySeries(txs []models.Transaction) map[string]DayTotals {
	series := make(map[string]DayTotals)
	for _, tx := range txs {
		key := tx.Date.UTC().Format(dayKeyFormat)
		day := series[key]
		if tx.Type == models.TypeIncome {
			day.Income += safeAmount(tx.Amount)
		} else {
			day.Expense += safeAmount(tx.Amount)
		}
		series[key] = day
	}
	return series
}

// TopCategories sorts a breakdown descending by total and keeps the
// first n entries. Ties break alphabetically so the order is stable.
func TopCategories(breakdown map[string]float64, n int) []CategoryTotal {
	out := make([]CategoryTotal, 0, len(breakdown))
	for category, total := range breakdown {
		out = append(out, CategoryTotal{Category: category, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Category < out[j].Category
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func safeAmount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
