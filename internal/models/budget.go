package models

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidBudgetAmount   = errors.New("budget amount must be a positive number")
	ErrMissingBudgetName     = errors.New("budget name is required")
	ErrMissingBudgetCategory = errors.New("budget category is required")
)

// Budget is a monthly spending ceiling for one category. Spent and
// LastCalculated are a best-effort cache refreshed after each
// recomputation, never ground truth; the authoritative spend is always
// derived from the transaction list.
type Budget struct {
	ID             uuid.UUID `db:"id"`
	UserID         uuid.UUID `db:"user_id"`
	Name           string    `db:"name"`
	Category       string    `db:"category"`
	Amount         float64   `db:"amount"`
	Spent          float64   `db:"spent"`
	LastCalculated time.Time `db:"last_calculated"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func (b *Budget) Validate() error {
	if b.Amount <= 0 || math.IsNaN(b.Amount) || math.IsInf(b.Amount, 0) {
		return ErrInvalidBudgetAmount
	}
	if strings.TrimSpace(b.Name) == "" {
		return ErrMissingBudgetName
	}
	if strings.TrimSpace(b.Category) == "" {
		return ErrMissingBudgetCategory
	}
	return nil
}
