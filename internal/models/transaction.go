package models

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Categories offered by clients. The category field itself is free text;
// this list only drives suggestions.
const (
	CategoryFood          = "food"
	CategoryTransport     = "transport"
	CategoryShopping      = "shopping"
	CategoryEntertainment = "entertainment"
	CategoryBills         = "bills"
	CategorySalary        = "salary"
	CategoryOther         = "other"
)

func SuggestedCategories() []string {
	return []string{
		CategoryFood,
		CategoryTransport,
		CategoryShopping,
		CategoryEntertainment,
		CategoryBills,
		CategorySalary,
		CategoryOther,
	}
}

var (
	ErrInvalidAmount   = errors.New("amount must be a positive number")
	ErrInvalidType     = errors.New("type must be income or expense")
	ErrMissingCategory = errors.New("category is required")
)

// Transaction is one discrete financial event. Date is when the event
// occurred, distinct from CreatedAt.
type Transaction struct {
	ID         uuid.UUID       `db:"id"`
	UserID     uuid.UUID       `db:"user_id"`
	Type       TransactionType `db:"type"`
	Amount     float64         `db:"amount"`
	Category   string          `db:"category"`
	Name       string          `db:"name"`
	Note       string          `db:"note"`
	ReceiptURL string          `db:"receipt_url"`
	Date       time.Time       `db:"date"`
	CreatedAt  time.Time       `db:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at"`
}

// Validate enforces the persistence invariants: positive finite amount,
// known type, non-empty category.
func (t *Transaction) Validate() error {
	if t.Amount <= 0 || math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) {
		return ErrInvalidAmount
	}
	if t.Type != TypeIncome && t.Type != TypeExpense {
		return ErrInvalidType
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrMissingCategory
	}
	return nil
}
