package dto

import (
	"time"

	"pennywise/internal/models"
)

type TransactionRequest struct {
	Type     string     `json:"type"`
	Amount   FlexAmount `json:"amount"`
	Category string     `json:"category"`
	Name     string     `json:"name"`
	Note     string     `json:"note"`
	Date     FlexTime   `json:"date"`
}

type TransactionResponse struct {
	ID         string  `json:"id"`
	Type       string  `json:"type"`
	Amount     float64 `json:"amount"`
	Category   string  `json:"category"`
	Name       string  `json:"name,omitempty"`
	Note       string  `json:"note,omitempty"`
	ReceiptURL string  `json:"receipt_url,omitempty"`
	Date       string  `json:"date"`
	CreatedAt  string  `json:"created_at"`
}

func NewTransactionResponse(tx *models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:         tx.ID.String(),
		Type:       string(tx.Type),
		Amount:     tx.Amount,
		Category:   tx.Category,
		Name:       tx.Name,
		Note:       tx.Note,
		ReceiptURL: tx.ReceiptURL,
		Date:       tx.Date.Format(time.RFC3339),
		CreatedAt:  tx.CreatedAt.Format(time.RFC3339),
	}
}

func NewTransactionListResponse(txs []models.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txs))
	for i := range txs {
		out = append(out, NewTransactionResponse(&txs[i]))
	}
	return out
}
