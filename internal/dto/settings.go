package dto

import "pennywise/internal/currency"

type UpdateCurrencyRequest struct {
	Code string `json:"code"`
}

type CurrencySettingsResponse struct {
	Selected  currency.Currency   `json:"selected"`
	Available []currency.Currency `json:"available"`
}
