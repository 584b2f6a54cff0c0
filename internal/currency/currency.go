// Package currency holds the fixed display-currency catalog and the
// amount formatter. Amounts are stored currency-agnostic; the selected
// currency only affects formatting, never conversion.
package currency

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

var catalog = []Currency{
	{Code: "INR", Symbol: "₹", Name: "Indian Rupee"},
	{Code: "USD", Symbol: "$", Name: "US Dollar"},
	{Code: "EUR", Symbol: "€", Name: "Euro"},
	{Code: "GBP", Symbol: "£", Name: "British Pound"},
	{Code: "JPY", Symbol: "¥", Name: "Japanese Yen"},
	{Code: "AUD", Symbol: "A$", Name: "Australian Dollar"},
	{Code: "CAD", Symbol: "C$", Name: "Canadian Dollar"},
	{Code: "CHF", Symbol: "Fr", Name: "Swiss Franc"},
	{Code: "CNY", Symbol: "¥", Name: "Chinese Yuan"},
	{Code: "SGD", Symbol: "S$", Name: "Singapore Dollar"},
	{Code: "MYR", Symbol: "RM", Name: "Malaysian Ringgit"},
	{Code: "THB", Symbol: "฿", Name: "Thai Baht"},
}

var printer = message.NewPrinter(language.English)

// Available returns a copy of the currency catalog.
func Available() []Currency {
	out := make([]Currency, len(catalog))
	copy(out, catalog)
	return out
}

// Default is the Indian Rupee.
func Default() Currency {
	return catalog[0]
}

// ByCode looks up a catalog entry, case-insensitively.
func ByCode(code string) (Currency, bool) {
	for _, c := range catalog {
		if strings.EqualFold(c.Code, code) {
			return c, true
		}
	}
	return Currency{}, false
}

// Format renders an amount as symbol + number with exactly two decimal
// places and thousands separators. It is total: nil, absent or
// unparsable amounts format as zero. It never fails.
func (c Currency) Format(amount any) string {
	v := toFloat(amount)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return c.Symbol + printer.Sprintf("%.2f", v)
}

func toFloat(amount any) float64 {
	switch a := amount.(type) {
	case nil:
		return 0
	case float64:
		return a
	case float32:
		return float64(a)
	case int:
		return float64(a)
	case int64:
		return float64(a)
	case *float64:
		if a == nil {
			return 0
		}
		return *a
	case string:
		v, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
		if err != nil {
			return 0
		}
		return v
	default:
		return 0
	}
}
