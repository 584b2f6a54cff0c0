package dto

import "pennywise/internal/stats"

// StatsSummaryResponse carries everything a dashboard needs for one
// rolling time range. ByCategory is the complete breakdown; Top is the
// truncated view for charts.
type StatsSummaryResponse struct {
	Range      string                     `json:"range"`
	From       string                     `json:"from"`
	To         string                     `json:"to"`
	Totals     stats.Summary              `json:"totals"`
	ByCategory map[string]float64         `json:"by_category"`
	Top        []stats.CategoryTotal      `json:"top_categories"`
	Daily      map[string]stats.DayTotals `json:"daily"`
}
