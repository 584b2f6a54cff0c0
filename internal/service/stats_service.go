package service

import (
	"context"
	"fmt"
	"time"

	"pennywise/internal/dto"
	"pennywise/internal/models"
	"pennywise/internal/stats"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// topCategoryCount is how many categories the dashboard chart shows.
const topCategoryCount = 5

// StatsService assembles dashboard summaries from the transaction
// snapshot and the aggregation functions in the stats package.
type StatsService struct {
	transactions TransactionSource
	logger       *zap.Logger

	now func() time.Time
}

func NewStatsService(transactions TransactionSource, logger *zap.Logger) *StatsService {
	return &StatsService{
		transactions: transactions,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *StatsService) Summary(ctx context.Context, userID uuid.UUID, r stats.Range) (*dto.StatsSummaryResponse, error) {
	txs, err := s.transactions.Snapshot(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	switch r {
	case stats.RangeWeek, stats.RangeMonth, stats.RangeYear:
	default:
		r = stats.RangeMonth
	}

	now := s.now()
	from, to := stats.Window(r, now)

	windowed := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.Date.Before(from) || tx.Date.After(to) {
			continue
		}
		windowed = append(windowed, tx)
	}

	breakdown := stats.CategoryBreakdown(windowed, from, to)

	return &dto.StatsSummaryResponse{
		Range:      string(r),
		From:       from.Format(time.RFC3339),
		To:         to.Format(time.RFC3339),
		Totals:     stats.Totals(windowed),
		ByCategory: breakdown,
		Top:        stats.TopCategories(breakdown, topCategoryCount),
		Daily:      stats.DailySeries(windowed),
	}, nil
}
