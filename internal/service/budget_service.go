package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pennywise/internal/dto"
	"pennywise/internal/models"
	"pennywise/internal/stats"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var ErrBudgetNotFound = errors.New("budget not found")

// BudgetStore is the persistence surface BudgetService needs.
type BudgetStore interface {
	Create(ctx context.Context, b *models.Budget) error
	Update(ctx context.Context, b *models.Budget) error
	UpdateSpent(ctx context.Context, userID, id uuid.UUID, spent float64, calculatedAt time.Time) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Budget, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Budget, error)
}

// TransactionSource supplies the transactions budget progress is
// computed from.
type TransactionSource interface {
	Snapshot(ctx context.Context, userID uuid.UUID) ([]models.Transaction, error)
}

type BudgetService struct {
	repo         BudgetStore
	transactions TransactionSource
	logger       *zap.Logger

	// now is swapped in tests to pin the calendar month.
	now func() time.Time
}

func NewBudgetService(repo BudgetStore, transactions TransactionSource, logger *zap.Logger) *BudgetService {
	return &BudgetService{
		repo:         repo,
		transactions: transactions,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *BudgetService) Create(ctx context.Context, userID uuid.UUID, req *dto.BudgetRequest) (*dto.BudgetResponse, error) {
	now := s.now()
	b := &models.Budget{
		ID:             uuid.New(),
		UserID:         userID,
		Name:           req.Name,
		Category:       req.Category,
		Amount:         req.Amount.Float64(),
		LastCalculated: now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := b.Validate(); err != nil {
		return nil, err
	}

	txs, err := s.transactions.Snapshot(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	report := stats.ReportBudget(*b, txs, now)
	b.Spent = report.Spent

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to save budget: %w", err)
	}

	resp := dto.NewBudgetResponse(b, report)
	return &resp, nil
}

func (s *BudgetService) Update(ctx context.Context, userID, id uuid.UUID, req *dto.BudgetRequest) (*dto.BudgetResponse, error) {
	existing, err := s.repo.GetByID(ctx, userID, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrBudgetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load budget: %w", err)
	}

	existing.Name = req.Name
	existing.Category = req.Category
	existing.Amount = req.Amount.Float64()
	existing.UpdatedAt = s.now()

	if err := existing.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}

	report, err := s.report(ctx, existing)
	if err != nil {
		return nil, err
	}

	resp := dto.NewBudgetResponse(existing, report)
	return &resp, nil
}

func (s *BudgetService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	return nil
}

func (s *BudgetService) GetByID(ctx context.Context, userID, id uuid.UUID) (*dto.BudgetResponse, error) {
	b, err := s.repo.GetByID(ctx, userID, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrBudgetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load budget: %w", err)
	}

	report, err := s.report(ctx, b)
	if err != nil {
		return nil, err
	}

	resp := dto.NewBudgetResponse(b, report)
	return &resp, nil
}

// List returns the user's budgets with current-month progress computed
// from live transactions, not the stored spent column.
func (s *BudgetService) List(ctx context.Context, userID uuid.UUID) ([]dto.BudgetResponse, error) {
	budgets, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}

	txs, err := s.transactions.Snapshot(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	now := s.now()
	out := make([]dto.BudgetResponse, 0, len(budgets))
	for i := range budgets {
		report := stats.ReportBudget(budgets[i], txs, now)
		out = append(out, dto.NewBudgetResponse(&budgets[i], report))

		if report.Spent != budgets[i].Spent {
			s.persistSpent(budgets[i].UserID, budgets[i].ID, report)
		}
	}

	return out, nil
}

func (s *BudgetService) report(ctx context.Context, b *models.Budget) (stats.BudgetReport, error) {
	txs, err := s.transactions.Snapshot(ctx, b.UserID)
	if err != nil {
		return stats.BudgetReport{}, fmt.Errorf("failed to load transactions: %w", err)
	}

	report := stats.ReportBudget(*b, txs, s.now())
	if report.Spent != b.Spent {
		s.persistSpent(b.UserID, b.ID, report)
	}
	return report, nil
}

// persistSpent writes the recomputed spending back to the store in the
// background. The caller already has the fresh value, so a failed
// write-back is only logged and never surfaces.
func (s *BudgetService) persistSpent(userID, id uuid.UUID, report stats.BudgetReport) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.repo.UpdateSpent(ctx, userID, id, report.Spent, report.LastCalculated); err != nil {
			s.logger.Warn("failed to persist budget spending",
				zap.String("budget_id", id.String()),
				zap.Error(err),
			)
		}
	}()
}
