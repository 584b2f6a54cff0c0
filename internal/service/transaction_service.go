package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"pennywise/internal/dto"
	"pennywise/internal/models"
	"pennywise/internal/repository"
	"pennywise/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var ErrTransactionNotFound = errors.New("transaction not found")

// TransactionStore is the persistence surface TransactionService needs.
type TransactionStore interface {
	Create(ctx context.Context, tx *models.Transaction) error
	Update(ctx context.Context, tx *models.Transaction) error
	UpdateReceiptURL(ctx context.Context, userID, id uuid.UUID, receiptURL string) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Transaction, error)
	ListByUser(ctx context.Context, userID uuid.UUID, filter repository.TransactionFilter) ([]models.Transaction, error)
}

// TransactionService mediates between handlers and the transaction
// store. It keeps a per-user in-memory snapshot of all transactions:
// writes are applied to the snapshot first so reads issued right after
// a write already see it, then confirmed against the database. A
// failed database write rolls the snapshot entry back and surfaces
// the error to the caller for retry.
type TransactionService struct {
	repo     TransactionStore
	receipts storage.ReceiptStore
	logger   *zap.Logger

	mu        sync.RWMutex
	snapshots map[uuid.UUID][]models.Transaction
}

func NewTransactionService(repo TransactionStore, receipts storage.ReceiptStore, logger *zap.Logger) *TransactionService {
	return &TransactionService{
		repo:      repo,
		receipts:  receipts,
		logger:    logger,
		snapshots: make(map[uuid.UUID][]models.Transaction),
	}
}

func (s *TransactionService) Create(ctx context.Context, userID uuid.UUID, req *dto.TransactionRequest) (*models.Transaction, error) {
	now := time.Now()
	tx := &models.Transaction{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      models.TransactionType(req.Type),
		Amount:    req.Amount.Float64(),
		Category:  req.Category,
		Name:      req.Name,
		Note:      req.Note,
		Date:      req.Date.OrNow(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := tx.Validate(); err != nil {
		return nil, err
	}

	s.applyLocal(userID, *tx)

	if err := s.repo.Create(ctx, tx); err != nil {
		s.removeLocal(userID, tx.ID)
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	return tx, nil
}

func (s *TransactionService) Update(ctx context.Context, userID, id uuid.UUID, req *dto.TransactionRequest) (*models.Transaction, error) {
	existing, err := s.repo.GetByID(ctx, userID, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction: %w", err)
	}

	updated := *existing
	updated.Type = models.TransactionType(req.Type)
	updated.Amount = req.Amount.Float64()
	updated.Category = req.Category
	updated.Name = req.Name
	updated.Note = req.Note
	updated.Date = req.Date.Or(existing.Date)
	updated.UpdatedAt = time.Now()

	if err := updated.Validate(); err != nil {
		return nil, err
	}

	s.applyLocal(userID, updated)

	if err := s.repo.Update(ctx, &updated); err != nil {
		s.applyLocal(userID, *existing)
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	return &updated, nil
}

func (s *TransactionService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	existing, err := s.repo.GetByID(ctx, userID, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrTransactionNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load transaction: %w", err)
	}

	s.removeLocal(userID, id)

	if err := s.repo.Delete(ctx, userID, id); err != nil {
		s.applyLocal(userID, *existing)
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	if existing.ReceiptURL != "" {
		if err := s.receipts.Delete(ctx, existing.ReceiptURL); err != nil {
			s.logger.Warn("failed to delete receipt blob",
				zap.String("transaction_id", id.String()),
				zap.Error(err),
			)
		}
	}

	return nil
}

func (s *TransactionService) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Transaction, error) {
	tx, err := s.repo.GetByID(ctx, userID, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction: %w", err)
	}
	return tx, nil
}

// List queries the store with the given filter. An unfiltered list is
// authoritative, so it also replaces the user's snapshot.
func (s *TransactionService) List(ctx context.Context, userID uuid.UUID, filter repository.TransactionFilter) ([]models.Transaction, error) {
	txs, err := s.repo.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	if filter == (repository.TransactionFilter{}) {
		cached := make([]models.Transaction, len(txs))
		copy(cached, txs)
		s.mu.Lock()
		s.snapshots[userID] = cached
		s.mu.Unlock()
	}

	return txs, nil
}

// Snapshot returns every transaction of the user, served from the
// in-memory copy when present. Stats and budget reports read from it.
func (s *TransactionService) Snapshot(ctx context.Context, userID uuid.UUID) ([]models.Transaction, error) {
	s.mu.RLock()
	cached, ok := s.snapshots[userID]
	s.mu.RUnlock()
	if ok {
		out := make([]models.Transaction, len(cached))
		copy(out, cached)
		return out, nil
	}

	return s.List(ctx, userID, repository.TransactionFilter{})
}

// AttachReceipt uploads a receipt file for the transaction and stores
// its URL. A previous receipt blob is removed best-effort.
func (s *TransactionService) AttachReceipt(ctx context.Context, userID, id uuid.UUID, filename string, r io.Reader) (*models.Transaction, error) {
	existing, err := s.repo.GetByID(ctx, userID, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction: %w", err)
	}

	url, err := s.receipts.Upload(ctx, userID, filename, r)
	if err != nil {
		return nil, fmt.Errorf("failed to upload receipt: %w", err)
	}

	if err := s.repo.UpdateReceiptURL(ctx, userID, id, url); err != nil {
		return nil, fmt.Errorf("failed to attach receipt: %w", err)
	}

	if existing.ReceiptURL != "" {
		if err := s.receipts.Delete(ctx, existing.ReceiptURL); err != nil {
			s.logger.Warn("failed to delete previous receipt blob",
				zap.String("transaction_id", id.String()),
				zap.Error(err),
			)
		}
	}

	updated := *existing
	updated.ReceiptURL = url
	updated.UpdatedAt = time.Now()
	s.applyLocal(userID, updated)

	return &updated, nil
}

// applyLocal upserts the transaction into the user's snapshot, keeping
// date-descending order. Last write wins on id collision.
func (s *TransactionService) applyLocal(userID uuid.UUID, tx models.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txs, ok := s.snapshots[userID]
	if !ok {
		return
	}

	out := txs[:0]
	for _, t := range txs {
		if t.ID != tx.ID {
			out = append(out, t)
		}
	}
	out = append(out, tx)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	s.snapshots[userID] = out
}

func (s *TransactionService) removeLocal(userID, id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txs, ok := s.snapshots[userID]
	if !ok {
		return
	}

	out := txs[:0]
	for _, t := range txs {
		if t.ID != id {
			out = append(out, t)
		}
	}
	s.snapshots[userID] = out
}
