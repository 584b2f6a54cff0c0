package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"pennywise/internal/dto"
	"pennywise/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type spentUpdate struct {
	id    uuid.UUID
	spent float64
}

type fakeBudgetStore struct {
	mu      sync.Mutex
	rows    map[uuid.UUID]models.Budget
	updates chan spentUpdate
}

func newFakeBudgetStore() *fakeBudgetStore {
	return &fakeBudgetStore{
		rows:    make(map[uuid.UUID]models.Budget),
		updates: make(chan spentUpdate, 8),
	}
}

func (f *fakeBudgetStore) Create(_ context.Context, b *models.Budget) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[b.ID] = *b
	return nil
}

func (f *fakeBudgetStore) Update(_ context.Context, b *models.Budget) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[b.ID] = *b
	return nil
}

func (f *fakeBudgetStore) UpdateSpent(_ context.Context, _, id uuid.UUID, spent float64, calculatedAt time.Time) error {
	f.mu.Lock()
	if b, ok := f.rows[id]; ok {
		b.Spent = spent
		b.LastCalculated = calculatedAt
		f.rows[id] = b
	}
	f.mu.Unlock()
	f.updates <- spentUpdate{id: id, spent: spent}
	return nil
}

func (f *fakeBudgetStore) Delete(_ context.Context, _, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, id)
	return nil
}

func (f *fakeBudgetStore) GetByID(_ context.Context, _, id uuid.UUID) (*models.Budget, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.rows[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &b, nil
}

func (f *fakeBudgetStore) ListByUser(_ context.Context, userID uuid.UUID) ([]models.Budget, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Budget
	for _, b := range f.rows {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

type fixedTransactionSource struct {
	txs []models.Transaction
}

func (f *fixedTransactionSource) Snapshot(context.Context, uuid.UUID) ([]models.Transaction, error) {
	return f.txs, nil
}

func budgetRequest(t *testing.T, body string) *dto.BudgetRequest {
	t.Helper()
	var req dto.BudgetRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal request: %v", err)
	}
	return &req
}

func monthTx(kind models.TransactionType, amount float64, category string, now time.Time) models.Transaction {
	return models.Transaction{
		ID:       uuid.New(),
		Type:     kind,
		Amount:   amount,
		Category: category,
		Date:     now,
	}
}

func TestBudgetServiceListComputesProgress(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()

	store := newFakeBudgetStore()
	store.rows[uuid.New()] = models.Budget{} // irrelevant other user's row
	budgetID := uuid.New()
	store.rows[budgetID] = models.Budget{
		ID:       budgetID,
		UserID:   userID,
		Name:     "Groceries",
		Category: "Food",
		Amount:   200,
	}

	source := &fixedTransactionSource{txs: []models.Transaction{
		monthTx(models.TypeExpense, 120, "food", now),
		monthTx(models.TypeExpense, 180, "food", now.AddDate(0, 0, 2)),
		monthTx(models.TypeExpense, 50, "transport", now),
		monthTx(models.TypeIncome, 1000, "food", now),
		monthTx(models.TypeExpense, 40, "food", now.AddDate(0, -2, 0)), // outside the month
	}}

	svc := NewBudgetService(store, source, zap.NewNop())
	svc.now = func() time.Time { return now }

	out, err := svc.List(context.Background(), userID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("got %d budgets, want 1", len(out))
	}

	b := out[0]
	if b.Spent != 300 {
		t.Errorf("Spent = %v, want 300", b.Spent)
	}
	if b.Remaining != -100 {
		t.Errorf("Remaining = %v, want -100", b.Remaining)
	}
	if b.Progress != 1.5 {
		t.Errorf("Progress = %v, want 1.5", b.Progress)
	}

	// The recomputed value is written back in the background.
	select {
	case u := <-store.updates:
		if u.id != budgetID || u.spent != 300 {
			t.Errorf("write-back = %+v, want {%s 300}", u, budgetID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected a background spent write-back")
	}
}

func TestBudgetServiceCreateValidates(t *testing.T) {
	store := newFakeBudgetStore()
	svc := NewBudgetService(store, &fixedTransactionSource{}, zap.NewNop())

	_, err := svc.Create(context.Background(), uuid.New(), budgetRequest(t, `{"name":"x","category":"food","amount":0}`))
	if !errors.Is(err, models.ErrInvalidBudgetAmount) {
		t.Fatalf("err = %v, want ErrInvalidBudgetAmount", err)
	}
	if len(store.rows) != 0 {
		t.Fatal("invalid budget must not reach the store")
	}
}

func TestBudgetServiceCreateSeedsSpent(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()

	store := newFakeBudgetStore()
	source := &fixedTransactionSource{txs: []models.Transaction{
		monthTx(models.TypeExpense, 75, "Food", now),
	}}

	svc := NewBudgetService(store, source, zap.NewNop())
	svc.now = func() time.Time { return now }

	resp, err := svc.Create(context.Background(), userID, budgetRequest(t, `{"name":"Groceries","category":"food","amount":200}`))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if resp.Spent != 75 {
		t.Errorf("Spent = %v, want 75", resp.Spent)
	}
	if resp.Remaining != 125 {
		t.Errorf("Remaining = %v, want 125", resp.Remaining)
	}
}

func TestBudgetServiceGetByIDNotFound(t *testing.T) {
	svc := NewBudgetService(newFakeBudgetStore(), &fixedTransactionSource{}, zap.NewNop())
	if _, err := svc.GetByID(context.Background(), uuid.New(), uuid.New()); !errors.Is(err, ErrBudgetNotFound) {
		t.Fatalf("err = %v, want ErrBudgetNotFound", err)
	}
}
