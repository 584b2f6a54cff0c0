package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"sort"
	"sync"
	"testing"

	"pennywise/internal/dto"
	"pennywise/internal/models"
	"pennywise/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type fakeTransactionStore struct {
	mu   sync.Mutex
	rows map[uuid.UUID]models.Transaction

	failCreate bool
	failUpdate bool
	failDelete bool
}

func newFakeTransactionStore() *fakeTransactionStore {
	return &fakeTransactionStore{rows: make(map[uuid.UUID]models.Transaction)}
}

func (f *fakeTransactionStore) Create(_ context.Context, tx *models.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate {
		return errors.New("store unavailable")
	}
	f.rows[tx.ID] = *tx
	return nil
}

func (f *fakeTransactionStore) Update(_ context.Context, tx *models.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpdate {
		return errors.New("store unavailable")
	}
	f.rows[tx.ID] = *tx
	return nil
}

func (f *fakeTransactionStore) UpdateReceiptURL(_ context.Context, _, id uuid.UUID, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	tx, ok := f.rows[id]
	if !ok {
		return pgx.ErrNoRows
	}
	tx.ReceiptURL = url
	f.rows[id] = tx
	return nil
}

func (f *fakeTransactionStore) Delete(_ context.Context, _, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDelete {
		return errors.New("store unavailable")
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeTransactionStore) GetByID(_ context.Context, _, id uuid.UUID) (*models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tx, ok := f.rows[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &tx, nil
}

func (f *fakeTransactionStore) ListByUser(_ context.Context, userID uuid.UUID, filter repository.TransactionFilter) ([]models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Transaction
	for _, tx := range f.rows {
		if tx.UserID != userID {
			continue
		}
		if filter.Category != "" && tx.Category != filter.Category {
			continue
		}
		if filter.Type != "" && tx.Type != filter.Type {
			continue
		}
		out = append(out, tx)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func txRequest(t *testing.T, body string) *dto.TransactionRequest {
	t.Helper()
	var req dto.TransactionRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal request: %v", err)
	}
	return &req
}

func newTestTransactionService(store *fakeTransactionStore) (*TransactionService, *recordingReceiptStore) {
	receipts := &recordingReceiptStore{}
	return NewTransactionService(store, receipts, zap.NewNop()), receipts
}

type recordingReceiptStore struct {
	mu      sync.Mutex
	uploads []string
	deleted []string
}

func (r *recordingReceiptStore) Upload(_ context.Context, userID uuid.UUID, filename string, _ io.Reader) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	url := "/uploads/" + filename
	r.uploads = append(r.uploads, url)
	return url, nil
}

func (r *recordingReceiptStore) Delete(_ context.Context, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted = append(r.deleted, url)
	return nil
}

func TestTransactionServiceCreateUpdatesSnapshot(t *testing.T) {
	store := newFakeTransactionStore()
	svc, _ := newTestTransactionService(store)
	userID := uuid.New()
	ctx := context.Background()

	// Prime the snapshot so local applies have something to splice into.
	if _, err := svc.List(ctx, userID, repository.TransactionFilter{}); err != nil {
		t.Fatalf("List: %v", err)
	}

	req := txRequest(t, `{"type":"expense","amount":42.5,"category":"food","name":"lunch","date":"2026-03-10"}`)
	tx, err := svc.Create(ctx, userID, req)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	snap, err := svc.Snapshot(ctx, userID)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snap) != 1 || snap[0].ID != tx.ID {
		t.Fatalf("snapshot = %+v, want the created transaction", snap)
	}
	if _, ok := store.rows[tx.ID]; !ok {
		t.Fatal("transaction was not persisted")
	}
}

func TestTransactionServiceCreateRollsBackOnStoreFailure(t *testing.T) {
	store := newFakeTransactionStore()
	svc, _ := newTestTransactionService(store)
	userID := uuid.New()
	ctx := context.Background()

	if _, err := svc.List(ctx, userID, repository.TransactionFilter{}); err != nil {
		t.Fatalf("List: %v", err)
	}
	store.failCreate = true

	req := txRequest(t, `{"type":"income","amount":1000,"category":"salary","date":"2026-03-01"}`)
	if _, err := svc.Create(ctx, userID, req); err == nil {
		t.Fatal("Create should surface the store error")
	}

	snap, _ := svc.Snapshot(ctx, userID)
	if len(snap) != 0 {
		t.Fatalf("optimistic entry must be rolled back, snapshot = %+v", snap)
	}
}

func TestTransactionServiceCreateRejectsInvalid(t *testing.T) {
	store := newFakeTransactionStore()
	svc, _ := newTestTransactionService(store)

	req := txRequest(t, `{"type":"expense","amount":"not a number","category":"food"}`)
	if _, err := svc.Create(context.Background(), uuid.New(), req); !errors.Is(err, models.ErrInvalidAmount) {
		t.Fatalf("err = %v, want ErrInvalidAmount", err)
	}
	if len(store.rows) != 0 {
		t.Fatal("invalid transaction must not reach the store")
	}
}

func TestTransactionServiceUpdateLastWriteWins(t *testing.T) {
	store := newFakeTransactionStore()
	svc, _ := newTestTransactionService(store)
	userID := uuid.New()
	ctx := context.Background()

	if _, err := svc.List(ctx, userID, repository.TransactionFilter{}); err != nil {
		t.Fatalf("List: %v", err)
	}
	created, err := svc.Create(ctx, userID, txRequest(t, `{"type":"expense","amount":10,"category":"food","date":"2026-03-10"}`))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.Update(ctx, userID, created.ID, txRequest(t, `{"type":"expense","amount":25,"category":"transport","date":"2026-03-11"}`))
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Amount != 25 || updated.Category != "transport" {
		t.Fatalf("updated = %+v", updated)
	}

	snap, _ := svc.Snapshot(ctx, userID)
	if len(snap) != 1 || snap[0].Amount != 25 {
		t.Fatalf("snapshot should hold the latest write, got %+v", snap)
	}
}

func TestTransactionServiceUpdateRestoresOnFailure(t *testing.T) {
	store := newFakeTransactionStore()
	svc, _ := newTestTransactionService(store)
	userID := uuid.New()
	ctx := context.Background()

	if _, err := svc.List(ctx, userID, repository.TransactionFilter{}); err != nil {
		t.Fatalf("List: %v", err)
	}
	created, err := svc.Create(ctx, userID, txRequest(t, `{"type":"expense","amount":10,"category":"food","date":"2026-03-10"}`))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	store.failUpdate = true
	if _, err := svc.Update(ctx, userID, created.ID, txRequest(t, `{"type":"expense","amount":99,"category":"food","date":"2026-03-10"}`)); err == nil {
		t.Fatal("Update should surface the store error")
	}

	snap, _ := svc.Snapshot(ctx, userID)
	if len(snap) != 1 || snap[0].Amount != 10 {
		t.Fatalf("snapshot should hold the confirmed value, got %+v", snap)
	}
}

func TestTransactionServiceDeleteRemovesReceiptBlob(t *testing.T) {
	store := newFakeTransactionStore()
	svc, receipts := newTestTransactionService(store)
	userID := uuid.New()
	ctx := context.Background()

	created, err := svc.Create(ctx, userID, txRequest(t, `{"type":"expense","amount":10,"category":"food","date":"2026-03-10"}`))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.AttachReceipt(ctx, userID, created.ID, "receipt.jpg", bytes.NewReader([]byte("img"))); err != nil {
		t.Fatalf("AttachReceipt: %v", err)
	}

	if err := svc.Delete(ctx, userID, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(receipts.deleted) != 1 {
		t.Fatalf("deleted blobs = %v, want one entry", receipts.deleted)
	}
	if _, ok := store.rows[created.ID]; ok {
		t.Fatal("row should be gone")
	}
}

func TestTransactionServiceSnapshotIsACopy(t *testing.T) {
	store := newFakeTransactionStore()
	svc, _ := newTestTransactionService(store)
	userID := uuid.New()
	ctx := context.Background()

	if _, err := svc.Create(ctx, userID, txRequest(t, `{"type":"income","amount":100,"category":"salary","date":"2026-03-01"}`)); err != nil {
		t.Fatalf("Create: %v", err)
	}

	snap, err := svc.Snapshot(ctx, userID)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	snap[0].Amount = -1

	again, _ := svc.Snapshot(ctx, userID)
	if again[0].Amount == -1 {
		t.Fatal("snapshot must not share backing storage with callers")
	}
}
