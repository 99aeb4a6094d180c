package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/kmazur/budgetbook-go/internal/domain"
	"github.com/kmazur/budgetbook-go/internal/infra/cache"
	"github.com/kmazur/budgetbook-go/internal/infra/observability"
	"github.com/kmazur/budgetbook-go/internal/service"

	"go.uber.org/zap"
)

func newTransactionService(store *fakeTransactionStore) *service.TransactionService {
	return service.NewTransactionService(store, cache.New[[]domain.Transaction](5*time.Minute), observability.NewMetrics(), zap.NewNop())
}

func TestTransactions_CreateAndList(t *testing.T) {
	store := newFakeTransactionStore()
	svc := newTransactionService(store)

	created, err := svc.Create(context.Background(), "u-1", &domain.CreateTransactionRequest{
		Amount:      domain.Units(50),
		Kind:        domain.KindExpense,
		Category:    domain.CategoryFood,
		Date:        "2024-03-10",
		Description: "groceries",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected an assigned id")
	}

	txns, err := svc.List(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(txns) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txns))
	}
}

func TestTransactions_CreateDefaultsDateToNow(t *testing.T) {
	svc := newTransactionService(newFakeTransactionStore())

	created, err := svc.Create(context.Background(), "u-1", &domain.CreateTransactionRequest{
		Amount:   domain.Units(100),
		Kind:     domain.KindIncome,
		Category: domain.CategorySalary,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if time.Since(created.Date) > time.Minute {
		t.Errorf("omitted date should default to now, got %v", created.Date)
	}
}

func TestTransactions_CreateRejectsPartitionMismatch(t *testing.T) {
	svc := newTransactionService(newFakeTransactionStore())

	_, err := svc.Create(context.Background(), "u-1", &domain.CreateTransactionRequest{
		Amount:   domain.Units(50),
		Kind:     domain.KindIncome,
		Category: domain.CategoryFood,
	})
	if _, ok := err.(*domain.ErrValidation); !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestTransactions_ListUsesCache(t *testing.T) {
	store := newFakeTransactionStore()
	svc := newTransactionService(store)

	if _, err := svc.List(context.Background(), "u-1"); err != nil {
		t.Fatalf("list: %v", err)
	}
	if _, err := svc.List(context.Background(), "u-1"); err != nil {
		t.Fatalf("list: %v", err)
	}
	if store.lists != 1 {
		t.Errorf("expected 1 store read, got %d", store.lists)
	}
}

func TestTransactions_WriteInvalidatesCache(t *testing.T) {
	store := newFakeTransactionStore()
	svc := newTransactionService(store)

	if _, err := svc.List(context.Background(), "u-1"); err != nil {
		t.Fatalf("list: %v", err)
	}
	if _, err := svc.Create(context.Background(), "u-1", &domain.CreateTransactionRequest{
		Amount:   domain.Units(10),
		Kind:     domain.KindExpense,
		Category: domain.CategoryFood,
		Date:     "2024-03-10",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	txns, err := svc.List(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(txns) != 1 {
		t.Fatalf("stale cache after write: got %d transactions", len(txns))
	}
}

func TestTransactions_UpdateMergesAndRevalidates(t *testing.T) {
	store := newFakeTransactionStore()
	svc := newTransactionService(store)

	created, err := svc.Create(context.Background(), "u-1", &domain.CreateTransactionRequest{
		Amount:   domain.Units(50),
		Kind:     domain.KindExpense,
		Category: domain.CategoryFood,
		Date:     "2024-03-10",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	newAmount := domain.Units(75)
	updated, err := svc.Update(context.Background(), "u-1", created.ID, &domain.UpdateTransactionRequest{
		Amount: &newAmount,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Amount != newAmount || updated.Category != domain.CategoryFood {
		t.Errorf("partial update should keep untouched fields, got %+v", updated)
	}

	// Flipping kind without a matching category must fail on the merged
	// record.
	income := domain.KindIncome
	_, err = svc.Update(context.Background(), "u-1", created.ID, &domain.UpdateTransactionRequest{
		Kind: &income,
	})
	if _, ok := err.(*domain.ErrValidation); !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestTransactions_UpdateUnknownID(t *testing.T) {
	svc := newTransactionService(newFakeTransactionStore())

	amount := domain.Units(10)
	_, err := svc.Update(context.Background(), "u-1", "missing", &domain.UpdateTransactionRequest{Amount: &amount})
	if _, ok := err.(*domain.ErrNotFound); !ok {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestTransactions_DeleteOtherUsers(t *testing.T) {
	store := newFakeTransactionStore()
	svc := newTransactionService(store)

	created, err := svc.Create(context.Background(), "u-1", &domain.CreateTransactionRequest{
		Amount:   domain.Units(10),
		Kind:     domain.KindExpense,
		Category: domain.CategoryFood,
		Date:     "2024-03-10",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Ownership check: another user cannot delete the record.
	if err := svc.Delete(context.Background(), "u-2", created.ID); err == nil {
		t.Fatal("expected not found for foreign user")
	}
	if err := svc.Delete(context.Background(), "u-1", created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestTransactions_DevGenerate(t *testing.T) {
	store := newFakeTransactionStore()
	svc := newTransactionService(store)

	resp, err := svc.DevGenerateTransactions(context.Background(), "u-1", &service.DevGenerateTransactionsRequest{
		Count:  20,
		Months: 3,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if resp.Generated != 20 {
		t.Errorf("expected 20 generated, got %d", resp.Generated)
	}

	txns, err := svc.List(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(txns) != 20 {
		t.Fatalf("expected 20 stored transactions, got %d", len(txns))
	}
	for _, tx := range txns {
		if err := tx.Validate(); err != nil {
			t.Errorf("generated transaction invalid: %v", err)
		}
	}
}

func TestTransactions_DevGenerateRejectsBadCount(t *testing.T) {
	svc := newTransactionService(newFakeTransactionStore())

	if _, err := svc.DevGenerateTransactions(context.Background(), "u-1", &service.DevGenerateTransactionsRequest{Count: 0}); err == nil {
		t.Fatal("expected validation error for count 0")
	}
	if _, err := svc.DevGenerateTransactions(context.Background(), "u-1", &service.DevGenerateTransactionsRequest{Count: 101}); err == nil {
		t.Fatal("expected validation error for count > 100")
	}
}
