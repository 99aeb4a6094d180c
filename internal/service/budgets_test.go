package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/kmazur/budgetbook-go/internal/domain"
	"github.com/kmazur/budgetbook-go/internal/infra/observability"
	"github.com/kmazur/budgetbook-go/internal/service"

	"go.uber.org/zap"
)

func newBudgetService(budgets *fakeBudgetStore, txStore *fakeTransactionStore) *service.BudgetService {
	return service.NewBudgetService(budgets, newTransactionService(txStore), observability.NewMetrics(), zap.NewNop())
}

func TestBudgets_ListBootstrapsMissingCategories(t *testing.T) {
	budgets := newFakeBudgetStore()
	svc := newBudgetService(budgets, newFakeTransactionStore())

	statuses, err := svc.ListWithStatus(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(statuses) != len(domain.ExpenseCategories()) {
		t.Fatalf("expected one row per expense category, got %d", len(statuses))
	}
	for _, s := range statuses {
		if !s.Tracked {
			t.Errorf("bootstrapped %s should be tracked", s.Category)
		}
		// No spend history: every default falls back to the fixed limit.
		if s.Limit.Value != domain.Units(500) {
			t.Errorf("bootstrapped %s limit = %v, want 500.00", s.Category, s.Limit.Value)
		}
	}
}

func TestBudgets_BootstrapIsIdempotent(t *testing.T) {
	budgets := newFakeBudgetStore()
	svc := newBudgetService(budgets, newFakeTransactionStore())

	if _, err := svc.ListWithStatus(context.Background(), "u-1"); err != nil {
		t.Fatalf("first list: %v", err)
	}
	first := budgets.upserts

	if _, err := svc.ListWithStatus(context.Background(), "u-1"); err != nil {
		t.Fatalf("second list: %v", err)
	}
	if budgets.upserts != first {
		t.Errorf("second list should not upsert again: %d -> %d", first, budgets.upserts)
	}
}

func TestBudgets_BootstrapUsesSpendHistory(t *testing.T) {
	budgets := newFakeBudgetStore()
	txStore := newFakeTransactionStore()
	svc := newBudgetService(budgets, txStore)

	// 300/month of food spend in each of the last three full months:
	// default limit is 300 * 1.2 = 360.
	now := time.Now()
	for i := 1; i <= 3; i++ {
		monthStart := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, time.UTC)
		if _, err := txStore.CreateTransaction(context.Background(), &domain.Transaction{
			UserID:   "u-1",
			Amount:   domain.Units(300),
			Kind:     domain.KindExpense,
			Category: domain.CategoryFood,
			Date:     monthStart.AddDate(0, 0, 10),
		}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	statuses, err := svc.ListWithStatus(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, s := range statuses {
		if s.Category != domain.CategoryFood {
			continue
		}
		if s.Limit.Value != domain.Units(360) {
			t.Errorf("food limit = %v, want 360.00", s.Limit.Value)
		}
		return
	}
	t.Fatal("no food budget row")
}

func TestBudgets_UpsertAndReset(t *testing.T) {
	budgets := newFakeBudgetStore()
	svc := newBudgetService(budgets, newFakeTransactionStore())

	saved, err := svc.Upsert(context.Background(), "u-1", domain.CategoryFood, &domain.UpsertBudgetRequest{
		Limit: domain.LimitOf(domain.Units(400)),
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if !saved.Limit.Set || saved.Limit.Value != domain.Units(400) {
		t.Errorf("saved limit = %+v, want tracked 400.00", saved.Limit)
	}

	reset, err := svc.Reset(context.Background(), "u-1", domain.CategoryFood)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if reset.Limit.Set {
		t.Error("reset should leave the budget untracked")
	}
	if reset.ID != saved.ID {
		t.Error("reset should keep the same record, not create a new one")
	}
}

func TestBudgets_UpsertRejectsIncomeCategory(t *testing.T) {
	svc := newBudgetService(newFakeBudgetStore(), newFakeTransactionStore())

	_, err := svc.Upsert(context.Background(), "u-1", domain.CategorySalary, &domain.UpsertBudgetRequest{
		Limit: domain.LimitOf(domain.Units(100)),
	})
	if _, ok := err.(*domain.ErrValidation); !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestBudgets_Alerts(t *testing.T) {
	budgets := newFakeBudgetStore()
	txStore := newFakeTransactionStore()
	svc := newBudgetService(budgets, txStore)

	if _, err := svc.Upsert(context.Background(), "u-1", domain.CategoryFood, &domain.UpsertBudgetRequest{
		Limit: domain.LimitOf(domain.Units(400)),
	}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	// 500 spent against a 400 limit this month: error alert at 125%.
	if _, err := txStore.CreateTransaction(context.Background(), &domain.Transaction{
		UserID:   "u-1",
		Amount:   domain.Units(500),
		Kind:     domain.KindExpense,
		Category: domain.CategoryFood,
		Date:     time.Now(),
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	alerts, err := svc.Alerts(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("alerts: %v", err)
	}
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alerts))
	}
	if alerts[0].Severity != "error" {
		t.Errorf("severity = %s, want error", alerts[0].Severity)
	}
	if alerts[0].PercentUsed != 125 {
		t.Errorf("percent used = %v, want 125", alerts[0].PercentUsed)
	}
}
