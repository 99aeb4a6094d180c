package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kmazur/budgetbook-go/internal/analytics"
	"github.com/kmazur/budgetbook-go/internal/domain"
	"github.com/kmazur/budgetbook-go/internal/service"

	"go.uber.org/zap"
)

func newDashboardService(txStore *fakeTransactionStore, goals *fakeGoalStore) *service.DashboardService {
	return service.NewDashboardService(newTransactionService(txStore), goals, zap.NewNop())
}

func seedTx(t *testing.T, store *fakeTransactionStore, kind domain.Kind, category domain.Category, units int64, date time.Time) {
	t.Helper()
	if _, err := store.CreateTransaction(context.Background(), &domain.Transaction{
		UserID:   "u-1",
		Amount:   domain.Units(units),
		Kind:     kind,
		Category: category,
		Date:     date,
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func TestDashboard_Overview(t *testing.T) {
	txStore := newFakeTransactionStore()
	goals := newFakeGoalStore()
	svc := newDashboardService(txStore, goals)

	now := time.Now()
	seedTx(t, txStore, domain.KindIncome, domain.CategorySalary, 3000, now)
	seedTx(t, txStore, domain.KindExpense, domain.CategoryFood, 400, now)
	seedTx(t, txStore, domain.KindExpense, domain.CategoryBills, 100, now.AddDate(0, -2, 0))

	if _, err := goals.CreateGoal(context.Background(), &domain.SavingGoal{
		UserID: "u-1", Name: "vacation", TargetAmount: domain.Units(2000), SavedAmount: domain.Units(750),
	}); err != nil {
		t.Fatalf("seed goal: %v", err)
	}

	overview, err := svc.Overview(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("overview: %v", err)
	}

	if overview.AllTime.Balance != domain.Units(2500) {
		t.Errorf("all-time balance = %v, want 2500.00", overview.AllTime.Balance)
	}
	if overview.CurrentMonth.Expense != domain.Units(400) {
		t.Errorf("current month expense = %v, want 400.00", overview.CurrentMonth.Expense)
	}
	if overview.GoalCount != 1 || overview.TotalSaved != domain.Units(750) {
		t.Errorf("goal summary = %d/%v, want 1/750.00", overview.GoalCount, overview.TotalSaved)
	}
}

func TestDashboard_OverviewEmpty(t *testing.T) {
	svc := newDashboardService(newFakeTransactionStore(), newFakeGoalStore())

	overview, err := svc.Overview(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if overview.AllTime.Income != 0 || overview.AllTime.Expense != 0 || overview.AllTime.Balance != 0 {
		t.Errorf("empty snapshot should yield all zeros, got %+v", overview.AllTime)
	}
}

func TestDashboard_OverviewDegradesOnGoalsFailure(t *testing.T) {
	txStore := newFakeTransactionStore()
	goals := newFakeGoalStore()
	goals.listErr = errors.New("store down")
	svc := newDashboardService(txStore, goals)

	seedTx(t, txStore, domain.KindIncome, domain.CategorySalary, 100, time.Now())

	overview, err := svc.Overview(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("goals failure should degrade, not fail: %v", err)
	}
	if overview.GoalCount != 0 {
		t.Errorf("degraded goal count = %d, want 0", overview.GoalCount)
	}
	if overview.AllTime.Income != domain.Units(100) {
		t.Errorf("transactions should still be served, got %+v", overview.AllTime)
	}
}

func TestDashboard_OverviewFailsWithoutTransactions(t *testing.T) {
	txStore := newFakeTransactionStore()
	txStore.listErr = errors.New("store down")
	svc := newDashboardService(txStore, newFakeGoalStore())

	if _, err := svc.Overview(context.Background(), "u-1"); err == nil {
		t.Fatal("transactions failure should fail the view")
	}
}

func TestDashboard_BreakdownWithPeriod(t *testing.T) {
	txStore := newFakeTransactionStore()
	svc := newDashboardService(txStore, newFakeGoalStore())

	now := time.Now()
	seedTx(t, txStore, domain.KindExpense, domain.CategoryFood, 100, now)
	seedTx(t, txStore, domain.KindExpense, domain.CategoryBills, 900, now.AddDate(0, -1, 0))

	rows, err := svc.Breakdown(context.Background(), "u-1", analytics.PeriodCurrentMonth)
	if err != nil {
		t.Fatalf("breakdown: %v", err)
	}
	if len(rows) != 1 || rows[0].Category != domain.CategoryFood {
		t.Fatalf("expected only current-month food row, got %+v", rows)
	}

	all, err := svc.Breakdown(context.Background(), "u-1", "")
	if err != nil {
		t.Fatalf("breakdown all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 all-time rows, got %d", len(all))
	}
}

func TestDashboard_BreakdownFirstOfMonthWestOfUTC(t *testing.T) {
	restore := time.Local
	time.Local = time.FixedZone("UTC-5", -5*60*60)
	defer func() { time.Local = restore }()

	txStore := newFakeTransactionStore()
	svc := newDashboardService(txStore, newFakeGoalStore())

	// Date-only transactions parse to UTC midnight, so the month window
	// has to be anchored in UTC too. A transaction dated the first of
	// the month must land in that month even when the server clock runs
	// west of UTC.
	utcNow := time.Now().UTC()
	first := time.Date(utcNow.Year(), utcNow.Month(), 1, 0, 0, 0, 0, time.UTC)
	seedTx(t, txStore, domain.KindExpense, domain.CategoryFood, 100, first)

	rows, err := svc.Breakdown(context.Background(), "u-1", analytics.PeriodCurrentMonth)
	if err != nil {
		t.Fatalf("breakdown: %v", err)
	}
	if len(rows) != 1 || rows[0].Category != domain.CategoryFood {
		t.Fatalf("first-of-month transaction missing from current month, got %+v", rows)
	}
}

func TestDashboard_ComparisonValidatesPeriods(t *testing.T) {
	svc := newDashboardService(newFakeTransactionStore(), newFakeGoalStore())

	_, err := svc.Comparison(context.Background(), "u-1", "last_week", analytics.PeriodCurrentMonth)
	if _, ok := err.(*domain.ErrValidation); !ok {
		t.Fatalf("expected validation error, got %v", err)
	}

	rows, err := svc.Comparison(context.Background(), "u-1", analytics.PeriodCurrentMonth, analytics.PeriodPreviousMonth)
	if err != nil {
		t.Fatalf("comparison: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 metric rows, got %d", len(rows))
	}
}

func TestDashboard_Trend(t *testing.T) {
	txStore := newFakeTransactionStore()
	svc := newDashboardService(txStore, newFakeGoalStore())

	points, err := svc.Trend(context.Background(), "u-1", 4, 2)
	if err != nil {
		t.Fatalf("trend: %v", err)
	}
	if len(points) != 6 {
		t.Fatalf("expected 6 points, got %d", len(points))
	}
	if points[3].Projected || !points[4].Projected {
		t.Error("projection flag should flip after the current month")
	}
}
