// Package service — DashboardService serves the derived analytics
// views. It fetches the user's data concurrently, then hands the
// snapshot to the pure analytics functions.
package service

import (
	"context"
	"time"

	"github.com/kmazur/budgetbook-go/internal/analytics"
	"github.com/kmazur/budgetbook-go/internal/domain"
	"github.com/kmazur/budgetbook-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var dashTracer = otel.Tracer("service/dashboard")

// DashboardService computes the analytics views over a point-in-time
// snapshot of the user's data.
type DashboardService struct {
	transactions *TransactionService
	goals        port.GoalStore
	logger       *zap.Logger
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(transactions *TransactionService, goals port.GoalStore, logger *zap.Logger) *DashboardService {
	return &DashboardService{transactions: transactions, goals: goals, logger: logger}
}

// DashboardOverview is the GET /v1/dashboard/overview payload.
type DashboardOverview struct {
	AllTime      analytics.Overview `json:"all_time"`
	CurrentMonth analytics.Overview `json:"current_month"`
	GoalCount    int                `json:"goal_count"`
	TotalSaved   domain.Money       `json:"total_saved"`
}

// ============================================================
// Overview — GET /v1/dashboard/overview
// ============================================================

// Overview fetches transactions and goals concurrently. A goals fetch
// failure degrades to an empty goal summary rather than failing the
// whole view; a transactions failure is fatal since every number on
// the dashboard derives from them.
func (s *DashboardService) Overview(ctx context.Context, userID string) (*DashboardOverview, error) {
	ctx, span := dashTracer.Start(ctx, "DashboardService.Overview")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	var (
		txns  []domain.Transaction
		goals []domain.SavingGoal
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		txns, err = s.transactions.List(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		goals, err = s.goals.ListGoals(gctx, userID)
		if err != nil {
			s.logger.Warn("dashboard: goals fetch failed, degrading",
				zap.String("user_id", userID),
				zap.Error(err),
			)
			goals = nil
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	window := analytics.PeriodCurrentMonth.Resolve(now)
	monthIncome := analytics.Sum(txns, window, analytics.Filter{Kind: domain.KindIncome}).Total
	monthExpense := analytics.Sum(txns, window, analytics.Filter{Kind: domain.KindExpense}).Total

	var totalSaved domain.Money
	for _, goal := range goals {
		totalSaved += goal.SavedAmount
	}

	return &DashboardOverview{
		AllTime: analytics.ComputeOverview(txns),
		CurrentMonth: analytics.Overview{
			Income:  monthIncome,
			Expense: monthExpense,
			Balance: monthIncome - monthExpense,
		},
		GoalCount:  len(goals),
		TotalSaved: totalSaved,
	}, nil
}

// ============================================================
// Breakdown — GET /v1/dashboard/breakdown
// ============================================================

// Breakdown groups the snapshot by category. An empty period filters
// nothing: the breakdown then covers the whole history.
func (s *DashboardService) Breakdown(ctx context.Context, userID string, period analytics.Period) ([]analytics.CategoryTotal, error) {
	ctx, span := dashTracer.Start(ctx, "DashboardService.Breakdown")
	defer span.End()

	txns, err := s.transactions.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	if period != "" {
		window := period.Resolve(time.Now().UTC())
		filtered := txns[:0:0]
		for _, t := range txns {
			if window.Contains(t.Date) {
				filtered = append(filtered, t)
			}
		}
		txns = filtered
	}
	return analytics.ComputeCategoryBreakdown(txns), nil
}

// ============================================================
// Trend — GET /v1/dashboard/trend
// ============================================================

func (s *DashboardService) Trend(ctx context.Context, userID string, monthsBack, monthsForward int) ([]analytics.TrendPoint, error) {
	ctx, span := dashTracer.Start(ctx, "DashboardService.Trend")
	defer span.End()

	txns, err := s.transactions.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return analytics.ComputeTrend(txns, monthsBack, monthsForward, time.Now().UTC()), nil
}

// ============================================================
// Comparison — GET /v1/dashboard/comparison
// ============================================================

func (s *DashboardService) Comparison(ctx context.Context, userID string, periodA, periodB analytics.Period) ([]analytics.ComparisonRow, error) {
	ctx, span := dashTracer.Start(ctx, "DashboardService.Comparison")
	defer span.End()

	if !analytics.ValidPeriod(periodA) {
		return nil, &domain.ErrValidation{Field: "period", Message: "unknown period"}
	}
	if !analytics.ValidPeriod(periodB) {
		return nil, &domain.ErrValidation{Field: "compare_to", Message: "unknown period"}
	}

	txns, err := s.transactions.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return analytics.ComputeComparison(txns, periodA, periodB, time.Now().UTC()), nil
}
