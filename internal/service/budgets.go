// Package service — BudgetService handles per-category monthly limits:
// the lazy first-visit bootstrap, upserts, resets and alert evaluation.
package service

import (
	"context"
	"time"

	"github.com/kmazur/budgetbook-go/internal/analytics"
	"github.com/kmazur/budgetbook-go/internal/domain"
	"github.com/kmazur/budgetbook-go/internal/infra/observability"
	"github.com/kmazur/budgetbook-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var budgetTracer = otel.Tracer("service/budgets")

// BudgetService orchestrates budget operations.
type BudgetService struct {
	budgets      port.BudgetStore
	transactions *TransactionService
	metrics      *observability.Metrics
	logger       *zap.Logger
}

// NewBudgetService creates a new budget service.
func NewBudgetService(budgets port.BudgetStore, transactions *TransactionService, metrics *observability.Metrics, logger *zap.Logger) *BudgetService {
	return &BudgetService{budgets: budgets, transactions: transactions, metrics: metrics, logger: logger}
}

// ============================================================
// ListWithStatus — GET /v1/budgets
// ============================================================

// ListWithStatus returns one row per expense category with its derived
// current-month spend. Categories the user has never visited are
// bootstrapped on first read with a history-derived default limit; the
// store upsert resolves on (user, category), so two racing first reads
// converge on one record.
func (s *BudgetService) ListWithStatus(ctx context.Context, userID string) ([]analytics.BudgetStatus, error) {
	ctx, span := budgetTracer.Start(ctx, "BudgetService.ListWithStatus")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	txns, err := s.transactions.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	budgets, err := s.ensureBudgets(ctx, userID, txns)
	if err != nil {
		return nil, err
	}

	return analytics.ComputeBudgetStatus(txns, budgets, time.Now().UTC()), nil
}

// ============================================================
// Upsert — PUT /v1/budgets/{category}
// ============================================================

func (s *BudgetService) Upsert(ctx context.Context, userID string, category domain.Category, req *domain.UpsertBudgetRequest) (*domain.CategoryBudget, error) {
	ctx, span := budgetTracer.Start(ctx, "BudgetService.Upsert")
	defer span.End()

	color := req.Color
	if color == "" {
		color = category.Color()
	}
	budget := &domain.CategoryBudget{
		UserID:   userID,
		Category: category,
		Limit:    req.Limit,
		Color:    color,
	}
	if err := budget.Validate(); err != nil {
		return nil, err
	}

	saved, err := s.budgets.UpsertBudget(ctx, budget)
	if err != nil {
		return nil, err
	}

	s.logger.Info("budget upserted",
		zap.String("user_id", userID),
		zap.String("category", string(category)),
		zap.Bool("tracked", saved.Limit.Set),
	)
	return saved, nil
}

// ============================================================
// Reset — POST /v1/budgets/{category}/reset
// ============================================================

// Reset disables tracking for the category. The record survives with
// the 0 sentinel so the category keeps its row (and color) in listings.
func (s *BudgetService) Reset(ctx context.Context, userID string, category domain.Category) (*domain.CategoryBudget, error) {
	ctx, span := budgetTracer.Start(ctx, "BudgetService.Reset")
	defer span.End()

	budget := &domain.CategoryBudget{
		UserID:   userID,
		Category: category,
		Limit:    domain.NoLimit(),
		Color:    category.Color(),
	}
	if err := budget.Validate(); err != nil {
		return nil, err
	}

	saved, err := s.budgets.UpsertBudget(ctx, budget)
	if err != nil {
		return nil, err
	}

	s.logger.Info("budget reset",
		zap.String("user_id", userID),
		zap.String("category", string(category)),
	)
	return saved, nil
}

// ============================================================
// Alerts — GET /v1/dashboard/alerts
// ============================================================

func (s *BudgetService) Alerts(ctx context.Context, userID string) ([]analytics.Alert, error) {
	ctx, span := budgetTracer.Start(ctx, "BudgetService.Alerts")
	defer span.End()

	txns, err := s.transactions.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	budgets, err := s.budgets.ListBudgets(ctx, userID)
	if err != nil {
		return nil, err
	}

	alerts := analytics.ComputeAlerts(txns, budgets, time.Now().UTC())
	for _, a := range alerts {
		s.metrics.IncrBudgetAlert(string(a.Severity))
	}
	return alerts, nil
}

// ============================================================
// Internal helpers
// ============================================================

// ensureBudgets lists the stored budgets and creates missing expense
// category records with a default limit derived from spend history.
func (s *BudgetService) ensureBudgets(ctx context.Context, userID string, txns []domain.Transaction) ([]domain.CategoryBudget, error) {
	budgets, err := s.budgets.ListBudgets(ctx, userID)
	if err != nil {
		return nil, err
	}

	have := make(map[domain.Category]bool, len(budgets))
	for _, b := range budgets {
		have[b.Category] = true
	}

	now := time.Now().UTC()
	for _, category := range domain.ExpenseCategories() {
		if have[category] {
			continue
		}
		limit := analytics.DefaultLimit(txns, category, now)
		created, err := s.budgets.UpsertBudget(ctx, &domain.CategoryBudget{
			UserID:   userID,
			Category: category,
			Limit:    domain.LimitOf(limit),
			Color:    category.Color(),
		})
		if err != nil {
			return nil, err
		}
		s.logger.Info("budget bootstrapped",
			zap.String("user_id", userID),
			zap.String("category", string(category)),
			zap.String("limit", limit.String()),
		)
		budgets = append(budgets, *created)
	}
	return budgets, nil
}
