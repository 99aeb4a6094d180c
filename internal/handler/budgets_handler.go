package handler

import (
	"encoding/json"
	"net/http"

	"github.com/kmazur/budgetbook-go/internal/domain"
	"github.com/kmazur/budgetbook-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Category budgets
// ============================================================

func listBudgetsHandler(budgetSvc *service.BudgetService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/budgets")
		defer span.End()

		userID := UserIDFromContext(ctx)
		span.SetAttributes(attribute.String("user.id", userID))

		statuses, err := budgetSvc.ListWithStatus(ctx, userID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"budgets": statuses})
	}
}

func upsertBudgetHandler(budgetSvc *service.BudgetService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/budgets/{category}")
		defer span.End()

		userID := UserIDFromContext(ctx)
		category := domain.Category(chi.URLParam(r, "category"))

		var req domain.UpsertBudgetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		budget, err := budgetSvc.Upsert(ctx, userID, category, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, budget)
	}
}

func resetBudgetHandler(budgetSvc *service.BudgetService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/budgets/{category}/reset")
		defer span.End()

		userID := UserIDFromContext(ctx)
		category := domain.Category(chi.URLParam(r, "category"))

		budget, err := budgetSvc.Reset(ctx, userID, category)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, budget)
	}
}

func budgetStatusHandler(budgetSvc *service.BudgetService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/dashboard/budget-status")
		defer span.End()

		userID := UserIDFromContext(ctx)
		statuses, err := budgetSvc.ListWithStatus(ctx, userID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"statuses": statuses})
	}
}

func budgetAlertsHandler(budgetSvc *service.BudgetService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/dashboard/alerts")
		defer span.End()

		userID := UserIDFromContext(ctx)
		alerts, err := budgetSvc.Alerts(ctx, userID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"alerts": alerts})
	}
}
