package handler

import (
	"encoding/json"
	"net/http"

	"github.com/kmazur/budgetbook-go/internal/domain"
	"github.com/kmazur/budgetbook-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ============================================================
// Saving goals
// ============================================================

func listGoalsHandler(goalSvc *service.GoalService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/goals")
		defer span.End()

		userID := UserIDFromContext(ctx)
		goals, err := goalSvc.List(ctx, userID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"goals": goals})
	}
}

func getGoalHandler(goalSvc *service.GoalService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/goals/{goalId}")
		defer span.End()

		userID := UserIDFromContext(ctx)
		goalID := chi.URLParam(r, "goalId")

		goal, err := goalSvc.Get(ctx, userID, goalID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, goal)
	}
}

func createGoalHandler(goalSvc *service.GoalService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/goals")
		defer span.End()

		userID := UserIDFromContext(ctx)

		var req domain.CreateGoalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		goal, err := goalSvc.Create(ctx, userID, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, goal)
	}
}

func updateGoalHandler(goalSvc *service.GoalService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/goals/{goalId}")
		defer span.End()

		userID := UserIDFromContext(ctx)
		goalID := chi.URLParam(r, "goalId")

		var req domain.UpdateGoalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		goal, err := goalSvc.Update(ctx, userID, goalID, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, goal)
	}
}

func deleteGoalHandler(goalSvc *service.GoalService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/goals/{goalId}")
		defer span.End()

		userID := UserIDFromContext(ctx)
		goalID := chi.URLParam(r, "goalId")

		if err := goalSvc.Delete(ctx, userID, goalID); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
