package handler

import (
	"net/http"

	"github.com/kmazur/budgetbook-go/internal/analytics"
	"github.com/kmazur/budgetbook-go/internal/service"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Dashboard & analytics views
// ============================================================

func dashboardOverviewHandler(dashSvc *service.DashboardService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/dashboard/overview")
		defer span.End()

		userID := UserIDFromContext(ctx)
		span.SetAttributes(attribute.String("user.id", userID))

		overview, err := dashSvc.Overview(ctx, userID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, overview)
	}
}

func dashboardBreakdownHandler(dashSvc *service.DashboardService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/dashboard/breakdown")
		defer span.End()

		userID := UserIDFromContext(ctx)

		// Empty period means the whole history.
		period := analytics.Period(r.URL.Query().Get("period"))
		if period != "" && !analytics.ValidPeriod(period) {
			writeError(w, http.StatusBadRequest, "unknown period")
			return
		}

		breakdown, err := dashSvc.Breakdown(ctx, userID, period)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"breakdown": breakdown})
	}
}

func dashboardTrendHandler(dashSvc *service.DashboardService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/dashboard/trend")
		defer span.End()

		userID := UserIDFromContext(ctx)
		monthsBack := parseIntQuery(r, "months_back", 6)
		monthsForward := parseIntQuery(r, "months_forward", 3)

		trend, err := dashSvc.Trend(ctx, userID, monthsBack, monthsForward)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"trend": trend})
	}
}

func dashboardComparisonHandler(dashSvc *service.DashboardService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/dashboard/comparison")
		defer span.End()

		userID := UserIDFromContext(ctx)
		periodA := analytics.Period(r.URL.Query().Get("period"))
		periodB := analytics.Period(r.URL.Query().Get("compare_to"))

		rows, err := dashSvc.Comparison(ctx, userID, periodA, periodB)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"comparison": rows})
	}
}
