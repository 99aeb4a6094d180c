package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/kmazur/budgetbook-go/internal/infra/observability"
	"github.com/kmazur/budgetbook-go/internal/infra/resilience"
	"github.com/kmazur/budgetbook-go/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// NewRouter creates the HTTP router with all routes and middleware.
func NewRouter(
	authSvc *service.AuthService,
	txSvc *service.TransactionService,
	budgetSvc *service.BudgetService,
	goalSvc *service.GoalService,
	dashSvc *service.DashboardService,
	metrics *observability.Metrics,
	bulkhead *resilience.Bulkhead,
	logger *zap.Logger,
	devTools bool,
) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(metricsMiddleware(metrics))
	r.Use(bulkheadMiddleware(bulkhead))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler())
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {

		// =============================================
		// 1. Authentication
		// POST /v1/auth/{register,login,refresh}
		// =============================================
		r.Route("/auth", func(r chi.Router) {
			// Public routes
			r.Post("/register", authRegisterHandler(authSvc, logger))
			r.Post("/login", authLoginHandler(authSvc, logger))
			r.Post("/refresh", authRefreshHandler(authSvc, logger))

			// Protected routes
			r.Group(func(r chi.Router) {
				r.Use(JWTAuthMiddleware(authSvc, logger))
				r.Post("/logout", authLogoutHandler(authSvc, logger))
				r.Get("/me", authMeHandler(authSvc, logger))
			})
		})

		// Everything below requires a valid access token.
		r.Group(func(r chi.Router) {
			r.Use(JWTAuthMiddleware(authSvc, logger))

			// =============================================
			// 2. Transactions
			// =============================================
			r.Get("/transactions", listTransactionsHandler(txSvc, logger))
			r.Post("/transactions", createTransactionHandler(txSvc, logger))
			r.Get("/transactions/{transactionId}", getTransactionHandler(txSvc, logger))
			r.Put("/transactions/{transactionId}", updateTransactionHandler(txSvc, logger))
			r.Delete("/transactions/{transactionId}", deleteTransactionHandler(txSvc, logger))

			// =============================================
			// 3. Category budgets
			// =============================================
			r.Get("/budgets", listBudgetsHandler(budgetSvc, logger))
			r.Put("/budgets/{category}", upsertBudgetHandler(budgetSvc, logger))
			r.Post("/budgets/{category}/reset", resetBudgetHandler(budgetSvc, logger))

			// =============================================
			// 4. Saving goals
			// =============================================
			r.Get("/goals", listGoalsHandler(goalSvc, logger))
			r.Post("/goals", createGoalHandler(goalSvc, logger))
			r.Get("/goals/{goalId}", getGoalHandler(goalSvc, logger))
			r.Put("/goals/{goalId}", updateGoalHandler(goalSvc, logger))
			r.Delete("/goals/{goalId}", deleteGoalHandler(goalSvc, logger))

			// =============================================
			// 5. Dashboard & analytics
			// =============================================
			r.Get("/dashboard/overview", dashboardOverviewHandler(dashSvc, logger))
			r.Get("/dashboard/breakdown", dashboardBreakdownHandler(dashSvc, logger))
			r.Get("/dashboard/budget-status", budgetStatusHandler(budgetSvc, logger))
			r.Get("/dashboard/alerts", budgetAlertsHandler(budgetSvc, logger))
			r.Get("/dashboard/trend", dashboardTrendHandler(dashSvc, logger))
			r.Get("/dashboard/comparison", dashboardComparisonHandler(dashSvc, logger))

			// =============================================
			// 6. App metrics
			// =============================================
			r.Get("/metrics/app", appMetricsHandler(metrics, logger))

			// =============================================
			// Dev Tools (testing helpers)
			// =============================================
			if devTools {
				r.Post("/dev/generate-transactions", devGenerateTransactionsHandler(txSvc, logger))
			}
		})
	})

	return r
}

// ============================================================
// Operational — health, readiness, metrics snapshot
// ============================================================

func healthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":     "healthy",
			"checked_at": time.Now().Format(time.RFC3339),
		})
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
}

func appMetricsHandler(metrics *observability.Metrics, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot := metrics.GetAppSnapshot()
		writeJSON(w, http.StatusOK, snapshot)
	}
}

// metricsMiddleware records request counts by status class and the
// request duration per path pattern.
func metricsMiddleware(metrics *observability.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			metrics.IncrRequest(strconv.Itoa(status/100) + "xx")

			pattern := chi.RouteContext(r.Context()).RoutePattern()
			if pattern == "" {
				pattern = r.URL.Path
			}
			metrics.RecordRequestDuration(r.Method+" "+pattern, time.Since(start))
		})
	}
}

// bulkheadMiddleware sheds load once the concurrency cap is reached
// instead of letting requests pile up behind the store.
func bulkheadMiddleware(bh *resilience.Bulkhead) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if bh != nil {
				if !bh.TryAcquire() {
					writeError(w, http.StatusServiceUnavailable, "server is at capacity, try again shortly")
					return
				}
				defer bh.Release()
			}
			next.ServeHTTP(w, r)
		})
	}
}
