package handler

import (
	"encoding/json"
	"net/http"

	"github.com/kmazur/budgetbook-go/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Dev Tools (testing helpers)
// ============================================================

func devGenerateTransactionsHandler(txSvc *service.TransactionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/dev/generate-transactions")
		defer span.End()

		userID := UserIDFromContext(ctx)

		var req service.DevGenerateTransactionsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		resp, err := txSvc.DevGenerateTransactions(ctx, userID, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
