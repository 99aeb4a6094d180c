package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/kmazur/budgetbook-go/internal/domain"
	"github.com/kmazur/budgetbook-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Transactions
// ============================================================

func listTransactionsHandler(txSvc *service.TransactionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/transactions")
		defer span.End()

		userID := UserIDFromContext(ctx)
		span.SetAttributes(attribute.String("user.id", userID))

		transactions, err := txSvc.List(ctx, userID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		// Filter by kind if provided — e.g. ?kind=expense
		if kindFilter := r.URL.Query().Get("kind"); kindFilter != "" {
			filtered := make([]domain.Transaction, 0, len(transactions))
			for _, tx := range transactions {
				if string(tx.Kind) == kindFilter {
					filtered = append(filtered, tx)
				}
			}
			transactions = filtered
		}

		// Filter by category if provided — e.g. ?category=food,transport
		if catFilter := r.URL.Query().Get("category"); catFilter != "" {
			allowedCats := make(map[string]bool)
			for _, c := range strings.Split(catFilter, ",") {
				c = strings.TrimSpace(c)
				if c != "" {
					allowedCats[c] = true
				}
			}
			if len(allowedCats) > 0 {
				filtered := make([]domain.Transaction, 0, len(transactions))
				for _, tx := range transactions {
					if allowedCats[string(tx.Category)] {
						filtered = append(filtered, tx)
					}
				}
				transactions = filtered
			}
		}

		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 && limit < len(transactions) {
				transactions = transactions[:limit]
			}
		}

		writeJSON(w, http.StatusOK, map[string]any{"transactions": transactions})
	}
}

func getTransactionHandler(txSvc *service.TransactionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/transactions/{transactionId}")
		defer span.End()

		userID := UserIDFromContext(ctx)
		txID := chi.URLParam(r, "transactionId")

		tx, err := txSvc.Get(ctx, userID, txID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, tx)
	}
}

func createTransactionHandler(txSvc *service.TransactionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/transactions")
		defer span.End()

		userID := UserIDFromContext(ctx)
		span.SetAttributes(attribute.String("user.id", userID))

		var req domain.CreateTransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		tx, err := txSvc.Create(ctx, userID, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, tx)
	}
}

func updateTransactionHandler(txSvc *service.TransactionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/transactions/{transactionId}")
		defer span.End()

		userID := UserIDFromContext(ctx)
		txID := chi.URLParam(r, "transactionId")

		var req domain.UpdateTransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		tx, err := txSvc.Update(ctx, userID, txID, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, tx)
	}
}

func deleteTransactionHandler(txSvc *service.TransactionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/transactions/{transactionId}")
		defer span.End()

		userID := UserIDFromContext(ctx)
		txID := chi.URLParam(r, "transactionId")

		if err := txSvc.Delete(ctx, userID, txID); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
