// Package service — TransactionService handles the income/expense
// ledger: CRUD plus the cached snapshot read used by the analytics
// endpoints.
package service

import (
	"context"
	"time"

	"github.com/kmazur/budgetbook-go/internal/domain"
	"github.com/kmazur/budgetbook-go/internal/infra/observability"
	"github.com/kmazur/budgetbook-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var txTracer = otel.Tracer("service/transactions")

// TransactionService orchestrates transaction operations.
type TransactionService struct {
	store   port.TransactionStore
	cache   port.Cache[[]domain.Transaction]
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(store port.TransactionStore, cache port.Cache[[]domain.Transaction], metrics *observability.Metrics, logger *zap.Logger) *TransactionService {
	return &TransactionService{store: store, cache: cache, metrics: metrics, logger: logger}
}

// ============================================================
// List — GET /v1/transactions
// ============================================================

// List returns the user's full transaction snapshot, newest first. The
// snapshot is cached per user; every write invalidates it.
func (s *TransactionService) List(ctx context.Context, userID string) ([]domain.Transaction, error) {
	ctx, span := txTracer.Start(ctx, "TransactionService.List")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	if cached, ok := s.cache.Get(userID); ok {
		s.metrics.IncrCacheHit("transactions")
		return cached, nil
	}
	s.metrics.IncrCacheMiss("transactions")

	txns, err := s.store.ListTransactions(ctx, userID)
	if err != nil {
		s.metrics.IncrExternalError("store")
		return nil, err
	}

	s.cache.Set(userID, txns)
	return txns, nil
}

// ============================================================
// Get — GET /v1/transactions/{id}
// ============================================================

func (s *TransactionService) Get(ctx context.Context, userID, txID string) (*domain.Transaction, error) {
	ctx, span := txTracer.Start(ctx, "TransactionService.Get")
	defer span.End()

	tx, err := s.store.GetTransaction(ctx, userID, txID)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, &domain.ErrNotFound{Resource: "transaction", ID: txID}
	}
	return tx, nil
}

// ============================================================
// Create — POST /v1/transactions
// ============================================================

func (s *TransactionService) Create(ctx context.Context, userID string, req *domain.CreateTransactionRequest) (*domain.Transaction, error) {
	ctx, span := txTracer.Start(ctx, "TransactionService.Create")
	defer span.End()

	date := time.Now().UTC()
	if req.Date != "" {
		parsed, err := domain.ParseTransactionDate(req.Date)
		if err != nil {
			return nil, err
		}
		date = parsed
	}

	tx := &domain.Transaction{
		UserID:      userID,
		Amount:      req.Amount,
		Kind:        req.Kind,
		Category:    req.Category,
		Date:        date,
		Description: req.Description,
	}
	if err := tx.Validate(); err != nil {
		return nil, err
	}

	created, err := s.store.CreateTransaction(ctx, tx)
	if err != nil {
		return nil, err
	}

	s.cache.Delete(userID)
	s.metrics.IncrTransactionCreated(string(created.Kind))
	s.logger.Info("transaction created",
		zap.String("user_id", userID),
		zap.String("transaction_id", created.ID),
		zap.String("kind", string(created.Kind)),
		zap.String("category", string(created.Category)),
	)
	return created, nil
}

// ============================================================
// Update — PUT /v1/transactions/{id}
// ============================================================

// Update applies the present fields of req on top of the stored record
// and re-validates the merged result, so a kind change without a
// matching category change is rejected.
func (s *TransactionService) Update(ctx context.Context, userID, txID string, req *domain.UpdateTransactionRequest) (*domain.Transaction, error) {
	ctx, span := txTracer.Start(ctx, "TransactionService.Update")
	defer span.End()

	current, err := s.store.GetTransaction(ctx, userID, txID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, &domain.ErrNotFound{Resource: "transaction", ID: txID}
	}

	if req.Amount != nil {
		current.Amount = *req.Amount
	}
	if req.Kind != nil {
		current.Kind = *req.Kind
	}
	if req.Category != nil {
		current.Category = *req.Category
	}
	if req.Date != nil {
		parsed, err := domain.ParseTransactionDate(*req.Date)
		if err != nil {
			return nil, err
		}
		current.Date = parsed
	}
	if req.Description != nil {
		current.Description = *req.Description
	}

	if err := current.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateTransaction(ctx, current)
	if err != nil {
		return nil, err
	}

	s.cache.Delete(userID)
	s.logger.Info("transaction updated",
		zap.String("user_id", userID),
		zap.String("transaction_id", txID),
	)
	return updated, nil
}

// ============================================================
// Delete — DELETE /v1/transactions/{id}
// ============================================================

func (s *TransactionService) Delete(ctx context.Context, userID, txID string) error {
	ctx, span := txTracer.Start(ctx, "TransactionService.Delete")
	defer span.End()

	if err := s.store.DeleteTransaction(ctx, userID, txID); err != nil {
		return err
	}

	s.cache.Delete(userID)
	s.logger.Info("transaction deleted",
		zap.String("user_id", userID),
		zap.String("transaction_id", txID),
	)
	return nil
}
