package postgrest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kmazur/budgetbook-go/internal/domain"
	"github.com/kmazur/budgetbook-go/internal/infra/resilience"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/attribute"
)

// ============================================================
// Transactions — CRUD via PostgREST
// ============================================================

// txRow maps the transactions table. Amounts are stored as integer
// cents so the database never sees a float.
type txRow struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	AmountCents int64  `json:"amount_cents"`
	Kind        string `json:"kind"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

func (r txRow) toDomain() domain.Transaction {
	date, err := time.Parse(time.RFC3339, r.Date)
	if err != nil {
		date, _ = time.Parse("2006-01-02", r.Date)
	}
	return domain.Transaction{
		ID:          r.ID,
		UserID:      r.UserID,
		Amount:      domain.Cents(r.AmountCents),
		Kind:        domain.Kind(r.Kind),
		Category:    domain.Category(r.Category),
		Date:        date,
		Description: r.Description,
	}
}

func txData(tx *domain.Transaction) map[string]any {
	return map[string]any{
		"id":           tx.ID,
		"user_id":      tx.UserID,
		"amount_cents": int64(tx.Amount),
		"kind":         string(tx.Kind),
		"category":     string(tx.Category),
		"date":         tx.Date.Format(time.RFC3339),
		"description":  tx.Description,
	}
}

// ListTransactions returns the user's full history, newest first. This
// is the hot read path behind every analytics view, so it runs through
// the circuit breaker with retries.
func (c *Client) ListTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "Postgrest.ListTransactions")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	var transactions []domain.Transaction

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			path := fmt.Sprintf("transactions?user_id=eq.%s&order=date.desc", userID)
			body, err := c.doGet(ctx, path)
			if err != nil {
				return err
			}
			if body == nil {
				transactions = []domain.Transaction{}
				return nil
			}

			var rows []txRow
			if err := json.Unmarshal(body, &rows); err != nil {
				return fmt.Errorf("decode transactions: %w", err)
			}
			transactions = make([]domain.Transaction, 0, len(rows))
			for _, r := range rows {
				transactions = append(transactions, r.toDomain())
			}
			return nil
		})
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, &domain.ErrCircuitOpen{Service: "postgrest/transactions"}
		}
		return nil, &domain.ErrExternalService{Service: "postgrest/transactions", Err: err}
	}
	return transactions, nil
}

func (c *Client) GetTransaction(ctx context.Context, userID, txID string) (*domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "Postgrest.GetTransaction")
	defer span.End()

	path := fmt.Sprintf("transactions?user_id=eq.%s&id=eq.%s&limit=1", userID, txID)
	body, err := c.doGet(ctx, path)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "postgrest/transactions", Err: err}
	}

	var rows []txRow
	if body != nil {
		if err := json.Unmarshal(body, &rows); err != nil {
			return nil, fmt.Errorf("decode transaction: %w", err)
		}
	}
	if len(rows) == 0 {
		return nil, nil
	}
	tx := rows[0].toDomain()
	return &tx, nil
}

func (c *Client) CreateTransaction(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "Postgrest.CreateTransaction")
	defer span.End()

	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	body, err := c.doPost(ctx, "transactions", txData(tx))
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "postgrest/transactions", Err: err}
	}

	var rows []txRow
	if err := json.Unmarshal(body, &rows); err != nil || len(rows) == 0 {
		// Representation decode failed; the insert itself succeeded.
		return tx, nil
	}
	created := rows[0].toDomain()
	return &created, nil
}

func (c *Client) UpdateTransaction(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "Postgrest.UpdateTransaction")
	defer span.End()

	path := fmt.Sprintf("transactions?user_id=eq.%s&id=eq.%s", tx.UserID, tx.ID)
	data := txData(tx)
	delete(data, "id")
	delete(data, "user_id")

	body, err := c.doPatch(ctx, path, data)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "postgrest/transactions", Err: err}
	}

	var rows []txRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode updated transaction: %w", err)
	}
	if len(rows) == 0 {
		return nil, &domain.ErrNotFound{Resource: "transaction", ID: tx.ID}
	}
	updated := rows[0].toDomain()
	return &updated, nil
}

func (c *Client) DeleteTransaction(ctx context.Context, userID, txID string) error {
	ctx, span := tracer.Start(ctx, "Postgrest.DeleteTransaction")
	defer span.End()

	path := fmt.Sprintf("transactions?user_id=eq.%s&id=eq.%s", userID, txID)
	body, err := c.doDelete(ctx, path)
	if err != nil {
		return &domain.ErrExternalService{Service: "postgrest/transactions", Err: err}
	}

	var rows []txRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return fmt.Errorf("decode deleted transaction: %w", err)
	}
	if len(rows) == 0 {
		return &domain.ErrNotFound{Resource: "transaction", ID: txID}
	}
	return nil
}
