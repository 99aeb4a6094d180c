package postgrest

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kmazur/budgetbook-go/internal/domain"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// ============================================================
// Category budgets — upsert keyed on (user_id, category)
// ============================================================

// budgetRow maps the category_budgets table. A limit of 0 cents means
// tracking is disabled for the category.
type budgetRow struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	Category   string `json:"category"`
	LimitCents int64  `json:"monthly_limit_cents"`
	Color      string `json:"color"`
}

func (r budgetRow) toDomain() domain.CategoryBudget {
	return domain.CategoryBudget{
		ID:       r.ID,
		UserID:   r.UserID,
		Category: domain.Category(r.Category),
		Limit:    domain.LimitOf(domain.Cents(r.LimitCents)),
		Color:    r.Color,
	}
}

func (c *Client) ListBudgets(ctx context.Context, userID string) ([]domain.CategoryBudget, error) {
	ctx, span := tracer.Start(ctx, "Postgrest.ListBudgets")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	path := fmt.Sprintf("category_budgets?user_id=eq.%s&order=category.asc", userID)
	body, err := c.doGet(ctx, path)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "postgrest/budgets", Err: err}
	}
	if body == nil {
		return []domain.CategoryBudget{}, nil
	}

	var rows []budgetRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode budgets: %w", err)
	}
	budgets := make([]domain.CategoryBudget, 0, len(rows))
	for _, r := range rows {
		budgets = append(budgets, r.toDomain())
	}
	return budgets, nil
}

// UpsertBudget inserts or updates the (user, category) record. The
// conflict target makes concurrent first-visit bootstraps converge on
// a single row.
func (c *Client) UpsertBudget(ctx context.Context, budget *domain.CategoryBudget) (*domain.CategoryBudget, error) {
	ctx, span := tracer.Start(ctx, "Postgrest.UpsertBudget")
	defer span.End()

	var limitCents int64
	if budget.Limit.Set {
		limitCents = int64(budget.Limit.Value)
	}
	data := map[string]any{
		"id":                  uuid.New().String(),
		"user_id":             budget.UserID,
		"category":            string(budget.Category),
		"monthly_limit_cents": limitCents,
		"color":               budget.Color,
	}

	body, err := c.doUpsert(ctx, "category_budgets", "user_id,category", data)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "postgrest/budgets", Err: err}
	}

	var rows []budgetRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode upserted budget: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("upsert budget: empty representation")
	}
	saved := rows[0].toDomain()
	return &saved, nil
}
