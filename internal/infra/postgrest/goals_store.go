package postgrest

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kmazur/budgetbook-go/internal/domain"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// ============================================================
// Saving goals — CRUD via PostgREST
// ============================================================

type goalRow struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	Name        string  `json:"name"`
	TargetCents int64   `json:"target_cents"`
	SavedCents  int64   `json:"saved_cents"`
	Deadline    *string `json:"deadline"`
}

func (r goalRow) toDomain() domain.SavingGoal {
	goal := domain.SavingGoal{
		ID:           r.ID,
		UserID:       r.UserID,
		Name:         r.Name,
		TargetAmount: domain.Cents(r.TargetCents),
		SavedAmount:  domain.Cents(r.SavedCents),
	}
	if r.Deadline != nil && *r.Deadline != "" {
		if deadline, err := time.Parse("2006-01-02", *r.Deadline); err == nil {
			goal.Deadline = &deadline
		}
	}
	return goal
}

func goalData(goal *domain.SavingGoal) map[string]any {
	data := map[string]any{
		"id":           goal.ID,
		"user_id":      goal.UserID,
		"name":         goal.Name,
		"target_cents": int64(goal.TargetAmount),
		"saved_cents":  int64(goal.SavedAmount),
		"deadline":     nil,
	}
	if goal.Deadline != nil {
		data["deadline"] = goal.Deadline.Format("2006-01-02")
	}
	return data
}

func (c *Client) ListGoals(ctx context.Context, userID string) ([]domain.SavingGoal, error) {
	ctx, span := tracer.Start(ctx, "Postgrest.ListGoals")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	path := fmt.Sprintf("saving_goals?user_id=eq.%s&order=created_at.asc", userID)
	body, err := c.doGet(ctx, path)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "postgrest/goals", Err: err}
	}
	if body == nil {
		return []domain.SavingGoal{}, nil
	}

	var rows []goalRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode goals: %w", err)
	}
	goals := make([]domain.SavingGoal, 0, len(rows))
	for _, r := range rows {
		goals = append(goals, r.toDomain())
	}
	return goals, nil
}

func (c *Client) GetGoal(ctx context.Context, userID, goalID string) (*domain.SavingGoal, error) {
	ctx, span := tracer.Start(ctx, "Postgrest.GetGoal")
	defer span.End()

	path := fmt.Sprintf("saving_goals?user_id=eq.%s&id=eq.%s&limit=1", userID, goalID)
	body, err := c.doGet(ctx, path)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "postgrest/goals", Err: err}
	}

	var rows []goalRow
	if body != nil {
		if err := json.Unmarshal(body, &rows); err != nil {
			return nil, fmt.Errorf("decode goal: %w", err)
		}
	}
	if len(rows) == 0 {
		return nil, nil
	}
	goal := rows[0].toDomain()
	return &goal, nil
}

func (c *Client) CreateGoal(ctx context.Context, goal *domain.SavingGoal) (*domain.SavingGoal, error) {
	ctx, span := tracer.Start(ctx, "Postgrest.CreateGoal")
	defer span.End()

	if goal.ID == "" {
		goal.ID = uuid.New().String()
	}
	body, err := c.doPost(ctx, "saving_goals", goalData(goal))
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "postgrest/goals", Err: err}
	}

	var rows []goalRow
	if err := json.Unmarshal(body, &rows); err != nil || len(rows) == 0 {
		return goal, nil
	}
	created := rows[0].toDomain()
	return &created, nil
}

func (c *Client) UpdateGoal(ctx context.Context, goal *domain.SavingGoal) (*domain.SavingGoal, error) {
	ctx, span := tracer.Start(ctx, "Postgrest.UpdateGoal")
	defer span.End()

	path := fmt.Sprintf("saving_goals?user_id=eq.%s&id=eq.%s", goal.UserID, goal.ID)
	data := goalData(goal)
	delete(data, "id")
	delete(data, "user_id")

	body, err := c.doPatch(ctx, path, data)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "postgrest/goals", Err: err}
	}

	var rows []goalRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode updated goal: %w", err)
	}
	if len(rows) == 0 {
		return nil, &domain.ErrNotFound{Resource: "goal", ID: goal.ID}
	}
	updated := rows[0].toDomain()
	return &updated, nil
}

func (c *Client) DeleteGoal(ctx context.Context, userID, goalID string) error {
	ctx, span := tracer.Start(ctx, "Postgrest.DeleteGoal")
	defer span.End()

	path := fmt.Sprintf("saving_goals?user_id=eq.%s&id=eq.%s", userID, goalID)
	body, err := c.doDelete(ctx, path)
	if err != nil {
		return &domain.ErrExternalService{Service: "postgrest/goals", Err: err}
	}

	var rows []goalRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return fmt.Errorf("decode deleted goal: %w", err)
	}
	if len(rows) == 0 {
		return &domain.ErrNotFound{Resource: "goal", ID: goalID}
	}
	return nil
}
