// Package service — GoalService handles saving goal CRUD.
package service

import (
	"context"

	"github.com/kmazur/budgetbook-go/internal/domain"
	"github.com/kmazur/budgetbook-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var goalTracer = otel.Tracer("service/goals")

// GoalService orchestrates saving goal operations.
type GoalService struct {
	store  port.GoalStore
	logger *zap.Logger
}

// NewGoalService creates a new goal service.
func NewGoalService(store port.GoalStore, logger *zap.Logger) *GoalService {
	return &GoalService{store: store, logger: logger}
}

// ============================================================
// List — GET /v1/goals
// ============================================================

func (s *GoalService) List(ctx context.Context, userID string) ([]domain.SavingGoal, error) {
	ctx, span := goalTracer.Start(ctx, "GoalService.List")
	defer span.End()

	return s.store.ListGoals(ctx, userID)
}

// ============================================================
// Get — GET /v1/goals/{id}
// ============================================================

func (s *GoalService) Get(ctx context.Context, userID, goalID string) (*domain.SavingGoal, error) {
	ctx, span := goalTracer.Start(ctx, "GoalService.Get")
	defer span.End()

	goal, err := s.store.GetGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}
	if goal == nil {
		return nil, &domain.ErrNotFound{Resource: "goal", ID: goalID}
	}
	return goal, nil
}

// ============================================================
// Create — POST /v1/goals
// ============================================================

func (s *GoalService) Create(ctx context.Context, userID string, req *domain.CreateGoalRequest) (*domain.SavingGoal, error) {
	ctx, span := goalTracer.Start(ctx, "GoalService.Create")
	defer span.End()

	goal := &domain.SavingGoal{
		UserID:       userID,
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
		SavedAmount:  req.SavedAmount,
	}
	if req.Deadline != "" {
		deadline, err := domain.ParseTransactionDate(req.Deadline)
		if err != nil {
			return nil, &domain.ErrValidation{Field: "deadline", Message: "expected YYYY-MM-DD"}
		}
		goal.Deadline = &deadline
	}
	if err := goal.Validate(); err != nil {
		return nil, err
	}

	created, err := s.store.CreateGoal(ctx, goal)
	if err != nil {
		return nil, err
	}

	s.logger.Info("goal created",
		zap.String("user_id", userID),
		zap.String("goal_id", created.ID),
		zap.String("name", created.Name),
	)
	return created, nil
}

// ============================================================
// Update — PUT /v1/goals/{id}
// ============================================================

func (s *GoalService) Update(ctx context.Context, userID, goalID string, req *domain.UpdateGoalRequest) (*domain.SavingGoal, error) {
	ctx, span := goalTracer.Start(ctx, "GoalService.Update")
	defer span.End()

	current, err := s.store.GetGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, &domain.ErrNotFound{Resource: "goal", ID: goalID}
	}

	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.TargetAmount != nil {
		current.TargetAmount = *req.TargetAmount
	}
	if req.SavedAmount != nil {
		current.SavedAmount = *req.SavedAmount
	}
	if req.Deadline != nil {
		if *req.Deadline == "" {
			current.Deadline = nil
		} else {
			deadline, err := domain.ParseTransactionDate(*req.Deadline)
			if err != nil {
				return nil, &domain.ErrValidation{Field: "deadline", Message: "expected YYYY-MM-DD"}
			}
			current.Deadline = &deadline
		}
	}

	if err := current.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateGoal(ctx, current)
	if err != nil {
		return nil, err
	}

	s.logger.Info("goal updated",
		zap.String("user_id", userID),
		zap.String("goal_id", goalID),
	)
	return updated, nil
}

// ============================================================
// Delete — DELETE /v1/goals/{id}
// ============================================================

func (s *GoalService) Delete(ctx context.Context, userID, goalID string) error {
	ctx, span := goalTracer.Start(ctx, "GoalService.Delete")
	defer span.End()

	if err := s.store.DeleteGoal(ctx, userID, goalID); err != nil {
		return err
	}

	s.logger.Info("goal deleted",
		zap.String("user_id", userID),
		zap.String("goal_id", goalID),
	)
	return nil
}
