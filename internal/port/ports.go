// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the domain/service
// layer from concrete implementations.
package port

import (
	"context"
	"time"

	"github.com/kmazur/budgetbook-go/internal/domain"
)

// TransactionStore handles transaction persistence.
type TransactionStore interface {
	ListTransactions(ctx context.Context, userID string) ([]domain.Transaction, error)
	GetTransaction(ctx context.Context, userID, txID string) (*domain.Transaction, error)
	CreateTransaction(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, txID string) error
}

// BudgetStore handles the per-(user, category) budget records. Upsert
// resolves on the (user, category) uniqueness key, which makes the
// lazy limit bootstrap safe to run concurrently.
type BudgetStore interface {
	ListBudgets(ctx context.Context, userID string) ([]domain.CategoryBudget, error)
	UpsertBudget(ctx context.Context, budget *domain.CategoryBudget) (*domain.CategoryBudget, error)
}

// GoalStore handles saving goal persistence.
type GoalStore interface {
	ListGoals(ctx context.Context, userID string) ([]domain.SavingGoal, error)
	GetGoal(ctx context.Context, userID, goalID string) (*domain.SavingGoal, error)
	CreateGoal(ctx context.Context, goal *domain.SavingGoal) (*domain.SavingGoal, error)
	UpdateGoal(ctx context.Context, goal *domain.SavingGoal) (*domain.SavingGoal, error)
	DeleteGoal(ctx context.Context, userID, goalID string) error
}

// AuthStore handles users and refresh tokens.
type AuthStore interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)

	StoreRefreshToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllRefreshTokens(ctx context.Context, userID string) error
}

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}
