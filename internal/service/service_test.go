package service_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kmazur/budgetbook-go/internal/domain"
)

// --- In-memory fakes for the store ports ---

type fakeTransactionStore struct {
	mu      sync.Mutex
	txns    map[string]domain.Transaction
	nextID  int
	listErr error
	lists   int
}

func newFakeTransactionStore() *fakeTransactionStore {
	return &fakeTransactionStore{txns: make(map[string]domain.Transaction)}
}

func (f *fakeTransactionStore) ListTransactions(_ context.Context, userID string) ([]domain.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []domain.Transaction
	for _, tx := range f.txns {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (f *fakeTransactionStore) GetTransaction(_ context.Context, userID, txID string) (*domain.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tx, ok := f.txns[txID]
	if !ok || tx.UserID != userID {
		return nil, nil
	}
	return &tx, nil
}

func (f *fakeTransactionStore) CreateTransaction(_ context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	created := *tx
	created.ID = fmt.Sprintf("tx-%d", f.nextID)
	f.txns[created.ID] = created
	return &created, nil
}

func (f *fakeTransactionStore) UpdateTransaction(_ context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.txns[tx.ID]; !ok {
		return nil, &domain.ErrNotFound{Resource: "transaction", ID: tx.ID}
	}
	f.txns[tx.ID] = *tx
	return tx, nil
}

func (f *fakeTransactionStore) DeleteTransaction(_ context.Context, userID, txID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	tx, ok := f.txns[txID]
	if !ok || tx.UserID != userID {
		return &domain.ErrNotFound{Resource: "transaction", ID: txID}
	}
	delete(f.txns, txID)
	return nil
}

type fakeBudgetStore struct {
	mu      sync.Mutex
	budgets map[string]domain.CategoryBudget
	upserts int
	listErr error
}

func newFakeBudgetStore() *fakeBudgetStore {
	return &fakeBudgetStore{budgets: make(map[string]domain.CategoryBudget)}
}

func budgetKey(userID string, category domain.Category) string {
	return userID + "/" + string(category)
}

func (f *fakeBudgetStore) ListBudgets(_ context.Context, userID string) ([]domain.CategoryBudget, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []domain.CategoryBudget
	for _, b := range f.budgets {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBudgetStore) UpsertBudget(_ context.Context, budget *domain.CategoryBudget) (*domain.CategoryBudget, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts++
	key := budgetKey(budget.UserID, budget.Category)
	saved := *budget
	if existing, ok := f.budgets[key]; ok {
		saved.ID = existing.ID
	} else {
		saved.ID = "b-" + string(budget.Category)
	}
	f.budgets[key] = saved
	return &saved, nil
}

type fakeGoalStore struct {
	mu      sync.Mutex
	goals   map[string]domain.SavingGoal
	nextID  int
	listErr error
}

func newFakeGoalStore() *fakeGoalStore {
	return &fakeGoalStore{goals: make(map[string]domain.SavingGoal)}
}

func (f *fakeGoalStore) ListGoals(_ context.Context, userID string) ([]domain.SavingGoal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []domain.SavingGoal
	for _, g := range f.goals {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeGoalStore) GetGoal(_ context.Context, userID, goalID string) (*domain.SavingGoal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.goals[goalID]
	if !ok || g.UserID != userID {
		return nil, nil
	}
	return &g, nil
}

func (f *fakeGoalStore) CreateGoal(_ context.Context, goal *domain.SavingGoal) (*domain.SavingGoal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	created := *goal
	created.ID = fmt.Sprintf("g-%d", f.nextID)
	f.goals[created.ID] = created
	return &created, nil
}

func (f *fakeGoalStore) UpdateGoal(_ context.Context, goal *domain.SavingGoal) (*domain.SavingGoal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.goals[goal.ID]; !ok {
		return nil, &domain.ErrNotFound{Resource: "goal", ID: goal.ID}
	}
	f.goals[goal.ID] = *goal
	return goal, nil
}

func (f *fakeGoalStore) DeleteGoal(_ context.Context, userID, goalID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.goals[goalID]
	if !ok || g.UserID != userID {
		return &domain.ErrNotFound{Resource: "goal", ID: goalID}
	}
	delete(f.goals, goalID)
	return nil
}

type fakeAuthStore struct {
	mu     sync.Mutex
	users  map[string]domain.User // by id
	tokens map[string]domain.RefreshToken
	nextID int
}

func newFakeAuthStore() *fakeAuthStore {
	return &fakeAuthStore{
		users:  make(map[string]domain.User),
		tokens: make(map[string]domain.RefreshToken),
	}
}

func (f *fakeAuthStore) GetUserByID(_ context.Context, userID string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (f *fakeAuthStore) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, nil
}

func (f *fakeAuthStore) CreateUser(_ context.Context, user *domain.User) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	created := *user
	created.ID = fmt.Sprintf("u-%d", f.nextID)
	f.users[created.ID] = created
	return &created, nil
}

func (f *fakeAuthStore) StoreRefreshToken(_ context.Context, userID, tokenHash string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[tokenHash] = domain.RefreshToken{
		ID:        tokenHash,
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
	}
	return nil
}

func (f *fakeAuthStore) GetRefreshToken(_ context.Context, tokenHash string) (*domain.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tokens[tokenHash]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (f *fakeAuthStore) RevokeRefreshToken(_ context.Context, tokenHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.tokens[tokenHash]; ok {
		t.Revoked = true
		f.tokens[tokenHash] = t
	}
	return nil
}

func (f *fakeAuthStore) RevokeAllRefreshTokens(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for hash, t := range f.tokens {
		if t.UserID == userID {
			t.Revoked = true
			f.tokens[hash] = t
		}
	}
	return nil
}
