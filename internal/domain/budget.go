package domain

import (
	"fmt"
	"strings"
)

// Limit is a monthly budget limit with an explicit "not tracked" state.
// On the wire a limit of 0 means tracking is disabled; internally the
// tagged form keeps that sentinel from being confused with a genuine
// zero-tolerance limit.
type Limit struct {
	Value Money
	Set   bool
}

// LimitOf builds a tracked limit. A non-positive value yields the
// untracked state.
func LimitOf(v Money) Limit {
	if v <= 0 {
		return Limit{}
	}
	return Limit{Value: v, Set: true}
}

// NoLimit is the untracked sentinel.
func NoLimit() Limit { return Limit{} }

// MarshalJSON writes the wire form: the value, or 0 when untracked.
func (l Limit) MarshalJSON() ([]byte, error) {
	if !l.Set {
		return []byte("0.00"), nil
	}
	return l.Value.MarshalJSON()
}

// UnmarshalJSON reads the wire form; 0 maps to the untracked state.
func (l *Limit) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" {
		*l = Limit{}
		return nil
	}
	v, err := ParseMoney(s)
	if err != nil {
		return err
	}
	if v < 0 {
		return fmt.Errorf("limit must not be negative")
	}
	*l = LimitOf(v)
	return nil
}

// CategoryBudget is the per-(user, category) monthly limit record.
// The store enforces uniqueness on (user, category). Spent is never
// stored; it is derived from transactions at read time.
type CategoryBudget struct {
	ID       string   `json:"id"`
	UserID   string   `json:"user_id"`
	Category Category `json:"category"`
	Limit    Limit    `json:"monthly_limit"`
	Color    string   `json:"color,omitempty"`
}

// Validate checks the budget invariants on upsert.
func (b *CategoryBudget) Validate() error {
	if !b.Category.Valid() {
		return &ErrValidation{Field: "category", Message: "unknown category"}
	}
	if b.Category.Kind() != KindExpense {
		return &ErrValidation{Field: "category", Message: "budgets apply to expense categories only"}
	}
	return nil
}

// UpsertBudgetRequest is the body for PUT /v1/budgets/{category}.
type UpsertBudgetRequest struct {
	Limit Limit  `json:"monthly_limit"`
	Color string `json:"color,omitempty"`
}
