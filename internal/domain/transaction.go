package domain

import "time"

const maxDescriptionLen = 200

// Transaction is a single income or expense record owned by one user.
// The stored amount is always non-zero; kind carries the sign semantics.
type Transaction struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Amount      Money     `json:"amount"`
	Kind        Kind      `json:"kind"`
	Category    Category  `json:"category"`
	Date        time.Time `json:"date"`
	Description string    `json:"description,omitempty"`
}

// Validate checks the invariants enforced on create and update.
func (t *Transaction) Validate() error {
	if t.Amount == 0 {
		return &ErrValidation{Field: "amount", Message: "must not be zero"}
	}
	if !ValidKind(t.Kind) {
		return &ErrValidation{Field: "kind", Message: "must be income or expense"}
	}
	if !t.Category.Valid() {
		return &ErrValidation{Field: "category", Message: "unknown category"}
	}
	if t.Category.Kind() != t.Kind {
		return &ErrValidation{Field: "category", Message: "category does not match transaction kind"}
	}
	if t.Date.IsZero() {
		return &ErrValidation{Field: "date", Message: "required"}
	}
	if len(t.Description) > maxDescriptionLen {
		return &ErrValidation{Field: "description", Message: "too long (max 200 characters)"}
	}
	return nil
}

// CreateTransactionRequest is the body for POST /v1/transactions.
// Date defaults to "now" when omitted, matching the add form behavior.
type CreateTransactionRequest struct {
	Amount      Money    `json:"amount"`
	Kind        Kind     `json:"kind"`
	Category    Category `json:"category"`
	Date        string   `json:"date,omitempty"`
	Description string   `json:"description,omitempty"`
}

// UpdateTransactionRequest is the body for PUT /v1/transactions/{id}.
// Every field is optional; only present fields are applied.
type UpdateTransactionRequest struct {
	Amount      *Money    `json:"amount,omitempty"`
	Kind        *Kind     `json:"kind,omitempty"`
	Category    *Category `json:"category,omitempty"`
	Date        *string   `json:"date,omitempty"`
	Description *string   `json:"description,omitempty"`
}

// ParseTransactionDate parses the wire date format ("2006-01-02"),
// falling back to RFC3339 for clients that send full timestamps.
func ParseTransactionDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, &ErrValidation{Field: "date", Message: "expected YYYY-MM-DD"}
	}
	return t, nil
}
