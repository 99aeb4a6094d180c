package domain

import "time"

const maxGoalNameLen = 100

// SavingGoal is a user-managed savings target. The saved amount is
// entered manually; transactions never advance it.
type SavingGoal struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	Name         string     `json:"name"`
	TargetAmount Money      `json:"target_amount"`
	SavedAmount  Money      `json:"saved_amount"`
	Deadline     *time.Time `json:"deadline,omitempty"`
}

// Progress returns saved/target clamped to [0, 1] for display. Storage
// is never clamped — saving past the target is allowed.
func (g *SavingGoal) Progress() float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	p := g.SavedAmount.Float() / g.TargetAmount.Float()
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Validate checks the goal invariants on create and update.
func (g *SavingGoal) Validate() error {
	if g.Name == "" {
		return &ErrValidation{Field: "name", Message: "required"}
	}
	if len(g.Name) > maxGoalNameLen {
		return &ErrValidation{Field: "name", Message: "too long (max 100 characters)"}
	}
	if g.TargetAmount <= 0 {
		return &ErrValidation{Field: "target_amount", Message: "must be positive"}
	}
	if g.SavedAmount < 0 {
		return &ErrValidation{Field: "saved_amount", Message: "must not be negative"}
	}
	return nil
}

// CreateGoalRequest is the body for POST /v1/goals.
type CreateGoalRequest struct {
	Name         string `json:"name"`
	TargetAmount Money  `json:"target_amount"`
	SavedAmount  Money  `json:"saved_amount"`
	Deadline     string `json:"deadline,omitempty"`
}

// UpdateGoalRequest is the body for PUT /v1/goals/{id}; fields are
// optional and applied as a subset.
type UpdateGoalRequest struct {
	Name         *string `json:"name,omitempty"`
	TargetAmount *Money  `json:"target_amount,omitempty"`
	SavedAmount  *Money  `json:"saved_amount,omitempty"`
	Deadline     *string `json:"deadline,omitempty"`
}
