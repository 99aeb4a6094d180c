package domain

import (
	"encoding/json"
	"testing"
)

func TestLimitOf(t *testing.T) {
	l := LimitOf(Units(400))
	if !l.Set || l.Value != Units(400) {
		t.Errorf("LimitOf(400) = %+v, want tracked 400.00", l)
	}
	if LimitOf(0).Set {
		t.Error("LimitOf(0) should be untracked")
	}
	if LimitOf(Units(-5)).Set {
		t.Error("LimitOf(-5) should be untracked")
	}
}

func TestLimitJSON(t *testing.T) {
	b, err := json.Marshal(LimitOf(Units(400)))
	if err != nil {
		t.Fatalf("marshal tracked: %v", err)
	}
	if string(b) != "400.00" {
		t.Errorf("tracked limit = %s, want 400.00", b)
	}

	b, err = json.Marshal(NoLimit())
	if err != nil {
		t.Fatalf("marshal untracked: %v", err)
	}
	if string(b) != "0.00" {
		t.Errorf("untracked limit = %s, want 0.00", b)
	}

	var l Limit
	if err := json.Unmarshal([]byte("0"), &l); err != nil {
		t.Fatalf("unmarshal zero: %v", err)
	}
	if l.Set {
		t.Error("zero on the wire should map to the untracked state")
	}
	if err := json.Unmarshal([]byte("250.50"), &l); err != nil {
		t.Fatalf("unmarshal value: %v", err)
	}
	if !l.Set || l.Value != Cents(25050) {
		t.Errorf("limit = %+v, want tracked 250.50", l)
	}
	if err := json.Unmarshal([]byte("-10"), &l); err == nil {
		t.Error("negative limit should be rejected")
	}
}

func TestCategoryBudgetValidate(t *testing.T) {
	b := CategoryBudget{Category: CategoryFood, Limit: LimitOf(Units(400))}
	if err := b.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b.Category = CategorySalary
	if err := b.Validate(); err == nil {
		t.Error("income category should be rejected")
	}

	b.Category = "groceries"
	if err := b.Validate(); err == nil {
		t.Error("unknown category should be rejected")
	}
}
