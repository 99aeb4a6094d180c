package domain

import "testing"

func TestCategoryPartition(t *testing.T) {
	for _, c := range IncomeCategories() {
		if c.Kind() != KindIncome {
			t.Errorf("category %s: expected income partition, got %s", c, c.Kind())
		}
	}
	for _, c := range ExpenseCategories() {
		if c.Kind() != KindExpense {
			t.Errorf("category %s: expected expense partition, got %s", c, c.Kind())
		}
	}
	if got := len(IncomeCategories()) + len(ExpenseCategories()); got != len(categories) {
		t.Errorf("partition lists cover %d categories, table has %d", got, len(categories))
	}
}

func TestCategoryValid(t *testing.T) {
	if !CategoryFood.Valid() {
		t.Error("food should be a valid category")
	}
	if Category("groceries").Valid() {
		t.Error("unknown category should be invalid")
	}
	if Category("").Valid() {
		t.Error("empty category should be invalid")
	}
}

func TestCategoryColor(t *testing.T) {
	for c := range categories {
		if c.Color() == "" {
			t.Errorf("category %s has no color", c)
		}
	}
	if got := CategorySalary.Color(); got != "#4caf50" {
		t.Errorf("salary color = %s, want #4caf50", got)
	}
}
