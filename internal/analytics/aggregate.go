package analytics

import (
	"sort"

	"github.com/kmazur/budgetbook-go/internal/domain"
)

// Filter narrows an aggregation. Zero values mean "no filter".
type Filter struct {
	Kind     domain.Kind
	Category domain.Category
}

// Aggregate is the result of summing a filtered window.
type Aggregate struct {
	Total domain.Money `json:"total"`
	Count int          `json:"count"`
}

// Sum computes total and count over the snapshot for one window and
// filter. Integer-cent addition keeps the result independent of
// iteration order.
func Sum(txns []domain.Transaction, w Window, f Filter) Aggregate {
	var agg Aggregate
	for _, t := range txns {
		if !w.Contains(t.Date) {
			continue
		}
		if f.Kind != "" && t.Kind != f.Kind {
			continue
		}
		if f.Category != "" && t.Category != f.Category {
			continue
		}
		agg.Total += t.Amount
		agg.Count++
	}
	return agg
}

// Overview is the all-time income/expense/balance summary.
type Overview struct {
	Income  domain.Money `json:"income"`
	Expense domain.Money `json:"expense"`
	Balance domain.Money `json:"balance"`
}

// ComputeOverview sums the full snapshot by kind. Balance is always
// income minus expense; an empty snapshot yields all zeros.
func ComputeOverview(txns []domain.Transaction) Overview {
	var o Overview
	for _, t := range txns {
		switch t.Kind {
		case domain.KindIncome:
			o.Income += t.Amount
		case domain.KindExpense:
			o.Expense += t.Amount
		}
	}
	o.Balance = o.Income - o.Expense
	return o
}

// CategoryTotal is one row of the category breakdown.
type CategoryTotal struct {
	Category domain.Category `json:"category"`
	Total    domain.Money    `json:"total"`
	Count    int             `json:"count"`
	Color    string          `json:"color"`
}

// ComputeCategoryBreakdown groups the snapshot by category. Categories
// with no transactions are omitted, not emitted as zero rows. Rows are
// sorted by total descending, category name as tie-breaker.
func ComputeCategoryBreakdown(txns []domain.Transaction) []CategoryTotal {
	totals := make(map[domain.Category]*CategoryTotal)
	for _, t := range txns {
		row, ok := totals[t.Category]
		if !ok {
			row = &CategoryTotal{Category: t.Category, Color: t.Category.Color()}
			totals[t.Category] = row
		}
		row.Total += t.Amount
		row.Count++
	}

	out := make([]CategoryTotal, 0, len(totals))
	for _, row := range totals {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Category < out[j].Category
	})
	return out
}
