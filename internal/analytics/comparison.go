package analytics

import (
	"time"

	"github.com/kmazur/budgetbook-go/internal/domain"
)

// ComparisonRow compares one metric across two periods. Delta is
// always ValueA minus ValueB; comparing a period against itself yields
// a zero delta, not an error.
type ComparisonRow struct {
	Metric  string       `json:"metric"`
	PeriodA string       `json:"period_a"`
	PeriodB string       `json:"period_b"`
	ValueA  domain.Money `json:"value_a"`
	ValueB  domain.Money `json:"value_b"`
	Delta   domain.Money `json:"delta"`
}

// ComputeComparison aggregates two independently chosen periods and
// emits one row per metric: income, expense, balance.
func ComputeComparison(txns []domain.Transaction, periodA, periodB Period, asOf time.Time) []ComparisonRow {
	windowA := periodA.Resolve(asOf)
	windowB := periodB.Resolve(asOf)

	incomeA := Sum(txns, windowA, Filter{Kind: domain.KindIncome}).Total
	expenseA := Sum(txns, windowA, Filter{Kind: domain.KindExpense}).Total
	incomeB := Sum(txns, windowB, Filter{Kind: domain.KindIncome}).Total
	expenseB := Sum(txns, windowB, Filter{Kind: domain.KindExpense}).Total

	labelA := windowA.Key()
	labelB := windowB.Key()

	row := func(metric string, a, b domain.Money) ComparisonRow {
		return ComparisonRow{
			Metric:  metric,
			PeriodA: labelA,
			PeriodB: labelB,
			ValueA:  a,
			ValueB:  b,
			Delta:   a - b,
		}
	}

	return []ComparisonRow{
		row("income", incomeA, incomeB),
		row("expense", expenseA, expenseB),
		row("balance", incomeA-expenseA, incomeB-expenseB),
	}
}
