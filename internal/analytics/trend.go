package analytics

import (
	"time"

	"github.com/kmazur/budgetbook-go/internal/domain"
)

const (
	// DefaultMonthsBack is the default size of the trailing trend window.
	DefaultMonthsBack = 6
	// DefaultMonthsForward is the default number of forecast months.
	DefaultMonthsForward = 3
	// forecastBasisMonths caps how many trailing actual months feed the
	// forecast mean. With fewer actual months the mean divides by the
	// available count, never by a hardcoded 3.
	forecastBasisMonths = 3
)

// TrendPoint is one month of the income/expense time series. Projected
// marks forecast points so consumers can render them distinctly.
type TrendPoint struct {
	Period    string       `json:"period"`
	Income    domain.Money `json:"income"`
	Expense   domain.Money `json:"expense"`
	Balance   domain.Money `json:"balance"`
	Projected bool         `json:"projected"`
}

// ComputeTrend produces monthsBack actual points (oldest first, ending
// at the current month) followed by monthsForward forecast points. The
// forecast extrapolates income and expense as the arithmetic mean of
// the trailing actual months, at most three of them.
func ComputeTrend(txns []domain.Transaction, monthsBack, monthsForward int, asOf time.Time) []TrendPoint {
	if monthsBack <= 0 {
		monthsBack = DefaultMonthsBack
	}
	if monthsForward < 0 {
		monthsForward = DefaultMonthsForward
	}

	points := make([]TrendPoint, 0, monthsBack+monthsForward)
	for _, w := range MonthsBack(asOf, monthsBack) {
		income := Sum(txns, w, Filter{Kind: domain.KindIncome}).Total
		expense := Sum(txns, w, Filter{Kind: domain.KindExpense}).Total
		points = append(points, TrendPoint{
			Period:  w.Key(),
			Income:  income,
			Expense: expense,
			Balance: income - expense,
		})
	}

	basis := len(points)
	if basis > forecastBasisMonths {
		basis = forecastBasisMonths
	}
	var incomeSum, expenseSum domain.Money
	for _, p := range points[len(points)-basis:] {
		incomeSum += p.Income
		expenseSum += p.Expense
	}
	meanIncome := domain.MeanMoney(incomeSum, basis)
	meanExpense := domain.MeanMoney(expenseSum, basis)

	for _, w := range MonthsAhead(asOf, monthsForward) {
		points = append(points, TrendPoint{
			Period:    w.Key(),
			Income:    meanIncome,
			Expense:   meanExpense,
			Balance:   meanIncome - meanExpense,
			Projected: true,
		})
	}
	return points
}
