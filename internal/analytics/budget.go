package analytics

import (
	"fmt"
	"math"
	"time"

	"github.com/kmazur/budgetbook-go/internal/domain"
)

// Alert thresholds, in percent of the monthly limit. Both boundaries
// are inclusive: exactly 90.0 warns, exactly 100.0 escalates to error.
const (
	warnThresholdPct  = 90.0
	errorThresholdPct = 100.0
)

// Default limit bootstrap parameters: the first limit for a category is
// the last three full months' average spend with 20% headroom, rounded
// up to a whole unit; 500 units when there is no history at all.
const (
	bootstrapLookbackMonths = 3
	bootstrapHeadroom       = 1.2
)

var bootstrapFallbackLimit = domain.Units(500)

// BudgetStatus is one budget row with its derived current-month spend.
type BudgetStatus struct {
	Category    domain.Category `json:"category"`
	Limit       domain.Limit    `json:"monthly_limit"`
	Spent       domain.Money    `json:"spent"`
	PercentUsed float64         `json:"percent_used"`
	Tracked     bool            `json:"tracked"`
	Color       string          `json:"color,omitempty"`
}

// Severity of a budget alert.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Alert is emitted when a tracked budget crosses the warn threshold.
type Alert struct {
	Category    domain.Category `json:"category"`
	PercentUsed float64         `json:"percent_used"`
	Message     string          `json:"message"`
	Severity    Severity        `json:"severity"`
	Color       string          `json:"color,omitempty"`
}

// ComputeBudgetStatus derives the current-month spend for every stored
// budget. Untracked budgets (limit sentinel 0) still get a row with
// their spend, but percent used stays 0 and Tracked is false.
func ComputeBudgetStatus(txns []domain.Transaction, budgets []domain.CategoryBudget, asOf time.Time) []BudgetStatus {
	window := PeriodCurrentMonth.Resolve(asOf)

	out := make([]BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		spent := Sum(txns, window, Filter{Kind: domain.KindExpense, Category: b.Category}).Total
		status := BudgetStatus{
			Category: b.Category,
			Limit:    b.Limit,
			Spent:    spent,
			Tracked:  b.Limit.Set,
			Color:    budgetColor(b),
		}
		if b.Limit.Set {
			status.PercentUsed = spent.Float() / b.Limit.Value.Float() * 100
		}
		out = append(out, status)
	}
	return out
}

// ComputeAlerts evaluates every tracked budget against the current
// month. Budgets with the 0 sentinel are skipped entirely — no limit
// tracked means no alert, not zero tolerance.
func ComputeAlerts(txns []domain.Transaction, budgets []domain.CategoryBudget, asOf time.Time) []Alert {
	statuses := ComputeBudgetStatus(txns, budgets, asOf)

	alerts := make([]Alert, 0)
	for _, s := range statuses {
		if !s.Tracked || s.PercentUsed < warnThresholdPct {
			continue
		}
		severity := SeverityWarning
		message := fmt.Sprintf("%s budget is %.0f%% used (%s of %s)",
			s.Category, s.PercentUsed, s.Spent, s.Limit.Value)
		if s.PercentUsed >= errorThresholdPct {
			severity = SeverityError
			message = fmt.Sprintf("%s budget exceeded: %s spent of %s (%.0f%%)",
				s.Category, s.Spent, s.Limit.Value, s.PercentUsed)
		}
		alerts = append(alerts, Alert{
			Category:    s.Category,
			PercentUsed: s.PercentUsed,
			Message:     message,
			Severity:    severity,
			Color:       s.Color,
		})
	}
	return alerts
}

// DefaultLimit computes the bootstrap limit for a category from the
// last three full calendar months of spend in it. No historical spend
// at all falls back to the fixed default.
func DefaultLimit(txns []domain.Transaction, category domain.Category, asOf time.Time) domain.Money {
	var total domain.Money
	for i := 1; i <= bootstrapLookbackMonths; i++ {
		w := monthWindow(asOf, -i)
		total += Sum(txns, w, Filter{Kind: domain.KindExpense, Category: category}).Total
	}
	if total <= 0 {
		return bootstrapFallbackLimit
	}
	avg := total.Float() / bootstrapLookbackMonths
	return domain.Units(int64(math.Ceil(avg * bootstrapHeadroom)))
}

func budgetColor(b domain.CategoryBudget) string {
	if b.Color != "" {
		return b.Color
	}
	return b.Category.Color()
}
