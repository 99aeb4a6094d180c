// Package analytics is the budget analytics engine: a set of pure
// functions that turn a snapshot of one user's transactions, budgets
// and goals into derived views (overview, breakdown, budget status,
// alerts, trend/forecast, period comparison).
//
// Every function threads an explicit asOf time instead of reading the
// wall clock, so the whole engine is deterministic under test. The
// outermost caller passes time.Now().UTC(), matching the UTC-midnight
// normalization of transaction dates.
package analytics

import "time"

// Period is a symbolic calendar-month token, resolved against asOf.
type Period string

const (
	PeriodCurrentMonth  Period = "current_month"
	PeriodPreviousMonth Period = "previous_month"
	PeriodTwoMonthsAgo  Period = "two_months_ago"
	PeriodYearAgo       Period = "year_ago"
)

// ValidPeriod reports whether p is a known period token.
func ValidPeriod(p Period) bool {
	switch p {
	case PeriodCurrentMonth, PeriodPreviousMonth, PeriodTwoMonthsAgo, PeriodYearAgo:
		return true
	}
	return false
}

// Window is a closed calendar interval [Start, End]. A transaction
// dated exactly on either boundary is inside the window.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls within the window, boundaries
// included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Key returns the window's month key, e.g. "2024-01".
func (w Window) Key() string {
	return w.Start.Format("2006-01")
}

// monthWindow builds the window covering the whole calendar month that
// lies offset months away from asOf. time.Date normalizes overflowing
// months, so year boundaries roll over for free.
func monthWindow(asOf time.Time, offset int) Window {
	start := time.Date(asOf.Year(), asOf.Month()+time.Month(offset), 1, 0, 0, 0, 0, asOf.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return Window{Start: start, End: end}
}

// Resolve maps a period token to its concrete window, anchored at asOf.
// Unknown tokens resolve to the current month; token validation is the
// transport layer's job.
func (p Period) Resolve(asOf time.Time) Window {
	switch p {
	case PeriodPreviousMonth:
		return monthWindow(asOf, -1)
	case PeriodTwoMonthsAgo:
		return monthWindow(asOf, -2)
	case PeriodYearAgo:
		return monthWindow(asOf, -12)
	default:
		return monthWindow(asOf, 0)
	}
}

// MonthsBack returns n consecutive monthly windows ending at (and
// including) the current month, oldest first.
func MonthsBack(asOf time.Time, n int) []Window {
	if n <= 0 {
		return nil
	}
	windows := make([]Window, 0, n)
	for i := n - 1; i >= 0; i-- {
		windows = append(windows, monthWindow(asOf, -i))
	}
	return windows
}

// MonthsAhead returns n consecutive monthly windows strictly after the
// current month, oldest first.
func MonthsAhead(asOf time.Time, n int) []Window {
	if n <= 0 {
		return nil
	}
	windows := make([]Window, 0, n)
	for i := 1; i <= n; i++ {
		windows = append(windows, monthWindow(asOf, i))
	}
	return windows
}
