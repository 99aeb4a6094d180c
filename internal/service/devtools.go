package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/kmazur/budgetbook-go/internal/domain"

	"go.uber.org/zap"
)

// ============================================================
// Dev Tools
// ============================================================

// Seed templates: plausible descriptions per category, used by the dev
// transaction generator.
var seedTemplates = []struct {
	kind     domain.Kind
	category domain.Category
	descs    []string
	minUnits int64
	maxUnits int64
}{
	{domain.KindIncome, domain.CategorySalary, []string{"Monthly salary", "Salary payment"}, 2000, 5000},
	{domain.KindIncome, domain.CategoryGift, []string{"Birthday gift", "Gift from family"}, 20, 200},
	{domain.KindIncome, domain.CategoryOtherIncome, []string{"Freelance project", "Marketplace sale", "Refund"}, 50, 800},
	{domain.KindExpense, domain.CategoryFood, []string{"Grocery store", "Restaurant", "Coffee shop", "Food delivery"}, 5, 120},
	{domain.KindExpense, domain.CategoryTransport, []string{"Fuel", "Bus ticket", "Ride share", "Parking"}, 3, 80},
	{domain.KindExpense, domain.CategoryEntertainment, []string{"Cinema", "Streaming subscription", "Concert tickets"}, 10, 150},
	{domain.KindExpense, domain.CategoryBills, []string{"Electricity bill", "Internet bill", "Phone bill", "Rent"}, 30, 900},
	{domain.KindExpense, domain.CategoryHealth, []string{"Pharmacy", "Dentist visit", "Gym membership"}, 15, 300},
	{domain.KindExpense, domain.CategoryEducation, []string{"Online course", "Books", "Language classes"}, 20, 250},
	{domain.KindExpense, domain.CategoryClothing, []string{"Clothing store", "Shoes", "Online order"}, 20, 200},
	{domain.KindExpense, domain.CategoryOtherExpense, []string{"Hardware store", "Haircut", "Miscellaneous"}, 5, 150},
}

// DevGenerateTransactionsRequest is the body for POST /v1/dev/generate-transactions.
type DevGenerateTransactionsRequest struct {
	Count  int `json:"count"`
	Months int `json:"months"`
}

// DevGenerateTransactionsResponse reports what the generator produced.
type DevGenerateTransactionsResponse struct {
	Generated int          `json:"generated"`
	Income    domain.Money `json:"income"`
	Expenses  domain.Money `json:"expenses"`
	Message   string       `json:"message"`
}

// DevGenerateTransactions generates random transactions for testing.
// Dates are spread across the requested number of trailing months so
// the trend and comparison views have data to work with.
func (s *TransactionService) DevGenerateTransactions(ctx context.Context, userID string, req *DevGenerateTransactionsRequest) (*DevGenerateTransactionsResponse, error) {
	ctx, span := txTracer.Start(ctx, "TransactionService.DevGenerateTransactions")
	defer span.End()

	if req.Count <= 0 || req.Count > 100 {
		return nil, &domain.ErrValidation{Field: "count", Message: "must be between 1 and 100"}
	}
	months := req.Months
	if months <= 0 {
		months = 1
	}
	if months > 12 {
		months = 12
	}
	daysSpan := months * 30

	generated := 0
	var totalIncome, totalExpenses domain.Money
	now := time.Now().UTC()

	for i := 0; i < req.Count; i++ {
		tpl := seedTemplates[rand.Intn(len(seedTemplates))]
		units := tpl.minUnits + rand.Int63n(tpl.maxUnits-tpl.minUnits+1)
		amount := domain.Units(units) + domain.Cents(rand.Int63n(100))
		date := now.AddDate(0, 0, -rand.Intn(daysSpan))

		tx := &domain.Transaction{
			UserID:      userID,
			Amount:      amount,
			Kind:        tpl.kind,
			Category:    tpl.category,
			Date:        date,
			Description: tpl.descs[rand.Intn(len(tpl.descs))],
		}
		if _, err := s.store.CreateTransaction(ctx, tx); err != nil {
			s.logger.Warn("DEV: failed to insert transaction", zap.Int("index", i), zap.Error(err))
			continue
		}
		generated++
		if tpl.kind == domain.KindIncome {
			totalIncome += amount
		} else {
			totalExpenses += amount
		}
	}

	s.cache.Delete(userID)
	s.logger.Info("DEV: transactions generated",
		zap.String("user_id", userID),
		zap.Int("generated", generated),
	)

	return &DevGenerateTransactionsResponse{
		Generated: generated,
		Income:    totalIncome,
		Expenses:  totalExpenses,
		Message:   fmt.Sprintf("%d transactions generated", generated),
	}, nil
}
