package core

import "github.com/shopspring/decimal"

// Totals is the aggregate over all categories.
type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Profit  decimal.Decimal
}

// Aggregate sums category results. An empty input yields all zeros.
func Aggregate(results []CategoryResult) Totals {
	income := decimal.Zero
	expense := decimal.Zero
	for _, r := range results {
		income = income.Add(r.Result.Income)
		expense = expense.Add(r.Result.Expense)
	}
	return Totals{
		Income:  income,
		Expense: expense,
		Profit:  income.Sub(expense),
	}
}
