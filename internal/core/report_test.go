package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestBuildReportShape(t *testing.T) {
	s := NewStore()
	rep := BuildReport(s)

	if len(rep.Rows) != len(CategoryKeys()) {
		t.Fatalf("rows: expected %d, got %d", len(CategoryKeys()), len(rep.Rows))
	}
	if len(rep.IncomeByCategory) != len(rep.Rows) || len(rep.ExpenseByCategory) != len(rep.Rows) {
		t.Fatalf("breakdowns must have one entry per category")
	}

	income := decimal.Zero
	expense := decimal.Zero
	for _, row := range rep.Rows {
		if !row.Profit.Equal(row.Income.Sub(row.Expense)) {
			t.Fatalf("%s: profit != income - expense", row.Name)
		}
		income = income.Add(row.Income)
		expense = expense.Add(row.Expense)
	}
	if !rep.TotalRow.Income.Equal(income) || !rep.TotalRow.Expense.Equal(expense) {
		t.Fatalf("totals row does not match the sum of rows")
	}
	if !rep.TotalRow.Profit.Equal(rep.Totals.Profit) {
		t.Fatalf("totals row profit mismatch")
	}
}

func TestBuildReportIsRepeatable(t *testing.T) {
	s := NewStore()
	a := BuildReport(s)
	b := BuildReport(s)
	if !a.Totals.Profit.Equal(b.Totals.Profit) || len(a.Rows) != len(b.Rows) {
		t.Fatalf("report must be a pure function of store state")
	}
}

func TestEventsMemo(t *testing.T) {
	cases := []struct {
		events []CustomEvent
		want   string
	}{
		{nil, NoEventsMemo},
		{[]CustomEvent{{Name: "Fair"}}, "Fair"},
		{[]CustomEvent{{Name: "Fair", Memo: "spring"}}, "Fair(spring)"},
		{[]CustomEvent{{Name: "Fair", Memo: "spring"}, {Name: "Market"}}, "Fair(spring), Market"},
	}
	for _, tc := range cases {
		if got := EventsMemo(tc.events); got != tc.want {
			t.Fatalf("expected %q, got %q", tc.want, got)
		}
	}
}

func TestResultRows(t *testing.T) {
	s := NewStore()
	rows := ResultRows(s)

	want := 2*len(CategoryKeys()) + 3
	if len(rows) != want {
		t.Fatalf("rows: expected %d, got %d", want, len(rows))
	}

	last := rows[len(rows)-1]
	if last.Kind != "集計" || last.Label != "【利益】" {
		t.Fatalf("unexpected final row: %+v", last)
	}
	if !last.Amount.Equal(Aggregate(Categories(s)).Profit) {
		t.Fatalf("profit row does not match aggregate")
	}

	var income, expense decimal.Decimal
	for _, r := range rows {
		switch {
		case r.Kind == "収入":
			income = income.Add(r.Amount)
		case r.Kind == "支出":
			expense = expense.Add(r.Amount)
		}
	}
	if !last.Amount.Equal(income.Sub(expense)) {
		t.Fatalf("profit != income - expense over export rows")
	}
}
