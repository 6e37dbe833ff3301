package http

import (
	"strings"

	"github.com/shopspring/decimal"

	"biglabo/internal/core"
)

// fieldView is one numeric input with its widget constraints.
type fieldView struct {
	Key   string
	Label string
	Value int64
	Min   int64
	Max   int64
	Step  int64
}

// groupView is one input category in display order.
type groupView struct {
	Key    string
	Name   string
	Fields []fieldView
}

type eventView struct {
	Index   int
	Name    string
	Income  string
	Expense string
	Memo    string
}

type eventsView struct {
	Events []eventView
}

// barView is one slice of the income or expense breakdown bars. Width is a
// 0-100 percentage of the largest slice so the bars scale relative to each
// other.
type barView struct {
	Name   string
	Amount string
	Width  int64
}

type detailRowView struct {
	Name    string
	Income  string
	Expense string
	Profit  string
	Memo    string
}

type reportView struct {
	TotalIncome  string
	TotalExpense string
	Profit       string
	Deficit      bool
	IncomeBars   []barView
	ExpenseBars  []barView
	Rows         []detailRowView
	TotalRow     detailRowView
}

type pageView struct {
	Groups []groupView
	Events eventsView
	Report reportView
}

// buildGroups arranges the current field values by category for rendering.
// Caller holds the session lock.
func buildGroups(s *core.Store) []groupView {
	byCategory := make(map[string][]fieldView)
	for _, f := range core.Fields() {
		v, _ := s.Get(f.Key)
		byCategory[f.Category] = append(byCategory[f.Category], fieldView{
			Key:   f.Key,
			Label: f.Label,
			Value: v,
			Min:   f.Min,
			Max:   f.Max,
			Step:  f.Step,
		})
	}

	groups := make([]groupView, 0, len(core.CategoryKeys()))
	for _, key := range core.CategoryKeys() {
		if key == core.CategoryEvents {
			continue // rendered by the events partial
		}
		groups = append(groups, groupView{
			Key:    key,
			Name:   core.CategoryName(key),
			Fields: byCategory[key],
		})
	}
	return groups
}

func buildEventsView(s *core.Store) eventsView {
	var ev eventsView
	for i, e := range s.Events().All() {
		ev.Events = append(ev.Events, eventView{
			Index:   i,
			Name:    e.Name,
			Income:  formatYen(decimal.NewFromInt(e.Income)),
			Expense: formatYen(decimal.NewFromInt(e.Expense)),
			Memo:    e.Memo,
		})
	}
	return ev
}

func buildReportView(s *core.Store) reportView {
	rep := core.BuildReport(s)

	view := reportView{
		TotalIncome:  formatYen(rep.Totals.Income),
		TotalExpense: formatYen(rep.Totals.Expense),
		Profit:       formatYen(rep.Totals.Profit),
		Deficit:      rep.Totals.Profit.IsNegative(),
		IncomeBars:   buildBars(rep.IncomeByCategory),
		ExpenseBars:  buildBars(rep.ExpenseByCategory),
		TotalRow: detailRowView{
			Name:    rep.TotalRow.Name,
			Income:  formatYen(rep.TotalRow.Income),
			Expense: formatYen(rep.TotalRow.Expense),
			Profit:  formatYen(rep.TotalRow.Profit),
			Memo:    rep.TotalRow.Memo,
		},
	}
	for _, row := range rep.Rows {
		view.Rows = append(view.Rows, detailRowView{
			Name:    row.Name,
			Income:  formatYen(row.Income),
			Expense: formatYen(row.Expense),
			Profit:  formatYen(row.Profit),
			Memo:    row.Memo,
		})
	}
	return view
}

func buildBars(amounts []core.CategoryAmount) []barView {
	max := decimal.Zero
	for _, a := range amounts {
		if a.Amount.GreaterThan(max) {
			max = a.Amount
		}
	}

	bars := make([]barView, 0, len(amounts))
	for _, a := range amounts {
		var width int64
		if max.IsPositive() {
			width = a.Amount.Div(max).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
		}
		bars = append(bars, barView{
			Name:   a.Name,
			Amount: formatYen(a.Amount),
			Width:  width,
		})
	}
	return bars
}

// formatYen renders an amount as a yen string with thousands separators,
// rounding to whole yen for display only.
func formatYen(d decimal.Decimal) string {
	s := d.Round(0).StringFixed(0)

	neg := strings.HasPrefix(s, "-")
	digits := strings.TrimPrefix(s, "-")

	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	if neg {
		return "-¥" + b.String()
	}
	return "¥" + b.String()
}
