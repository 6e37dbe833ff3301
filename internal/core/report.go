package core

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// NoEventsMemo is shown in the detail table when no custom event exists.
const NoEventsMemo = "イベント登録なし"

// CategoryAmount is one slice of a breakdown chart.
type CategoryAmount struct {
	Name   string
	Amount decimal.Decimal
}

// DetailRow is one line of the detail table.
type DetailRow struct {
	Name    string
	Income  decimal.Decimal
	Expense decimal.Decimal
	Profit  decimal.Decimal
	Memo    string
}

// ResultRow is one line of the flat result export (CSV or spreadsheet).
// Kind is 収入, 支出 or 集計.
type ResultRow struct {
	Kind   string
	Label  string
	Amount decimal.Decimal
	Detail string
}

// Report collects everything the presentation layer renders: breakdown data
// for the pie charts, the income-vs-expense balance pair, the detail table
// and the grand totals.
type Report struct {
	IncomeByCategory  []CategoryAmount
	ExpenseByCategory []CategoryAmount
	Totals            Totals
	Rows              []DetailRow
	TotalRow          DetailRow
}

// BuildReport recomputes every category and assembles the report. It is a
// pure formatting step; calling it twice on the same store state yields the
// same report.
func BuildReport(s *Store) Report {
	results := Categories(s)
	totals := Aggregate(results)

	rep := Report{Totals: totals}
	for _, r := range results {
		rep.IncomeByCategory = append(rep.IncomeByCategory, CategoryAmount{Name: r.Name, Amount: r.Result.Income})
		rep.ExpenseByCategory = append(rep.ExpenseByCategory, CategoryAmount{Name: r.Name, Amount: r.Result.Expense})
		rep.Rows = append(rep.Rows, DetailRow{
			Name:    r.Name,
			Income:  r.Result.Income,
			Expense: r.Result.Expense,
			Profit:  r.Result.Profit(),
			Memo:    categoryMemo(s, r.Key),
		})
	}
	rep.TotalRow = DetailRow{
		Name:    "合計",
		Income:  totals.Income,
		Expense: totals.Expense,
		Profit:  totals.Profit,
		Memo:    "収入 - 支出",
	}
	return rep
}

// ResultRows flattens the report into export rows: one income and one
// expense row per category, then the aggregate rows.
func ResultRows(s *Store) []ResultRow {
	results := Categories(s)
	totals := Aggregate(results)

	rows := make([]ResultRow, 0, 2*len(results)+3)
	for _, r := range results {
		detail := categoryMemo(s, r.Key)
		rows = append(rows,
			ResultRow{Kind: "収入", Label: r.Name, Amount: r.Result.Income, Detail: detail},
			ResultRow{Kind: "支出", Label: r.Name, Amount: r.Result.Expense, Detail: detail},
		)
	}
	rows = append(rows,
		ResultRow{Kind: "集計", Label: "総収入", Amount: totals.Income},
		ResultRow{Kind: "集計", Label: "総支出", Amount: totals.Expense},
		ResultRow{Kind: "集計", Label: "【利益】", Amount: totals.Profit, Detail: "収入 - 支出"},
	)
	return rows
}

// categoryMemo builds the 詳細 text for a category from the current values.
func categoryMemo(s *Store, key string) string {
	switch key {
	case CategoryBase:
		return "管理費・雑収入 / 固定費"
	case CategoryPlay:
		return fmt.Sprintf("1日券%d円 × %d人 + 年間パス%d円 × %d人",
			s.at("play_day_price"), s.at("play_day_users"),
			s.at("play_year_price"), s.at("play_year_users"))
	case CategoryFacility:
		return fmt.Sprintf("アトリエ7室 月額%d円 稼働率%d%% + グラウンド%d円 × %d回",
			s.at("atelier_price"), s.at("atelier_rate"),
			s.at("ground_price"), s.at("ground_count"))
	case CategoryShop:
		return fmt.Sprintf("物販3分野 + ガチャ%d台 × %d回/日 + WS%d人",
			s.at("gacha_units"), s.at("gacha_per_day"), s.at("ws_users"))
	case CategoryStay:
		return fmt.Sprintf("1泊%d円 × %d組", s.at("stay_price"), s.at("stay_groups"))
	case CategoryExhibit:
		return fmt.Sprintf("入場料%d円 × %d人", s.at("ex_fee"), s.at("ex_visitors"))
	case CategoryEvents:
		return EventsMemo(s.events.All())
	}
	return ""
}

// EventsMemo joins event names (with memo in parentheses when present) into
// the single memo string shown for the custom-event category.
func EventsMemo(events []CustomEvent) string {
	if len(events) == 0 {
		return NoEventsMemo
	}
	parts := make([]string, 0, len(events))
	for _, e := range events {
		if e.Memo != "" {
			parts = append(parts, e.Name+"("+e.Memo+")")
		} else {
			parts = append(parts, e.Name)
		}
	}
	return strings.Join(parts, ", ")
}
