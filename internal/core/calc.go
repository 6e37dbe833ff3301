package core

import "github.com/shopspring/decimal"

// Result is one category's computed income/expense pair. Decimal keeps the
// shop category's fractional yen exact when summed with the other categories;
// rounding happens only at display time.
type Result struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// Profit returns income minus expense.
func (r Result) Profit() decimal.Decimal {
	return r.Income.Sub(r.Expense)
}

// CategoryResult pairs a category with its computed result.
type CategoryResult struct {
	Key    string
	Name   string
	Result Result
}

// Gacha revenue model constants carried over from the source simulation:
// 500 yen per turn, 250 operating days per year, 80% cost ratio.
const (
	gachaUnitYen = 500
	gachaDays    = 250
)

var gachaCostRate = decimal.RequireFromString("0.8")

func yen(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// pct converts an integer 0-100 field value into a ratio.
func pct(v int64) decimal.Decimal {
	return decimal.NewFromInt(v).Div(decimal.NewFromInt(100))
}

func baseResult(s *Store) Result {
	return Result{
		Income:  yen(s.at("inc_manage") + s.at("inc_misc")),
		Expense: yen(s.at("exp_wages") + s.at("exp_utilities") + s.at("exp_maintenance") + s.at("exp_ops") + s.at("exp_insurance")),
	}
}

func playResult(s *Store) Result {
	return Result{
		Income:  yen(s.at("play_day_price")*s.at("play_day_users") + s.at("play_year_price")*s.at("play_year_users")),
		Expense: yen(s.at("play_material")),
	}
}

func facilityResult(s *Store) Result {
	// 7 ateliers, 12 months, scaled by occupancy.
	atelier := yen(7 * s.at("atelier_price") * 12).Mul(pct(s.at("atelier_rate")))
	ground := yen(s.at("ground_price") * s.at("ground_count"))
	return Result{Income: atelier.Add(ground), Expense: decimal.Zero}
}

func shopResult(s *Store) Result {
	gacha := int64(gachaUnitYen) * s.at("gacha_units") * s.at("gacha_per_day") * gachaDays
	ws := s.at("ws_users") * s.at("ws_price")

	income := yen((s.at("sales_agri")+s.at("sales_craft")+s.at("sales_art"))*12 + gacha + ws)

	expense := decimal.Zero
	for _, c := range []struct{ sales, rate string }{
		{"sales_agri", "rate_agri"},
		{"sales_craft", "rate_craft"},
		{"sales_art", "rate_art"},
	} {
		keep := decimal.NewFromInt(1).Sub(pct(s.at(c.rate)))
		expense = expense.Add(yen(s.at(c.sales) * 12).Mul(keep))
	}
	expense = expense.Add(yen(gacha).Mul(gachaCostRate))
	expense = expense.Add(yen(ws).Mul(pct(s.at("ws_mat_rate"))))

	return Result{Income: income, Expense: expense}
}

func stayResult(s *Store) Result {
	return Result{
		Income:  yen(s.at("stay_groups")*s.at("stay_price") + s.at("stay_option")),
		Expense: yen(s.at("stay_groups")*s.at("stay_staff") + s.at("stay_maintenance")),
	}
}

func exhibitResult(s *Store) Result {
	return Result{
		Income:  yen(s.at("ex_visitors") * s.at("ex_fee")),
		Expense: yen(s.at("ex_rental") + s.at("ex_material") + s.at("ex_ad") + s.at("ex_volunteers")*10000),
	}
}

func eventsResult(events []CustomEvent) Result {
	var income, expense int64
	for _, e := range events {
		income += e.Income
		expense += e.Expense
	}
	return Result{Income: yen(income), Expense: yen(expense)}
}

// Categories recomputes every category from the current store state, in
// display order.
func Categories(s *Store) []CategoryResult {
	return []CategoryResult{
		{Key: CategoryBase, Name: CategoryName(CategoryBase), Result: baseResult(s)},
		{Key: CategoryPlay, Name: CategoryName(CategoryPlay), Result: playResult(s)},
		{Key: CategoryFacility, Name: CategoryName(CategoryFacility), Result: facilityResult(s)},
		{Key: CategoryShop, Name: CategoryName(CategoryShop), Result: shopResult(s)},
		{Key: CategoryStay, Name: CategoryName(CategoryStay), Result: stayResult(s)},
		{Key: CategoryExhibit, Name: CategoryName(CategoryExhibit), Result: exhibitResult(s)},
		{Key: CategoryEvents, Name: CategoryName(CategoryEvents), Result: eventsResult(s.events.All())},
	}
}
