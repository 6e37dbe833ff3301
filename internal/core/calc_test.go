package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func mustSet(t *testing.T, s *Store, key string, v int64) {
	t.Helper()
	if err := s.Set(key, v); err != nil {
		t.Fatalf("set %s: %v", key, err)
	}
}

func eq(t *testing.T, got decimal.Decimal, want int64, label string) {
	t.Helper()
	if !got.Equal(decimal.NewFromInt(want)) {
		t.Fatalf("%s: expected %d, got %s", label, want, got)
	}
}

func TestBaseResult(t *testing.T) {
	s := NewStore()
	mustSet(t, s, "inc_manage", 10000000)
	mustSet(t, s, "inc_misc", 100000)
	mustSet(t, s, "exp_wages", 5200000)
	mustSet(t, s, "exp_utilities", 1300000)
	mustSet(t, s, "exp_maintenance", 1100000)
	mustSet(t, s, "exp_ops", 1440000)
	mustSet(t, s, "exp_insurance", 100000)

	r := baseResult(s)
	eq(t, r.Income, 10100000, "base income")
	eq(t, r.Expense, 9140000, "base expense")
	eq(t, r.Profit(), 960000, "base profit")
}

func TestFacilityResult(t *testing.T) {
	s := NewStore()
	mustSet(t, s, "atelier_price", 10000)
	mustSet(t, s, "atelier_rate", 80)
	mustSet(t, s, "ground_price", 300)
	mustSet(t, s, "ground_count", 100)

	r := facilityResult(s)
	// 7 x 10000 x 12 x 0.8 = 672000, plus 300 x 100
	eq(t, r.Income, 702000, "facility income")
	eq(t, r.Expense, 0, "facility expense")
}

func TestShopResult(t *testing.T) {
	s := NewStore()
	mustSet(t, s, "sales_agri", 50000)
	mustSet(t, s, "rate_agri", 10)
	mustSet(t, s, "sales_craft", 100000)
	mustSet(t, s, "rate_craft", 20)
	mustSet(t, s, "sales_art", 50000)
	mustSet(t, s, "rate_art", 30)
	mustSet(t, s, "gacha_units", 2)
	mustSet(t, s, "gacha_per_day", 3)
	mustSet(t, s, "ws_users", 500)
	mustSet(t, s, "ws_price", 500)
	mustSet(t, s, "ws_mat_rate", 30)

	r := shopResult(s)
	// sales 200000x12 + gacha 500x2x3x250 + ws 500x500
	eq(t, r.Income, 3400000, "shop income")
	// 540000 + 960000 + 420000 + 600000 + 75000
	eq(t, r.Expense, 2595000, "shop expense")
	eq(t, r.Profit(), 805000, "shop profit")
}

func TestPlayAndStayAndExhibit(t *testing.T) {
	s := NewStore()
	mustSet(t, s, "play_day_price", 500)
	mustSet(t, s, "play_day_users", 1000)
	mustSet(t, s, "play_year_price", 5000)
	mustSet(t, s, "play_year_users", 20)
	mustSet(t, s, "play_material", 30000)
	r := playResult(s)
	eq(t, r.Income, 600000, "play income")
	eq(t, r.Expense, 30000, "play expense")

	mustSet(t, s, "stay_groups", 40)
	mustSet(t, s, "stay_price", 25000)
	mustSet(t, s, "stay_option", 100000)
	mustSet(t, s, "stay_staff", 8000)
	mustSet(t, s, "stay_maintenance", 200000)
	r = stayResult(s)
	eq(t, r.Income, 1100000, "stay income")
	eq(t, r.Expense, 520000, "stay expense")

	mustSet(t, s, "ex_visitors", 2000)
	mustSet(t, s, "ex_fee", 300)
	mustSet(t, s, "ex_rental", 50000)
	mustSet(t, s, "ex_material", 40000)
	mustSet(t, s, "ex_ad", 30000)
	mustSet(t, s, "ex_volunteers", 5)
	r = exhibitResult(s)
	eq(t, r.Income, 600000, "exhibit income")
	eq(t, r.Expense, 170000, "exhibit expense")
}

func TestEventsResult(t *testing.T) {
	s := NewStore()
	if err := s.Events().Add("Fair", 50000, 20000, ""); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Events().Add("Market", 30000, 10000, ""); err != nil {
		t.Fatalf("add: %v", err)
	}

	r := eventsResult(s.Events().All())
	eq(t, r.Income, 80000, "events income")
	eq(t, r.Expense, 30000, "events expense")
	eq(t, r.Profit(), 50000, "events profit")

	if err := s.Events().RemoveAt(0); err != nil {
		t.Fatalf("remove: %v", err)
	}
	r = eventsResult(s.Events().All())
	eq(t, r.Income, 30000, "events income after removal")
	eq(t, r.Expense, 10000, "events expense after removal")
}

func TestProfitInvariant(t *testing.T) {
	s := NewStore()
	results := Categories(s)
	for _, r := range results {
		if !r.Result.Profit().Equal(r.Result.Income.Sub(r.Result.Expense)) {
			t.Fatalf("%s: profit != income - expense", r.Key)
		}
	}
	totals := Aggregate(results)
	if !totals.Profit.Equal(totals.Income.Sub(totals.Expense)) {
		t.Fatalf("aggregate: profit != income - expense")
	}
}

func TestAggregateEmpty(t *testing.T) {
	totals := Aggregate(nil)
	eq(t, totals.Income, 0, "empty income")
	eq(t, totals.Expense, 0, "empty expense")
	eq(t, totals.Profit, 0, "empty profit")
}

func TestShopFractionalYenKeptExact(t *testing.T) {
	s := NewStore()
	// 12 x 55 x (1 - 0.15) = 561, and ws 3 x 55 x 0.33 = 54.45: the sum
	// must keep the fraction rather than round per term.
	for key, v := range map[string]int64{
		"sales_agri": 55, "rate_agri": 15,
		"sales_craft": 0, "rate_craft": 0,
		"sales_art": 0, "rate_art": 0,
		"gacha_units": 0, "gacha_per_day": 0,
		"ws_users": 3, "ws_price": 55, "ws_mat_rate": 33,
	} {
		mustSet(t, s, key, v)
	}
	want := decimal.RequireFromString("615.45")
	if got := shopResult(s).Expense; !got.Equal(want) {
		t.Fatalf("shop expense: expected %s, got %s", want, got)
	}
}
