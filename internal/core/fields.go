// Package core implements the simulation model: the configuration field
// table, the per-category income/expense calculators and the report assembly.
//
// Every figure is recomputed from the current field values on each read;
// nothing in this package caches results or touches I/O.
package core

import "errors"

var (
	ErrUnknownField    = errors.New("unknown configuration field")
	ErrEmptyEventName  = errors.New("event name is empty")
	ErrIndexOutOfRange = errors.New("event index out of range")
)

// FieldKind describes how a field value is interpreted by the calculators.
type FieldKind int

const (
	KindYen     FieldKind = iota // integer yen amount
	KindPercent                  // integer 0-100, used as value/100
	KindCount                    // plain count
)

// Category keys, in display order.
const (
	CategoryBase     = "base"
	CategoryPlay     = "play"
	CategoryFacility = "facility"
	CategoryShop     = "shop"
	CategoryStay     = "stay"
	CategoryExhibit  = "exhibit"
	CategoryEvents   = "events"
)

// FieldSpec describes one named input: its default value and the input
// widget constraints the presentation surface should apply.
type FieldSpec struct {
	Key      string
	Label    string
	Kind     FieldKind
	Category string
	Default  int64
	Min      int64
	Max      int64
	Step     int64
}

// fieldTable is the fixed default table. Order matters: it is the order
// fields are grouped and rendered in, and the iteration order of Export.
var fieldTable = []FieldSpec{
	// 基本収支 (fixed income and running costs)
	{Key: "inc_manage", Label: "管理費収入 (円/年)", Kind: KindYen, Category: CategoryBase, Default: 10000000, Min: 0, Max: 50000000, Step: 100000},
	{Key: "inc_misc", Label: "雑収入 (円/年)", Kind: KindYen, Category: CategoryBase, Default: 100000, Min: 0, Max: 10000000, Step: 10000},
	{Key: "exp_wages", Label: "人件費 (円/年)", Kind: KindYen, Category: CategoryBase, Default: 5200000, Min: 0, Max: 50000000, Step: 100000},
	{Key: "exp_utilities", Label: "水道光熱費 (円/年)", Kind: KindYen, Category: CategoryBase, Default: 1300000, Min: 0, Max: 10000000, Step: 50000},
	{Key: "exp_maintenance", Label: "修繕・保守費 (円/年)", Kind: KindYen, Category: CategoryBase, Default: 1100000, Min: 0, Max: 10000000, Step: 50000},
	{Key: "exp_ops", Label: "運営基礎費 (円/年)", Kind: KindYen, Category: CategoryBase, Default: 1440000, Min: 0, Max: 10000000, Step: 10000},
	{Key: "exp_insurance", Label: "保険料 (円/年)", Kind: KindYen, Category: CategoryBase, Default: 100000, Min: 0, Max: 5000000, Step: 10000},

	// 遊び場 (play space)
	{Key: "play_day_price", Label: "1日利用券 単価 (円)", Kind: KindYen, Category: CategoryPlay, Default: 500, Min: 0, Max: 5000, Step: 50},
	{Key: "play_day_users", Label: "1日利用者数 (人/年)", Kind: KindCount, Category: CategoryPlay, Default: 5000, Min: 0, Max: 50000, Step: 100},
	{Key: "play_year_price", Label: "年間パス 単価 (円)", Kind: KindYen, Category: CategoryPlay, Default: 5000, Min: 0, Max: 50000, Step: 500},
	{Key: "play_year_users", Label: "年間パス会員数 (人)", Kind: KindCount, Category: CategoryPlay, Default: 100, Min: 0, Max: 2000, Step: 10},
	{Key: "play_material", Label: "消耗品・材料費 (円/年)", Kind: KindYen, Category: CategoryPlay, Default: 200000, Min: 0, Max: 5000000, Step: 10000},

	// 施設貸し (facility rental)
	{Key: "atelier_price", Label: "アトリエ月額賃料 (円)", Kind: KindYen, Category: CategoryFacility, Default: 10000, Min: 0, Max: 100000, Step: 1000},
	{Key: "atelier_rate", Label: "アトリエ稼働率 (%)", Kind: KindPercent, Category: CategoryFacility, Default: 80, Min: 0, Max: 100, Step: 5},
	{Key: "ground_price", Label: "グラウンド利用料 (円/回)", Kind: KindYen, Category: CategoryFacility, Default: 300, Min: 0, Max: 10000, Step: 100},
	{Key: "ground_count", Label: "グラウンド利用回数 (回/年)", Kind: KindCount, Category: CategoryFacility, Default: 100, Min: 0, Max: 1000, Step: 10},

	// ショップ (shop)
	{Key: "sales_agri", Label: "農産品 月間売上 (円)", Kind: KindYen, Category: CategoryShop, Default: 50000, Min: 0, Max: 2000000, Step: 10000},
	{Key: "rate_agri", Label: "農産品 原価率 (%)", Kind: KindPercent, Category: CategoryShop, Default: 10, Min: 0, Max: 100, Step: 5},
	{Key: "sales_craft", Label: "クラフト 月間売上 (円)", Kind: KindYen, Category: CategoryShop, Default: 100000, Min: 0, Max: 2000000, Step: 10000},
	{Key: "rate_craft", Label: "クラフト 原価率 (%)", Kind: KindPercent, Category: CategoryShop, Default: 20, Min: 0, Max: 100, Step: 5},
	{Key: "sales_art", Label: "アート作品 月間売上 (円)", Kind: KindYen, Category: CategoryShop, Default: 50000, Min: 0, Max: 2000000, Step: 10000},
	{Key: "rate_art", Label: "アート作品 原価率 (%)", Kind: KindPercent, Category: CategoryShop, Default: 30, Min: 0, Max: 100, Step: 5},
	{Key: "gacha_units", Label: "ガチャ設置台数 (台)", Kind: KindCount, Category: CategoryShop, Default: 2, Min: 0, Max: 20, Step: 1},
	{Key: "gacha_per_day", Label: "ガチャ回転数 (回/日/台)", Kind: KindCount, Category: CategoryShop, Default: 3, Min: 0, Max: 50, Step: 1},
	{Key: "ws_users", Label: "ワークショップ参加者 (人/年)", Kind: KindCount, Category: CategoryShop, Default: 500, Min: 0, Max: 5000, Step: 50},
	{Key: "ws_price", Label: "ワークショップ参加費 (円)", Kind: KindYen, Category: CategoryShop, Default: 500, Min: 0, Max: 10000, Step: 100},
	{Key: "ws_mat_rate", Label: "ワークショップ材料費率 (%)", Kind: KindPercent, Category: CategoryShop, Default: 30, Min: 0, Max: 100, Step: 5},

	// 宿泊 (lodging)
	{Key: "stay_groups", Label: "宿泊組数 (組/年)", Kind: KindCount, Category: CategoryStay, Default: 50, Min: 0, Max: 500, Step: 5},
	{Key: "stay_price", Label: "1泊料金 (円/組)", Kind: KindYen, Category: CategoryStay, Default: 30000, Min: 0, Max: 200000, Step: 1000},
	{Key: "stay_option", Label: "オプション収入 (円/年)", Kind: KindYen, Category: CategoryStay, Default: 200000, Min: 0, Max: 5000000, Step: 10000},
	{Key: "stay_staff", Label: "夜間スタッフ費 (円/組)", Kind: KindYen, Category: CategoryStay, Default: 10000, Min: 0, Max: 100000, Step: 1000},
	{Key: "stay_maintenance", Label: "宿泊棟維持費 (円/年)", Kind: KindYen, Category: CategoryStay, Default: 300000, Min: 0, Max: 10000000, Step: 50000},

	// 展示 (exhibition)
	{Key: "ex_visitors", Label: "有料入場者数 (人/年)", Kind: KindCount, Category: CategoryExhibit, Default: 1000, Min: 0, Max: 30000, Step: 100},
	{Key: "ex_fee", Label: "入場料 (円)", Kind: KindYen, Category: CategoryExhibit, Default: 500, Min: 0, Max: 5000, Step: 100},
	{Key: "ex_rental", Label: "展示借用費 (円/年)", Kind: KindYen, Category: CategoryExhibit, Default: 100000, Min: 0, Max: 5000000, Step: 10000},
	{Key: "ex_material", Label: "展示制作費 (円/年)", Kind: KindYen, Category: CategoryExhibit, Default: 100000, Min: 0, Max: 5000000, Step: 10000},
	{Key: "ex_ad", Label: "広告宣伝費 (円/年)", Kind: KindYen, Category: CategoryExhibit, Default: 50000, Min: 0, Max: 5000000, Step: 10000},
	{Key: "ex_volunteers", Label: "ボランティア人数 (人)", Kind: KindCount, Category: CategoryExhibit, Default: 10, Min: 0, Max: 200, Step: 1},
}

var fieldIndex = buildFieldIndex()

func buildFieldIndex() map[string]FieldSpec {
	idx := make(map[string]FieldSpec, len(fieldTable))
	for _, f := range fieldTable {
		idx[f.Key] = f
	}
	return idx
}

// Fields returns the default field table in display order.
func Fields() []FieldSpec {
	out := make([]FieldSpec, len(fieldTable))
	copy(out, fieldTable)
	return out
}

// FieldByKey looks up a field spec by key.
func FieldByKey(key string) (FieldSpec, bool) {
	f, ok := fieldIndex[key]
	return f, ok
}

// CategoryName returns the display name for a category key.
func CategoryName(key string) string {
	switch key {
	case CategoryBase:
		return "基本収支"
	case CategoryPlay:
		return "遊び場"
	case CategoryFacility:
		return "施設貸し"
	case CategoryShop:
		return "ショップ"
	case CategoryStay:
		return "宿泊"
	case CategoryExhibit:
		return "展示"
	case CategoryEvents:
		return "独自イベント"
	}
	return key
}

// CategoryKeys returns all category keys in display order.
func CategoryKeys() []string {
	return []string{
		CategoryBase, CategoryPlay, CategoryFacility,
		CategoryShop, CategoryStay, CategoryExhibit, CategoryEvents,
	}
}
