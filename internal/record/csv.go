package record

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"biglabo/internal/core"
)

// utf8BOM lets Excel and other spreadsheet tools detect the encoding of the
// exported CSV (the equivalent of utf-8-sig).
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ResultCSV renders the flat result rows as a spreadsheet-friendly CSV:
// 区分 (income/expense/total), 項目, 金額, 詳細. Amounts are rounded to whole
// yen for display; the underlying report keeps full precision.
func ResultCSV(rows []core.ResultRow) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"区分", "項目", "金額", "詳細"}); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range rows {
		rec := []string{r.Kind, r.Label, r.Amount.Round(0).String(), r.Detail}
		if err := w.Write(rec); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
