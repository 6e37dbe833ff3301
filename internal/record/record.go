// Package record encodes and decodes configuration snapshots as files.
//
// The on-disk shape is a flat mapping: one key per configuration field plus
// creator, date and the custom_events list. JSON is the primary format;
// YAML is accepted on import and selectable on export.
package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"biglabo/internal/core"
)

// ErrMalformedRecord marks an unparseable or wrongly shaped configuration
// file. The store is left untouched when it is returned.
var ErrMalformedRecord = errors.New("malformed configuration record")

// Format selects a file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForName picks the format from a file name, defaulting to JSON.
func FormatForName(name string) Format {
	switch {
	case strings.HasSuffix(name, ".yaml"), strings.HasSuffix(name, ".yml"):
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Filename builds the suggested download name: <creator><YYYYMMDD>.<ext>.
func Filename(creator string, now time.Time, f Format) string {
	creator = strings.TrimSpace(creator)
	if creator == "" {
		creator = "biglabo"
	}
	ext := "json"
	if f == FormatYAML {
		ext = "yaml"
	}
	return creator + now.Format("20060102") + "." + ext
}

type eventPayload struct {
	Name string `json:"name" yaml:"name"`
	Inc  int64  `json:"inc" yaml:"inc"`
	Exp  int64  `json:"exp" yaml:"exp"`
	Memo string `json:"memo,omitempty" yaml:"memo,omitempty"`
}

// Encode serializes a record in the requested format.
func Encode(rec core.Record, f Format) ([]byte, error) {
	flat := make(map[string]any, len(rec.Values)+3)
	for k, v := range rec.Values {
		flat[k] = v
	}
	flat["creator"] = rec.Creator
	flat["date"] = rec.Date
	events := make([]eventPayload, 0, len(rec.Events))
	for _, e := range rec.Events {
		events = append(events, eventPayload{Name: e.Name, Inc: e.Income, Exp: e.Expense, Memo: e.Memo})
	}
	flat["custom_events"] = events

	if f == FormatYAML {
		return yaml.Marshal(flat)
	}
	return json.MarshalIndent(flat, "", "  ")
}

// Decode parses a configuration file and coerces each value against the
// default field table. Unknown keys are dropped; a field whose value cannot
// be coerced is skipped without aborting the rest of the record.
func Decode(data []byte, f Format) (core.Record, error) {
	var raw map[string]any
	var err error
	if f == FormatYAML {
		err = yaml.Unmarshal(data, &raw)
	} else {
		err = json.Unmarshal(data, &raw)
	}
	if err != nil || raw == nil {
		return core.Record{}, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}

	rec := core.Record{Values: make(map[string]int64)}
	for key, value := range raw {
		switch key {
		case "creator":
			if s, ok := value.(string); ok {
				rec.Creator = s
			}
		case "date":
			if s, ok := value.(string); ok {
				rec.Date = s
			}
		case "custom_events":
			rec.Events = decodeEvents(value)
		default:
			if _, known := core.FieldByKey(key); !known {
				continue
			}
			if n, ok := coerceInt(value); ok {
				rec.Values[key] = n
			}
		}
	}
	return rec, nil
}

// decodeEvents converts the raw custom_events entry, keeping only items with
// a usable name. A present but empty list yields an empty non-nil slice so
// the import replaces the current events.
func decodeEvents(value any) []core.CustomEvent {
	items, ok := value.([]any)
	if !ok {
		return nil
	}
	events := make([]core.CustomEvent, 0, len(items))
	for _, item := range items {
		m, ok := asStringMap(item)
		if !ok {
			continue
		}
		name, _ := m["name"].(string)
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		inc, _ := coerceInt(m["inc"])
		exp, _ := coerceInt(m["exp"])
		memo, _ := m["memo"].(string)
		if inc < 0 {
			inc = 0
		}
		if exp < 0 {
			exp = 0
		}
		events = append(events, core.CustomEvent{Name: name, Income: inc, Expense: exp, Memo: memo})
	}
	return events
}

// asStringMap normalizes decoded maps; YAML may produce map[string]any
// already, JSON always does.
func asStringMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// coerceInt applies the numeric coercion rule: any numeric representation
// becomes an integer, everything else is rejected.
func coerceInt(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int:
		return int64(n), true
	case int64:
		return n, true
	case uint64:
		return int64(n), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		if f, err := n.Float64(); err == nil {
			return int64(f), true
		}
		return 0, false
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int64(f), true
		}
		return 0, false
	default:
		return 0, false
	}
}

// IsLikelyRecord reports whether data parses as one of the accepted shapes
// without committing to an import. Used to give upload errors early.
func IsLikelyRecord(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return false
	}
	var m map[string]any
	if json.Unmarshal(trimmed, &m) == nil {
		return true
	}
	return yaml.Unmarshal(trimmed, &m) == nil
}
