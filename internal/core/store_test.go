package core

import (
	"errors"
	"testing"
	"time"
)

func TestStoreGetSetUnknownField(t *testing.T) {
	s := NewStore()

	if _, err := s.Get("nope"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("get unknown: expected ErrUnknownField, got %v", err)
	}
	if err := s.Set("nope", 1); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("set unknown: expected ErrUnknownField, got %v", err)
	}

	if err := s.Set("exp_wages", 1234); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, err := s.Get("exp_wages")
	if err != nil || v != 1234 {
		t.Fatalf("get after set: expected 1234, got %d (err=%v)", v, err)
	}
}

func TestStoreDefaults(t *testing.T) {
	s := NewStore()
	for _, f := range Fields() {
		v, err := s.Get(f.Key)
		if err != nil {
			t.Fatalf("get %s: %v", f.Key, err)
		}
		if v != f.Default {
			t.Fatalf("%s: expected default %d, got %d", f.Key, f.Default, v)
		}
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	s := NewStore()
	mustSet(t, s, "inc_manage", 12345678)
	mustSet(t, s, "atelier_rate", 55)
	if err := s.Events().Add("Fair", 50000, 20000, "spring"); err != nil {
		t.Fatalf("add: %v", err)
	}

	rec := s.Export("tester", time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	if rec.Date != "20260901" {
		t.Fatalf("date: got %q", rec.Date)
	}
	if len(rec.Values) != len(Fields()) {
		t.Fatalf("record keys: expected %d, got %d", len(Fields()), len(rec.Values))
	}

	restored := NewStore()
	restored.Import(rec)
	for _, f := range Fields() {
		a, _ := s.Get(f.Key)
		b, _ := restored.Get(f.Key)
		if a != b {
			t.Fatalf("%s: round trip mismatch %d != %d", f.Key, a, b)
		}
	}
	evs := restored.Events().All()
	if len(evs) != 1 || evs[0].Name != "Fair" || evs[0].Income != 50000 || evs[0].Memo != "spring" {
		t.Fatalf("events not restored: %+v", evs)
	}
}

func TestImportPartialRecord(t *testing.T) {
	s := NewStore()
	mustSet(t, s, "exp_wages", 7777)

	// Missing exp_wages must leave the current value; unknown keys are ignored.
	s.Import(Record{Values: map[string]int64{
		"inc_misc": 42,
		"foo":      999,
	}})

	if v, _ := s.Get("exp_wages"); v != 7777 {
		t.Fatalf("exp_wages: expected 7777, got %d", v)
	}
	if v, _ := s.Get("inc_misc"); v != 42 {
		t.Fatalf("inc_misc: expected 42, got %d", v)
	}
	if _, err := s.Get("foo"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("foo must not be imported")
	}
}

func TestImportWithoutEventsKeepsList(t *testing.T) {
	s := NewStore()
	if err := s.Events().Add("Fair", 1, 2, ""); err != nil {
		t.Fatalf("add: %v", err)
	}
	s.Import(Record{Values: map[string]int64{"inc_misc": 1}})
	if s.Events().Len() != 1 {
		t.Fatalf("events cleared by record without event list")
	}

	s.Import(Record{Values: nil, Events: []CustomEvent{}})
	if s.Events().Len() != 0 {
		t.Fatalf("empty event list must replace the current one")
	}
}

func TestReset(t *testing.T) {
	s := NewStore()
	mustSet(t, s, "inc_manage", 1)
	if err := s.Events().Add("Fair", 1, 2, ""); err != nil {
		t.Fatalf("add: %v", err)
	}

	s.Reset()

	if v, _ := s.Get("inc_manage"); v != 10000000 {
		t.Fatalf("inc_manage after reset: got %d", v)
	}
	if s.Events().Len() != 0 {
		t.Fatalf("events not cleared by reset")
	}
}
