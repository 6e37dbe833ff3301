package core

import "time"

// Store holds the current value of every configuration field plus the
// custom-event list. The presentation layer owns the single instance; the
// store itself does no locking.
type Store struct {
	values map[string]int64
	events EventList
}

// NewStore creates a store populated with every default-table value.
func NewStore() *Store {
	s := &Store{values: make(map[string]int64, len(fieldTable))}
	for _, f := range fieldTable {
		s.values[f.Key] = f.Default
	}
	return s
}

// Get returns the current value of a field.
func (s *Store) Get(key string) (int64, error) {
	v, ok := s.values[key]
	if !ok {
		return 0, ErrUnknownField
	}
	return v, nil
}

// Set overwrites the current value of a field. The value is stored as given;
// range constraints are widget metadata, not a storage invariant.
func (s *Store) Set(key string, value int64) error {
	if _, ok := s.values[key]; !ok {
		return ErrUnknownField
	}
	s.values[key] = value
	return nil
}

// Events returns the store's custom-event registry.
func (s *Store) Events() *EventList {
	return &s.events
}

// Reset restores every field to its default and clears the event list.
func (s *Store) Reset() {
	for _, f := range fieldTable {
		s.values[f.Key] = f.Default
	}
	s.events.clear()
}

// at returns the value of a known field. Only calculators use it, and only
// with keys from the default table, so a miss cannot happen after NewStore.
func (s *Store) at(key string) int64 {
	return s.values[key]
}

// Record is the exported snapshot of a store: one entry per default-table
// field plus the event list, a creator name and a generation date.
type Record struct {
	Creator string
	Date    string // YYYYMMDD
	Values  map[string]int64
	Events  []CustomEvent
}

// Export snapshots every field and the event list.
func (s *Store) Export(creator string, now time.Time) Record {
	rec := Record{
		Creator: creator,
		Date:    now.Format("20060102"),
		Values:  make(map[string]int64, len(s.values)),
	}
	for _, f := range fieldTable {
		rec.Values[f.Key] = s.values[f.Key]
	}
	rec.Events = s.events.All()
	return rec
}

// Import applies a record key by key. Keys outside the default table are
// ignored; table keys absent from the record keep their current value. A nil
// Events slice means the record carried no event list, so the current one is
// kept; an empty non-nil slice replaces it.
func (s *Store) Import(rec Record) {
	for key, value := range rec.Values {
		if _, ok := s.values[key]; ok {
			s.values[key] = value
		}
	}
	if rec.Events != nil {
		s.events.replace(rec.Events)
	}
}
