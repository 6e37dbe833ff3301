package configstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"biglabo/internal/core"
)

// MemoryStore keeps saved records in process memory, in save order. It is
// the default backend and the one tests use.
type MemoryStore struct {
	mu    sync.Mutex
	order []string
	items map[string]SavedConfig
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]SavedConfig)}
}

func (s *MemoryStore) Save(_ context.Context, name string, rec core.Record) (SavedConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := SavedConfig{
		Ref:       uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now(),
		Record:    copyRecord(rec),
	}
	s.items[saved.Ref] = saved
	s.order = append(s.order, saved.Ref)
	return saved, nil
}

func (s *MemoryStore) List(_ context.Context) ([]SavedConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]SavedConfig, 0, len(s.order))
	for _, ref := range s.order {
		it := s.items[ref]
		it.Record = copyRecord(it.Record)
		out = append(out, it)
	}
	return out, nil
}

func (s *MemoryStore) Load(_ context.Context, ref string) (SavedConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.items[ref]
	if !ok {
		return SavedConfig{}, ErrNotFound
	}
	it.Record = copyRecord(it.Record)
	return it, nil
}

func (s *MemoryStore) Delete(_ context.Context, ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[ref]; !ok {
		return ErrNotFound
	}
	delete(s.items, ref)
	for i, r := range s.order {
		if r == ref {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryStore) Close() error { return nil }

// copyRecord guards stored state against later mutation by the caller.
func copyRecord(rec core.Record) core.Record {
	out := core.Record{Creator: rec.Creator, Date: rec.Date}
	if rec.Values != nil {
		out.Values = make(map[string]int64, len(rec.Values))
		for k, v := range rec.Values {
			out.Values[k] = v
		}
	}
	if rec.Events != nil {
		out.Events = make([]core.CustomEvent, len(rec.Events))
		copy(out.Events, rec.Events)
	}
	return out
}
