package memory

import (
	"context"
	"sync"

	"biglabo/internal/core"
)

// Store collects appended result blocks in memory. Used as the default
// result sink and by the worker tests.
type Store struct {
	mu     sync.Mutex
	blocks []Block
}

// Block is one appended result table.
type Block struct {
	Name string
	Rows []core.ResultRow
}

func New() *Store {
	return &Store{}
}

func (s *Store) AppendResults(_ context.Context, name string, rows []core.ResultRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]core.ResultRow, len(rows))
	copy(copied, rows)
	s.blocks = append(s.blocks, Block{Name: name, Rows: copied})
	return nil
}

// Blocks returns a copy of everything appended so far.
func (s *Store) Blocks() []Block {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Block, len(s.blocks))
	copy(out, s.blocks)
	return out
}
