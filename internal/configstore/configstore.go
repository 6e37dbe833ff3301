// Package configstore persists named configuration records. Saves only
// happen on explicit user action; the simulator itself never writes here.
package configstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"biglabo/internal/config"
	"biglabo/internal/core"
)

// ErrNotFound is returned when a reference resolves to no saved record.
var ErrNotFound = errors.New("configuration not found")

// SavedConfig is one stored snapshot, addressed by an opaque reference.
type SavedConfig struct {
	Ref       string
	Name      string
	CreatedAt time.Time
	Record    core.Record
}

// Store is the port implemented by the memory and sqlite backends.
type Store interface {
	Save(ctx context.Context, name string, rec core.Record) (SavedConfig, error)
	List(ctx context.Context) ([]SavedConfig, error)
	Load(ctx context.Context, ref string) (SavedConfig, error)
	Delete(ctx context.Context, ref string) error
	Close() error
}

// NewFromConfig selects the backend from configuration.
func NewFromConfig(cfg *config.Config) (Store, error) {
	switch cfg.ConfigBackend {
	case "sqlite":
		return NewSQLiteStore(cfg.SQLiteDBPath)
	case "memory", "":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown config backend %q", cfg.ConfigBackend)
	}
}
