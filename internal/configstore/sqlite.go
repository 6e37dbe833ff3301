package configstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"biglabo/internal/core"
	"biglabo/internal/record"
)

// SQLiteStore persists saved records in a local SQLite database. The record
// payload is stored as its JSON file form so the database row and the
// downloadable file stay interchangeable.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) Save(ctx context.Context, name string, rec core.Record) (SavedConfig, error) {
	payload, err := record.Encode(rec, record.FormatJSON)
	if err != nil {
		return SavedConfig{}, fmt.Errorf("encode record: %w", err)
	}

	saved := SavedConfig{
		Ref:       uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now(),
		Record:    rec,
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO configurations (ref, name, payload, created_at) VALUES (?, ?, ?, ?)`,
		saved.Ref, saved.Name, string(payload), saved.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return SavedConfig{}, fmt.Errorf("insert configuration: %w", err)
	}

	slog.InfoContext(ctx, "Configuration saved to SQLite", "ref", saved.Ref, "name", name)
	return saved, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]SavedConfig, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT ref, name, payload, created_at FROM configurations ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list configurations: %w", err)
	}
	defer rows.Close()

	var out []SavedConfig
	for rows.Next() {
		sc, err := scanConfig(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Load(ctx context.Context, ref string) (SavedConfig, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT ref, name, payload, created_at FROM configurations WHERE ref = ?`, ref)
	sc, err := scanConfig(row)
	if errors.Is(err, sql.ErrNoRows) {
		return SavedConfig{}, ErrNotFound
	}
	if err != nil {
		return SavedConfig{}, err
	}
	return sc, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, ref string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM configurations WHERE ref = ?`, ref)
	if err != nil {
		return fmt.Errorf("delete configuration: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanConfig(r rowScanner) (SavedConfig, error) {
	var sc SavedConfig
	var payload, createdAt string
	if err := r.Scan(&sc.Ref, &sc.Name, &payload, &createdAt); err != nil {
		return SavedConfig{}, err
	}
	rec, err := record.Decode([]byte(payload), record.FormatJSON)
	if err != nil {
		return SavedConfig{}, fmt.Errorf("decode stored payload: %w", err)
	}
	sc.Record = rec
	if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
		sc.CreatedAt = ts
	}
	return sc, nil
}
