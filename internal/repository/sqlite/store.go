package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dtroode/gophkeeper-profile/internal/database"
	"github.com/dtroode/gophkeeper-profile/internal/model"
	"github.com/dtroode/gophkeeper-profile/internal/repository/sqlite/migrations"
)

var _ model.KeyValueStore = (*Store)(nil)

// Store keeps profile values in a local SQLite file.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens the SQLite file at path and applies migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}
	if err := database.Migrate(db, "sqlite3", migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return NewStore(db), nil
}

// NewStore wraps an already migrated database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM profile_kv WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", model.ErrNotFound
		}
		return "", fmt.Errorf("failed to get value: %w", err)
	}

	return value, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	query := `INSERT INTO profile_kv (key, value, updated_at) VALUES (?, ?, ?)
			  ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	if _, err := s.db.ExecContext(ctx, query, key, value, s.now().UTC().UnixMilli()); err != nil {
		return fmt.Errorf("failed to set value: %w", err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM profile_kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete value: %w", err)
	}

	return nil
}
