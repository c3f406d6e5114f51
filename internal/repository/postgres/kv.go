package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/gophkeeper-profile/internal/model"
)

var _ model.KeyValueStore = (*KVRepository)(nil)

type KVRepository struct {
	db *Connection
}

func NewKVRepository(db *Connection) *KVRepository {
	return &KVRepository{
		db: db,
	}
}

func (r *KVRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	query := `SELECT value FROM profile_kv WHERE key = $1`

	err := r.db.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", model.ErrNotFound
		}
		return "", fmt.Errorf("failed to get value: %w", err)
	}

	return value, nil
}

func (r *KVRepository) Set(ctx context.Context, key, value string) error {
	query := `INSERT INTO profile_kv (key, value, updated_at)
			  VALUES ($1, $2, now())
			  ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`

	if _, err := r.db.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to set value: %w", err)
	}

	return nil
}

func (r *KVRepository) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM profile_kv WHERE key = $1`

	if _, err := r.db.Exec(ctx, query, key); err != nil {
		return fmt.Errorf("failed to delete value: %w", err)
	}

	return nil
}
