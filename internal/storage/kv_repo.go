package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Persisted keys.
const (
	KeyTasks        = "tasks"
	KeyAchievements = "achievements"
	KeyProgress     = "progress"
)

// KVRepo stores textual values under string keys.
type KVRepo struct {
	db DBTX
}

func NewKVRepo(db DBTX) *KVRepo {
	return &KVRepo{db: db}
}

// Get returns the value under key. ok is false when the key was never written.
func (r *KVRepo) Get(ctx context.Context, key string) (value string, ok bool, err error) {
	row := r.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("kv get %s: %w", key, err)
	}
	return value, true, nil
}

func (r *KVRepo) Put(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, FormatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("kv put %s: %w", key, err)
	}
	return nil
}
