package storage

import (
	"context"
	"fmt"
	"time"
)

type CompletionRepo struct {
	db DBTX
}

func NewCompletionRepo(db DBTX) *CompletionRepo {
	return &CompletionRepo{db: db}
}

func (r *CompletionRepo) Insert(ctx context.Context, e CompletionEntry) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO task_completions (task_id, title, xp_delta, level_after, occurred_at)
		VALUES (?, ?, ?, ?, ?)
	`, e.TaskID, e.Title, e.XPDelta, e.LevelAfter, FormatTime(e.OccurredAt))
	if err != nil {
		return 0, fmt.Errorf("completion insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("completion last insert id: %w", err)
	}
	return id, nil
}

// ListRecent returns up to limit entries, newest first. limit <= 0 means no limit.
func (r *CompletionRepo) ListRecent(ctx context.Context, limit int) ([]CompletionEntry, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, task_id, title, xp_delta, level_after, occurred_at
		FROM task_completions
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("completion list: %w", err)
	}
	defer rows.Close()

	var out []CompletionEntry
	for rows.Next() {
		var (
			e  CompletionEntry
			at string
		)
		if err := rows.Scan(&e.ID, &e.TaskID, &e.Title, &e.XPDelta, &e.LevelAfter, &at); err != nil {
			return nil, fmt.Errorf("completion scan: %w", err)
		}
		t, err := ParseTime(at)
		if err != nil {
			return nil, fmt.Errorf("completion occurred_at: %w", err)
		}
		e.OccurredAt = t
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("completion rows: %w", err)
	}
	return out, nil
}

func (r *CompletionRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM task_completions`); err != nil {
		return fmt.Errorf("completion delete all: %w", err)
	}
	return nil
}

// CountSince counts completions (entries with a positive XP delta) recorded
// at or after since. Reopen entries are not counted.
func (r *CompletionRepo) CountSince(ctx context.Context, since time.Time) (int, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM task_completions WHERE occurred_at >= ? AND xp_delta > 0
	`, FormatTime(since))
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("completion count: %w", err)
	}
	return n, nil
}
