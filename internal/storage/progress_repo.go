package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type ProgressRepo struct {
	db DBTX
}

func NewProgressRepo(db DBTX) *ProgressRepo {
	return &ProgressRepo{db: db}
}

// Get returns the stored progress row, or nil if none has been written yet.
func (r *ProgressRepo) Get(ctx context.Context) (*Progress, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT level, current_xp, total_xp, tasks_completed, current_streak, longest_streak
		FROM progress WHERE key = ?
	`, KeyProgress)

	var p Progress
	if err := row.Scan(&p.Level, &p.CurrentXP, &p.TotalXP, &p.TasksCompleted, &p.CurrentStreak, &p.LongestStreak); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("progress get: %w", err)
	}
	return &p, nil
}

func (r *ProgressRepo) Upsert(ctx context.Context, p Progress) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO progress (key, level, current_xp, total_xp, tasks_completed, current_streak, longest_streak)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			level = excluded.level,
			current_xp = excluded.current_xp,
			total_xp = excluded.total_xp,
			tasks_completed = excluded.tasks_completed,
			current_streak = excluded.current_streak,
			longest_streak = excluded.longest_streak
	`, KeyProgress, p.Level, p.CurrentXP, p.TotalXP, p.TasksCompleted, p.CurrentStreak, p.LongestStreak)
	if err != nil {
		return fmt.Errorf("progress upsert: %w", err)
	}
	return nil
}
