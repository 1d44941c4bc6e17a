package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// UserScore is the per-module aggregate: the best score ever achieved and
// the number of attempts.
type UserScore struct {
	ModuleID   string    `db:"module_id"`
	BestScore  int       `db:"best_score"`
	Attempts   int       `db:"attempts"`
	LastPlayed time.Time `db:"last_played"`
}

// ScoreRepo persists and queries the per-module aggregates.
type ScoreRepo interface {
	// Record folds a new session score into the module's aggregate. The
	// best score only ever goes up; attempts always increment.
	Record(ctx context.Context, moduleID string, score int, playedAt time.Time) error

	// Get returns the aggregate for one module, or nil if the module has
	// never been played.
	Get(ctx context.Context, moduleID string) (*UserScore, error)

	// All returns every aggregate, most recently played first.
	All(ctx context.Context) ([]UserScore, error)

	// DeleteAll removes every aggregate.
	DeleteAll(ctx context.Context) error
}

type scoreRepo struct {
	db *sqlx.DB
}

func (r *scoreRepo) Record(ctx context.Context, moduleID string, score int, playedAt time.Time) error {
	if playedAt.IsZero() {
		playedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_scores (module_id, best_score, attempts, last_played)
		VALUES (?, ?, 1, ?)
		ON CONFLICT (module_id) DO UPDATE SET
			best_score  = MAX(best_score, excluded.best_score),
			attempts    = attempts + 1,
			last_played = excluded.last_played`,
		moduleID, score, playedAt,
	)
	if err != nil {
		return fmt.Errorf("record score for %s: %w", moduleID, err)
	}
	return nil
}

func (r *scoreRepo) Get(ctx context.Context, moduleID string) (*UserScore, error) {
	var s UserScore
	err := r.db.GetContext(ctx, &s,
		`SELECT * FROM user_scores WHERE module_id = ?`, moduleID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get score for %s: %w", moduleID, err)
	}
	return &s, nil
}

func (r *scoreRepo) All(ctx context.Context) ([]UserScore, error) {
	var scores []UserScore
	err := r.db.SelectContext(ctx, &scores,
		`SELECT * FROM user_scores ORDER BY last_played DESC`)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	return scores, nil
}

func (r *scoreRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM user_scores`); err != nil {
		return fmt.Errorf("delete scores: %w", err)
	}
	return nil
}
