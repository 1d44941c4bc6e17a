package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// ProgressEntry is one completed exercise session. Entries are append-only:
// every finished session adds a row, nothing is ever updated in place.
type ProgressEntry struct {
	ID             int64     `db:"id"`
	SessionID      string    `db:"session_id"`
	ModuleID       string    `db:"module_id"`
	LearningMode   string    `db:"learning_mode"`
	Score          int       `db:"score"`
	TotalQuestions int       `db:"total_questions"`
	CorrectAnswers int       `db:"correct_answers"`
	TimeSpentSecs  int       `db:"time_spent_secs"`
	Timestamp      time.Time `db:"timestamp"`
}

// DaySummary aggregates the sessions played on one calendar day.
type DaySummary struct {
	Day           string  `db:"day"` // YYYY-MM-DD
	Sessions      int     `db:"sessions"`
	AvgScore      float64 `db:"avg_score"`
	TimeSpentSecs int     `db:"time_spent_secs"`
}

// ProgressRepo persists and queries the session history.
type ProgressRepo interface {
	// Append records a finished session.
	Append(ctx context.Context, e *ProgressEntry) error

	// CompletedModules returns the set of module IDs with at least one
	// recorded session.
	CompletedModules(ctx context.Context) (map[string]bool, error)

	// Recent returns the most recent entries, newest first.
	Recent(ctx context.Context, limit int) ([]ProgressEntry, error)

	// ByDay aggregates sessions per calendar day over the last `days`
	// days, newest first.
	ByDay(ctx context.Context, days int) ([]DaySummary, error)

	// Count returns the total number of recorded sessions.
	Count(ctx context.Context) (int, error)

	// DeleteAll removes the entire session history.
	DeleteAll(ctx context.Context) error
}

type progressRepo struct {
	db *sqlx.DB
}

func (r *progressRepo) Append(ctx context.Context, e *ProgressEntry) error {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO progress_entries
			(session_id, module_id, learning_mode, score,
			 total_questions, correct_answers, time_spent_secs, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.SessionID, e.ModuleID, e.LearningMode, e.Score,
		e.TotalQuestions, e.CorrectAnswers, e.TimeSpentSecs, e.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("append progress entry: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		e.ID = id
	}
	return nil
}

func (r *progressRepo) CompletedModules(ctx context.Context) (map[string]bool, error) {
	var ids []string
	err := r.db.SelectContext(ctx, &ids,
		`SELECT DISTINCT module_id FROM progress_entries`)
	if err != nil {
		return nil, fmt.Errorf("query completed modules: %w", err)
	}
	completed := make(map[string]bool, len(ids))
	for _, id := range ids {
		completed[id] = true
	}
	return completed, nil
}

func (r *progressRepo) Recent(ctx context.Context, limit int) ([]ProgressEntry, error) {
	var entries []ProgressEntry
	err := r.db.SelectContext(ctx, &entries, `
		SELECT * FROM progress_entries
		ORDER BY timestamp DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent entries: %w", err)
	}
	return entries, nil
}

func (r *progressRepo) ByDay(ctx context.Context, days int) ([]DaySummary, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)
	var summaries []DaySummary
	err := r.db.SelectContext(ctx, &summaries, `
		SELECT
			date(timestamp)      AS day,
			COUNT(*)             AS sessions,
			AVG(score)           AS avg_score,
			SUM(time_spent_secs) AS time_spent_secs
		FROM progress_entries
		WHERE timestamp >= ?
		GROUP BY date(timestamp)
		ORDER BY day DESC`, since)
	if err != nil {
		return nil, fmt.Errorf("query day summaries: %w", err)
	}
	return summaries, nil
}

func (r *progressRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM progress_entries`)
	if err != nil {
		return 0, fmt.Errorf("count progress entries: %w", err)
	}
	return n, nil
}

func (r *progressRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM progress_entries`); err != nil {
		return fmt.Errorf("delete progress entries: %w", err)
	}
	return nil
}
