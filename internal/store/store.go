// Package store handles SQLite persistence of quiz history.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/vocadrill/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for run history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			base TEXT NOT NULL,
			mode TEXT NOT NULL,
			score INTEGER NOT NULL,
			total INTEGER NOT NULL,
			wrong_count INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS run_misses (
			run_id TEXT NOT NULL,
			word TEXT NOT NULL,
			expected TEXT NOT NULL,
			failures INTEGER NOT NULL,
			PRIMARY KEY (run_id, word, expected)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ended_at ON runs(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_run_misses_word ON run_misses(word);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRun stores a completed run and its missed items. An empty run ID is
// replaced with a fresh one; the stored ID is returned.
func (s *Store) InsertRun(ctx context.Context, run model.RunRecord, misses []model.MissedEntry) (id string, err error) {
	id = run.ID
	if id == "" {
		id = uuid.NewString()
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, ended_at, base, mode, score, total, wrong_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.EndedAt.UTC().Format(time.RFC3339Nano),
		run.Base,
		run.Mode,
		run.Score,
		run.Total,
		run.WrongCount,
	)
	if err != nil {
		return "", err
	}

	if len(misses) > 0 {
		stmt, perr := tx.PrepareContext(ctx,
			`INSERT INTO run_misses (run_id, word, expected, failures) VALUES (?, ?, ?, ?)
			 ON CONFLICT(run_id, word, expected) DO UPDATE SET failures = failures + excluded.failures`)
		if perr != nil {
			err = perr
			return "", err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, m := range misses {
			if _, err = stmt.ExecContext(ctx, id, m.Word, m.Expected, m.FailureCount); err != nil {
				return "", err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// GetWeakItems aggregates failures over the most recent runs of a collection.
func (s *Store) GetWeakItems(ctx context.Context, window int, base string) ([]model.MissAggregate, error) {
	if window <= 0 {
		return nil, nil
	}
	query := `WITH recent_runs AS (
		SELECT id FROM runs
		WHERE (? = '' OR base = ?)
		ORDER BY ended_at DESC
		LIMIT ?
	)
	SELECT m.word, m.expected, SUM(m.failures) AS failures, COUNT(*) AS runs
	FROM run_misses m
	JOIN recent_runs r ON r.id = m.run_id
	GROUP BY m.word, m.expected`

	rows, err := s.db.QueryContext(ctx, query, base, base, window)
	if err != nil {
		return nil, err
	}
	return scanMisses(rows)
}

// ListRuns returns run aggregates filtered by stats config, oldest first.
func (s *Store) ListRuns(ctx context.Context, cfg model.StatsConfig) ([]model.RunAggregate, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Base != "" {
		clauses = append(clauses, "base = ?")
		args = append(args, cfg.Base)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.UTC().Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, ended_at, score, total, wrong_count
		FROM runs
		WHERE %s
		ORDER BY ended_at ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var runs []model.RunAggregate
	for rows.Next() {
		var agg model.RunAggregate
		var endedAt string
		if err := rows.Scan(&agg.ID, &endedAt, &agg.Score, &agg.Total, &agg.WrongCount); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, endedAt)
		if err != nil {
			return nil, err
		}
		agg.EndedAt = parsed
		runs = append(runs, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

// ListMissAggregatesForRuns aggregates missed items across the given runs.
func (s *Store) ListMissAggregatesForRuns(ctx context.Context, runIDs []string) ([]model.MissAggregate, error) {
	if len(runIDs) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(runIDs))
	args := make([]any, len(runIDs))
	for i, id := range runIDs {
		placeholders[i] = "?"
		args[i] = id
	}
	query := fmt.Sprintf(`SELECT word, expected, SUM(failures) AS failures, COUNT(*) AS runs
		FROM run_misses
		WHERE run_id IN (%s)
		GROUP BY word, expected`, strings.Join(placeholders, ","))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanMisses(rows)
}

func scanMisses(rows *sql.Rows) ([]model.MissAggregate, error) {
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.MissAggregate
	for rows.Next() {
		var agg model.MissAggregate
		if err := rows.Scan(&agg.Word, &agg.Expected, &agg.Failures, &agg.Runs); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
