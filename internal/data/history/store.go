package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const (
	driverName         = "sqlite"
	maxAttempts        = 5
	defaultBusyTimeout = 2 * time.Second
	defaultProjectKey  = "default"
)

// Store persists check runs in a sqlite database.
type Store struct {
	path string
	db   *sql.DB
	mu   sync.Mutex
}

// Open opens or creates the database at path and applies pending
// migrations. A zero busyTimeout uses two seconds.
func Open(path string, busyTimeout time.Duration) (*Store, error) {
	cleanPath := strings.TrimSpace(path)
	if cleanPath == "" {
		return nil, fmt.Errorf("history path must not be empty")
	}
	if info, err := os.Stat(cleanPath); err == nil && info.IsDir() {
		return nil, fmt.Errorf("history path %q is a directory, expected file", cleanPath)
	}

	dir := filepath.Dir(cleanPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory %q: %w", dir, err)
		}
	}

	if busyTimeout <= 0 {
		busyTimeout = defaultBusyTimeout
	}
	dsn := fmt.Sprintf(
		"file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)",
		cleanPath, busyTimeout.Milliseconds(),
	)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite history %q: %w", cleanPath, err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite history %q: %w", cleanPath, err)
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize sqlite schema %q: %w", cleanPath, err)
	}

	return &Store{path: cleanPath, db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Record stores run and its per-code counts in one transaction. Missing IDs
// and start times are filled in; the stored run is returned.
func (s *Store) Record(ctx context.Context, run Run) (Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	run.ProjectKey = projectKeyOrDefault(run.ProjectKey)
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	run.StartedAt = run.StartedAt.UTC()

	err := s.withRetry("record run", func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx, `
INSERT INTO runs (
  id, project_key, started_at_utc, duration_ms, convention, commit_hash,
  file_count, parse_failures, violation_count
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID,
			run.ProjectKey,
			run.StartedAt.Format(time.RFC3339Nano),
			run.Duration.Milliseconds(),
			run.Convention,
			run.CommitHash,
			run.FileCount,
			run.ParseFailures,
			run.Violations,
		); err != nil {
			return err
		}
		for code, count := range run.Codes {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO run_codes (run_id, code, count) VALUES (?, ?, ?)`,
				run.ID, code, count,
			); err != nil {
				return err
			}
		}
		return tx.Commit()
	})
	if err != nil {
		return Run{}, err
	}
	return run, nil
}

// Prune deletes all but the newest keep runs of the project and reports how
// many were removed.
func (s *Store) Prune(ctx context.Context, projectKey string, keep int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if keep < 1 {
		return 0, fmt.Errorf("keep must be >= 1, got %d", keep)
	}
	var removed int64
	err := s.withRetry("prune runs", func() error {
		res, err := s.db.ExecContext(ctx, `
DELETE FROM runs
WHERE project_key = ?
  AND id NOT IN (
    SELECT id FROM runs WHERE project_key = ?
    ORDER BY started_at_utc DESC, id DESC
    LIMIT ?
  )`,
			projectKeyOrDefault(projectKey), projectKeyOrDefault(projectKey), keep,
		)
		if err != nil {
			return err
		}
		removed, err = res.RowsAffected()
		return err
	})
	return int(removed), err
}

// Recent returns up to limit runs of the project, oldest first.
func (s *Store) Recent(ctx context.Context, projectKey string, limit int) ([]Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit < 1 {
		limit = 1
	}

	var rows *sql.Rows
	err := s.withRetry("load runs", func() error {
		var qErr error
		rows, qErr = s.db.QueryContext(ctx, `
SELECT id, project_key, started_at_utc, duration_ms, convention, commit_hash,
       file_count, parse_failures, violation_count
FROM (
  SELECT * FROM runs WHERE project_key = ?
  ORDER BY started_at_utc DESC, id DESC
  LIMIT ?
)
ORDER BY started_at_utc ASC, id ASC`,
			projectKeyOrDefault(projectKey), limit,
		)
		return qErr
	})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := make([]Run, 0, limit)
	index := make(map[string]int)
	for rows.Next() {
		var (
			run        Run
			startedRaw string
			durationMS int64
		)
		if err := rows.Scan(
			&run.ID,
			&run.ProjectKey,
			&startedRaw,
			&durationMS,
			&run.Convention,
			&run.CommitHash,
			&run.FileCount,
			&run.ParseFailures,
			&run.Violations,
		); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		started, err := time.Parse(time.RFC3339Nano, startedRaw)
		if err != nil {
			return nil, fmt.Errorf("parse run timestamp %q: %w", startedRaw, err)
		}
		run.StartedAt = started.UTC()
		run.Duration = time.Duration(durationMS) * time.Millisecond
		run.Codes = make(map[string]int)
		index[run.ID] = len(runs)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run rows: %w", err)
	}
	if len(runs) == 0 {
		return runs, nil
	}

	if err := s.loadCodes(ctx, runs, index); err != nil {
		return nil, err
	}
	return runs, nil
}

func (s *Store) loadCodes(ctx context.Context, runs []Run, index map[string]int) error {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(runs)), ",")
	args := make([]any, 0, len(runs))
	for _, run := range runs {
		args = append(args, run.ID)
	}

	var rows *sql.Rows
	err := s.withRetry("load run codes", func() error {
		var qErr error
		rows, qErr = s.db.QueryContext(ctx,
			`SELECT run_id, code, count FROM run_codes WHERE run_id IN (`+placeholders+`)`,
			args...,
		)
		return qErr
	})
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			runID string
			code  string
			count int
		)
		if err := rows.Scan(&runID, &code, &count); err != nil {
			return fmt.Errorf("scan run code row: %w", err)
		}
		if i, ok := index[runID]; ok {
			runs[i].Codes[code] = count
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate run code rows: %w", err)
	}
	return nil
}

func (s *Store) withRetry(op string, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		if !isLockError(err) || attempt == maxAttempts {
			break
		}
		time.Sleep(time.Duration(attempt*25) * time.Millisecond)
	}
	return fmt.Errorf("%s: %w", op, lastErr)
}

func isLockError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "busy")
}

func IsCorruptError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "malformed") || strings.Contains(msg, "not a database") || errors.Is(err, os.ErrInvalid)
}

func projectKeyOrDefault(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return defaultProjectKey
	}
	return key
}
