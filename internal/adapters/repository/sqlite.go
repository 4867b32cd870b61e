package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/okian/veritas/internal/domain/evaluate"
	_ "modernc.org/sqlite" // sqlite driver
)

// SQLiteStore persists evaluations in a sqlite database so reports survive
// restarts and can be re-opened by the dashboard.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at path and
// prepares the schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	s := &SQLiteStore{db: db}
	if err := s.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS evaluations (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		report TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("init sqlite schema: %w", err)
	}
	return nil
}

// Save persists the evaluation, replacing any previous version with the same id.
func (s *SQLiteStore) Save(ctx context.Context, e Evaluation) error {
	report, err := json.Marshal(e.Report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO evaluations (id, created_at, report) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET report = excluded.report`,
		e.ID, e.CreatedAt.UTC().Format(time.RFC3339Nano), string(report),
	)
	if err != nil {
		return fmt.Errorf("save evaluation: %w", err)
	}
	return nil
}

// Get returns the evaluation with the given id.
func (s *SQLiteStore) Get(ctx context.Context, id string) (Evaluation, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, report FROM evaluations WHERE id = ?`, id)
	return scanEvaluation(row.Scan)
}

// Recent returns up to n evaluations, newest first.
func (s *SQLiteStore) Recent(ctx context.Context, n int) ([]Evaluation, error) {
	if n < 1 {
		return nil, ErrInvalidLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, report FROM evaluations ORDER BY created_at DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query recent evaluations: %w", err)
	}
	defer rows.Close()

	out := make([]Evaluation, 0, n)
	for rows.Next() {
		e, err := scanEvaluation(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recent evaluations: %w", err)
	}
	return out, nil
}

// Count returns the number of stored evaluations.
func (s *SQLiteStore) Count(ctx context.Context) int {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM evaluations`).Scan(&count); err != nil {
		return 0
	}
	return count
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func scanEvaluation(scan func(dest ...any) error) (Evaluation, error) {
	var (
		e         Evaluation
		createdAt string
		report    string
	)
	if err := scan(&e.ID, &createdAt, &report); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Evaluation{}, ErrNotFound
		}
		return Evaluation{}, fmt.Errorf("scan evaluation: %w", err)
	}
	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return Evaluation{}, fmt.Errorf("parse created_at: %w", err)
	}
	e.CreatedAt = ts

	var r evaluate.Report
	if err := json.Unmarshal([]byte(report), &r); err != nil {
		return Evaluation{}, fmt.Errorf("decode report: %w", err)
	}
	e.Report = &r
	return e, nil
}
