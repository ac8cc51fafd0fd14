// Package postgres keeps the history of validation runs.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/de-tools/hostaway-atlas/pkg/models/domain"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

const (
	DefaultListLimit = 20

	createRunsTable = `
		CREATE TABLE IF NOT EXISTS validation_runs (
			id                UUID        PRIMARY KEY,
			from_date         DATE        NOT NULL,
			to_date           DATE        NOT NULL,
			total_rows        INTEGER     NOT NULL,
			discrepancy_count INTEGER     NOT NULL,
			removed_columns   TEXT[]      NOT NULL DEFAULT '{}',
			missing_columns   TEXT[]      NOT NULL DEFAULT '{}',
			created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`

	createRunsIndex = `
		CREATE INDEX IF NOT EXISTS idx_validation_runs_created_at ON validation_runs(created_at DESC);`

	insertRun = `
		INSERT INTO validation_runs
			(id, from_date, to_date, total_rows, discrepancy_count, removed_columns, missing_columns, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	listRuns = `
		SELECT id, from_date, to_date, total_rows, discrepancy_count, removed_columns, missing_columns, created_at
		FROM validation_runs
		ORDER BY created_at DESC
		LIMIT $1`
)

type RunStore struct {
	db *sql.DB
}

func NewRunStore(db *sql.DB) *RunStore {
	return &RunStore{db: db}
}

// Open connects with the postgres driver and ensures the schema exists.
func Open(ctx context.Context, dsn string) (*RunStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	s := NewRunStore(db)
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Migrate creates the runs table and its index in one transaction.
func (s *RunStore) Migrate(ctx context.Context) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: migrate: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	txCtx := WithTransaction(ctx, tx)
	for _, stmt := range []string{createRunsTable, createRunsIndex} {
		if _, err = s.exec(txCtx, stmt); err != nil {
			return fmt.Errorf("postgres: migrate: %w", err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("postgres: migrate: %w", err)
	}
	return nil
}

// exec runs on the transaction carried by ctx when there is one.
func (s *RunStore) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if tx := GetTransaction(ctx); tx != nil {
		return tx.ExecContext(ctx, query, args...)
	}
	return s.db.ExecContext(ctx, query, args...)
}

func (s *RunStore) Record(ctx context.Context, run domain.ValidationRun) error {
	_, err := s.exec(ctx, insertRun,
		run.ID,
		run.FromDate,
		run.ToDate,
		run.TotalRows,
		run.DiscrepancyCount,
		pq.Array(nonNil(run.RemovedColumns)),
		pq.Array(nonNil(run.MissingColumns)),
		run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record validation run %s: %w", run.ID, err)
	}
	return nil
}

// List returns the most recent runs first. A non-positive limit means DefaultListLimit.
func (s *RunStore) List(ctx context.Context, limit int) ([]domain.ValidationRun, error) {
	logger := zerolog.Ctx(ctx)
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := s.db.QueryContext(ctx, listRuns, limit)
	if err != nil {
		return nil, fmt.Errorf("validation run query failed: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close validation run rows")
		}
	}(rows)

	runs := []domain.ValidationRun{}
	for rows.Next() {
		var (
			run              domain.ValidationRun
			removed, missing pq.StringArray
		)
		if err := rows.Scan(
			&run.ID,
			&run.FromDate,
			&run.ToDate,
			&run.TotalRows,
			&run.DiscrepancyCount,
			&removed,
			&missing,
			&run.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan validation run: %w", err)
		}
		run.RemovedColumns = removed
		run.MissingColumns = missing
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("validation run rows: %w", err)
	}
	return runs, nil
}

func (s *RunStore) Close() error {
	return s.db.Close()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
