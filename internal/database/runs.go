package database

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/kamilpajak/examinator/pkg/models"
)

// Run represents a stored grading run.
type Run struct {
	ID         uuid.UUID
	Submission string
	Correct    int
	Total      int
	Tabs       []models.TabScore
	Diagnostic *models.Diagnostic
	DurationMS int64
	CreatedAt  time.Time
}

// CreateRunParams contains parameters for storing a grading run.
type CreateRunParams struct {
	Submission string
	Correct    int
	Total      int
	Tabs       []models.TabScore
	Diagnostic *models.Diagnostic
	DurationMS int64
}

// runColumns is the standard column list for run queries.
const runColumns = `id, submission, correct, total, tabs, diagnostic, duration_ms, created_at`

// scanRun scans a row into a Run and unmarshals the JSON columns.
func scanRun(row pgx.Row) (*Run, error) {
	var r Run
	var tabsJSON, diagnosticJSON []byte
	err := row.Scan(
		&r.ID, &r.Submission, &r.Correct, &r.Total,
		&tabsJSON, &diagnosticJSON, &r.DurationMS, &r.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if tabsJSON != nil {
		if err := json.Unmarshal(tabsJSON, &r.Tabs); err != nil {
			return nil, err
		}
	}
	if diagnosticJSON != nil {
		r.Diagnostic = &models.Diagnostic{}
		if err := json.Unmarshal(diagnosticJSON, r.Diagnostic); err != nil {
			return nil, err
		}
	}
	return &r, nil
}

// CreateRun stores a new grading run.
func (db *DB) CreateRun(ctx context.Context, params CreateRunParams) (*Run, error) {
	var tabsJSON, diagnosticJSON []byte
	var err error
	if params.Tabs != nil {
		tabsJSON, err = json.Marshal(params.Tabs)
		if err != nil {
			return nil, err
		}
	}
	if params.Diagnostic != nil {
		diagnosticJSON, err = json.Marshal(params.Diagnostic)
		if err != nil {
			return nil, err
		}
	}

	row := db.pool.QueryRow(ctx,
		`INSERT INTO runs (submission, correct, total, tabs, diagnostic, duration_ms)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+runColumns,
		params.Submission, params.Correct, params.Total, tabsJSON, diagnosticJSON, params.DurationMS,
	)
	return scanRun(row)
}

// GetRunByID retrieves a run by ID.
func (db *DB) GetRunByID(ctx context.Context, id uuid.UUID) (*Run, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+runColumns+` FROM runs WHERE id = $1`,
		id,
	)
	return scanRun(row)
}

// ListRuns retrieves the most recent runs for a submission, newest first.
func (db *DB) ListRuns(ctx context.Context, submission string, limit int) ([]Run, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+runColumns+` FROM runs WHERE submission = $1 ORDER BY created_at DESC LIMIT $2`,
		submission, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *r)
	}
	return runs, rows.Err()
}
