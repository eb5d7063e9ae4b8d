package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// HasSucceeded reports whether a successful run is already recorded for the
// given date. Missing and non-success rows both return false.
func (s *Store) HasSucceeded(date string) (bool, error) {
	var status string
	err := s.db.QueryRow(`SELECT status FROM runs WHERE date = ?`, date).Scan(&status)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("querying run for %s: %w", date, err)
	}
	return status == StatusSuccess, nil
}

// GetRun returns the run record for the given date, or ErrNotFound.
func (s *Store) GetRun(date string) (RunRecord, error) {
	var r RunRecord
	var startedAt, finishedAt string
	err := s.db.QueryRow(`
		SELECT date, run_id, status, output_path, caption_path, error_summary, started_at, finished_at
		FROM runs WHERE date = ?`, date,
	).Scan(&r.Date, &r.RunID, &r.Status, &r.OutputPath, &r.CaptionPath, &r.ErrorSummary, &startedAt, &finishedAt)
	if err == sql.ErrNoRows {
		return RunRecord{}, ErrNotFound
	}
	if err != nil {
		return RunRecord{}, err
	}
	if r.StartedAt, err = time.Parse(time.RFC3339, startedAt); err != nil {
		return RunRecord{}, fmt.Errorf("parsing started_at: %w", err)
	}
	if r.FinishedAt, err = time.Parse(time.RFC3339, finishedAt); err != nil {
		return RunRecord{}, fmt.Errorf("parsing finished_at: %w", err)
	}
	return r, nil
}

// RecordRun inserts or overwrites the run record for rec.Date. A day
// interrupted mid-run and retried simply replaces its own row, so the
// ledger never holds more than one record per date.
func (s *Store) RecordRun(rec RunRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO runs (date, run_id, status, output_path, caption_path, error_summary, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			run_id = excluded.run_id,
			status = excluded.status,
			output_path = excluded.output_path,
			caption_path = excluded.caption_path,
			error_summary = excluded.error_summary,
			started_at = excluded.started_at,
			finished_at = excluded.finished_at`,
		rec.Date, rec.RunID, rec.Status, rec.OutputPath, rec.CaptionPath,
		rec.ErrorSummary, rec.StartedAt.UTC().Format(time.RFC3339), rec.FinishedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// RecentRuns returns up to limit run records, newest first.
func (s *Store) RecentRuns(limit int) ([]RunRecord, error) {
	rows, err := s.db.Query(`
		SELECT date, run_id, status, output_path, caption_path, error_summary, started_at, finished_at
		FROM runs ORDER BY date DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []RunRecord
	for rows.Next() {
		var r RunRecord
		var startedAt, finishedAt string
		if err := rows.Scan(&r.Date, &r.RunID, &r.Status, &r.OutputPath, &r.CaptionPath, &r.ErrorSummary, &startedAt, &finishedAt); err != nil {
			return nil, err
		}
		if r.StartedAt, err = time.Parse(time.RFC3339, startedAt); err != nil {
			return nil, fmt.Errorf("parsing started_at for %s: %w", r.Date, err)
		}
		if r.FinishedAt, err = time.Parse(time.RFC3339, finishedAt); err != nil {
			return nil, fmt.Errorf("parsing finished_at for %s: %w", r.Date, err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
