package state

import (
	"database/sql"
	"fmt"

	"github.com/ebarkley/fedscout/pkg/models"
)

// RecordRun inserts a run row.
func (db *DB) RecordRun(run *models.Run) error {
	if !run.Kind.Valid() {
		return fmt.Errorf("invalid run kind %q", run.Kind)
	}

	var completedAt any
	if run.CompletedAt != nil {
		completedAt = formatTime(*run.CompletedAt)
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	_, err := db.conn.Exec(`
		INSERT INTO runs (id, kind, service, category, score, output_path, tokens_used, started_at, completed_at, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, string(run.Kind), string(run.Service), run.Category, run.Score,
		run.OutputPath, run.TokensUsed, formatTime(run.StartedAt), completedAt, run.Error)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// CompleteRun marks a run as finished, recording its outputs.
func (db *DB) CompleteRun(id string, outputPath string, tokensUsed int64, errMsg string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	result, err := db.conn.Exec(`
		UPDATE runs SET completed_at = ?, output_path = ?, tokens_used = ?, error = ?
		WHERE id = ?
	`, formatTime(nowUTC()), outputPath, tokensUsed, errMsg, id)
	if err != nil {
		return fmt.Errorf("complete run: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("run %s not found", id)
	}
	return nil
}

// GetRun fetches one run by ID.
func (db *DB) GetRun(id string) (*models.Run, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	row := db.conn.QueryRow(`
		SELECT id, kind, service, category, score, output_path, tokens_used, started_at, completed_at, error
		FROM runs WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

// RecentRuns returns the most recent runs, newest first.
func (db *DB) RecentRuns(limit int) ([]*models.Run, error) {
	if limit <= 0 {
		limit = 20
	}

	db.mu.RLock()
	defer db.mu.RUnlock()
	rows, err := db.conn.Query(`
		SELECT id, kind, service, category, score, output_path, tokens_used, started_at, completed_at, error
		FROM runs ORDER BY started_at DESC, id LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RunsForService returns runs for one service, newest first.
func (db *DB) RunsForService(service models.Service, limit int) ([]*models.Run, error) {
	if limit <= 0 {
		limit = 20
	}

	db.mu.RLock()
	defer db.mu.RUnlock()
	rows, err := db.conn.Query(`
		SELECT id, kind, service, category, score, output_path, tokens_used, started_at, completed_at, error
		FROM runs WHERE service = ? ORDER BY started_at DESC, id LIMIT ?
	`, string(service), limit)
	if err != nil {
		return nil, fmt.Errorf("query service runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*models.Run, error) {
	var run models.Run
	var kind, service, startedAt string
	var category, outputPath, errMsg sql.NullString
	var completedAt sql.NullString

	if err := s.Scan(&run.ID, &kind, &service, &category, &run.Score,
		&outputPath, &run.TokensUsed, &startedAt, &completedAt, &errMsg); err != nil {
		return nil, err
	}

	run.Kind = models.RunKind(kind)
	run.Service = models.Service(service)
	run.Category = category.String
	run.OutputPath = outputPath.String
	run.Error = errMsg.String

	started, err := parseTime(startedAt)
	if err != nil {
		return nil, fmt.Errorf("parse started_at: %w", err)
	}
	run.StartedAt = started
	run.CompletedAt = parseNullableTime(completedAt)

	return &run, nil
}
