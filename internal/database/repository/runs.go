package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// RunRepo handles runs.
type RunRepo struct {
	db *sql.DB
}

func NewRunRepo(db *sql.DB) *RunRepo { return &RunRepo{db: db} }

const runColumns = `id, name, sentence_path, output_dir, current_sent_id, finished_at, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (Run, error) {
	var r Run
	var finished sql.NullTime
	if err := s.Scan(&r.ID, &r.Name, &r.SentencePath, &r.OutputDir, &r.CurrentSentID, &finished, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return Run{}, err
	}
	if finished.Valid {
		t := finished.Time
		r.FinishedAt = &t
	}
	return r, nil
}

func (r *RunRepo) Create(ctx context.Context, run Run) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO runs(id, name, sentence_path, output_dir, current_sent_id, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?);
	`, run.ID, run.Name, run.SentencePath, run.OutputDir, run.CurrentSentID, run.CreatedAt, run.UpdatedAt)
	return err
}

// ByName returns nil when no run has that name.
func (r *RunRepo) ByName(ctx context.Context, name string) (*Run, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE name = ?`, name)
	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &run, nil
}

// SetPosition records the id of the sentence last served.
func (r *RunRepo) SetPosition(ctx context.Context, id string, sentID int, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE runs SET current_sent_id = ?, updated_at = ? WHERE id = ?`, sentID, at, id)
	return err
}

func (r *RunRepo) Finish(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE runs SET finished_at = ?, updated_at = ? WHERE id = ?`, at, at, id)
	return err
}

// List returns every run with its saved annotation count.
func (r *RunRepo) List(ctx context.Context) ([]RunProgress, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT r.id, r.name, r.sentence_path, r.output_dir, r.current_sent_id, r.finished_at, r.created_at, r.updated_at,
	       (SELECT COUNT(*) FROM annotations a WHERE a.run_id = r.id)
	FROM runs r ORDER BY r.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []RunProgress
	for rows.Next() {
		var p RunProgress
		var finished sql.NullTime
		if err := rows.Scan(&p.ID, &p.Name, &p.SentencePath, &p.OutputDir, &p.CurrentSentID, &finished, &p.CreatedAt, &p.UpdatedAt, &p.Saved); err != nil {
			return nil, err
		}
		if finished.Valid {
			t := finished.Time
			p.FinishedAt = &t
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
