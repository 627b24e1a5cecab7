package repository

import (
	"context"
	"database/sql"
)

// AnnotationRepo handles saved sentence annotations.
type AnnotationRepo struct {
	db *sql.DB
}

func NewAnnotationRepo(db *sql.DB) *AnnotationRepo { return &AnnotationRepo{db: db} }

func (r *AnnotationRepo) Upsert(ctx context.Context, a Annotation) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO annotations(run_id, sent_id, body, saved_at) VALUES (?, ?, ?, ?)
	ON CONFLICT(run_id, sent_id) DO UPDATE SET body=excluded.body, saved_at=excluded.saved_at;
	`, a.RunID, a.SentID, a.Body, a.SavedAt)
	return err
}

// Get returns nil when the sentence has no saved annotation.
func (r *AnnotationRepo) Get(ctx context.Context, runID string, sentID int) (*Annotation, error) {
	row := r.db.QueryRowContext(ctx, `SELECT run_id, sent_id, body, saved_at FROM annotations WHERE run_id = ? AND sent_id = ?`, runID, sentID)
	var a Annotation
	if err := row.Scan(&a.RunID, &a.SentID, &a.Body, &a.SavedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *AnnotationRepo) CountByRun(ctx context.Context, runID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM annotations WHERE run_id = ?`, runID).Scan(&n)
	return n, err
}
